package model

import "time"

// Activation categories stored on a ledger record.
const (
	CategoryActivation    = "activation"
	CategoryRecalibration = "recalibration"
)

// NumChakras is the number of chakra progress slots (indices 0..6).
const NumChakras = 7

// DayFormat is the calendar-day layout used in ledger keys. Days are always
// computed in UTC so that idempotency keys are reproducible across hosts.
const DayFormat = "2006-01-02"

// DayOf returns the UTC calendar day of t.
func DayOf(t time.Time) string { return t.UTC().Format(DayFormat) }

// ActivationRecord is one (user, chakra, calendar day) progress event.
// Records are append-only facts: never updated, never deleted by the engine.
// At most one record may exist per (UserID, ChakraIndex, Day, Category);
// the storage layer enforces this.
type ActivationRecord struct {
	RecordID       string    `json:"recordId"`
	UserID         string    `json:"userId"`
	ChakraIndex    int       `json:"chakraIndex"`
	Category       string    `json:"category"`
	Day            string    `json:"day"`
	ReflectionText *string   `json:"reflectionText,omitempty"`
	CompletedAt    time.Time `json:"completedAt"`
}

// UserProfile is the external aggregate that owns the running energy point
// total. The engine only applies deltas to it; it never caches the total.
type UserProfile struct {
	UserID       string `json:"userId"`
	EnergyPoints int    `json:"energyPoints"`
}

// ListActivationsRequest captures filters used when listing ledger records.
type ListActivationsRequest struct {
	UserID   string
	Category string // optional; empty means both categories
	FromDay  string // optional, inclusive
	ToDay    string // optional, inclusive
}

// ReflectionResult is returned to the caller after a reflection submission.
type ReflectionResult struct {
	PointsEarned     int      `json:"pointsEarned"`
	DepthCategory    string   `json:"depthCategory"`
	FeedbackMessage  string   `json:"feedbackMessage"`
	Themes           []string `json:"themes"`
	ActivatedChakras []int    `json:"activatedChakras"`
	CurrentStreak    int      `json:"currentStreak"`
}

// ActivationResult is returned from a direct chakra activation.
// AlreadyActivated is a normal outcome, not an error.
type ActivationResult struct {
	AlreadyActivated bool `json:"alreadyActivated"`
	PointsEarned     int  `json:"pointsEarned,omitempty"`
	NewStreak        int  `json:"newStreak,omitempty"`
}

// RecalibrationResult is returned from a recalibration run. NoneNeeded is a
// normal outcome reported when the current week has no uncredited days.
type RecalibrationResult struct {
	NoneNeeded       bool  `json:"noneNeeded,omitempty"`
	RecalibratedDays []int `json:"recalibratedDays,omitempty"`
	PointsEarned     int   `json:"pointsEarned,omitempty"`
	NewStreak        int   `json:"newStreak,omitempty"`
}

// ProgressState is a read-time projection over the ledger plus the profile
// aggregate. It is never stored; the ledger is the source of truth.
type ProgressState struct {
	UserID         string `json:"userId"`
	ActivatedToday []int  `json:"activatedToday"`
	CurrentStreak  int    `json:"currentStreak"`
	LongestStreak  int    `json:"longestStreak"`
	EnergyPoints   int    `json:"energyPoints"`
}
