// Package services holds the progress/energy engine. The engine owns no
// state: the activation ledger is the source of truth and every derived value
// (streaks, today's chakra set, point deltas) is recomputed from it. Writes
// rely on the storage uniqueness key (userId, chakraIndex, day, category) for
// idempotency, so cancelled or timed-out calls are always safe to retry.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pranaflow/prana-server/internal/insight"
	"github.com/pranaflow/prana-server/internal/model"
	"github.com/pranaflow/prana-server/internal/reward"
	"github.com/pranaflow/prana-server/internal/store"
	"github.com/pranaflow/prana-server/internal/streak"
)

// DefaultMinReflectionChars is the default point-eligibility threshold for
// reflection text. A product choice, overridable via config.
const DefaultMinReflectionChars = 20

// Engine implements the progress and energy flows over a store.Store.
type Engine struct {
	store              store.Store
	log                zerolog.Logger
	minReflectionChars int
	now                func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithMinReflectionChars overrides the reflection length threshold.
func WithMinReflectionChars(n int) Option {
	return func(e *Engine) { e.minReflectionChars = n }
}

// WithClock overrides the engine clock (tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates the engine.
func NewEngine(s store.Store, log zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:              s,
		log:                log,
		minReflectionChars: DefaultMinReflectionChars,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SubmitReflection scores a reflection, activates the mapped chakras for
// today, credits points, and returns the result for display.
//
// Points are credited once per submission and only when at least one chakra
// was newly activated; re-submitting on the same day cannot double-credit
// because every insert is keyed by calendar day.
func (e *Engine) SubmitReflection(ctx context.Context, userID, text string) (*model.ReflectionResult, error) {
	if userID == "" {
		return nil, NewValidationError("userId", "is required")
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < e.minReflectionChars {
		return nil, NewValidationError("text", fmt.Sprintf("must be at least %d characters", e.minReflectionChars))
	}

	now := e.now().UTC()
	day := model.DayOf(now)

	analysis := insight.Analyze(text)
	rw := reward.Map(analysis)

	newlyActivated := 0
	for _, c := range rw.Chakras {
		rec := &model.ActivationRecord{
			RecordID:    uuid.New().String(),
			UserID:      userID,
			ChakraIndex: c,
			Category:    model.CategoryActivation,
			Day:         day,
			CompletedAt: now,
		}
		_, err := e.store.Activations().Insert(ctx, rec)
		switch {
		case err == nil:
			newlyActivated++
		case errors.Is(err, model.ErrDuplicateActivation):
			// chakra already credited today
		default:
			return nil, fmt.Errorf("submit reflection for user %s: %w", userID, err)
		}
	}

	points := 0
	if newlyActivated > 0 {
		points = rw.Points
		if _, err := e.store.Profiles().IncrementPoints(ctx, userID, points); err != nil {
			return nil, fmt.Errorf("credit reflection points for user %s: %w", userID, err)
		}
	}

	st, err := e.computeStreak(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	category := depthCategory(analysis.EmotionalDepth)
	return &model.ReflectionResult{
		PointsEarned:     points,
		DepthCategory:    category,
		FeedbackMessage:  feedbackFor(category),
		Themes:           analysis.Themes,
		ActivatedChakras: rw.Chakras,
		CurrentStreak:    st.Current,
	}, nil
}

// ActivateChakra records a direct activation of one chakra for today.
// A second call for the same (user, chakra, day) reports AlreadyActivated
// without writing or crediting again; the storage uniqueness key resolves
// concurrent attempts.
func (e *Engine) ActivateChakra(ctx context.Context, userID string, chakraIndex int) (*model.ActivationResult, error) {
	if userID == "" {
		return nil, NewValidationError("userId", "is required")
	}
	if chakraIndex < 0 || chakraIndex >= model.NumChakras {
		return nil, NewValidationError("chakraIndex", fmt.Sprintf("must be in [0,%d]", model.NumChakras-1))
	}

	now := e.now().UTC()
	rec := &model.ActivationRecord{
		RecordID:    uuid.New().String(),
		UserID:      userID,
		ChakraIndex: chakraIndex,
		Category:    model.CategoryActivation,
		Day:         model.DayOf(now),
		CompletedAt: now,
	}
	if _, err := e.store.Activations().Insert(ctx, rec); err != nil {
		if errors.Is(err, model.ErrDuplicateActivation) {
			return &model.ActivationResult{AlreadyActivated: true}, nil
		}
		return nil, fmt.Errorf("activate chakra %d for user %s: %w", chakraIndex, userID, err)
	}

	points := reward.ActivationPoints(chakraIndex)
	if _, err := e.store.Profiles().IncrementPoints(ctx, userID, points); err != nil {
		return nil, fmt.Errorf("credit activation points for user %s: %w", userID, err)
	}

	st, err := e.computeStreak(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	return &model.ActivationResult{
		AlreadyActivated: false,
		PointsEarned:     points,
		NewStreak:        st.Current,
	}, nil
}

// Recalibrate retroactively credits days of the current week (Sunday-based,
// UTC) that have no activation, at a reduced reward, once per missed day.
//
// The weekday index doubles as the record's chakra index, keeping the 7-slot
// weekday/chakra alignment of existing stored data. Each catch-up record's
// Day is set to the missed day's own calendar date, so the storage uniqueness
// key alone makes the flow idempotent per missed day: a retried or repeated
// call skips already-written days and never double-credits, even after a
// partially completed run.
func (e *Engine) Recalibrate(ctx context.Context, userID, reflectionText string) (*model.RecalibrationResult, error) {
	if userID == "" {
		return nil, NewValidationError("userId", "is required")
	}
	if utf8.RuneCountInString(strings.TrimSpace(reflectionText)) < e.minReflectionChars {
		return nil, NewValidationError("reflectionText", fmt.Sprintf("must be at least %d characters", e.minReflectionChars))
	}

	now := e.now().UTC()
	weekday := int(now.Weekday()) // Sunday = 0
	weekStart := now.AddDate(0, 0, -weekday)

	recs, err := e.store.Activations().List(ctx, model.ListActivationsRequest{
		UserID:  userID,
		FromDay: model.DayOf(weekStart),
		ToDay:   model.DayOf(now),
	})
	if err != nil {
		return nil, fmt.Errorf("recalibrate list week for user %s: %w", userID, err)
	}

	activatedDays := make(map[int]bool)
	recalibratedDays := make(map[int]bool)
	for _, r := range recs {
		d, err := time.Parse(model.DayFormat, r.Day)
		if err != nil {
			continue
		}
		switch r.Category {
		case model.CategoryActivation:
			activatedDays[int(d.Weekday())] = true
		case model.CategoryRecalibration:
			recalibratedDays[int(d.Weekday())] = true
		}
	}

	var missed []int
	for d := 0; d <= weekday; d++ {
		if !activatedDays[d] {
			missed = append(missed, d)
		}
	}
	if len(missed) == 0 {
		return &model.RecalibrationResult{NoneNeeded: true}, nil
	}

	var newly []int
	for _, d := range missed {
		dayDate := model.DayOf(weekStart.AddDate(0, 0, d))
		text := reflectionText
		rec := &model.ActivationRecord{
			RecordID:       uuid.New().String(),
			UserID:         userID,
			ChakraIndex:    d,
			Category:       model.CategoryRecalibration,
			Day:            dayDate,
			ReflectionText: &text,
			CompletedAt:    now,
		}
		_, err := e.store.Activations().Insert(ctx, rec)
		switch {
		case err == nil:
			newly = append(newly, d)
			recalibratedDays[d] = true
		case errors.Is(err, model.ErrDuplicateActivation):
			recalibratedDays[d] = true // already caught up, skip
		default:
			return nil, fmt.Errorf("recalibrate day %d for user %s: %w", d, userID, err)
		}
	}
	if len(newly) == 0 {
		return &model.RecalibrationResult{NoneNeeded: true}, nil
	}

	// Reduced credit, counting only newly written days.
	points := len(newly) * 2
	if points < 5 {
		points = 5
	}
	if _, err := e.store.Profiles().IncrementPoints(ctx, userID, points); err != nil {
		return nil, fmt.Errorf("credit recalibration points for user %s: %w", userID, err)
	}

	covered := make(map[int]bool, len(activatedDays)+len(recalibratedDays))
	for d := range activatedDays {
		covered[d] = true
	}
	for d := range recalibratedDays {
		covered[d] = true
	}
	newStreak := weekday + 1
	if len(covered) > newStreak {
		newStreak = len(covered)
	}

	return &model.RecalibrationResult{
		RecalibratedDays: newly,
		PointsEarned:     points,
		NewStreak:        newStreak,
	}, nil
}

// GetProgress derives the user's progress projection from the ledger and the
// profile aggregate. Nothing here is read from a cached counter.
func (e *Engine) GetProgress(ctx context.Context, userID string) (*model.ProgressState, error) {
	if userID == "" {
		return nil, NewValidationError("userId", "is required")
	}

	now := e.now().UTC()
	today := model.DayOf(now)

	recs, err := e.store.Activations().List(ctx, model.ListActivationsRequest{UserID: userID, Category: model.CategoryActivation})
	if err != nil {
		return nil, fmt.Errorf("get progress for user %s: %w", userID, err)
	}

	// Duplicate keys must never exist if the storage constraint holds; log
	// loudly for offline investigation if one ever shows up on read.
	seen := make(map[string]bool, len(recs))
	activatedToday := []int{}
	for _, r := range recs {
		key := fmt.Sprintf("%d|%s|%s", r.ChakraIndex, r.Day, r.Category)
		if seen[key] {
			e.log.Error().
				Str("user_id", r.UserID).
				Int("chakra_index", r.ChakraIndex).
				Str("day", r.Day).
				Str("category", r.Category).
				Str("record_id", r.RecordID).
				Msg("invariant violation: duplicate activation record for key")
			continue
		}
		seen[key] = true
		if r.Day == today {
			activatedToday = append(activatedToday, r.ChakraIndex)
		}
	}

	st := streak.Compute(recs, now)

	points := 0
	profile, err := e.store.Profiles().Get(ctx, userID)
	switch {
	case err == nil:
		points = profile.EnergyPoints
	case errors.Is(err, model.ErrNotFound):
		// no profile yet; zero points
	default:
		return nil, fmt.Errorf("get profile for user %s: %w", userID, err)
	}

	return &model.ProgressState{
		UserID:         userID,
		ActivatedToday: activatedToday,
		CurrentStreak:  st.Current,
		LongestStreak:  st.Longest,
		EnergyPoints:   points,
	}, nil
}

func (e *Engine) computeStreak(ctx context.Context, userID string, now time.Time) (streak.Streak, error) {
	recs, err := e.store.Activations().List(ctx, model.ListActivationsRequest{UserID: userID, Category: model.CategoryActivation})
	if err != nil {
		return streak.Streak{}, fmt.Errorf("compute streak for user %s: %w", userID, err)
	}
	return streak.Compute(recs, now), nil
}

func depthCategory(depth float64) string {
	switch {
	case depth < 0.33:
		return "surface"
	case depth < 0.66:
		return "flowing"
	default:
		return "deep"
	}
}

func feedbackFor(category string) string {
	switch category {
	case "deep":
		return "A deep reflection. Your awareness is radiating through every center."
	case "flowing":
		return "Your energy is flowing. Keep noticing what moves you."
	default:
		return "A good start. Sit with the feeling a little longer next time."
	}
}
