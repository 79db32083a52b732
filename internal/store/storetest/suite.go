// Package storetest holds a compliance suite shared by store adapters.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pranaflow/prana-server/internal/model"
	"github.com/pranaflow/prana-server/internal/store"
)

// Run exercises the store.Store contract against an implementation.
// makeStore must return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	userID := "u_" + uuid.New().String()[:8]
	now := time.Date(2025, 3, 20, 10, 30, 0, 0, time.UTC)
	day := model.DayOf(now)

	// Insert an activation record
	rec := &model.ActivationRecord{
		RecordID:    uuid.New().String(),
		UserID:      userID,
		ChakraIndex: 2,
		Category:    model.CategoryActivation,
		Day:         day,
		CompletedAt: now,
	}
	if _, err := s.Activations().Insert(ctx, rec); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	// Same key again must surface the duplicate signal, regardless of the
	// record id, without a prior read.
	dup := *rec
	dup.RecordID = uuid.New().String()
	if _, err := s.Activations().Insert(ctx, &dup); !errors.Is(err, model.ErrDuplicateActivation) {
		t.Fatalf("duplicate Insert: err=%v, want ErrDuplicateActivation", err)
	}

	// Same key but recalibration category is a distinct record.
	text := "catching up"
	recal := &model.ActivationRecord{
		RecordID:       uuid.New().String(),
		UserID:         userID,
		ChakraIndex:    2,
		Category:       model.CategoryRecalibration,
		Day:            day,
		ReflectionText: &text,
		CompletedAt:    now,
	}
	if _, err := s.Activations().Insert(ctx, recal); err != nil {
		t.Fatalf("Insert recalibration: %v", err)
	}

	// Find round-trips the record
	got, err := s.Activations().Find(ctx, userID, 2, day, model.CategoryActivation)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.RecordID != rec.RecordID || got.Day != day || got.Category != model.CategoryActivation {
		t.Fatalf("Find returned wrong record: %+v", got)
	}
	gotRecal, err := s.Activations().Find(ctx, userID, 2, day, model.CategoryRecalibration)
	if err != nil {
		t.Fatalf("Find recalibration: %v", err)
	}
	if gotRecal.ReflectionText == nil || *gotRecal.ReflectionText != text {
		t.Fatalf("recalibration reflection text lost: %+v", gotRecal)
	}

	// Find on a missing key reports ErrNotFound
	if _, err := s.Activations().Find(ctx, userID, 6, day, model.CategoryActivation); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Find missing: err=%v, want ErrNotFound", err)
	}

	// List with category and day-window filters
	prev := &model.ActivationRecord{
		RecordID:    uuid.New().String(),
		UserID:      userID,
		ChakraIndex: 0,
		Category:    model.CategoryActivation,
		Day:         model.DayOf(now.AddDate(0, 0, -1)),
		CompletedAt: now.AddDate(0, 0, -1),
	}
	if _, err := s.Activations().Insert(ctx, prev); err != nil {
		t.Fatalf("Insert prev-day: %v", err)
	}

	all, err := s.Activations().List(ctx, model.ListActivationsRequest{UserID: userID})
	if err != nil || len(all) != 3 {
		t.Fatalf("List all: n=%d err=%v, want 3", len(all), err)
	}
	acts, err := s.Activations().List(ctx, model.ListActivationsRequest{UserID: userID, Category: model.CategoryActivation})
	if err != nil || len(acts) != 2 {
		t.Fatalf("List activations: n=%d err=%v, want 2", len(acts), err)
	}
	today, err := s.Activations().List(ctx, model.ListActivationsRequest{UserID: userID, Category: model.CategoryActivation, FromDay: day, ToDay: day})
	if err != nil || len(today) != 1 {
		t.Fatalf("List today: n=%d err=%v, want 1", len(today), err)
	}

	// Profiles: increment is an upsert that returns the running total
	if total, err := s.Profiles().IncrementPoints(ctx, userID, 20); err != nil || total != 20 {
		t.Fatalf("IncrementPoints first: total=%d err=%v", total, err)
	}
	if total, err := s.Profiles().IncrementPoints(ctx, userID, 5); err != nil || total != 25 {
		t.Fatalf("IncrementPoints second: total=%d err=%v", total, err)
	}
	if p, err := s.Profiles().Get(ctx, userID); err != nil || p.EnergyPoints != 25 {
		t.Fatalf("Profiles.Get: %+v err=%v", p, err)
	}
	if _, err := s.Profiles().Get(ctx, "u_missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Profiles.Get missing: err=%v, want ErrNotFound", err)
	}
}
