package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	adapter "bioq/internal/modules/attempt/adapter/out"
	"bioq/internal/modules/attempt/domain"
	attemptout "bioq/internal/modules/attempt/port/out"
	apperrors "bioq/internal/platform/errors"
)

func newStoreForTest(t *testing.T) attemptout.AttemptStore {
	t.Helper()
	store, err := adapter.NewSQLiteAttemptStore(filepath.Join(t.TempDir(), "bioq.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func attempt(date, device string, score int, elapsed int64) domain.Attempt {
	return domain.Attempt{
		Date:           date,
		WeekID:         "2026-W11",
		Score:          score,
		QuestionCount:  15,
		TotalElapsedMs: elapsed,
		TimeBudgetMs:   20000,
		DeviceID:       device,
		RecordedAt:     time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}
}

func TestInsertEnforcesOneAttemptPerIdentityPerDay(t *testing.T) {
	t.Parallel()
	store := newStoreForTest(t)
	ctx := context.Background()

	if err := store.Insert(ctx, attempt("2026-03-10", "device-1", 10, 90000)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	err := store.Insert(ctx, attempt("2026-03-10", "device-1", 15, 50000))
	if !errors.Is(err, apperrors.ErrDuplicateAttempt) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	// Same identity, next day is fine.
	if err := store.Insert(ctx, attempt("2026-03-11", "device-1", 15, 50000)); err != nil {
		t.Fatalf("insert next day: %v", err)
	}

	rows, err := store.ListByWeek(ctx, "2026-W11")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Score != 10 && rows[0].Score != 15 {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestListByWeekOrdersByScoreThenElapsed(t *testing.T) {
	t.Parallel()
	store := newStoreForTest(t)
	ctx := context.Background()

	seed := []domain.Attempt{
		attempt("2026-03-10", "slow-winner", 14, 150000),
		attempt("2026-03-10", "fast-winner", 14, 90000),
		attempt("2026-03-10", "runner-up", 11, 60000),
	}
	for _, a := range seed {
		if err := store.Insert(ctx, a); err != nil {
			t.Fatalf("insert %s: %v", a.DeviceID, err)
		}
	}

	rows, err := store.ListByWeek(ctx, "2026-W11")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"fast-winner", "slow-winner", "runner-up"}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, device := range want {
		if rows[i].DeviceID != device {
			t.Fatalf("row %d: expected %s, got %s", i, device, rows[i].DeviceID)
		}
	}
	if other, _ := store.ListByWeek(ctx, "2026-W12"); len(other) != 0 {
		t.Fatalf("other week must be empty, got %d", len(other))
	}
}

func TestMarkSyncedAndListUnsynced(t *testing.T) {
	t.Parallel()
	store := newStoreForTest(t)
	ctx := context.Background()

	if err := store.Insert(ctx, attempt("2026-03-09", "device-1", 8, 100000)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.Insert(ctx, attempt("2026-03-10", "device-1", 12, 80000)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	pending, err := store.ListUnsynced(ctx)
	if err != nil {
		t.Fatalf("list unsynced: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}

	if err := store.MarkSynced(ctx, "2026-03-09", "device-1"); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	pending, err = store.ListUnsynced(ctx)
	if err != nil {
		t.Fatalf("list unsynced: %v", err)
	}
	if len(pending) != 1 || pending[0].Date != "2026-03-10" {
		t.Fatalf("expected only the newer attempt pending, got %+v", pending)
	}
}

func TestListRecentLimitsAndOrders(t *testing.T) {
	t.Parallel()
	store := newStoreForTest(t)
	ctx := context.Background()

	for _, date := range []string{"2026-03-08", "2026-03-09", "2026-03-10"} {
		if err := store.Insert(ctx, attempt(date, "device-1", 10, 90000)); err != nil {
			t.Fatalf("insert %s: %v", date, err)
		}
	}
	rows, err := store.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(rows) != 2 || rows[0].Date != "2026-03-10" || rows[1].Date != "2026-03-09" {
		t.Fatalf("unexpected recent rows %+v", rows)
	}
}
