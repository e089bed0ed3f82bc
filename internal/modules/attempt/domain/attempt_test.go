package domain_test

import (
	"testing"

	"bioq/internal/modules/attempt/domain"
)

func TestIdentityPrefersLinkedUser(t *testing.T) {
	t.Parallel()
	anonymous := domain.Attempt{DeviceID: "device-1"}
	if anonymous.Identity() != "device-1" {
		t.Fatalf("expected device identity, got %s", anonymous.Identity())
	}
	linked := domain.Attempt{DeviceID: "device-1", UserID: "user-1"}
	if linked.Identity() != "user-1" {
		t.Fatalf("expected user identity, got %s", linked.Identity())
	}
}

func TestRankingsKeepBestAttemptPerIdentity(t *testing.T) {
	t.Parallel()
	// Rows arrive ordered by score descending, elapsed ascending; the second
	// appearance of an identity is its weaker attempt.
	ordered := []domain.Attempt{
		{DeviceID: "ada", Score: 14, TotalElapsedMs: 90000, Date: "2026-03-10"},
		{DeviceID: "grace", Score: 14, TotalElapsedMs: 120000, Date: "2026-03-09"},
		{DeviceID: "ada", Score: 12, TotalElapsedMs: 80000, Date: "2026-03-09"},
		{DeviceID: "linus", Score: 9, TotalElapsedMs: 60000, Date: "2026-03-11"},
	}

	standings := domain.Rankings(ordered)
	if len(standings) != 3 {
		t.Fatalf("expected 3 rows after dedupe, got %d", len(standings))
	}
	if standings[0].Identity != "ada" || standings[0].Rank != 1 || standings[0].Score != 14 {
		t.Fatalf("unexpected first row %+v", standings[0])
	}
	if standings[1].Identity != "grace" || standings[1].Rank != 2 {
		t.Fatalf("unexpected second row %+v", standings[1])
	}
	if standings[2].Identity != "linus" || standings[2].Rank != 3 {
		t.Fatalf("unexpected third row %+v", standings[2])
	}
}

func TestRankingsEmptyInput(t *testing.T) {
	t.Parallel()
	if got := domain.Rankings(nil); len(got) != 0 {
		t.Fatalf("expected empty standings, got %v", got)
	}
}
