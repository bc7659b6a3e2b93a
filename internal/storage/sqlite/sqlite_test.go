package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ajoapp/backend/internal/models"
	"github.com/ajoapp/backend/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testGroup() *models.Group {
	return &models.Group{
		Creator:            "alice",
		ContributionAmount: 100,
		CycleDuration:      604800,
		MaxMembers:         3,
		Members:            []string{"alice"},
		CurrentCycle:       1,
		CreatedAt:          1_700_000_000,
		CycleStartTime:     1_700_000_000,
		State:              models.GroupStateActive,
	}
}

func TestGroupLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		g := testGroup()
		if err := store.CreateGroup(ctx, g); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if g.ID == 0 {
			t.Fatal("expected assigned group id")
		}

		got, err := store.GetGroup(ctx, g.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if !reflect.DeepEqual(got, g) {
			t.Errorf("round trip mismatch:\ngot:  %+v\nwant: %+v", got, g)
		}
	})

	t.Run("members come back in position order", func(t *testing.T) {
		g := testGroup()
		if err := store.CreateGroup(ctx, g); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		for i, m := range []string{"bob", "carol"} {
			if err := store.AddMember(ctx, g.ID, m, i+1); err != nil {
				t.Fatalf("AddMember(%s) failed: %v", m, err)
			}
		}

		got, err := store.GetGroup(ctx, g.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		want := []string{"alice", "bob", "carol"}
		if !reflect.DeepEqual(got.Members, want) {
			t.Errorf("members = %v, want %v", got.Members, want)
		}
	})

	t.Run("update persists mutable fields", func(t *testing.T) {
		g := testGroup()
		if err := store.CreateGroup(ctx, g); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		g.CurrentCycle = 2
		g.CycleStartTime = 1_700_600_000
		g.IsComplete = true
		g.State = models.GroupStateComplete
		if err := store.UpdateGroup(ctx, g); err != nil {
			t.Fatalf("UpdateGroup failed: %v", err)
		}

		got, _ := store.GetGroup(ctx, g.ID)
		if got.CurrentCycle != 2 || !got.IsComplete || got.State != models.GroupStateComplete {
			t.Errorf("update not persisted: %+v", got)
		}
	})

	t.Run("missing group", func(t *testing.T) {
		if _, err := store.GetGroup(ctx, 9999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetGroup = %v, want ErrNotFound", err)
		}
		if err := store.UpdateGroup(ctx, &models.Group{ID: 9999, State: models.GroupStateActive}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateGroup = %v, want ErrNotFound", err)
		}
	})
}

func TestContributions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	g := testGroup()
	if err := store.CreateGroup(ctx, g); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	records := []*models.ContributionRecord{
		{GroupID: g.ID, Cycle: 1, Member: "alice", TransferID: "tx-1", CreatedAt: 1_700_000_100},
		{GroupID: g.ID, Cycle: 1, Member: "bob", TransferID: "tx-2", CreatedAt: 1_700_000_200},
		{GroupID: g.ID, Cycle: 2, Member: "alice", TransferID: "tx-3", CreatedAt: 1_700_600_100},
	}
	for _, c := range records {
		if err := store.RecordContribution(ctx, c); err != nil {
			t.Fatalf("RecordContribution failed: %v", err)
		}
	}

	// Contributions are keyed by cycle.
	cycle1, err := store.CycleContributions(ctx, g.ID, 1)
	if err != nil {
		t.Fatalf("CycleContributions failed: %v", err)
	}
	if len(cycle1) != 2 || !cycle1["alice"] || !cycle1["bob"] {
		t.Errorf("cycle 1 contributions = %v", cycle1)
	}

	cycle2, _ := store.CycleContributions(ctx, g.ID, 2)
	if len(cycle2) != 1 || !cycle2["alice"] {
		t.Errorf("cycle 2 contributions = %v", cycle2)
	}

	cycle3, _ := store.CycleContributions(ctx, g.ID, 3)
	if len(cycle3) != 0 {
		t.Errorf("cycle 3 contributions = %v, want empty", cycle3)
	}

	// One contribution per member per cycle is enforced by the schema.
	dup := &models.ContributionRecord{GroupID: g.ID, Cycle: 1, Member: "alice", TransferID: "tx-4", CreatedAt: 1_700_000_300}
	if err := store.RecordContribution(ctx, dup); err == nil {
		t.Error("expected duplicate contribution insert to fail")
	}
}

func TestRecordPayout(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	g := testGroup()
	if err := store.CreateGroup(ctx, g); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	// Payout record and group advance land in one transaction.
	g.CurrentCycle = 2
	g.CycleStartTime = 1_700_600_000
	p := &models.PayoutRecord{
		ID:         "payout-1",
		GroupID:    g.ID,
		Cycle:      1,
		Member:     "alice",
		Amount:     300,
		TransferID: "tx-9",
		CreatedAt:  1_700_600_000,
	}
	if err := store.RecordPayout(ctx, g, p); err != nil {
		t.Fatalf("RecordPayout failed: %v", err)
	}

	got, err := store.GetGroup(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if got.CurrentCycle != 2 {
		t.Errorf("current_cycle = %d, want 2", got.CurrentCycle)
	}

	payouts, err := store.ListPayouts(ctx, g.ID)
	if err != nil {
		t.Fatalf("ListPayouts failed: %v", err)
	}
	if len(payouts) != 1 || !reflect.DeepEqual(payouts[0], *p) {
		t.Errorf("payouts = %+v, want [%+v]", payouts, *p)
	}

	empty, _ := store.ListPayouts(ctx, 9999)
	if len(empty) != 0 {
		t.Errorf("payouts for unknown group = %+v, want empty", empty)
	}
}

func TestGroupMetadata(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	g := testGroup()
	if err := store.CreateGroup(ctx, g); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if _, err := store.GetGroupMetadata(ctx, g.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("metadata before set = %v, want ErrNotFound", err)
	}

	m := &models.GroupMetadata{GroupID: g.ID, Name: "Lagos Circle", Description: "weekly", Rules: "pay on time", UpdatedAt: 1_700_000_500}
	if err := store.SetGroupMetadata(ctx, m); err != nil {
		t.Fatalf("SetGroupMetadata failed: %v", err)
	}

	got, err := store.GetGroupMetadata(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetGroupMetadata failed: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Errorf("metadata = %+v, want %+v", got, m)
	}

	// Second set replaces in place.
	m.Name = "Lagos Circle II"
	m.UpdatedAt = 1_700_000_600
	if err := store.SetGroupMetadata(ctx, m); err != nil {
		t.Fatalf("metadata update failed: %v", err)
	}
	got, _ = store.GetGroupMetadata(ctx, g.ID)
	if got.Name != "Lagos Circle II" || got.UpdatedAt != 1_700_000_600 {
		t.Errorf("updated metadata = %+v", got)
	}
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if !reflect.DeepEqual(byEmail, u) {
		t.Errorf("user = %+v, want %+v", byEmail, u)
	}

	byID, err := store.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Email != u.Email {
		t.Errorf("email = %s, want %s", byID.Email, u.Email)
	}

	if _, err := store.GetUserByEmail(ctx, "ghost@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("unknown email = %v, want ErrNotFound", err)
	}

	// Email is unique.
	dup := models.NewUser("alice@example.com", "Alice Again", "hash2")
	if err := store.CreateUser(ctx, dup); err == nil {
		t.Error("expected duplicate email insert to fail")
	}
}
