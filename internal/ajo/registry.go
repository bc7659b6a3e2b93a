package ajo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ajoapp/backend/internal/clock"
	"github.com/ajoapp/backend/internal/escrow"
	"github.com/ajoapp/backend/internal/models"
	"github.com/ajoapp/backend/internal/storage"
)

// Metadata field length cap, matching the original protocol limit.
const maxMetadataLen = 256

// Registry is the sole owner of group state. Every state-changing
// operation loads the group under its per-group lock, runs the protocol
// checks, performs the escrow transfer, and persists - failing the whole
// operation with no mutation on any error. Reads take the same lock
// briefly so snapshots are never half-applied. Two groups are fully
// independent; they never share a lock.
type Registry struct {
	store    storage.Store
	transfer escrow.Transferer
	clock    clock.Clock

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewRegistry creates a Registry backed by the given store, transfer
// capability, and clock.
func NewRegistry(store storage.Store, transfer escrow.Transferer, clk clock.Clock) *Registry {
	return &Registry{
		store:    store,
		transfer: transfer,
		clock:    clk,
		locks:    make(map[int64]*sync.Mutex),
	}
}

// lockGroup returns the mutex serializing operations on the given group,
// creating it on first use.
func (r *Registry) lockGroup(id int64) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[id]
	if !ok {
		l = &sync.Mutex{}
		r.locks[id] = l
	}
	return l
}

// escrowAccount is the per-group pool account contributions land in and
// payouts draw from.
func escrowAccount(groupID int64) string {
	return fmt.Sprintf("group:%d", groupID)
}

// CreateGroup validates the parameters and registers a new group with
// the creator as its first member and first in rotation. Returns the
// assigned group id.
func (r *Registry) CreateGroup(ctx context.Context, creator string, amount, cycleDuration int64, maxMembers int) (_ int64, err error) {
	defer func() { countOp("create_group", err) }()

	if err := ValidateGroupParams(amount, cycleDuration, maxMembers); err != nil {
		return 0, err
	}

	now := r.clock.Now().Unix()
	g := &models.Group{
		Creator:            creator,
		ContributionAmount: amount,
		CycleDuration:      cycleDuration,
		MaxMembers:         maxMembers,
		Members:            []string{creator},
		CurrentCycle:       1,
		CreatedAt:          now,
		CycleStartTime:     now,
		State:              models.GroupStateActive,
	}

	if err := r.store.CreateGroup(ctx, g); err != nil {
		return 0, fmt.Errorf("create group: %w", err)
	}

	slog.Info("group created",
		"group_id", g.ID,
		"creator", creator,
		"contribution_amount", amount,
		"cycle_duration", cycleDuration,
		"max_members", maxMembers,
	)
	return g.ID, nil
}

// JoinGroup adds member to the group, fixing their rotation position.
func (r *Registry) JoinGroup(ctx context.Context, groupID int64, member string) (err error) {
	defer func() { countOp("join_group", err) }()

	l := r.lockGroup(groupID)
	l.Lock()
	defer l.Unlock()

	g, err := r.getGroup(ctx, groupID)
	if err != nil {
		return err
	}

	if err := Join(g, member); err != nil {
		return err
	}

	// The member was appended at the end of the list.
	position := len(g.Members) - 1
	if err := r.store.AddMember(ctx, groupID, member, position); err != nil {
		return fmt.Errorf("add member: %w", err)
	}

	slog.Info("member joined", "group_id", groupID, "member", member, "position", position)
	return nil
}

// Contribute records member's contribution for the current cycle. The
// contribution amount moves from the member's escrow account into the
// group pool before the ledger record commits; if the transfer fails the
// whole operation fails and no state changes.
func (r *Registry) Contribute(ctx context.Context, groupID int64, member string) (err error) {
	defer func() { countOp("contribute", err) }()

	l := r.lockGroup(groupID)
	l.Lock()
	defer l.Unlock()

	g, err := r.getGroup(ctx, groupID)
	if err != nil {
		return err
	}

	contributed, err := r.store.CycleContributions(ctx, groupID, g.CurrentCycle)
	if err != nil {
		return fmt.Errorf("load contributions: %w", err)
	}

	now := r.clock.Now().Unix()
	if err := CheckContribution(g, contributed, member, now); err != nil {
		return err
	}

	txID, err := r.transfer.Transfer(ctx, member, escrowAccount(groupID), g.ContributionAmount)
	if err != nil {
		return mapTransferErr(err)
	}

	record := &models.ContributionRecord{
		GroupID:    groupID,
		Cycle:      g.CurrentCycle,
		Member:     member,
		TransferID: txID,
		CreatedAt:  now,
	}
	if err := r.store.RecordContribution(ctx, record); err != nil {
		// The funds already moved; send them back so the failed
		// operation leaves no trace.
		if _, rerr := r.transfer.Transfer(ctx, escrowAccount(groupID), member, g.ContributionAmount); rerr != nil {
			slog.Error("contribution refund failed after store error",
				"group_id", groupID, "member", member, "error", rerr)
		}
		return fmt.Errorf("record contribution: %w", err)
	}

	slog.Info("contribution recorded",
		"group_id", groupID,
		"member", member,
		"cycle", g.CurrentCycle,
		"amount", g.ContributionAmount,
		"tx_id", txID,
	)
	return nil
}

// ExecutePayout distributes the fully funded cycle pool to the rotation
// recipient and advances the cycle. The transfer happens before any
// state mutation is visible, so a failed transfer leaves the group
// safely retryable without double-paying.
func (r *Registry) ExecutePayout(ctx context.Context, groupID int64) (err error) {
	defer func() { countOp("execute_payout", err) }()

	l := r.lockGroup(groupID)
	l.Lock()
	defer l.Unlock()

	g, err := r.getGroup(ctx, groupID)
	if err != nil {
		return err
	}

	contributed, err := r.store.CycleContributions(ctx, groupID, g.CurrentCycle)
	if err != nil {
		return fmt.Errorf("load contributions: %w", err)
	}

	if err := CheckPayout(g, ReceivedCount(g, contributed)); err != nil {
		return err
	}

	recipient, ok := NextRecipient(g)
	if !ok {
		return ErrNoMembers
	}
	amount := PayoutAmount(g)

	txID, err := r.transfer.Transfer(ctx, escrowAccount(groupID), recipient, amount)
	if err != nil {
		return mapTransferErr(err)
	}

	now := r.clock.Now().Unix()
	cycle := g.CurrentCycle
	AdvanceCycle(g, now)

	payout := &models.PayoutRecord{
		ID:         uuid.New().String(),
		GroupID:    groupID,
		Cycle:      cycle,
		Member:     recipient,
		Amount:     amount,
		TransferID: txID,
		CreatedAt:  now,
	}
	if err := r.store.RecordPayout(ctx, g, payout); err != nil {
		if _, rerr := r.transfer.Transfer(ctx, recipient, escrowAccount(groupID), amount); rerr != nil {
			slog.Error("payout reversal failed after store error",
				"group_id", groupID, "recipient", recipient, "error", rerr)
		}
		return fmt.Errorf("record payout: %w", err)
	}

	slog.Info("payout executed",
		"group_id", groupID,
		"recipient", recipient,
		"cycle", cycle,
		"amount", amount,
		"is_complete", g.IsComplete,
		"tx_id", txID,
	)
	return nil
}

// CancelGroup cancels the group before its first payout, refunding every
// current-cycle contributor from the group pool. Creator only.
func (r *Registry) CancelGroup(ctx context.Context, groupID int64, caller string) (err error) {
	defer func() { countOp("cancel_group", err) }()

	l := r.lockGroup(groupID)
	l.Lock()
	defer l.Unlock()

	g, err := r.getGroup(ctx, groupID)
	if err != nil {
		return err
	}

	if caller != g.Creator {
		return ErrUnauthorized
	}
	if g.State == models.GroupStateCancelled {
		return ErrGroupCancelled
	}
	if g.IsComplete || g.CurrentCycle > 1 {
		return ErrCannotCancelAfterPayout
	}

	contributed, err := r.store.CycleContributions(ctx, groupID, g.CurrentCycle)
	if err != nil {
		return fmt.Errorf("load contributions: %w", err)
	}

	// Refunds are all-or-nothing: a failure partway reverses the refunds
	// already issued so a retry starts from the same pool balance and no
	// contributor is paid twice.
	refunded := make([]string, 0, len(g.Members))
	for _, member := range g.Members {
		if !contributed[member] {
			continue
		}
		if _, err := r.transfer.Transfer(ctx, escrowAccount(groupID), member, g.ContributionAmount); err != nil {
			r.reverseRefunds(ctx, groupID, refunded, g.ContributionAmount)
			return mapTransferErr(err)
		}
		refunded = append(refunded, member)
	}

	g.State = models.GroupStateCancelled
	if err := r.store.UpdateGroup(ctx, g); err != nil {
		r.reverseRefunds(ctx, groupID, refunded, g.ContributionAmount)
		return fmt.Errorf("cancel group: %w", err)
	}

	for _, member := range refunded {
		slog.Info("contribution refunded", "group_id", groupID, "member", member, "amount", g.ContributionAmount)
	}
	slog.Info("group cancelled", "group_id", groupID, "creator", caller)
	return nil
}

// reverseRefunds sends issued cancellation refunds back to the group
// pool after a failure, restoring the pre-cancel balances.
func (r *Registry) reverseRefunds(ctx context.Context, groupID int64, members []string, amount int64) {
	for _, member := range members {
		if _, err := r.transfer.Transfer(ctx, member, escrowAccount(groupID), amount); err != nil {
			slog.Error("refund reversal failed after cancel error",
				"group_id", groupID, "member", member, "error", err)
		}
	}
}

// Group returns the group record, or ErrGroupNotFound.
func (r *Registry) Group(ctx context.Context, groupID int64) (*models.Group, error) {
	l := r.lockGroup(groupID)
	l.Lock()
	defer l.Unlock()
	return r.getGroup(ctx, groupID)
}

// ListMembers returns the group's member list in rotation order.
func (r *Registry) ListMembers(ctx context.Context, groupID int64) ([]string, error) {
	g, err := r.Group(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return g.Members, nil
}

// IsMember reports whether member belongs to the group.
func (r *Registry) IsMember(ctx context.Context, groupID int64, member string) (bool, error) {
	g, err := r.Group(ctx, groupID)
	if err != nil {
		return false, err
	}
	return IsMember(g.Members, member), nil
}

// IsComplete reports whether the group has finished its full rotation.
func (r *Registry) IsComplete(ctx context.Context, groupID int64) (bool, error) {
	g, err := r.Group(ctx, groupID)
	if err != nil {
		return false, err
	}
	return g.IsComplete, nil
}

// ContributionStatus returns every member's contribution flag for the
// given cycle, in rotation order.
func (r *Registry) ContributionStatus(ctx context.Context, groupID int64, cycle int) ([]models.MemberContribution, error) {
	l := r.lockGroup(groupID)
	l.Lock()
	defer l.Unlock()

	g, err := r.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	contributed, err := r.store.CycleContributions(ctx, groupID, cycle)
	if err != nil {
		return nil, fmt.Errorf("load contributions: %w", err)
	}
	return ContributionStatus(g, contributed), nil
}

// GroupStatus builds an atomic snapshot of the group's state. Pure read;
// two calls with no intervening mutation return identical results apart
// from the clock reading.
func (r *Registry) GroupStatus(ctx context.Context, groupID int64) (*models.GroupStatus, error) {
	l := r.lockGroup(groupID)
	l.Lock()
	defer l.Unlock()

	g, err := r.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	contributed, err := r.store.CycleContributions(ctx, groupID, g.CurrentCycle)
	if err != nil {
		return nil, fmt.Errorf("load contributions: %w", err)
	}

	status := BuildStatus(g, contributed, r.clock.Now().Unix())
	return &status, nil
}

// Payouts returns the group's payout audit trail.
func (r *Registry) Payouts(ctx context.Context, groupID int64) ([]models.PayoutRecord, error) {
	if _, err := r.Group(ctx, groupID); err != nil {
		return nil, err
	}
	payouts, err := r.store.ListPayouts(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	return payouts, nil
}

// SetMetadata sets or updates the group's display metadata. Creator only;
// each field is capped at 256 bytes.
func (r *Registry) SetMetadata(ctx context.Context, groupID int64, caller, name, description, rules string) error {
	l := r.lockGroup(groupID)
	l.Lock()
	defer l.Unlock()

	g, err := r.getGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if caller != g.Creator {
		return ErrUnauthorized
	}
	if len(name) > maxMetadataLen || len(description) > maxMetadataLen || len(rules) > maxMetadataLen {
		return ErrMetadataTooLong
	}

	m := &models.GroupMetadata{
		GroupID:     groupID,
		Name:        name,
		Description: description,
		Rules:       rules,
		UpdatedAt:   r.clock.Now().Unix(),
	}
	if err := r.store.SetGroupMetadata(ctx, m); err != nil {
		return fmt.Errorf("set metadata: %w", err)
	}
	return nil
}

// Metadata returns the group's display metadata. A group that exists but
// has no metadata set yet yields an empty record, not an error.
func (r *Registry) Metadata(ctx context.Context, groupID int64) (*models.GroupMetadata, error) {
	if _, err := r.Group(ctx, groupID); err != nil {
		return nil, err
	}
	m, err := r.store.GetGroupMetadata(ctx, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return &models.GroupMetadata{GroupID: groupID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get metadata: %w", err)
	}
	return m, nil
}

func (r *Registry) getGroup(ctx context.Context, groupID int64) (*models.Group, error) {
	g, err := r.store.GetGroup(ctx, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	return g, nil
}

// mapTransferErr folds escrow errors into the closed protocol error set.
func mapTransferErr(err error) error {
	if errors.Is(err, escrow.ErrInsufficientBalance) {
		return ErrInsufficientBalance
	}
	return fmt.Errorf("%w: %v", ErrTransferFailed, err)
}
