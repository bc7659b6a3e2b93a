package ajo

import "github.com/ajoapp/backend/internal/models"

// NextRecipient returns the member due the next payout. Rotation is
// strictly join order: the cycle-N recipient is Members[N-1]. Reports
// false when the group is complete or the index is out of range.
func NextRecipient(g *models.Group) (string, bool) {
	if g.IsComplete {
		return "", false
	}
	idx := g.CurrentCycle - 1
	if idx < 0 || idx >= len(g.Members) {
		return "", false
	}
	return g.Members[idx], true
}

// PayoutAmount is the full cycle pool: every member's contribution,
// including the recipient's own.
func PayoutAmount(g *models.Group) int64 {
	return g.ContributionAmount * int64(len(g.Members))
}

// CheckPayout runs the payout precondition chain: cancelled, complete,
// empty group, incomplete contributions. The pool must be fully funded
// before distribution, so every member - the recipient included - must
// have contributed this cycle.
func CheckPayout(g *models.Group, receivedCount int) error {
	if g.State == models.GroupStateCancelled {
		return ErrGroupCancelled
	}
	if g.IsComplete {
		return ErrGroupComplete
	}
	if len(g.Members) == 0 {
		return ErrNoMembers
	}
	if receivedCount < len(g.Members) {
		return ErrIncompleteContributions
	}
	return nil
}

// AdvanceCycle mutates the group after a successful payout transfer:
// the next cycle's window opens at now, the cycle counter increments,
// and the group becomes complete once the counter passes the member
// count. The caller must only invoke this after the transfer succeeded,
// so a failed transfer leaves the group safely retryable.
func AdvanceCycle(g *models.Group, now int64) {
	g.CycleStartTime = now
	g.CurrentCycle++
	if g.CurrentCycle > len(g.Members) {
		g.IsComplete = true
		g.State = models.GroupStateComplete
	}
}
