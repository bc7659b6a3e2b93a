package ajo

import "github.com/ajoapp/backend/internal/models"

// CheckContribution runs the contribution precondition chain for member
// against the current cycle's contribution set. The order is fixed:
// cancelled, complete, membership, window, duplicate. It performs no
// mutation; the registry records the contribution only after the escrow
// transfer commits.
func CheckContribution(g *models.Group, contributed map[string]bool, member string, now int64) error {
	if g.State == models.GroupStateCancelled {
		return ErrGroupCancelled
	}
	if g.IsComplete {
		return ErrGroupComplete
	}
	if err := RequireMember(g, member); err != nil {
		return err
	}
	if !CycleActive(g, now) {
		return ErrOutsideCycleWindow
	}
	if contributed[member] {
		return ErrAlreadyContributed
	}
	return nil
}

// Pending returns the members who have not contributed in the current
// cycle, preserving member order.
func Pending(g *models.Group, contributed map[string]bool) []string {
	pending := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		if !contributed[m] {
			pending = append(pending, m)
		}
	}
	return pending
}

// ReceivedCount returns how many group members have contributed this
// cycle. Only entries that are actual members count; the contribution
// set is always a subset of the member list, so this is normally just
// the set size.
func ReceivedCount(g *models.Group, contributed map[string]bool) int {
	count := 0
	for _, m := range g.Members {
		if contributed[m] {
			count++
		}
	}
	return count
}

// ContributionStatus pairs every member with their contribution flag for
// a cycle, in member order.
func ContributionStatus(g *models.Group, contributed map[string]bool) []models.MemberContribution {
	status := make([]models.MemberContribution, 0, len(g.Members))
	for _, m := range g.Members {
		status = append(status, models.MemberContribution{Member: m, Contributed: contributed[m]})
	}
	return status
}
