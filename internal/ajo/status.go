package ajo

import "github.com/ajoapp/backend/internal/models"

// BuildStatus composes a point-in-time snapshot of the group from state
// loaded under the group's lock. Pure derivation - calling it twice with
// the same inputs yields identical results.
func BuildStatus(g *models.Group, contributed map[string]bool, now int64) models.GroupStatus {
	start, end := CycleWindow(g)

	recipient, ok := NextRecipient(g)
	if !ok {
		// Placeholder identity when there is no next recipient.
		recipient = g.Creator
	}

	return models.GroupStatus{
		GroupID:               g.ID,
		CurrentCycle:          g.CurrentCycle,
		NextRecipient:         recipient,
		HasNextRecipient:      ok,
		ContributionsReceived: ReceivedCount(g, contributed),
		TotalMembers:          len(g.Members),
		PendingContributors:   Pending(g, contributed),
		IsComplete:            g.IsComplete,
		CycleStartTime:        start,
		CycleEndTime:          end,
		CurrentTime:           now,
		IsCycleActive:         CycleActive(g, now),
	}
}
