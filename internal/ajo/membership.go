package ajo

import "github.com/ajoapp/backend/internal/models"

// IsMember reports whether member appears in members.
func IsMember(members []string, member string) bool {
	for _, m := range members {
		if m == member {
			return true
		}
	}
	return false
}

// Join appends member to the group's member list after checking the join
// preconditions in order. Appending fixes the member's rotation position
// permanently: join order is payout order.
func Join(g *models.Group, member string) error {
	if g.State == models.GroupStateCancelled {
		return ErrGroupCancelled
	}
	if g.IsComplete {
		return ErrGroupComplete
	}
	if IsMember(g.Members, member) {
		return ErrAlreadyMember
	}
	if len(g.Members) >= g.MaxMembers {
		return ErrMaxMembersExceeded
	}
	g.Members = append(g.Members, member)
	return nil
}

// RequireMember fails with ErrNotMember if member is not in the group.
func RequireMember(g *models.Group, member string) error {
	if !IsMember(g.Members, member) {
		return ErrNotMember
	}
	return nil
}
