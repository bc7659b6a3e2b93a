package models

// GroupState is the lifecycle state of a group.
type GroupState string

const (
	// GroupStateActive means the group is collecting contributions and
	// rotating payouts.
	GroupStateActive GroupState = "active"

	// GroupStateComplete means every member has received exactly one
	// payout. Terminal.
	GroupStateComplete GroupState = "complete"

	// GroupStateCancelled means the creator cancelled the group before
	// the first payout. Terminal.
	GroupStateCancelled GroupState = "cancelled"
)

// Group represents one Ajo savings circle.
//
// Members is ordered by join time; that order is the payout rotation order
// and never changes. The creator is always Members[0].
type Group struct {
	// ID is the unique group identifier, assigned by storage at creation.
	ID int64 `json:"id"`

	// Creator is the user who created the group. Informational only; the
	// creator holds no privilege beyond metadata updates and cancellation.
	Creator string `json:"creator"`

	// ContributionAmount is the fixed amount each member pays per cycle,
	// in minor asset units. Always > 0.
	ContributionAmount int64 `json:"contribution_amount"`

	// CycleDuration is the length of each contribution window in seconds.
	// Always > 0.
	CycleDuration int64 `json:"cycle_duration"`

	// MaxMembers caps the member list, 2..100 inclusive.
	MaxMembers int `json:"max_members"`

	// Members in join order. Join order is rotation order.
	Members []string `json:"members"`

	// CurrentCycle starts at 1 and increments on every payout.
	CurrentCycle int `json:"current_cycle"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`

	// CycleStartTime is the Unix timestamp the current cycle's
	// contribution window opened. Reset on each payout.
	CycleStartTime int64 `json:"cycle_start_time"`

	// IsComplete is true iff CurrentCycle > len(Members), i.e. every
	// member has received a payout.
	IsComplete bool `json:"is_complete"`

	// State is the lifecycle state; Cancelled is reachable only before
	// the first payout.
	State GroupState `json:"state"`
}

// GroupMetadata holds optional display information for a group.
// Only the group creator may set or update it.
type GroupMetadata struct {
	GroupID     int64  `json:"group_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rules       string `json:"rules"`
	UpdatedAt   int64  `json:"updated_at"`
}
