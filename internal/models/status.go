package models

// GroupStatus is a point-in-time snapshot of a group's state, composed
// atomically so clients never observe a half-applied mutation. It is
// derived on every read and never persisted.
type GroupStatus struct {
	GroupID      int64 `json:"group_id"`
	CurrentCycle int   `json:"current_cycle"`

	// NextRecipient is the member due the next payout. When the group is
	// complete there is no next recipient; HasNextRecipient is false and
	// NextRecipient holds the creator as a placeholder.
	NextRecipient    string `json:"next_recipient"`
	HasNextRecipient bool   `json:"has_next_recipient"`

	// ContributionsReceived counts members who have contributed in the
	// current cycle; TotalMembers is the member list length.
	ContributionsReceived int `json:"contributions_received"`
	TotalMembers          int `json:"total_members"`

	// PendingContributors lists members yet to contribute this cycle, in
	// member order.
	PendingContributors []string `json:"pending_contributors"`

	IsComplete bool `json:"is_complete"`

	// Cycle window: [CycleStartTime, CycleEndTime), Unix seconds.
	CycleStartTime int64 `json:"cycle_start_time"`
	CycleEndTime   int64 `json:"cycle_end_time"`

	// CurrentTime is the clock reading the snapshot was taken at.
	CurrentTime int64 `json:"current_time"`

	// IsCycleActive reports whether CurrentTime falls inside the window.
	IsCycleActive bool `json:"is_cycle_active"`
}
