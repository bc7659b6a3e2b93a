package models

// ContributionRecord is one member's contribution in one cycle.
// Records are keyed (GroupID, Cycle, Member) and never deleted; a new
// cycle simply starts with no records, and old cycles remain as the
// audit trail.
type ContributionRecord struct {
	GroupID int64  `json:"group_id"`
	Cycle   int    `json:"cycle"`
	Member  string `json:"member"`

	// TransferID is the escrow transaction that moved the contribution
	// into the group's escrow account.
	TransferID string `json:"transfer_id"`

	// CreatedAt is the Unix timestamp the contribution was recorded.
	CreatedAt int64 `json:"created_at"`
}

// PayoutRecord is the audit entry written when a cycle's pool is
// distributed to its recipient.
type PayoutRecord struct {
	ID      string `json:"id"`
	GroupID int64  `json:"group_id"`
	Cycle   int    `json:"cycle"`
	Member  string `json:"member"`

	// Amount is the full pool: ContributionAmount * member count.
	Amount int64 `json:"amount"`

	// TransferID is the escrow transaction that paid the recipient.
	TransferID string `json:"transfer_id"`

	// CreatedAt is the Unix timestamp the payout executed.
	CreatedAt int64 `json:"created_at"`
}

// MemberContribution pairs a member with their contribution flag for a
// cycle, preserving the group's member order.
type MemberContribution struct {
	Member      string `json:"member"`
	Contributed bool   `json:"contributed"`
}
