package ajo

const (
	// MinMembers is the smallest group that can rotate.
	MinMembers = 2

	// MaxMembersLimit is the hard cap on group size.
	MaxMembersLimit = 100
)

// ValidateGroupParams checks group creation parameters. Pure function,
// called once at creation; checks run in a fixed order so callers get a
// deterministic first error.
func ValidateGroupParams(amount, cycleDuration int64, maxMembers int) error {
	if amount == 0 {
		return ErrContributionAmountZero
	}
	if amount < 0 {
		return ErrContributionAmountNegative
	}
	if cycleDuration == 0 {
		return ErrCycleDurationZero
	}
	if maxMembers < MinMembers {
		return ErrMaxMembersBelowMinimum
	}
	if maxMembers > MaxMembersLimit {
		return ErrMaxMembersAboveLimit
	}
	return nil
}
