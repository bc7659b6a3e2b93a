// Package ajo implements the Ajo (ROSCA) protocol engine: group
// lifecycle, membership, time-windowed contributions, fair payout
// rotation, and atomic status reporting.
//
// All protocol failures are drawn from the closed set of sentinel errors
// below. Callers classify with errors.Is; no numeric codes exist outside
// the HTTP serialization layer.
package ajo

import "errors"

var (
	// ErrGroupNotFound - the specified group does not exist.
	ErrGroupNotFound = errors.New("group not found")

	// ErrMaxMembersExceeded - the group is already at its member limit.
	ErrMaxMembersExceeded = errors.New("group is full")

	// ErrAlreadyMember - this account is already part of the group.
	ErrAlreadyMember = errors.New("already a member of this group")

	// ErrNotMember - the account is not a member of the group.
	ErrNotMember = errors.New("not a member of this group")

	// ErrAlreadyContributed - the member already contributed this cycle.
	ErrAlreadyContributed = errors.New("already contributed this cycle")

	// ErrIncompleteContributions - payout requires every member to have
	// contributed in the current cycle.
	ErrIncompleteContributions = errors.New("not all members have contributed")

	// ErrGroupComplete - all cycles for this group are finished.
	ErrGroupComplete = errors.New("group has completed all cycles")

	// ErrGroupCancelled - the group was cancelled by its creator.
	ErrGroupCancelled = errors.New("group has been cancelled")

	// ErrContributionAmountZero - contribution amount cannot be zero.
	ErrContributionAmountZero = errors.New("contribution amount cannot be zero")

	// ErrContributionAmountNegative - negative amounts are not allowed.
	ErrContributionAmountNegative = errors.New("contribution amount cannot be negative")

	// ErrCycleDurationZero - cycle duration must be greater than zero.
	ErrCycleDurationZero = errors.New("cycle duration must be greater than zero")

	// ErrMaxMembersBelowMinimum - groups need at least 2 members.
	ErrMaxMembersBelowMinimum = errors.New("groups need at least 2 members")

	// ErrMaxMembersAboveLimit - max members exceeds the hard cap of 100.
	ErrMaxMembersAboveLimit = errors.New("max members exceeds limit")

	// ErrNoMembers - the group has no members.
	ErrNoMembers = errors.New("group has no members")

	// ErrOutsideCycleWindow - the contribution was submitted outside the
	// active cycle window.
	ErrOutsideCycleWindow = errors.New("outside the active cycle window")

	// ErrInsufficientBalance - the paying account cannot cover the
	// transfer.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrTransferFailed - the asset transfer did not go through.
	ErrTransferFailed = errors.New("transfer failed")

	// ErrUnauthorized - the caller may not perform this operation.
	ErrUnauthorized = errors.New("not authorized")

	// ErrMetadataTooLong - a metadata field exceeds its length limit.
	ErrMetadataTooLong = errors.New("metadata field too long")

	// ErrCannotCancelAfterPayout - groups cannot be cancelled once the
	// first payout has run.
	ErrCannotCancelAfterPayout = errors.New("cannot cancel group after first payout")
)
