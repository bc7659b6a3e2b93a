package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajoapp/backend/internal/ajo"
)

// errorStatus maps the engine's closed error set onto HTTP statuses.
// Lookup failures are 404, protocol state violations 409, parameter and
// timing mistakes 422, transfer failures 402, authorization 403.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, ajo.ErrGroupNotFound):
		return http.StatusNotFound
	case errors.Is(err, ajo.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ajo.ErrInsufficientBalance),
		errors.Is(err, ajo.ErrTransferFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, ajo.ErrContributionAmountZero),
		errors.Is(err, ajo.ErrContributionAmountNegative),
		errors.Is(err, ajo.ErrCycleDurationZero),
		errors.Is(err, ajo.ErrMaxMembersBelowMinimum),
		errors.Is(err, ajo.ErrMaxMembersAboveLimit),
		errors.Is(err, ajo.ErrMetadataTooLong),
		errors.Is(err, ajo.ErrOutsideCycleWindow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ajo.ErrAlreadyMember),
		errors.Is(err, ajo.ErrNotMember),
		errors.Is(err, ajo.ErrAlreadyContributed),
		errors.Is(err, ajo.ErrIncompleteContributions),
		errors.Is(err, ajo.ErrGroupComplete),
		errors.Is(err, ajo.ErrGroupCancelled),
		errors.Is(err, ajo.ErrMaxMembersExceeded),
		errors.Is(err, ajo.ErrNoMembers),
		errors.Is(err, ajo.ErrCannotCancelAfterPayout):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the engine error as a JSON response. Internal errors are
// not leaked to clients.
func fail(c *gin.Context, err error) {
	status := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}
