package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajoapp/backend/internal/escrow"
	"github.com/ajoapp/backend/internal/middleware"
)

// EscrowHandler exposes the in-process escrow ledger so members can fund
// their accounts and check balances. In a deployment backed by a real
// payment rail these endpoints would proxy the external capability.
type EscrowHandler struct {
	ledger *escrow.Ledger
}

// NewEscrowHandler creates an EscrowHandler.
func NewEscrowHandler(ledger *escrow.Ledger) *EscrowHandler {
	return &EscrowHandler{ledger: ledger}
}

type depositRequest struct {
	Amount int64 `json:"amount"`
}

// Deposit credits the caller's escrow account.
func (h *EscrowHandler) Deposit(c *gin.Context) {
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "amount must be positive"})
		return
	}

	account := middleware.UserID(c)
	txID, err := h.ledger.Deposit(c.Request.Context(), account, req.Amount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "deposit failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_id": txID, "balance": h.ledger.Balance(account)})
}

// Balance returns the caller's escrow balance.
func (h *EscrowHandler) Balance(c *gin.Context) {
	account := middleware.UserID(c)
	c.JSON(http.StatusOK, gin.H{"account": account, "balance": h.ledger.Balance(account)})
}
