// Package escrow provides the asset-transfer capability the Ajo engine
// delegates fund movement to. The engine only sees the Transferer
// interface; the Ledger implementation below keeps balances in memory
// and stands in for an external token or payment client.
package escrow

import (
	"context"
	"errors"
)

var (
	// ErrInsufficientBalance - the source account cannot cover the amount.
	ErrInsufficientBalance = errors.New("escrow: insufficient balance")

	// ErrTransferFailed - the transfer could not be completed.
	ErrTransferFailed = errors.New("escrow: transfer failed")
)

// Transferer moves amount from one account to another, returning the
// transaction id on success. Implementations must be atomic: on error no
// balance changes.
type Transferer interface {
	Transfer(ctx context.Context, from, to string, amount int64) (txID string, err error)
}
