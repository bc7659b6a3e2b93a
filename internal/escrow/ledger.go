package escrow

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Ensure Ledger implements Transferer.
var _ Transferer = (*Ledger)(nil)

// Ledger is an in-memory account ledger. Accounts are identified by
// opaque strings (user ids and per-group escrow accounts) and spring
// into existence with a zero balance on first use.
type Ledger struct {
	mu       sync.Mutex
	balances map[string]int64
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{balances: make(map[string]int64)}
}

// Deposit credits amount to account. Negative or zero amounts are
// rejected with ErrTransferFailed.
func (l *Ledger) Deposit(ctx context.Context, account string, amount int64) (string, error) {
	if amount <= 0 {
		return "", ErrTransferFailed
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[account] += amount
	txID := uuid.New().String()
	slog.Debug("escrow deposit", "account", account, "amount", amount, "tx_id", txID)
	return txID, nil
}

// Balance returns the account's current balance.
func (l *Ledger) Balance(account string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account]
}

// Transfer moves amount from one account to another atomically.
func (l *Ledger) Transfer(ctx context.Context, from, to string, amount int64) (string, error) {
	if amount <= 0 || from == to {
		return "", ErrTransferFailed
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[from] < amount {
		return "", ErrInsufficientBalance
	}
	l.balances[from] -= amount
	l.balances[to] += amount

	txID := uuid.New().String()
	slog.Debug("escrow transfer", "from", from, "to", to, "amount", amount, "tx_id", txID)
	return txID, nil
}
