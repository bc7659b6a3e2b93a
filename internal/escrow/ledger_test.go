package escrow

import (
	"context"
	"errors"
	"testing"
)

func TestDeposit(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()

	txID, err := l.Deposit(ctx, "alice", 500)
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if txID == "" {
		t.Error("expected a transaction id")
	}
	if bal := l.Balance("alice"); bal != 500 {
		t.Errorf("balance = %d, want 500", bal)
	}

	// Deposits accumulate.
	if _, err := l.Deposit(ctx, "alice", 250); err != nil {
		t.Fatalf("second deposit failed: %v", err)
	}
	if bal := l.Balance("alice"); bal != 750 {
		t.Errorf("balance = %d, want 750", bal)
	}

	for _, amount := range []int64{0, -100} {
		if _, err := l.Deposit(ctx, "alice", amount); !errors.Is(err, ErrTransferFailed) {
			t.Errorf("Deposit(%d) = %v, want ErrTransferFailed", amount, err)
		}
	}
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("moves funds atomically", func(t *testing.T) {
		l := NewLedger()
		l.Deposit(ctx, "alice", 300)

		txID, err := l.Transfer(ctx, "alice", "group:1", 100)
		if err != nil {
			t.Fatalf("Transfer failed: %v", err)
		}
		if txID == "" {
			t.Error("expected a transaction id")
		}
		if bal := l.Balance("alice"); bal != 200 {
			t.Errorf("sender balance = %d, want 200", bal)
		}
		if bal := l.Balance("group:1"); bal != 100 {
			t.Errorf("receiver balance = %d, want 100", bal)
		}
	})

	t.Run("insufficient balance leaves both accounts untouched", func(t *testing.T) {
		l := NewLedger()
		l.Deposit(ctx, "alice", 50)

		if _, err := l.Transfer(ctx, "alice", "group:1", 100); !errors.Is(err, ErrInsufficientBalance) {
			t.Fatalf("Transfer = %v, want ErrInsufficientBalance", err)
		}
		if bal := l.Balance("alice"); bal != 50 {
			t.Errorf("sender balance = %d, want 50", bal)
		}
		if bal := l.Balance("group:1"); bal != 0 {
			t.Errorf("receiver balance = %d, want 0", bal)
		}
	})

	t.Run("rejects self transfers and non-positive amounts", func(t *testing.T) {
		l := NewLedger()
		l.Deposit(ctx, "alice", 300)

		if _, err := l.Transfer(ctx, "alice", "alice", 100); !errors.Is(err, ErrTransferFailed) {
			t.Errorf("self transfer = %v, want ErrTransferFailed", err)
		}
		if _, err := l.Transfer(ctx, "alice", "bob", 0); !errors.Is(err, ErrTransferFailed) {
			t.Errorf("zero amount = %v, want ErrTransferFailed", err)
		}
		if _, err := l.Transfer(ctx, "alice", "bob", -5); !errors.Is(err, ErrTransferFailed) {
			t.Errorf("negative amount = %v, want ErrTransferFailed", err)
		}
	})

	t.Run("unknown accounts start at zero", func(t *testing.T) {
		l := NewLedger()
		if bal := l.Balance("ghost"); bal != 0 {
			t.Errorf("balance = %d, want 0", bal)
		}
		if _, err := l.Transfer(ctx, "ghost", "alice", 1); !errors.Is(err, ErrInsufficientBalance) {
			t.Errorf("Transfer from empty account = %v, want ErrInsufficientBalance", err)
		}
	})
}
