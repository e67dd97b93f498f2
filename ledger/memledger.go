package ledger

import "sync"

// MemLedger is the in-memory balance map used by the reference deployment.
type MemLedger struct {
	mu       sync.Mutex
	balances map[string]int
}

func NewMemLedger() *MemLedger {
	return &MemLedger{balances: make(map[string]int)}
}

func (l *MemLedger) Credit(user string, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[user] += amount
	return nil
}

func (l *MemLedger) Debit(user string, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if amount > l.balances[user] {
		return ErrInsufficientBalance
	}
	l.balances[user] -= amount
	return nil
}

func (l *MemLedger) BalanceOf(user string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[user], nil
}
