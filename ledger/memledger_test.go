package ledger

import (
	"errors"
	"sync"
	"testing"
)

func TestCreditDebitScenario(t *testing.T) {
	l := NewMemLedger()

	if b, _ := l.BalanceOf("alice"); b != 0 {
		t.Fatalf("BalanceOf unknown user: expected 0, got %d", b)
	}

	if err := l.Credit("alice", 80); err != nil {
		t.Fatalf("Credit: unexpected error %v", err)
	}
	if b, _ := l.BalanceOf("alice"); b != 80 {
		t.Fatalf("BalanceOf after credit: expected 80, got %d", b)
	}

	if err := l.Debit("alice", 100); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("overdraw Debit: expected ErrInsufficientBalance, got %v", err)
	}
	if b, _ := l.BalanceOf("alice"); b != 80 {
		t.Fatalf("BalanceOf after rejected debit: expected 80, got %d", b)
	}

	if err := l.Debit("alice", 80); err != nil {
		t.Fatalf("exact Debit: unexpected error %v", err)
	}
	if b, _ := l.BalanceOf("alice"); b != 0 {
		t.Fatalf("BalanceOf after exact debit: expected 0, got %d", b)
	}
}

func TestInvalidAmounts(t *testing.T) {
	testCases := []struct {
		name   string
		amount int
	}{
		{name: "Zero", amount: 0},
		{name: "Negative", amount: -5},
	}

	l := NewMemLedger()
	for _, testCase := range testCases {
		if err := l.Credit("alice", testCase.amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("%s, Credit: expected ErrInvalidAmount, got %v", testCase.name, err)
		}
		if err := l.Debit("alice", testCase.amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("%s, Debit: expected ErrInvalidAmount, got %v", testCase.name, err)
		}
	}
	if b, _ := l.BalanceOf("alice"); b != 0 {
		t.Errorf("rejected operations changed the balance: %d", b)
	}
}

func TestConcurrentCredits(t *testing.T) {
	l := NewMemLedger()
	const workers = 16
	const perWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				l.Credit("alice", 1)
			}
		}()
	}
	wg.Wait()

	if b, _ := l.BalanceOf("alice"); b != workers*perWorker {
		t.Errorf("lost credits under concurrency: expected %d, got %d", workers*perWorker, b)
	}
}

func TestDebitNeverNegative(t *testing.T) {
	l := NewMemLedger()
	l.Credit("bob", 30)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Debit("bob", 20)
		}()
	}
	wg.Wait()

	b, _ := l.BalanceOf("bob")
	if b < 0 {
		t.Errorf("balance went negative: %d", b)
	}
	if b != 10 {
		t.Errorf("expected exactly one debit to win, balance 10, got %d", b)
	}
}
