// Package ledger tracks per-user point balances. A balance is the sum of
// all credits minus all successful debits and is never negative: a debit
// that would overdraw is rejected whole, not clamped.
package ledger

import "errors"

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
)

type Ledger interface {
	// Credit adds amount to the user's balance. Amount must be positive.
	Credit(user string, amount int) error
	// Debit subtracts amount or fails with ErrInsufficientBalance leaving
	// the balance untouched. No partial debit.
	Debit(user string, amount int) error
	// BalanceOf returns the current balance, 0 for unknown users.
	BalanceOf(user string) (int, error)
}
