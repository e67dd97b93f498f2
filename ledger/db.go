package ledger

import (
	"database/sql"

	"riverwatch/common"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"
)

// DBLedger keeps balances in the user_points table. The non-negative
// invariant lives in the debit predicate, so it holds under concurrent
// writers without an explicit transaction.
type DBLedger struct {
	db *sql.DB
}

func NewDBLedger(db *sql.DB) *DBLedger {
	return &DBLedger{db: db}
}

func (l *DBLedger) Credit(user string, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	result, err := l.db.Exec(`INSERT INTO user_points (user_id, points) VALUES (?, ?)
	                        ON DUPLICATE KEY UPDATE points = points + ?`,
		user, amount, amount)
	common.LogResult("creditPoints", result, err, false)
	if err != nil {
		log.Errorf("Error crediting %d points to %s: %w", amount, user, err)
	}
	return err
}

func (l *DBLedger) Debit(user string, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	result, err := l.db.Exec(`UPDATE user_points
		SET points = points - ?
		WHERE user_id = ? AND points >= ?`, amount, user, amount)
	if err != nil {
		log.Errorf("Error debiting %d points from %s: %w", amount, user, err)
		return err
	}
	if rows, _ := result.RowsAffected(); rows != 1 {
		return ErrInsufficientBalance
	}
	return nil
}

func (l *DBLedger) BalanceOf(user string) (int, error) {
	rows, err := l.db.Query(`SELECT points
		FROM user_points
		WHERE user_id = ?`, user)
	if err != nil {
		log.Errorf("Could not retrieve balance for user %q: %w", user, err)
		return 0, err
	}
	defer rows.Close()

	points := 0
	if rows.Next() {
		if err := rows.Scan(&points); err != nil {
			return 0, err
		}
	}
	return points, nil
}
