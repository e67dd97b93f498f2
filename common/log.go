package common

import (
	"database/sql"

	"github.com/apex/log"
)

// LogResult reports the outcome of a write query. With expectOne set it
// warns when the statement affected anything other than exactly one row.
func LogResult(msgPrefix string, r sql.Result, e error, expectOne bool) {
	if e != nil {
		log.Errorf("Query failed: %w", e)
		return
	}
	rows, err := r.RowsAffected()
	if err != nil {
		log.Errorf("Failed to get status of db op: %w", err)
		return
	}
	if expectOne && rows != 1 {
		log.Warnf("%s: Expected to affect 1 row, affected %d", msgPrefix, rows)
	}
}
