package issues

import (
	"context"
	"database/sql"
	"strings"

	"riverwatch/common"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"
)

// DBStore is the MySQL-backed issue store. Categories are kept as a
// comma-joined column and split back on read; everything else maps one to
// one onto the issues table.
type DBStore struct {
	db *sql.DB
}

func NewDBStore(db *sql.DB) *DBStore {
	return &DBStore{db: db}
}

const issueColumns = `id, ts, segment, categories, description, status, reporter, report_reward, image_url, claimant, resolve_reward`

func (s *DBStore) Append(issue Issue) (int64, error) {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		log.Errorf("Error creating transaction: %w", err)
		return 0, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT COALESCE(MAX(id), ?) FROM issue_reports`, BaseID)
	if err != nil {
		log.Errorf("Error reading max issue id: %w", err)
		return 0, err
	}
	maxID := BaseID
	if rows.Next() {
		if err := rows.Scan(&maxID); err != nil {
			rows.Close()
			return 0, err
		}
	}
	rows.Close()

	issue.ID = maxID + 1
	result, err := tx.ExecContext(ctx, `INSERT
	  INTO issue_reports (`+issueColumns+`)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		issue.ID, issue.ReportedAt, issue.Segment, strings.Join(issue.Categories, ","),
		issue.Description, string(issue.Status), issue.ReporterID, issue.ReportReward,
		issue.ImageURL, issue.Claimant, issue.ResolveReward)
	common.LogResult("appendIssue", result, err, true)
	if err != nil {
		log.Errorf("Error inserting issue: %w", err)
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		log.Errorf("Error committing the transaction: %w", err)
		return 0, err
	}
	return issue.ID, nil
}

func (s *DBStore) Get(id int64) (Issue, error) {
	rows, err := s.db.Query(`SELECT `+issueColumns+`
		FROM issue_reports
		WHERE id = ?`, id)
	if err != nil {
		log.Errorf("Could not retrieve issue %d: %w", id, err)
		return Issue{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		return Issue{}, ErrNotFound
	}
	return scanIssue(rows)
}

func (s *DBStore) SetStatus(id int64, status Status) error {
	result, err := s.db.Exec(`UPDATE issue_reports
		SET status = ?
		WHERE id = ?`, string(status), id)
	common.LogResult("setIssueStatus", result, err, true)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows != 1 {
		return ErrNotFound
	}
	return nil
}

func (s *DBStore) SetClaimant(id int64, claimant string) error {
	result, err := s.db.Exec(`UPDATE issue_reports
		SET claimant = ?
		WHERE id = ?`, claimant, id)
	common.LogResult("setIssueClaimant", result, err, true)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows != 1 {
		return ErrNotFound
	}
	return nil
}

func (s *DBStore) MarkUnderReview(id int64, claimant string) (Issue, error) {
	// The status guard in the WHERE clause is the claim serialization
	// point: concurrent claims race on it and only one update sticks.
	result, err := s.db.Exec(`UPDATE issue_reports
		SET status = ?, claimant = ?
		WHERE id = ? AND status = ?`,
		string(UnderReview), claimant, id, string(Unclaimed))
	if err != nil {
		log.Errorf("Error claiming issue %d: %w", id, err)
		return Issue{}, err
	}
	if rows, _ := result.RowsAffected(); rows != 1 {
		// Lost the race or the id is bogus; look at the row to tell.
		if _, err := s.Get(id); err != nil {
			return Issue{}, err
		}
		return Issue{}, ErrInvalidTransition
	}
	return s.Get(id)
}

func (s *DBStore) ListByStatus(status Status, newestFirst bool) ([]Issue, error) {
	return s.list(`SELECT `+issueColumns+`
		FROM issue_reports
		WHERE status = ?
		ORDER BY ts `+direction(newestFirst), string(status))
}

func (s *DBStore) List(newestFirst bool) ([]Issue, error) {
	return s.list(`SELECT ` + issueColumns + `
		FROM issue_reports
		ORDER BY ts ` + direction(newestFirst))
}

func (s *DBStore) list(query string, args ...any) ([]Issue, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Errorf("Could not retrieve issues: %w", err)
		return nil, err
	}
	defer rows.Close()

	var out []Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			log.Errorf("Cannot scan a row: %w", err)
			continue
		}
		out = append(out, issue)
	}
	return out, nil
}

func (s *DBStore) Size() (int, error) {
	rows, err := s.db.Query(`SELECT COUNT(*) FROM issue_reports`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	cnt := 0
	if rows.Next() {
		if err := rows.Scan(&cnt); err != nil {
			return 0, err
		}
	}
	return cnt, nil
}

func direction(newestFirst bool) string {
	if newestFirst {
		return "DESC"
	}
	return "ASC"
}

func scanIssue(rows *sql.Rows) (Issue, error) {
	var (
		issue      Issue
		categories string
		status     string
	)
	if err := rows.Scan(&issue.ID, &issue.ReportedAt, &issue.Segment, &categories,
		&issue.Description, &status, &issue.ReporterID, &issue.ReportReward,
		&issue.ImageURL, &issue.Claimant, &issue.ResolveReward); err != nil {
		return Issue{}, err
	}
	issue.Status = Status(status)
	if categories != "" {
		issue.Categories = strings.Split(categories, ",")
	}
	return issue, nil
}
