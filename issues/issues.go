package issues

import (
	"errors"
	"time"
)

// BaseID is the id the first appended issue is derived from: ids start at
// BaseID+1 and grow strictly by max+1, so they are never reused even after
// the store has been seeded.
const BaseID = int64(1000)

type Status string

const (
	Unclaimed   Status = "Unclaimed"
	Claimed     Status = "Claimed"
	UnderReview Status = "UnderReview"
	Resolved    Status = "Resolved"
)

var (
	ErrNotFound          = errors.New("issue not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Issue is one reported pollution incident. ReportReward and ResolveReward
// are fixed at creation time. Claimant stays empty exactly while the status
// is Unclaimed.
type Issue struct {
	ID            int64     `json:"id"`
	ReportedAt    time.Time `json:"reported_at"`
	Segment       string    `json:"segment"`
	Categories    []string  `json:"categories"`
	Description   string    `json:"description"`
	Status        Status    `json:"status"`
	ReporterID    string    `json:"reporter_id"`
	ReportReward  int       `json:"report_reward"`
	ImageURL      string    `json:"image_url"`
	Claimant      string    `json:"claimant"`
	ResolveReward int       `json:"resolve_reward"`
}

// Store is the ordered issue collection. Issues are append-only: they change
// status and claimant but are never deleted.
type Store interface {
	// Append assigns the next id (max existing + 1, floor BaseID+1),
	// inserts the issue and returns the assigned id.
	Append(issue Issue) (int64, error)
	Get(id int64) (Issue, error)
	SetStatus(id int64, status Status) error
	SetClaimant(id int64, claimant string) error
	// MarkUnderReview atomically moves an Unclaimed issue to UnderReview
	// and records the claimant. Under concurrent claims exactly one caller
	// wins; the rest get ErrInvalidTransition.
	MarkUnderReview(id int64, claimant string) (Issue, error)
	// ListByStatus returns issues with the given status ordered by
	// ReportedAt; newestFirst selects the feed order, oldest-first is the
	// volunteer work queue order.
	ListByStatus(status Status, newestFirst bool) ([]Issue, error)
	// List returns all issues regardless of status.
	List(newestFirst bool) ([]Issue, error)
	Size() (int, error)
}

// Seed returns the three reference issues the service boots with.
func Seed() []Issue {
	return []Issue{
		{
			ID:            1001,
			ReportedAt:    time.Date(2025, 10, 10, 14, 30, 0, 0, time.UTC),
			Segment:       "Haihe (Daguangming Bridge)",
			Categories:    []string{"solid waste"},
			Description:   "Large amount of plastic bottles and takeout boxes on the bank",
			Status:        Unclaimed,
			ReporterID:    "u001",
			ReportReward:  50,
			ImageURL:      "https://oss.riverwatch.example/seed/damage.png",
			ResolveReward: 100,
		},
		{
			ID:            1002,
			ReportedAt:    time.Date(2025, 10, 9, 9, 0, 0, 0, time.UTC),
			Segment:       "Ziya River (Hongqiao)",
			Categories:    []string{"sewage discharge"},
			Description:   "White foam and odor at the outfall",
			Status:        Claimed,
			ReporterID:    "u002",
			ReportReward:  80,
			ImageURL:      "https://oss.riverwatch.example/seed/eye.png",
			Claimant:      "u003",
			ResolveReward: 150,
		},
		{
			ID:            1003,
			ReportedAt:    time.Date(2025, 10, 8, 11, 0, 0, 0, time.UTC),
			Segment:       "Yongding New River",
			Categories:    []string{"surface oil"},
			Description:   "Patches of oil slick visible on the water",
			Status:        Resolved,
			ReporterID:    "u001",
			ReportReward:  70,
			ImageURL:      "https://oss.riverwatch.example/seed/bird.png",
			Claimant:      "u004",
			ResolveReward: 300,
		},
	}
}
