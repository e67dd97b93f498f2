package api

import "riverwatch/issues"

type BaseArgs struct {
	Version string `json:"version"` // Must be "2.0"
	Id      string `json:"id"`      // user id.
}

type ReportArgs struct {
	Version     string   `json:"version"` // Must be "2.0"
	Id          string   `json:"id"`      // reporter user id.
	Segment     string   `json:"segment"`
	Categories  []string `json:"categories"`
	Description string   `json:"description"`
	Image       []byte   `json:"image"`
	Filename    string   `json:"filename"`
}

type ReportResponse struct {
	Issue issues.Issue `json:"issue"`
}

type ResolveArgs struct {
	Version     string   `json:"version"`  // Must be "2.0"
	Id          string   `json:"id"`       // resolver user id.
	IssueId     int64    `json:"issue_id"` // Issue being claimed.
	Solution    string   `json:"solution"`
	ProofImages [][]byte `json:"proof_images"`
}

type ResolveResponse struct {
	Issue issues.Issue `json:"issue"`
}

// FeedRecord is the public list view of one issue: categories joined for
// display, description cut to 50 chars.
type FeedRecord struct {
	Id            int64  `json:"id"`
	ReportedAt    string `json:"reported_at"`
	Segment       string `json:"segment"`
	Categories    string `json:"categories"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	ReportReward  int    `json:"report_reward"`
	Claimant      string `json:"claimant"`
	ResolveReward int    `json:"resolve_reward"`
}

type FeedResponse struct {
	Records []FeedRecord `json:"records"`
}

// QueueResponse carries full issues: volunteers need the photo URL and the
// whole description to act on a report.
type QueueResponse struct {
	Issues []issues.Issue `json:"issues"`
}

type BalanceResponse struct {
	Id     string `json:"id"`
	Points int    `json:"points"`
}

type RedeemArgs struct {
	Version string `json:"version"` // Must be "2.0"
	Id      string `json:"id"`      // user id.
	Cost    int    `json:"cost"`
}

type RedeemItemArgs struct {
	Version string `json:"version"` // Must be "2.0"
	Id      string `json:"id"`      // user id.
	ItemId  string `json:"item_id"`
}

type RedeemItemResponse struct {
	ItemId string `json:"item_id"`
	Name   string `json:"name"`
	Cost   int    `json:"cost"`
}

type DonateArgs struct {
	Version string `json:"version"` // Must be "2.0"
	Id      string `json:"id"`      // user id.
	Amount  int    `json:"amount"`
}

type DonateResponse struct {
	Donated int    `json:"donated"`
	Liters  string `json:"liters"` // replenishment volume the donation funds.
}
