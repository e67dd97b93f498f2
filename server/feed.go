package server

import (
	"net/http"
	"strings"

	"riverwatch/issues"
	"riverwatch/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// feedDescriptionLen is the cosmetic cut applied to descriptions in the
// public list; the stored description keeps its full length.
const feedDescriptionLen = 50

func (s *Service) GetFeed(c *gin.Context) {
	var args api.BaseArgs

	if err := c.BindJSON(&args); err != nil {
		log.Errorf("Failed to get the argument in /get_feed call: %v", err)
		return
	}

	if args.Version != "2.0" {
		log.Errorf("Bad version in /get_feed, expected: 2.0, got: %v", args.Version)
		c.String(http.StatusNotAcceptable, "Bad API version, expecting 2.0.") // 406
		return
	}

	list, err := s.store.List(true)
	if err != nil {
		log.Errorf("Failed to list issues: %v", err)
		c.Status(http.StatusInternalServerError) // 500
		return
	}

	resp := api.FeedResponse{Records: make([]api.FeedRecord, 0, len(list))}
	for _, issue := range list {
		resp.Records = append(resp.Records, feedRecord(issue))
	}
	c.IndentedJSON(http.StatusOK, resp) // 200
}

func (s *Service) GetQueue(c *gin.Context) {
	var args api.BaseArgs

	if err := c.BindJSON(&args); err != nil {
		log.Errorf("Failed to get the argument in /get_queue call: %v", err)
		return
	}

	if args.Version != "2.0" {
		log.Errorf("Bad version in /get_queue, expected: 2.0, got: %v", args.Version)
		c.String(http.StatusNotAcceptable, "Bad API version, expecting 2.0.") // 406
		return
	}

	// Oldest unclaimed first: volunteers work the queue in report order.
	list, err := s.store.ListByStatus(issues.Unclaimed, false)
	if err != nil {
		log.Errorf("Failed to list unclaimed issues: %v", err)
		c.Status(http.StatusInternalServerError) // 500
		return
	}

	c.IndentedJSON(http.StatusOK, api.QueueResponse{Issues: list}) // 200
}

func feedRecord(issue issues.Issue) api.FeedRecord {
	return api.FeedRecord{
		Id:            issue.ID,
		ReportedAt:    issue.ReportedAt.Format("2006-01-02 15:04"),
		Segment:       issue.Segment,
		Categories:    strings.Join(issue.Categories, ", "),
		Description:   truncate(issue.Description, feedDescriptionLen),
		Status:        string(issue.Status),
		ReportReward:  issue.ReportReward,
		Claimant:      issue.Claimant,
		ResolveReward: issue.ResolveReward,
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
