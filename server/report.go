package server

import (
	"net/http"

	"riverwatch/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

func (s *Service) Report(c *gin.Context) {
	var args api.ReportArgs

	// Get the arguments.
	if err := c.BindJSON(&args); err != nil {
		log.Errorf("Failed to get the argument in /report call: %v", err)
		return
	}

	if args.Version != "2.0" {
		log.Errorf("Bad version in /report, expected: 2.0, got: %v", args.Version)
		c.String(http.StatusNotAcceptable, "Bad API version, expecting 2.0.") // 406
		return
	}

	issue, err := s.ctl.SubmitReport(c.Request.Context(),
		args.Segment, args.Categories, args.Description, args.Id, args.Image, args.Filename)
	if err != nil {
		log.Errorf("Failed to submit report: %v", err)
		fail(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, api.ReportResponse{Issue: issue}) // 200
}
