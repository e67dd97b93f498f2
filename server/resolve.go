package server

import (
	"errors"
	"net/http"

	"riverwatch/issues"
	"riverwatch/ledger"
	"riverwatch/lifecycle"
	"riverwatch/oss"
	"riverwatch/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

func (s *Service) Resolve(c *gin.Context) {
	var args api.ResolveArgs

	// Get the arguments.
	if err := c.BindJSON(&args); err != nil {
		log.Errorf("Failed to get the argument in /resolve call: %v", err)
		return
	}

	if args.Version != "2.0" {
		log.Errorf("Bad version in /resolve, expected: 2.0, got: %v", args.Version)
		c.String(http.StatusNotAcceptable, "Bad API version, expecting 2.0.") // 406
		return
	}

	issue, err := s.ctl.ClaimAndResolve(args.IssueId, args.Id, args.Solution, args.ProofImages)
	if err != nil {
		log.Errorf("Failed to resolve issue %d: %v", args.IssueId, err)
		fail(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, api.ResolveResponse{Issue: issue}) // 200
}

// fail maps domain errors onto HTTP statuses.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrValidation):
		c.String(http.StatusBadRequest, err.Error()) // 400
	case errors.Is(err, ledger.ErrInvalidAmount):
		c.String(http.StatusBadRequest, err.Error()) // 400
	case errors.Is(err, ledger.ErrInsufficientBalance):
		c.String(http.StatusBadRequest, "Insufficient balance.") // 400
	case errors.Is(err, issues.ErrNotFound):
		c.String(http.StatusNotFound, "Not found.") // 404
	case errors.Is(err, issues.ErrInvalidTransition):
		c.String(http.StatusConflict, "Issue is no longer unclaimed.") // 409
	case errors.Is(err, oss.ErrUpload):
		c.String(http.StatusBadGateway, "Photo upload failed, report not saved.") // 502
	default:
		c.Status(http.StatusInternalServerError) // 500
	}
}
