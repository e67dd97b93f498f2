package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Service) Help(c *gin.Context) {
	c.String(http.StatusOK, `
	RiverWatch API:
	river pollution reporting and volunteer response API server, version 2.0.
	`)
}
