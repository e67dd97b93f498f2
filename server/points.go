package server

import (
	"net/http"

	"riverwatch/lifecycle"
	"riverwatch/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

func (s *Service) GetBalance(c *gin.Context) {
	var args api.BaseArgs

	if err := c.BindJSON(&args); err != nil {
		log.Errorf("Failed to get the argument in /get_balance call: %v", err)
		return
	}

	if args.Version != "2.0" {
		log.Errorf("Bad version in /get_balance, expected: 2.0, got: %v", args.Version)
		c.String(http.StatusNotAcceptable, "Bad API version, expecting 2.0.") // 406
		return
	}

	points, err := s.ctl.BalanceOf(args.Id)
	if err != nil {
		log.Errorf("Failed to get balance for %s: %v", args.Id, err)
		c.Status(http.StatusInternalServerError) // 500
		return
	}

	c.IndentedJSON(http.StatusOK, api.BalanceResponse{Id: args.Id, Points: points}) // 200
}

func (s *Service) GetCatalog(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, lifecycle.Catalog) // 200
}

func (s *Service) Redeem(c *gin.Context) {
	var args api.RedeemArgs

	if err := c.BindJSON(&args); err != nil {
		log.Errorf("Failed to get the argument in /redeem call: %v", err)
		return
	}

	if args.Version != "2.0" {
		log.Errorf("Bad version in /redeem, expected: 2.0, got: %v", args.Version)
		c.String(http.StatusNotAcceptable, "Bad API version, expecting 2.0.") // 406
		return
	}

	if err := s.ctl.Redeem(args.Id, args.Cost); err != nil {
		log.Errorf("Failed to redeem %d points for %s: %v", args.Cost, args.Id, err)
		fail(c, err)
		return
	}

	c.Status(http.StatusOK) // 200
}

func (s *Service) RedeemItem(c *gin.Context) {
	var args api.RedeemItemArgs

	if err := c.BindJSON(&args); err != nil {
		log.Errorf("Failed to get the argument in /redeem_item call: %v", err)
		return
	}

	if args.Version != "2.0" {
		log.Errorf("Bad version in /redeem_item, expected: 2.0, got: %v", args.Version)
		c.String(http.StatusNotAcceptable, "Bad API version, expecting 2.0.") // 406
		return
	}

	item, err := s.ctl.RedeemItem(args.Id, args.ItemId)
	if err != nil {
		log.Errorf("Failed to redeem item %s for %s: %v", args.ItemId, args.Id, err)
		fail(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, api.RedeemItemResponse{
		ItemId: item.ID,
		Name:   item.Name,
		Cost:   item.Cost,
	}) // 200
}

func (s *Service) Donate(c *gin.Context) {
	var args api.DonateArgs

	if err := c.BindJSON(&args); err != nil {
		log.Errorf("Failed to get the argument in /donate call: %v", err)
		return
	}

	if args.Version != "2.0" {
		log.Errorf("Bad version in /donate, expected: 2.0, got: %v", args.Version)
		c.String(http.StatusNotAcceptable, "Bad API version, expecting 2.0.") // 406
		return
	}

	liters, err := s.ctl.Donate(args.Id, args.Amount)
	if err != nil {
		log.Errorf("Failed to donate %d points from %s: %v", args.Amount, args.Id, err)
		fail(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, api.DonateResponse{
		Donated: args.Amount,
		Liters:  liters.String(),
	}) // 200
}
