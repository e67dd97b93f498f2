package lifecycle

import "github.com/shopspring/decimal"

// CatalogItem is one redeemable good from the points shop.
type CatalogItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
}

// Catalog mirrors the reference shop inventory.
var Catalog = []CatalogItem{
	{ID: "humidifier", Name: "Air humidifier", Cost: 500, Description: "A breath of sea breeze at your desk"},
	{ID: "plush-toy", Name: "Surprise plush toy", Cost: 300, Description: "A soft companion after a long day"},
	{ID: "canvas-tote", Name: "Canvas tote bag", Cost: 100, Description: "Campus IP print, reusable"},
}

func findCatalogItem(id string) (CatalogItem, bool) {
	for _, item := range Catalog {
		if item.ID == id {
			return item, true
		}
	}
	return CatalogItem{}, false
}

// Donated points fund ecological water replenishment at a fixed rate.
var litersPerPoint = decimal.NewFromFloat(2.5)

// DonationLiters converts donated points to the replenishment volume the
// donation pays for.
func DonationLiters(points int) decimal.Decimal {
	return litersPerPoint.Mul(decimal.NewFromInt(int64(points)))
}
