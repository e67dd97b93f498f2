package lifecycle

import (
	"math/rand"
	"time"
)

// Reward tiers are policy data, not code: the picker decides which tier a
// given report or resolution lands on.
var (
	ReportTiers  = []int{50, 60, 80}
	ResolveTiers = []int{100, 120, 150}
)

// Picker selects one value from a tier table. It is injected into the
// controller so reward assignment stays reproducible in tests.
type Picker func(tiers []int) int

var pickerRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// RandomPicker draws uniformly from the tiers, matching the reference
// system's behavior.
func RandomPicker(tiers []int) int {
	return tiers[pickerRand.Intn(len(tiers))]
}

// LowestPicker always takes the first (lowest) tier.
func LowestPicker(tiers []int) int {
	return tiers[0]
}
