package pantry

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/zombor/smart-pantry/internal/scanning"
)

// ExpiryKind says what an estimate produced
type ExpiryKind int

const (
	// ExpiryUnknown means no estimate could be made
	ExpiryUnknown ExpiryKind = iota
	// ExpiryOn means the item expires on ExpiryResult.Date
	ExpiryOn
	// NoExpiry means the food does not expire
	NoExpiry
)

func (k ExpiryKind) String() string {
	switch k {
	case ExpiryOn:
		return "date"
	case NoExpiry:
		return "no_expiry"
	default:
		return "unknown"
	}
}

// ExpiryResult is the outcome of an expiry estimate
type ExpiryResult struct {
	Kind ExpiryKind
	Date time.Time
}

// String renders the result as an expiry_date value: an ISO date, or "" for
// both NoExpiry and ExpiryUnknown.
func (r ExpiryResult) String() string {
	if r.Kind != ExpiryOn {
		return ""
	}
	return FormatDate(r.Date)
}

// neverExpires marks table entries for foods that keep indefinitely
const neverExpires = -1

// shelfLife maps normalized food names to days until expiry
var shelfLife = map[string]int{
	// produce
	"apples": 21, "blueberries": 7, "broccoli": 7, "cauliflower": 7,
	"chard": 3, "kale": 3, "spinach": 3, "leafy herbs": 3,
	"lemons": 21, "limes": 21, "lettuce": 5, "melon": 5,
	"mushrooms": 7, "strawberries": 3, "raspberries": 3,
	"winter squash": 7, "woody herbs": 21,
	// dairy and eggs
	"hard cheese": 180, "butter": 90, "cream cheese": 60, "eggs": 30,
	"heavy cream": 30, "milk": 7, "ricotta": 7, "cottage cheese": 7,
	"sour cream": 21, "soft cheese": 14, "tofu": 21, "yogurt": 14,
	// meat and fish
	"bacon": 14, "chicken": 2, "cold cuts": 14, "fish": 2,
	"ground meat": 2, "hot dogs": 14, "pork": 5, "shrimp": 2,
	"shellfish": 2, "steaks": 5,
	// pantry staples
	"salt": neverExpires, "sugar": neverExpires, "white rice": neverExpires,
	"vinegar": neverExpires, "baking soda": neverExpires, "honey": neverExpires,
	"soy sauce": 365, "maple syrup": 365,
}

var digitsPattern = regexp.MustCompile(`[0-9]+`)

// Estimator estimates expiry dates from a shelf-life table, asking a text
// generator about foods the table does not know.
type Estimator struct {
	generator scanning.TextGenerator
}

// NewEstimator creates an Estimator. generator may be nil, in which case
// foods missing from the table are never estimated.
func NewEstimator(generator scanning.TextGenerator) *Estimator {
	return &Estimator{generator: generator}
}

// Estimate returns the expected expiry of foodType bought on purchase.
// Generator failures are logged and reported as ExpiryUnknown.
func (e *Estimator) Estimate(ctx context.Context, purchase time.Time, foodType string) ExpiryResult {
	food := nameKey(foodType)
	if food == "" {
		return ExpiryResult{Kind: ExpiryUnknown}
	}
	purchase = Day(purchase)

	if days, ok := shelfLife[food]; ok {
		if days == neverExpires {
			return ExpiryResult{Kind: NoExpiry}
		}
		return ExpiryResult{Kind: ExpiryOn, Date: purchase.AddDate(0, 0, days)}
	}

	if e.generator == nil {
		return ExpiryResult{Kind: ExpiryUnknown}
	}

	reply, err := e.generator.Complete(ctx, shelfLifePrompt(food))
	if err != nil {
		slog.Debug("Shelf-life lookup failed", "food", food, "error", err)
		return ExpiryResult{Kind: ExpiryUnknown}
	}

	days, ok := parseDayCount(reply)
	if !ok {
		slog.Debug("No day count in shelf-life reply", "food", food, "reply", reply)
		return ExpiryResult{Kind: ExpiryUnknown}
	}
	return ExpiryResult{Kind: ExpiryOn, Date: purchase.AddDate(0, 0, days)}
}

// EstimateString is Estimate for an ISO purchase date; an unparseable date
// gives ExpiryUnknown.
func (e *Estimator) EstimateString(ctx context.Context, purchaseDate string, foodType string) ExpiryResult {
	purchase, ok := ParseDate(purchaseDate)
	if !ok {
		return ExpiryResult{Kind: ExpiryUnknown}
	}
	return e.Estimate(ctx, purchase, foodType)
}

func shelfLifePrompt(food string) string {
	return fmt.Sprintf("Roughly how many days is %s safe to store in the fridge? Only return a number.", food)
}

// parseDayCount reads the first run of decimal digits in reply
func parseDayCount(reply string) (int, bool) {
	match := digitsPattern.FindString(strings.TrimSpace(reply))
	if match == "" {
		return 0, false
	}
	days, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return days, true
}
