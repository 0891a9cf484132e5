package menu

import (
	"github.com/dillkhus/order-api/internal/enum"
	"github.com/shopspring/decimal"
)

// Item is a single à la carte menu entry with its two price tiers.
type Item struct {
	Key           string
	RegularPrice  decimal.Decimal
	PreorderPrice decimal.Decimal
}

// Catalog holds the storefront's pricing and display data. Prices are
// supplied per deployment; NewDefault returns the current pre-order menu.
type Catalog struct {
	items         map[string]Item
	comboRegular  decimal.Decimal
	comboPreorder decimal.Decimal
}

// New creates a catalog from the given items and combo tier prices.
func New(items []Item, comboRegular, comboPreorder decimal.Decimal) *Catalog {
	m := make(map[string]Item, len(items))
	for _, it := range items {
		m[it.Key] = it
	}
	return &Catalog{
		items:         m,
		comboRegular:  comboRegular,
		comboPreorder: comboPreorder,
	}
}

// NewDefault returns the catalog the storefront currently sells.
func NewDefault() *Catalog {
	return New([]Item{
		{Key: "phuchka-solo", RegularPrice: dec("6.00"), PreorderPrice: dec("5.00")},
		{Key: "papri-chat", RegularPrice: dec("6.00"), PreorderPrice: dec("5.00")},
		{Key: "chicken-65", RegularPrice: dec("8.00"), PreorderPrice: dec("7.00")},
		{Key: "chicken-shami-kabab", RegularPrice: dec("8.00"), PreorderPrice: dec("7.00")},
		{Key: "honey-chilli-cauliflower", RegularPrice: dec("7.00"), PreorderPrice: dec("6.00")},
		{Key: "chana-pora", RegularPrice: dec("5.00"), PreorderPrice: dec("4.00")},
		{Key: "narkel-naru", RegularPrice: dec("5.00"), PreorderPrice: dec("4.00")},
	}, dec("12.00"), dec("10.00"))
}

// ItemPrice returns the price of an item for the requested tier.
// ok is false when the key is not on the menu.
func (c *Catalog) ItemPrice(key string, preorder bool) (price decimal.Decimal, ok bool) {
	it, ok := c.items[key]
	if !ok {
		return decimal.Zero, false
	}
	if preorder {
		return it.PreorderPrice, true
	}
	return it.RegularPrice, true
}

// ComboPrice returns the fixed platter tier price.
func (c *Catalog) ComboPrice(preorder bool) decimal.Decimal {
	if preorder {
		return c.comboPreorder
	}
	return c.comboRegular
}

// HasItem reports whether key is on the menu.
func (c *Catalog) HasItem(key string) bool {
	_, ok := c.items[key]
	return ok
}

// displayNames maps internal option keys to the labels shown to customers.
var displayNames = map[string]string{
	"phuchka-solo":                    "Phuchka (Solo)",
	enum.OptionPhuchka:                "Phuchka",
	enum.OptionPapriChat:              "Papri Chat",
	enum.OptionHoneyChilliCauliflower: "Honey Chilli Cauliflower",
	enum.OptionNarkelNaru:             "Narkel Naru",
	enum.OptionChanaPora:              "Chana Pora",
	enum.OptionChicken65:              "Chicken 65",
	enum.OptionChickenShamiKabab:      "Chicken Shami Kabab",
	enum.ComboVeg:                     "Veg Combo Platter",
	enum.ComboNonVeg:                  "Non-Veg Combo Platter",
}

// DisplayName resolves an internal key to its human-readable label.
// Unrecognized keys pass through unchanged.
func DisplayName(key string) string {
	if name, ok := displayNames[key]; ok {
		return name
	}
	return key
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
