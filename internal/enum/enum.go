package enum

// ── Combo variants ──

const (
	ComboVeg    = "veg"
	ComboNonVeg = "non-veg"
)

// ── Platter option slots ──

const (
	SlotOption1 = "option1"
	SlotOption2 = "option2"
	SlotOption3 = "option3"
)

// ── Platter option values ──

const (
	OptionPhuchka                = "phuchka"
	OptionPapriChat              = "papri-chat"
	OptionChicken65              = "chicken-65"
	OptionChickenShamiKabab      = "chicken-shami-kabab"
	OptionHoneyChilliCauliflower = "honey-chilli-cauliflower"
	OptionChanaPora              = "chana-pora"
	OptionNarkelNaru             = "narkel-naru"
)

// ── Payment methods ──

const (
	PaymentCash  = "cash"
	PaymentBizum = "bizum"
)

// ── Sheets transport modes ──
// The spreadsheet endpoint is deployed either in no-cors style (response
// body unreadable, success means the request went out) or with a readable
// JSON status body. A deployment picks exactly one contract.

const (
	TransportOpaque = "opaque"
	TransportJSON   = "json"
)

// IsComboVariant reports whether s names one of the two platter types.
func IsComboVariant(s string) bool {
	return s == ComboVeg || s == ComboNonVeg
}

// IsPaymentMethod reports whether s is a payment method the form offers.
func IsPaymentMethod(s string) bool {
	return s == PaymentCash || s == PaymentBizum
}

// IsTransportMode reports whether s is a known sheets transport contract.
func IsTransportMode(s string) bool {
	return s == TransportOpaque || s == TransportJSON
}
