package domain

import "github.com/shopspring/decimal"

// LocalizedName holds the operator-language name and the customer-language
// name as independent copies. When no translation is supplied, Translated is
// assigned a fresh copy of Original, never a shared reference, so mutating
// one side is never observable through the other.
type LocalizedName struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
}

// OrderItem is the canonical per-line value produced by the composer.
// It lives for one request and is discarded after the summary is built.
type OrderItem struct {
	Identifier string          `json:"identifier"`
	Name       LocalizedName   `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// OrderSummary carries the three independently derived renderings of one
// order. NativeSummary stays in the operator language regardless of the
// target language; UserSummary is localized for the customer; VoiceScript is
// the operator-language text handed to speech synthesis.
type OrderSummary struct {
	NativeSummary string `json:"native_summary"`
	UserSummary   string `json:"user_summary"`
	VoiceScript   string `json:"voice_script"`
	TotalAmount   string `json:"total_amount"`
	TargetLang    string `json:"target_language"`
}
