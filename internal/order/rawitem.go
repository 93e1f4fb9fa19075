package order

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// RawItem is the boundary shape for one legacy order line. Several key
// spellings coexist in the wild for the same logical fields; Compose
// canonicalizes them once, here, instead of spreading fallback chains
// through business logic.
type RawItem struct {
	ID         flexString `json:"id"`
	MenuItemID flexString `json:"menu_item_id"`
	TempID     flexString `json:"temp_id"`

	Name           nameField `json:"name"`
	ItemName       string    `json:"item_name"`
	OriginalName   string    `json:"original_name"`
	TranslatedName string    `json:"translated_name"`

	Qty      *int `json:"qty"`
	Quantity *int `json:"quantity"`

	Price     *decimal.Decimal `json:"price"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// nameField accepts either a plain string or an {original, translated}
// pair. Unrecognized shapes are dropped, not failed: name extraction is
// checked once, in Compose.
type nameField struct {
	Original   string
	Translated string
}

func (n *nameField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		n.Original = s
		return nil
	}
	var pair struct {
		Original   string `json:"original"`
		Translated string `json:"translated"`
	}
	if err := json.Unmarshal(b, &pair); err == nil {
		n.Original = pair.Original
		n.Translated = pair.Translated
	}
	return nil
}

// flexString tolerates legacy payloads that send identifiers as JSON
// numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	return nil
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInt(vals ...*int) (int, bool) {
	for _, v := range vals {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

func firstDecimal(vals ...*decimal.Decimal) decimal.Decimal {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return decimal.Zero
}
