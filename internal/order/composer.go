// Package order composes heterogeneous legacy order lines into canonical
// items and derives the bilingual summary renderings from them.
package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ordermate/backend/internal/domain"
)

// Compose normalizes one raw order line into the canonical item value.
// Missing optional fields are coerced, never failed: quantity clamps to 1,
// price defaults to 0, and a missing translation gets a fresh copy of the
// original name. The only hard error is a line with no name at all.
func Compose(raw RawItem, targetLang string) (domain.OrderItem, error) {
	original := firstString(raw.Name.Original, raw.OriginalName, raw.ItemName)
	translated := firstString(raw.Name.Translated, raw.TranslatedName)

	if original == "" && translated == "" {
		return domain.OrderItem{}, fmt.Errorf("%w (target language %q)", domain.ErrNoItemName, targetLang)
	}
	if original == "" {
		original = translated
	}
	if translated == "" {
		translated = original
	}

	qty, ok := firstInt(raw.Quantity, raw.Qty)
	if !ok || qty < 1 {
		qty = 1
	}

	price := firstDecimal(raw.UnitPrice, raw.Price)
	if price.IsNegative() {
		price = decimal.Zero
	}

	return domain.OrderItem{
		Identifier: firstString(string(raw.ID), string(raw.MenuItemID), string(raw.TempID)),
		Name: domain.LocalizedName{
			Original:   original,
			Translated: translated,
		},
		Quantity:  qty,
		UnitPrice: price,
		Subtotal:  price.Mul(decimal.NewFromInt(int64(qty))),
	}, nil
}

// ComposeAll composes every line, failing on the first nameless one.
func ComposeAll(raws []RawItem, targetLang string) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(raws))
	for i, raw := range raws {
		item, err := Compose(raw, targetLang)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}
