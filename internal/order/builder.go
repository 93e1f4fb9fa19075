package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ordermate/backend/internal/domain"
	"github.com/ordermate/backend/internal/pkg/lang"
	"github.com/ordermate/backend/internal/pkg/voice"
)

// delimiter joins order lines in every rendering.
const delimiter = "、"

// Builder derives the three renderings of one order. The native ticket and
// the customer summary are computed from disjoint inputs (original names +
// native store name vs translated names + display store name) with no state
// shared between the two passes, so neither language can leak into the
// other's output.
type Builder struct {
	normalizer *voice.Normalizer
}

func NewBuilder(n *voice.Normalizer) *Builder {
	return &Builder{normalizer: n}
}

func (b *Builder) Build(nativeStoreName, displayStoreName string, items []domain.OrderItem, total decimal.Decimal, targetLang string) domain.OrderSummary {
	nativeLines := make([]string, 0, len(items))
	for _, it := range items {
		nativeLines = append(nativeLines, fmt.Sprintf("%s x%d", it.Name.Original, it.Quantity))
	}
	nativeBody := strings.Join(nativeLines, delimiter)

	userLines := make([]string, 0, len(items))
	for _, it := range items {
		userLines = append(userLines, fmt.Sprintf("%s x%d", it.Name.Translated, it.Quantity))
	}
	userBody := strings.Join(userLines, delimiter)

	totalStr := FormatAmount(total)

	return domain.OrderSummary{
		NativeSummary: renderCJK(nativeStoreName, nativeBody, totalStr),
		UserSummary:   renderUser(displayStoreName, userBody, totalStr),
		VoiceScript:   b.normalizer.Normalize(nativeBody),
		TotalAmount:   totalStr,
		TargetLang:    targetLang,
	}
}

// renderCJK is the operator-language layout, used for the kitchen ticket
// regardless of the customer's language.
func renderCJK(storeName, body, total string) string {
	var sb strings.Builder
	if storeName != "" {
		sb.WriteString(storeName)
		sb.WriteString("：")
	}
	sb.WriteString(body)
	if body != "" {
		sb.WriteString("，")
	}
	sb.WriteString("合計 ")
	sb.WriteString(total)
	sb.WriteString(" 元")
	return sb.String()
}

// renderUser picks the layout by what the translated text actually is: when
// the customer's language is itself CJK the translated names equal the
// originals and the operator layout reads naturally; otherwise a neutral
// western layout is used.
func renderUser(storeName, body, total string) string {
	if lang.ContainsCJK(body) || lang.ContainsCJK(storeName) {
		return renderCJK(storeName, body, total)
	}
	var sb strings.Builder
	if storeName != "" {
		sb.WriteString(storeName)
		sb.WriteString(": ")
	}
	sb.WriteString(body)
	if body != "" {
		sb.WriteString(", ")
	}
	sb.WriteString("total ")
	sb.WriteString(total)
	return sb.String()
}

// FormatAmount renders a money amount without a decimal point unless a
// genuine fractional part exists.
func FormatAmount(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.StringFixed(0)
	}
	return d.String()
}
