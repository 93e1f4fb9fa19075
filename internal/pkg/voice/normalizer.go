// Package voice rewrites order lines into natural spoken phrasing before
// they reach speech synthesis.
package voice

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ordermate/backend/internal/config"
)

// delimiter separates order lines in every rendering.
const delimiter = "、"

// markerRe matches a quantity marker (x/X/×/*, digits) at the end of a line
// segment, optionally preceded by spaces.
var markerRe = regexp.MustCompile(`^(.*?)\s*[xX×*]([0-9]+)$`)

var smallNumerals = [...]string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九", "十"}

// Normalizer turns "<name> x<N>" segments into "<name><numeral><counter>"
// ("綠茶 x2" → "綠茶二杯"). Normalize is total: segments that do not carry a
// recognizable marker pass through unchanged, and it never fails.
type Normalizer struct {
	beverages  []string
	exceptions []string
	bevCounter string
	defCounter string
}

func New(cfg config.Voice) *Normalizer {
	n := &Normalizer{
		beverages:  cfg.BeverageKeywords,
		exceptions: cfg.BeverageExceptions,
		bevCounter: cfg.BeverageCounter,
		defCounter: cfg.DefaultCounter,
	}
	if n.bevCounter == "" {
		n.bevCounter = "杯"
	}
	if n.defCounter == "" {
		n.defCounter = "份"
	}
	return n
}

func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	segs := strings.Split(text, delimiter)
	for i, seg := range segs {
		m := markerRe.FindStringSubmatch(seg)
		if m == nil || m[1] == "" {
			continue
		}
		numeral := spokenNumeral(m[2])
		if numeral == "" {
			continue
		}
		segs[i] = m[1] + numeral + n.counterFor(m[1])
	}
	return strings.Join(segs, delimiter)
}

// counterFor classifies the item name: beverage keywords select the cup
// counter, everything else falls back to the dish counter. Exception
// substrings (奶油 …) are stripped first so ingredient names that merely
// contain a beverage keyword stay dishes.
func (n *Normalizer) counterFor(name string) string {
	for _, ex := range n.exceptions {
		name = strings.ReplaceAll(name, ex, "")
	}
	for _, kw := range n.beverages {
		if kw != "" && strings.Contains(name, kw) {
			return n.bevCounter
		}
	}
	return n.defCounter
}

// spokenNumeral renders 1..99 as Chinese numerals. Quantities of zero keep
// the marker untouched, and triple-digit quantities keep their digits.
func spokenNumeral(digits string) string {
	v, err := strconv.Atoi(digits)
	if err != nil || v <= 0 {
		return ""
	}
	switch {
	case v <= 10:
		return smallNumerals[v]
	case v < 20:
		return "十" + smallNumerals[v-10]
	case v < 100:
		s := smallNumerals[v/10] + "十"
		if v%10 != 0 {
			s += smallNumerals[v%10]
		}
		return s
	default:
		return digits
	}
}
