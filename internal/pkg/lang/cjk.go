// Package lang holds the script-detection helper used to route text between
// the operator and customer languages.
package lang

import "unicode"

// ContainsCJK reports whether any rune in s is a Han ideograph. The check
// covers the CJK Unified Ideographs block, its extensions and the
// compatibility ideographs (everything in unicode.Han). Hangul and Kana are
// deliberately excluded: the detector's only job is spotting
// operator-language (Chinese) text.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
