// Copyright (c) 2026 EasyBuy. All rights reserved.

// Package slug turns arbitrary Unicode strings into short ASCII tokens.
//
// It is used to keep a readable trace of the client's original file name inside
// generated storage keys ("images-<uuid>-summer-dress.jpg") without letting path
// separators, spaces or non-ASCII characters into the key.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength caps the slug length in bytes.
const MaxLength = 48

// From converts s into a lowercase ASCII slug of letters, digits and single hyphens.
//
// Accents are stripped (é → e); characters with no ASCII form are dropped.
// The result may be empty.
func From(s string) string {
	stripAccents := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	normalized, _, err := transform.String(stripAccents, s)
	if err != nil {
		normalized = s
	}

	var builder strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(normalized) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			pendingHyphen = false
			builder.WriteRune(r)
		default:
			pendingHyphen = true
		}
		if builder.Len() >= MaxLength {
			break
		}
	}

	return strings.TrimRight(builder.String()[:min(builder.Len(), MaxLength)], "-")
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
