// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"fmt"
	"strings"
)

// Substrings that show up again and again in leaked password dumps.
var commonPatterns = [...]string{
	"1234", "12345", "123456",
	"password", "admin", "qwerty",
	"abc123", "iloveyou",
	"0000", "1111",
}

// Runs of adjacent keys on a QWERTY layout.
var keyboardSequences = [...]string{
	"qwerty", "asdf", "zxcv",
	"1q2w3e", "qaz", "qwe",
}

// Patterns returns one issue per listed substring found in the lower-cased
// password. Common patterns come first, then keyboard sequences, each in table
// order. The same substring can be reported by both tables.
func Patterns(password string) []string {
	lower := lowerCase(password)

	var found []string
	for _, p := range commonPatterns {
		if strings.Contains(lower, p) {
			found = append(found, fmt.Sprintf("Contains common pattern: '%s'", p))
		}
	}

	for _, s := range keyboardSequences {
		if strings.Contains(lower, s) {
			found = append(found, fmt.Sprintf("Contains keyboard sequence: '%s'", s))
		}
	}

	return found
}

// lowerCase applies the full lowercase mapping. 'İ' is the one character whose
// lower case is two runes, an 'i' followed by a combining dot above.
func lowerCase(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "\u0130", "i\u0307"))
}
