// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Report is the verdict for a single password. A new one is built on every
// call to Analyze and nothing keeps a reference to it afterwards.
type Report struct {
	Length      int      `json:"length"`
	Entropy     float64  `json:"entropy"`
	Score       int      `json:"score"`
	Level       Level    `json:"level"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

const (
	lowerSpace = 26
	upperSpace = 26
	digitSpace = 10
)

// Same set as the ASCII punctuation class of most regex engines.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// charClasses records which character classes a password uses.
type charClasses struct {
	lower, upper, digit, symbol bool
}

// otherDigits holds the No characters that carry a single digit value:
// superscripts, subscripts, circled and dingbat digits and a few scripts'
// digit signs. Together with Nd they form the digit class.
var otherDigits = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00b2, Hi: 0x00b3, Stride: 1},
		{Lo: 0x00b9, Hi: 0x00b9, Stride: 1},
		{Lo: 0x1369, Hi: 0x1371, Stride: 1},
		{Lo: 0x19da, Hi: 0x19da, Stride: 1},
		{Lo: 0x2070, Hi: 0x2070, Stride: 1},
		{Lo: 0x2074, Hi: 0x2079, Stride: 1},
		{Lo: 0x2080, Hi: 0x2089, Stride: 1},
		{Lo: 0x2460, Hi: 0x2468, Stride: 1},
		{Lo: 0x2474, Hi: 0x247c, Stride: 1},
		{Lo: 0x2488, Hi: 0x2490, Stride: 1},
		{Lo: 0x24ea, Hi: 0x24ea, Stride: 1},
		{Lo: 0x24f5, Hi: 0x24fd, Stride: 1},
		{Lo: 0x24ff, Hi: 0x24ff, Stride: 1},
		{Lo: 0x2776, Hi: 0x277e, Stride: 1},
		{Lo: 0x2780, Hi: 0x2788, Stride: 1},
		{Lo: 0x278a, Hi: 0x2792, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10a40, Hi: 0x10a43, Stride: 1},
		{Lo: 0x10e60, Hi: 0x10e68, Stride: 1},
		{Lo: 0x11052, Hi: 0x1105a, Stride: 1},
		{Lo: 0x1f100, Hi: 0x1f10a, Stride: 1},
	},
	LatinOffset: 2,
}

// Lowercase and Uppercase are the derived properties, not just Ll and Lu:
// 'ª' counts as lower case and 'Ⓐ' as upper case.
func isLower(r rune) bool {
	return unicode.IsLower(r) || unicode.Is(unicode.Other_Lowercase, r)
}

func isUpper(r rune) bool {
	return unicode.IsUpper(r) || unicode.Is(unicode.Other_Uppercase, r)
}

func isDigit(r rune) bool {
	return unicode.IsDigit(r) || unicode.Is(otherDigits, r)
}

func classify(password string) charClasses {
	var c charClasses
	for _, r := range password {
		switch {
		case isLower(r):
			c.lower = true
		case isUpper(r):
			c.upper = true
		case isDigit(r):
			c.digit = true
		}
		if strings.ContainsRune(punctuation, r) {
			c.symbol = true
		}
	}
	return c
}

func (c charClasses) count() int {
	n := 0
	for _, used := range [...]bool{c.lower, c.upper, c.digit, c.symbol} {
		if used {
			n++
		}
	}
	return n
}

func (c charClasses) space() int {
	space := 0
	if c.lower {
		space += lowerSpace
	}
	if c.upper {
		space += upperSpace
	}
	if c.digit {
		space += digitSpace
	}
	if c.symbol {
		space += len(punctuation)
	}
	return space
}

// Entropy is a charset based estimate: length * log2(alphabet size), where
// the alphabet is the sum of the classes the password actually uses. It is a
// coarse approximation, not an information theoretic measure.
func Entropy(password string) float64 {
	if password == "" {
		return 0
	}
	return entropy(utf8.RuneCountInString(password), classify(password))
}

func entropy(length int, classes charClasses) float64 {
	space := classes.space()
	if space == 0 {
		return 0
	}
	return float64(length) * math.Log2(float64(space))
}

// Analyze scores the password and collects every weakness found. It never
// fails, any string (including an empty one) gets a report.
func Analyze(password string) Report {
	if password == "" {
		return Report{
			Level:       Empty,
			Issues:      []string{"Password is empty."},
			Suggestions: []string{"Enter a password to evaluate it."},
		}
	}

	length := utf8.RuneCountInString(password)
	classes := classify(password)
	bits := entropy(length, classes)

	r := Report{
		Length:      length,
		Entropy:     math.Round(bits*100) / 100,
		Issues:      make([]string, 0),
		Suggestions: make([]string, 0),
	}
	score := 0

	switch {
	case length < 6:
		score += 5
		r.Issues = append(r.Issues, "Password is too short.")
		r.Suggestions = append(r.Suggestions, "Use at least 10-12 characters.")
	case length < 10:
		score += 20
		r.Suggestions = append(r.Suggestions, "A longer password would be more secure.")
	case length < 14:
		score += 40
	default:
		score += 55
	}

	switch classes.count() {
	case 1:
		score += 5
		r.Issues = append(r.Issues, "Uses only one type of character.")
		r.Suggestions = append(r.Suggestions, "Mix upper case, lower case, digits and symbols.")
	case 2:
		score += 15
		r.Suggestions = append(r.Suggestions, "Adding more types of characters would make it more secure.")
	case 3:
		score += 25
	case 4:
		score += 35
	}

	if distinctRunes(password) <= max(3, length/2) {
		score -= 10
		r.Issues = append(r.Issues, "Too many repeated characters.")
		r.Suggestions = append(r.Suggestions, "Avoid repeating the same character so often.")
	}

	if found := Patterns(password); len(found) > 0 {
		// Flat penalty, however many patterns matched.
		score -= 20
		r.Issues = append(r.Issues, found...)
	}

	switch {
	case bits < 28:
		score -= 10
		r.Issues = append(r.Issues, "Very low entropy.")
		r.Suggestions = append(r.Suggestions, "Make the password longer and more varied.")
	case bits < 60:
		score += 10
	default:
		score += 15
	}

	r.Score = min(100, max(0, score))
	r.Level = LevelForScore(r.Score)
	return r
}

func distinctRunes(s string) int {
	seen := make(map[rune]struct{}, len(s))
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}
