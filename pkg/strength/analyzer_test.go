// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestAnalyze_Empty(t *testing.T) {
	r := Analyze("")
	if r.Length != 0 || r.Entropy != 0 || r.Score != 0 {
		t.Errorf("Empty password should have zero length, entropy and score, got %+v", r)
	}
	if r.Level != Empty {
		t.Errorf("Empty password should be level %s, got %s", Empty, r.Level)
	}
	if len(r.Issues) != 1 || r.Issues[0] != "Password is empty." {
		t.Errorf("Empty password should report a single issue, got %v", r.Issues)
	}
	if len(r.Suggestions) != 1 {
		t.Errorf("Empty password should report a single suggestion, got %v", r.Suggestions)
	}
}

func TestAnalyze(t *testing.T) {
	cases := []struct {
		password string
		length   int
		entropy  float64
		score    int
		level    Level
		issues   int
	}{
		{"abc", 3, 14.10, 0, VeryWeak, 4},
		{"aaaaaaaaaa", 10, 47.00, 45, Medium, 2},
		{"password", 8, 37.60, 15, VeryWeak, 2},
		{"qwerty123456admin", 17, 87.89, 65, Strong, 7},
		{"Tr0ub4dor&3", 11, 72.10, 90, VeryStrong, 0},
		{"correct horse battery staple", 28, 131.61, 65, Strong, 2},
		{"X9#kLm2$pQ7!vZ4&", 16, 104.87, 100, VeryStrong, 0},
		{"Summer2024", 10, 59.54, 75, Strong, 0},
		{"abcdefgh", 8, 37.60, 35, Weak, 1},
		{"Abcdefgh", 8, 45.60, 45, Medium, 0},
		{"Abcdefg1", 8, 47.63, 55, Medium, 0},
		{"Abcdef1!", 8, 52.44, 65, Strong, 0},
		{"ABCDEFGHIJKLMNOP", 16, 75.21, 75, Strong, 1},
		{"      ", 6, 0, 0, VeryWeak, 2},
		{"ñandú", 5, 23.50, 0, VeryWeak, 3},
		{"zxcvbnm,", 8, 46.86, 25, Weak, 1},
		{"Qaz!xsw2", 8, 52.44, 45, Medium, 1},
		{"qwertyuiop", 10, 47.00, 35, Weak, 4},
	}

	for _, tc := range cases {
		r := Analyze(tc.password)
		if r.Length != tc.length {
			t.Errorf("Analyze(%q).Length: %d, want: %d", tc.password, r.Length, tc.length)
		}
		if math.Abs(r.Entropy-tc.entropy) > 0.005 {
			t.Errorf("Analyze(%q).Entropy: %.2f, want: %.2f", tc.password, r.Entropy, tc.entropy)
		}
		if r.Score != tc.score {
			t.Errorf("Analyze(%q).Score: %d, want: %d", tc.password, r.Score, tc.score)
		}
		if r.Level != tc.level {
			t.Errorf("Analyze(%q).Level: %s, want: %s", tc.password, r.Level, tc.level)
		}
		if len(r.Issues) != tc.issues {
			t.Errorf("Analyze(%q) should report %d issues, got %v", tc.password, tc.issues, r.Issues)
		}
	}
}

func TestAnalyze_MessagesInDetectionOrder(t *testing.T) {
	r := Analyze("abc")

	wantIssues := []string{
		"Password is too short.",
		"Uses only one type of character.",
		"Too many repeated characters.",
		"Very low entropy.",
	}
	if !reflect.DeepEqual(r.Issues, wantIssues) {
		t.Errorf("Issues: %v, want: %v", r.Issues, wantIssues)
	}

	wantSuggestions := []string{
		"Use at least 10-12 characters.",
		"Mix upper case, lower case, digits and symbols.",
		"Avoid repeating the same character so often.",
		"Make the password longer and more varied.",
	}
	if !reflect.DeepEqual(r.Suggestions, wantSuggestions) {
		t.Errorf("Suggestions: %v, want: %v", r.Suggestions, wantSuggestions)
	}
}

func TestAnalyze_PatternPenaltyAppliedOnce(t *testing.T) {
	r := Analyze("qwerty123456admin")

	want := []string{
		"Contains common pattern: '1234'",
		"Contains common pattern: '12345'",
		"Contains common pattern: '123456'",
		"Contains common pattern: 'admin'",
		"Contains common pattern: 'qwerty'",
		"Contains keyboard sequence: 'qwerty'",
		"Contains keyboard sequence: 'qwe'",
	}
	if !reflect.DeepEqual(r.Issues, want) {
		t.Errorf("Issues: %v, want: %v", r.Issues, want)
	}

	// 55 (length) + 15 (two classes) + 15 (entropy) - 20 (patterns)
	if r.Score != 65 {
		t.Errorf("Score should only lose 20 points for all the patterns, got %d", r.Score)
	}
}

func TestAnalyze_PatternsAreCaseInsensitive(t *testing.T) {
	r := Analyze("PassWord!2024X")
	if len(r.Issues) != 1 || !strings.Contains(r.Issues[0], "'password'") {
		t.Errorf("Upper case letters should not hide a common pattern, got %v", r.Issues)
	}
}

func TestAnalyze_UnicodeClasses(t *testing.T) {
	cases := []struct {
		password string
		score    int
		level    Level
		issues   int
	}{
		// Superscript and circled digits are digits.
		{"Password²", 35, Weak, 1},
		{"Pass①word", 55, Medium, 0},
		// 'ª' is lower case, 'Ⓐ' upper case.
		{"ªBC①def", 55, Medium, 0},
		{"Ⓐbc12345", 35, Weak, 2},
		// 'İ' lowers to "i̇", which does not spell 'iloveyou'.
		{"İloveyou", 45, Medium, 0},
	}

	for _, tc := range cases {
		r := Analyze(tc.password)
		if r.Score != tc.score || r.Level != tc.level || len(r.Issues) != tc.issues {
			t.Errorf("%q: got %d %s %v, want %d %s with %d issues",
				tc.password, r.Score, r.Level, r.Issues, tc.score, tc.level, tc.issues)
		}
	}
}

func TestAnalyze_ScoreAlwaysInRange(t *testing.T) {
	inputs := []string{
		"a", "1", "!", " ", "aaaa", "1111", "0000000000000000000",
		"qwertyasdfzxcv1q2w3eqaz", "ÄÖÜäöü", "日本語のパスワード", "\x00\x01",
		"aB3$aB3$aB3$aB3$aB3$aB3$aB3$aB3$aB3$aB3$",
	}

	for _, in := range inputs {
		r := Analyze(in)
		if r.Score < 0 || r.Score > 100 {
			t.Errorf("Analyze(%q).Score out of range: %d", in, r.Score)
		}
		if r.Level != LevelForScore(r.Score) {
			t.Errorf("Analyze(%q).Level %s does not match score %d", in, r.Level, r.Score)
		}
	}
}

func TestAnalyze_MoreClassesNeverScoreLower(t *testing.T) {
	one := Analyze("abcdefgh")
	four := Analyze("Abcdef1!")
	if four.Score < one.Score {
		t.Errorf("Four classes should not score lower than one: %d < %d", four.Score, one.Score)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	for _, in := range []string{"", "password", "Tr0ub4dor&3", "qwerty123456admin"} {
		a, err := json.Marshal(Analyze(in))
		if err != nil {
			t.Fatalf("Should not fail marshalling report: %s", err)
		}
		b, err := json.Marshal(Analyze(in))
		if err != nil {
			t.Fatalf("Should not fail marshalling report: %s", err)
		}
		if string(a) != string(b) {
			t.Errorf("Reports for %q should be identical:\n%s\n%s", in, a, b)
		}
	}
}

func TestEntropy_MonotonicInLength(t *testing.T) {
	prev := 0.0
	for n := 1; n <= 64; n++ {
		e := Entropy(strings.Repeat("aB1!", n)[:n])
		if n >= 4 && e < prev {
			t.Errorf("Entropy should not decrease with length: %d chars %.2f < %.2f", n, e, prev)
		}
		if n >= 4 {
			prev = e
		}
	}

	prev = 0
	for n := 1; n <= 64; n++ {
		e := Entropy(strings.Repeat("x", n))
		if e < prev {
			t.Errorf("Entropy should not decrease with length: %d chars %.2f < %.2f", n, e, prev)
		}
		prev = e
	}
}

func TestEntropy_NoRecognisedClass(t *testing.T) {
	if e := Entropy("    "); e != 0 {
		t.Errorf("Whitespace only passwords should have no entropy, got %f", e)
	}
}
