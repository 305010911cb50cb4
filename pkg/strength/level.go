// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import "fmt"

// Level is the qualitative bucket a score falls into.
type Level int

const (
	Empty Level = iota
	VeryWeak
	Weak
	Medium
	Strong
	VeryStrong
)

var levelNames = [...]string{
	Empty:      "Empty",
	VeryWeak:   "Very weak",
	Weak:       "Weak",
	Medium:     "Medium",
	Strong:     "Strong",
	VeryStrong: "Very strong",
}

func (l Level) String() string {
	if l < Empty || l > VeryStrong {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// MarshalText lets the level travel as its name in JSON payloads.
func (l Level) MarshalText() ([]byte, error) {
	if l < Empty || l > VeryStrong {
		return nil, fmt.Errorf("unknown strength level %d", int(l))
	}
	return []byte(levelNames[l]), nil
}

// LevelForScore maps an already clamped score to its level. Empty is never
// returned here, it is only assigned to empty passwords before scoring.
func LevelForScore(score int) Level {
	switch {
	case score < 20:
		return VeryWeak
	case score < 40:
		return Weak
	case score < 60:
		return Medium
	case score < 80:
		return Strong
	default:
		return VeryStrong
	}
}
