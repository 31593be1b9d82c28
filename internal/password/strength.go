// Package password scores password strength for the register and reset forms.
package password

import (
	"unicode"
	"unicode/utf8"
)

const (
	MinLength     = 8
	ruleCount     = 5
	pointsPerRule = 100 / ruleCount
)

type rule func(pw string) bool

var rules = [ruleCount]rule{
	func(pw string) bool { return containsFunc(pw, unicode.IsLower) },
	func(pw string) bool { return containsFunc(pw, unicode.IsUpper) },
	func(pw string) bool { return containsFunc(pw, unicode.IsDigit) },
	func(pw string) bool { return containsFunc(pw, isSymbol) },
	func(pw string) bool { return utf8.RuneCountInString(pw) >= MinLength },
}

// Strength returns 20 points for each satisfied rule: a lowercase letter, an
// uppercase letter, a digit, a special symbol and at least MinLength characters.
func Strength(pw string) int {
	score := 0
	for _, r := range rules {
		if r(pw) {
			score += pointsPerRule
		}
	}
	return score
}

func containsFunc(s string, f func(rune) bool) bool {
	for _, r := range s {
		if f(r) {
			return true
		}
	}
	return false
}

func isSymbol(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) && unicode.IsPrint(r)
}

// Phrase is the meter shown next to a password field
type Phrase struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
	Color   string `json:"color"`
}

var phrases = [ruleCount]Phrase{
	{Label: "Inadecuado", Percent: 20, Color: "red"},
	{Label: "Fácilmente Vulnerable", Percent: 40, Color: "orange"},
	{Label: "Aún No Suficiente", Percent: 60, Color: "yellow"},
	{Label: "Aceptable", Percent: 80, Color: "blue"},
	{Label: "Altamente Seguro", Percent: 100, Color: "green"},
}

// PhraseFor maps a score to one of five bands of width 20: 0-20, 21-40, 41-60,
// 61-80 and 81-100. Scores outside 0-100 are clamped.
func PhraseFor(score int) Phrase {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	band := 0
	if score > 0 {
		band = (score - 1) / pointsPerRule
	}
	return phrases[band]
}
