package services

import "fmt"

// Band is how a match score is presented.
type Band struct {
	Label string
	Color string // ANSI color escape
}

const (
	ansiGreen  = "\033[32m"
	ansiOrange = "\033[38;5;208m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiReset  = "\033[0m"
)

// ScoreBand maps a backend match score (0-100) to its display band.
func ScoreBand(score float64) Band {
	switch {
	case score >= 80:
		return Band{Label: "strong", Color: ansiGreen}
	case score >= 60:
		return Band{Label: "good", Color: ansiOrange}
	case score >= 40:
		return Band{Label: "fair", Color: ansiYellow}
	default:
		return Band{Label: "weak", Color: ansiRed}
	}
}

// FormatScore renders a score badge such as "87% strong", colored when
// color is true.
func FormatScore(score float64, color bool) string {
	b := ScoreBand(score)
	text := fmt.Sprintf("%.0f%% %s", score, b.Label)
	if !color {
		return text
	}
	return b.Color + text + ansiReset
}
