// Package numinput sanitizes numeric text while the user is typing it.
//
// A Handler is applied to every keystroke of a controlled text input. It
// never rejects input: unwanted characters are stripped, extra decimals are
// truncated and values above the configured maximum are clamped.
package numinput

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// MaxFractionDigits is the number of digits kept after the decimal point.
const MaxFractionDigits = 2

// Config configures a Handler.
type Config struct {
	Max           float64 `json:"max" mapstructure:"max"`
	AllowDecimals bool    `json:"allow_decimals" mapstructure:"allow_decimals"`
}

// Handler transforms raw input text into sanitized text. Applying a Handler
// to its own output returns the output unchanged.
type Handler func(text string) string

// NewHandler returns a Handler for cfg. Negative maximums are treated as 0.
// In integer mode the maximum is floored; in decimal mode it is truncated to
// MaxFractionDigits, so the clamped text is itself a fixed point.
func NewHandler(cfg Config) Handler {
	limit := cfg.Max
	if limit < 0 || math.IsNaN(limit) {
		limit = 0
	}

	var ceiling string
	if cfg.AllowDecimals {
		ceiling = truncateFraction(strconv.FormatFloat(limit, 'f', -1, 64))
	} else {
		limit = math.Floor(limit)
		ceiling = strconv.FormatFloat(limit, 'f', 0, 64)
	}

	return func(text string) string {
		if text == "" {
			return ""
		}

		var clean string
		if cfg.AllowDecimals {
			clean = keepDecimal(text)
		} else {
			clean = keepDigits(text)
		}

		if exceeds(clean, limit) {
			return ceiling
		}
		return clean
	}
}

// keepDigits drops everything but digits, including decimal points.
func keepDigits(text string) string {
	var b strings.Builder
	for _, r := range text {
		if d, ok := asciiDigit(r); ok {
			b.WriteRune(d)
		}
	}
	return b.String()
}

// keepDecimal keeps digits and the first '.', and truncates the fraction.
// Dots after the first are discarded.
func keepDecimal(text string) string {
	var b strings.Builder
	seenDot := false
	fraction := 0
	for _, r := range text {
		if r == '.' {
			if !seenDot {
				seenDot = true
				b.WriteRune(r)
			}
			continue
		}
		d, ok := asciiDigit(r)
		if !ok {
			continue
		}
		if seenDot {
			if fraction == MaxFractionDigits {
				continue
			}
			fraction++
		}
		b.WriteRune(d)
	}
	return b.String()
}

// asciiDigit maps ASCII, Arabic-Indic and Extended Arabic-Indic (Urdu
// keyboard) digits to ASCII.
func asciiDigit(r rune) (rune, bool) {
	switch {
	case r >= '0' && r <= '9':
		return r, true
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠'), true
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰'), true
	}
	return 0, false
}

func truncateFraction(s string) string {
	dot := strings.IndexByte(s, '.')
	if dot < 0 || len(s)-dot-1 <= MaxFractionDigits {
		return s
	}
	return s[:dot+1+MaxFractionDigits]
}

// exceeds reports whether clean parses to a value above limit. Partial input
// such as "." never exceeds.
func exceeds(clean string, limit float64) bool {
	if clean == "" || clean == "." {
		return false
	}
	n, err := strconv.ParseFloat(clean, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return false
	}
	return n > limit
}
