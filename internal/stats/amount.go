package stats

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Amount is a parsed money range in lakh.
type Amount struct {
	Low  float64
	High float64
}

// Mid is the range midpoint, used for totals and averages.
func (a Amount) Mid() float64 { return (a.Low + a.High) / 2 }

var amountPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(crores?|cr|lakhs?|lacs?|l)?\b`)

// ParseBudget reads strings such as "₹50 Lakh", "₹2-5 Crore", "₹1,500 Crore"
// or "₹50 Lakh-1 Crore" into lakh. A number without its own unit takes the
// unit of the next number that has one ("2-5 Crore" is 2 to 5 crore);
// trailing unitless numbers take the last unit seen. ok is false when no
// unit is present at all.
func ParseBudget(s string) (Amount, bool) {
	// digit grouping, "1,500" or the Indian "12,50,000"
	s = strings.ReplaceAll(s, ",", "")
	matches := amountPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return Amount{}, false
	}

	values := make([]float64, len(matches))
	multipliers := make([]float64, len(matches))
	last := 0.0
	for i := len(matches) - 1; i >= 0; i-- {
		v, err := strconv.ParseFloat(matches[i][1], 64)
		if err != nil {
			return Amount{}, false
		}
		values[i] = v
		if m := unitMultiplier(matches[i][2]); m > 0 {
			last = m
		}
		multipliers[i] = last
	}
	// numbers after the final unit
	last = 0
	for i := range multipliers {
		if multipliers[i] > 0 {
			last = multipliers[i]
		} else if last > 0 {
			multipliers[i] = last
		}
	}
	if multipliers[0] == 0 {
		return Amount{}, false
	}

	a := Amount{Low: math.Inf(1), High: math.Inf(-1)}
	for i, v := range values {
		lakh := v * multipliers[i]
		a.Low = math.Min(a.Low, lakh)
		a.High = math.Max(a.High, lakh)
	}
	return a, true
}

func unitMultiplier(unit string) float64 {
	switch strings.ToLower(unit) {
	case "crore", "crores", "cr":
		return 100
	case "lakh", "lakhs", "lac", "lacs", "l":
		return 1
	}
	return 0
}

// FormatLakh renders a lakh amount, switching to Crore from 100 lakh on:
// 250 -> "₹2.5 Crore", 50 -> "₹50 Lakh".
func FormatLakh(v float64) string {
	if v >= 100 {
		return "₹" + oneDecimal(v/100) + " Crore"
	}
	return "₹" + oneDecimal(v) + " Lakh"
}

func oneDecimal(v float64) string {
	s := strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}
