package fusion

import (
	"regexp"
	"strconv"
	"strings"
)

var dosePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(mcg|mg|g|ml|iu)\b`)

// NormalizeDose rewrites a dose string into a canonical "<amount> <unit>"
// form: a space always separates the amount from the unit, units are
// lowercased, gram doses become milligrams, and runs of whitespace
// collapse. "20mg", "20 mg" and "0.02 g" all compare equal downstream.
func NormalizeDose(dose string) string {
	dose = dosePattern.ReplaceAllStringFunc(dose, func(m string) string {
		parts := dosePattern.FindStringSubmatch(m)
		amount, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return m
		}
		unit := strings.ToLower(parts[2])
		if unit == "g" {
			amount *= 1000
			unit = "mg"
		}
		return strconv.FormatFloat(amount, 'f', -1, 64) + " " + unit
	})
	return strings.Join(strings.Fields(dose), " ")
}
