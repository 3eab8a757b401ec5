package source

import (
	"regexp"
	"strings"
)

// salaryPattern matches a currency amount with optional thousands
// separators, an optional "k" unit, an optional dash-joined upper bound of
// the same shape, and an optional trailing unit suffix. Longer suffix
// alternatives come first so "/year" is not cut short at "/yr".
var salaryPattern = regexp.MustCompile(`(?i)\$[\d,]+k?(\s*[-–]\s*\$?[\d,]+k?)?(\s*(USD|/year|/yr|annually))?`)

// ExtractSalary returns the first salary-looking substring in text, or the
// empty string when no currency amount is visible.
func ExtractSalary(text string) string {
	return strings.TrimSpace(salaryPattern.FindString(text))
}
