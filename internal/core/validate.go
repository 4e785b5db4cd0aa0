package core

import (
	"strings"
	"time"
)

// ValidateInput checks a candidate transaction's raw form fields and returns
// every violation at once, as human-readable messages in display order:
// description, amount, date, category, with the future-date check last.
// An empty slice means the input is valid.
func ValidateInput(description, amount, date, category string) []string {
	var violations []string

	if strings.TrimSpace(description) == "" {
		violations = append(violations, "Description is required")
	}

	if _, err := ParseSignedDecimalToCents(amount); err != nil {
		violations = append(violations, "Amount must be a non-zero number")
	}

	date = strings.TrimSpace(date)
	if date == "" {
		violations = append(violations, "Date is required")
	}

	if strings.TrimSpace(category) == "" {
		violations = append(violations, "Category is required")
	}

	if date != "" {
		parsed, err := time.ParseInLocation(DateLayout, date, time.Local)
		if err != nil {
			violations = append(violations, "Date must use the YYYY-MM-DD format")
		} else {
			// Same-day is allowed; future calendar days are not.
			now := time.Now()
			endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999000000, time.Local)
			if parsed.After(endOfToday) {
				violations = append(violations, "Date cannot be in the future")
			}
		}
	}

	return violations
}
