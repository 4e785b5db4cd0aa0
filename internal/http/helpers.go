package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/core"
)

// formatAmount formats cents as a KES currency string, e.g. "KES 1,234.56".
// The sign is dropped; callers style income and expense separately.
func formatAmount(cents int64) string {
	if cents < 0 {
		cents = -cents
	}
	units := cents / 100
	rem := cents % 100
	return "KES " + groupThousands(units) + "." + fmt.Sprintf("%02d", rem)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatDisplayDate renders a stored YYYY-MM-DD date as "Jan 2, 2006".
// Unparseable values come back unchanged.
func formatDisplayDate(date string) string {
	d, err := time.Parse(core.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Jan 2, 2006")
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
