package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/core"
)

type categoryBarView struct {
	Name    string
	Amount  string
	Percent int
}

type summaryData struct {
	Income          string
	Expenses        string
	Balance         string
	BalancePositive bool
	BalanceNegative bool
	HasData         bool
	Categories      []categoryBarView
}

// handleSummary renders the summary cards and the expense-by-category bars.
// The rendered partial is cached per store revision, so repeated polling is
// cheap until a transaction changes.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	cacheKey := fmt.Sprintf("summary@%d", s.store.Revision())
	if cached, ok := s.summaryCache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(cached))
		return
	}

	txns := s.store.List()
	stats := core.ComputeStats(txns)
	breakdown := core.CategoryBreakdown(txns)

	data := summaryData{
		Income:          formatAmount(stats.IncomeCents),
		Expenses:        formatAmount(stats.ExpenseCents),
		Balance:         formatAmount(stats.BalanceCents),
		BalancePositive: stats.BalanceCents > 0,
		BalanceNegative: stats.BalanceCents < 0,
		HasData:         len(txns) > 0,
	}

	var maxCents int64
	for _, c := range breakdown {
		if c.Cents > maxCents {
			maxCents = c.Cents
		}
	}
	for _, c := range breakdown {
		data.Categories = append(data.Categories, categoryBarView{
			Name:    c.Name,
			Amount:  formatAmount(c.Cents),
			Percent: barPercent(c.Cents, maxCents),
		})
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "summary", data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render summary", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.summaryCache.Set(cacheKey, buf.String())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// barPercent scales a category total against the largest one for bar widths.
// Small but non-zero totals stay visible at 2 percent.
func barPercent(cents, maxCents int64) int {
	if maxCents <= 0 || cents <= 0 {
		return 0
	}
	pct := int((cents*100 + maxCents/2) / maxCents)
	if pct < 2 {
		pct = 2
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
