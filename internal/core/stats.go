package core

// Stats aggregates the full transaction list into the three headline figures.
// ExpenseCents is a non-negative magnitude.
type Stats struct {
	IncomeCents  int64
	ExpenseCents int64
	BalanceCents int64
}

// CategoryAmount represents an expense total aggregated by category name.
type CategoryAmount struct {
	Name  string
	Cents int64
}

// ComputeStats returns income, expense and balance totals for the given list.
// An empty list yields all zeroes.
func ComputeStats(txns []Transaction) Stats {
	var s Stats
	for _, t := range txns {
		if t.AmountCents > 0 {
			s.IncomeCents += t.AmountCents
		} else {
			s.ExpenseCents += -t.AmountCents
		}
	}
	s.BalanceCents = s.IncomeCents - s.ExpenseCents
	return s
}

// CategoryBreakdown totals expense magnitudes per category. The result keeps
// first-seen category order among expense records; it is not sorted.
func CategoryBreakdown(txns []Transaction) []CategoryAmount {
	index := make(map[string]int)
	var out []CategoryAmount
	for _, t := range txns {
		if t.AmountCents >= 0 {
			continue
		}
		i, seen := index[t.Category]
		if !seen {
			index[t.Category] = len(out)
			out = append(out, CategoryAmount{Name: t.Category})
			i = len(out) - 1
		}
		out[i].Cents += -t.AmountCents
	}
	return out
}
