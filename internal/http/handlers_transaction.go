package http

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/core"
)

// handleCreateTransaction records a new transaction from the add form.
// Validation failures return a 422 listing every violation at once.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	description := sanitizeInput(r.FormValue("description"))
	amount := sanitizeInput(r.FormValue("amount"))
	date := sanitizeInput(r.FormValue("date"))
	category := sanitizeInput(r.FormValue("category"))

	if violations := core.ValidateInput(description, amount, date, category); len(violations) > 0 {
		joined := strings.Join(violations, ". ")
		slog.InfoContext(r.Context(), "Transaction rejected", "violations", len(violations))
		UnprocessableEntityError(joined).
			TriggerErrorNotification(joined).
			Write(w)
		return
	}

	cents, err := core.ParseSignedDecimalToCents(amount)
	if err != nil {
		UnprocessableEntityError("Amount must be a non-zero number").
			TriggerErrorNotification("Amount must be a non-zero number").
			Write(w)
		return
	}

	txn, err := s.store.Add(r.Context(), description, cents, date, category)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to add transaction", "error", err)
		InternalServerError("Error adding transaction. Please try again.").
			TriggerErrorNotification("Error adding transaction. Please try again.").
			Write(w)
		return
	}

	message := fmt.Sprintf("%s of %s added successfully!", txn.Type(), formatAmount(txn.AmountCents))
	NewHTMXResponse().
		Status(http.StatusCreated).
		BodyHTML(`<div class="message success">` + template.HTMLEscapeString(message) + `</div>`).
		TriggerFormReset().
		TriggerTransactionsChanged().
		TriggerSummaryRefresh().
		TriggerSuccessNotification(message).
		Write(w)
}

// handleDeleteTransaction removes a transaction by id. The id may arrive as
// form data or a JSON body, depending on how the client issued the request.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	id := parser.Get("id")
	if id == "" {
		id = strings.TrimSpace(r.URL.Query().Get("id"))
	}
	if id == "" {
		BadRequestError("Transaction id is required").Write(w)
		return
	}

	removed, err := s.store.Delete(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete transaction", "id", id, "error", err)
		InternalServerError("Error deleting transaction.").
			TriggerErrorNotification("Error deleting transaction.").
			Write(w)
		return
	}
	if !removed {
		NotFoundError("Error deleting transaction.").
			TriggerErrorNotification("Error deleting transaction.").
			Write(w)
		return
	}

	NewHTMXResponse().
		Status(http.StatusOK).
		TriggerTransactionsChanged().
		TriggerSummaryRefresh().
		TriggerSuccessNotification("Transaction deleted successfully!").
		Write(w)
}

// txnView is the per-row template model for the transaction table.
type txnView struct {
	ID          string
	Description string
	Amount      string
	Date        string
	Category    string
	Type        string
	IsIncome    bool
}

type transactionListData struct {
	Transactions []txnView
	Query        string
	Category     string
	Filtered     bool
	Total        int
}

// handleTransactionList renders the table partial, optionally narrowed by a
// free-text search over description and category and an exact category filter.
func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	categoryFilter := strings.TrimSpace(r.URL.Query().Get("category"))

	txns := s.store.List()
	data := transactionListData{
		Query:    r.URL.Query().Get("q"),
		Category: categoryFilter,
		Filtered: query != "" || categoryFilter != "",
		Total:    len(txns),
	}

	for _, t := range txns {
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Description), query) &&
			!strings.Contains(strings.ToLower(t.Category), query) {
			continue
		}
		if categoryFilter != "" && t.Category != categoryFilter {
			continue
		}
		data.Transactions = append(data.Transactions, txnView{
			ID:          t.ID,
			Description: t.Description,
			Amount:      formatAmount(t.AmountCents),
			Date:        formatDisplayDate(t.Date),
			Category:    t.Category,
			Type:        t.Type(),
			IsIncome:    t.IsIncome(),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "transactions_table", data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render transaction list", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
