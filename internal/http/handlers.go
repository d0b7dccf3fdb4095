package http

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"runway/internal/core"
	"runway/internal/engine"
	"runway/internal/remote"
)

type transactionRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	IsIncome    bool   `json:"isIncome"`
	Date        string `json:"date"`
	Category    string `json:"category"`
}

type recurringRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	IsIncome    bool   `json:"isIncome"`
	StartDate   string `json:"startDate"`
	Category    string `json:"category"`
}

type amountRequest struct {
	Amount string `json:"amount"`
}

type balancesRequest struct {
	Bank string `json:"bank"`
	Debt string `json:"debt"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Transactions())
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := core.ParseDecimal(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount: "+err.Error())
		return
	}

	tx := core.Transaction{
		ID:          uuid.NewString(),
		Amount:      amount,
		Description: sanitizeInput(req.Description),
		IsIncome:    req.IsIncome,
		Date:        core.ParseDate(req.Date),
	}
	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx.Category = s.resolveCategory(r, req.Category, tx.Description, tx.IsIncome)

	s.store.Add(r.Context(), tx)
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleListRecurring(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Recurring())
}

func (s *Server) handleCreateRecurring(w http.ResponseWriter, r *http.Request) {
	var req recurringRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := core.ParseDecimal(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount: "+err.Error())
		return
	}

	start := core.ParseDate(req.StartDate)
	rt := core.RecurringTransaction{
		Transaction: core.Transaction{
			ID:          uuid.NewString(),
			Amount:      amount,
			Description: sanitizeInput(req.Description),
			IsIncome:    req.IsIncome,
			Date:        start,
		},
		StartDate: start,
	}
	if err := rt.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rt.Category = s.resolveCategory(r, req.Category, rt.Description, rt.IsIncome)

	s.store.AddRecurring(r.Context(), rt)
	writeJSON(w, http.StatusCreated, rt)
}

// resolveCategory normalizes an explicit category or asks the classifier when
// none was provided. Classification is total, so this never fails a request.
func (s *Server) resolveCategory(r *http.Request, requested, description string, income bool) core.Category {
	if requested != "" {
		return core.NormalizeCategory(core.Category(requested), income)
	}
	if s.classifier == nil {
		return core.CategoryOther
	}
	cat := s.classifier.Classify(r.Context(), description, income)
	slog.DebugContext(r.Context(), "Classified transaction", "description", description, "category", cat)
	return cat
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	s.store.Delete(r.Context(), id, parseBoolQuery(r, "recurring"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEditAmount(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	var req amountRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := core.ParseDecimal(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount: "+err.Error())
		return
	}

	s.store.EditAmount(r.Context(), id, amount, parseBoolQuery(r, "recurring"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	b := s.store.Balances()
	writeJSON(w, http.StatusOK, map[string]any{
		"bank":     b.Bank,
		"debt":     b.Debt,
		"netWorth": core.Round2(b.NetWorth()),
	})
}

func (s *Server) handleSetBalances(w http.ResponseWriter, r *http.Request) {
	var req balancesRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Bank != "" {
		if _, err := core.ParseDecimal(req.Bank); err != nil {
			writeError(w, http.StatusBadRequest, "invalid bank balance: "+err.Error())
			return
		}
	}
	if req.Debt != "" {
		if _, err := core.ParseDecimal(req.Debt); err != nil {
			writeError(w, http.StatusBadRequest, "invalid debt balance: "+err.Error())
			return
		}
	}

	s.store.SetBalances(r.Context(), req.Bank, req.Debt)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRunway(w http.ResponseWriter, r *http.Request) {
	ref, err := parseDateQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	includeInitial := parseBoolQuery(r, "includeInitialBalances")

	snap := s.store.Snapshot()
	points := engine.BuildRunway(
		includeInitial,
		snap.Balances.BankAmount(),
		snap.Balances.DebtAmount(),
		snap.Transactions,
		snap.Recurring,
		ref,
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"includeInitialBalances": includeInitial,
		"points":                 points,
	})
}

func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	target, err := parseDateQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := s.store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"balance":   engine.MonthlyBalance(target, snap.Transactions, snap.Recurring),
		"recurring": engine.MonthlyRecurringTotals(target, snap.Recurring),
	})
}

func (s *Server) handleYearSummary(w http.ResponseWriter, r *http.Request) {
	year, err := parseYearQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := s.store.Snapshot()
	writeJSON(w, http.StatusOK, engine.AnnualTotals(year, snap.Transactions, snap.Recurring))
}

func (s *Server) handleCategoryTotals(w http.ResponseWriter, r *http.Request) {
	refMonth, err := parseDateQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := s.store.Snapshot()
	writeJSON(w, http.StatusOK, engine.CategoryTotals(snap.Transactions, snap.Recurring, refMonth))
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"expense": core.ExpenseCategories(),
		"income":  core.IncomeCategories(),
	})
}

// handleRemoteLoad pulls the user's collections from the remote backend and
// replaces local state with them. Whatever is local at that moment is lost.
func (s *Server) handleRemoteLoad(w http.ResponseWriter, r *http.Request) {
	if s.remote == nil {
		writeError(w, http.StatusServiceUnavailable, "no remote backend configured")
		return
	}

	snap, err := remote.Fetch(r.Context(), s.remote, s.userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to fetch remote snapshot", "error", err, "user_id", s.userID)
		writeError(w, http.StatusBadGateway, "fetch remote data: "+err.Error())
		return
	}

	s.store.Restore(r.Context(), snap)

	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": len(snap.Transactions),
		"recurring":    len(snap.Recurring),
	})
}
