package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/report"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, ErrorResponse{Error: code, ErrorDescription: description})
}

// period reads start_date and end_date from the query string or form body.
func period(r *http.Request) (ledger.Period, error) {
	return ledger.ParsePeriod(r.FormValue("start_date"), r.FormValue("end_date"))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ledger.ErrInvalidDateRange) {
		writeJSONError(w, http.StatusBadRequest, "invalid_date_range", err.Error())
		return
	}
	s.log.Error("building report", zap.String("path", r.URL.Path), zap.Error(err))
	writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to build report")
}

// health handles GET /healthz.
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// listAccounts handles GET /accounts.
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accts, err := s.q.QueryAccounts(r.Context(), ledger.AllAccounts())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accounts": accts})
}

// listTaxRates handles GET /tax-rates. A ledger without tax rates lists none.
func (s *Server) listTaxRates(w http.ResponseWriter, r *http.Request) {
	rates := []model.TaxRate{}
	if l, ok := s.q.(TaxRateLister); ok {
		got, err := l.TaxRates(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if got != nil {
			rates = got
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tax_rates": rates})
}

// trialBalance handles /trial-balance.
func (s *Server) trialBalance(w http.ResponseWriter, r *http.Request) {
	p, err := period(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	tb, err := s.reports.TrialBalance(r.Context(), p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tb)
}

// accountBalance handles /account-balance/{account_name}. No matching
// transactions yields an empty object.
func (s *Server) accountBalance(w http.ResponseWriter, r *http.Request) {
	p, err := period(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ab, err := s.reports.AccountBalance(r.Context(), chi.URLParam(r, "account_name"), p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if ab == nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, ab)
}

// statement handles /report/{report_name}.
func (s *Server) statement(w http.ResponseWriter, r *http.Request) {
	kind, err := report.ParseKind(chi.URLParam(r, "report_name"))
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	p, err := period(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	v, err := s.reports.Statement(r.Context(), kind, p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
