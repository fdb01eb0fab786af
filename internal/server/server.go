// Package server exposes the ledger reports over a read-only JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/report"
)

// TaxRateLister is implemented by ledgers that keep tax rates, such as
// *store.Store.
type TaxRateLister interface {
	TaxRates(ctx context.Context) ([]model.TaxRate, error)
}

// Server serves report endpoints over a ledger.
type Server struct {
	q       ledger.Querier
	reports *report.Builder
	log     *zap.Logger
}

// New creates a Server. Report options are passed to report.NewBuilder; the
// server's logger is added to them.
func New(q ledger.Querier, log *zap.Logger, opts ...report.Option) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	opts = append([]report.Option{report.WithLogger(log)}, opts...)
	return &Server{q: q, reports: report.NewBuilder(q, opts...), log: log}
}

// Routes returns the HTTP handler with all routes registered.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/accounts", s.listAccounts)
	r.Get("/tax-rates", s.listTaxRates)

	r.Get("/trial-balance", s.trialBalance)
	r.Post("/trial-balance", s.trialBalance)
	r.Get("/account-balance/{account_name}", s.accountBalance)
	r.Post("/account-balance/{account_name}", s.accountBalance)
	r.Get("/report/{report_name}", s.statement)
	r.Post("/report/{report_name}", s.statement)

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
