package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"user-ledger-go/internal/ledger"
	"user-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Server is the thin HTTP boundary over the ledger engine. The caller's owner
// id comes from the X-User-Id header: the identity provider in front of this
// service has already authenticated the caller, so the id is trusted here
// without re-verification.
type Server struct {
	engine *ledger.Engine
}

func New(engine *ledger.Engine) *Server {
	return &Server{engine: engine}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/transfer", s.handleTransfer)
	mux.HandleFunc("/balance", s.handleBalance)
	mux.HandleFunc("/transfers", s.handleHistory)
	return mux
}

type transferRequest struct {
	ToOwnerId string          `json:"to_owner_id"`
	Amount    decimal.Decimal `json:"amount"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	fromOwnerId := r.Header.Get("X-User-Id")
	if fromOwnerId == "" {
		writeError(w, http.StatusUnauthorized, "missing X-User-Id header")
		return
	}

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.engine.Transfer(r.Context(), fromOwnerId, req.ToOwnerId, req.Amount); err != nil {
		writeTransferError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ownerId := r.Header.Get("X-User-Id")
	if ownerId == "" {
		writeError(w, http.StatusUnauthorized, "missing X-User-Id header")
		return
	}

	balance, err := s.engine.Balance(r.Context(), ownerId)
	if err != nil {
		writeTransferError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"owner_id": ownerId,
		"balance":  balance.String(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ownerId := r.Header.Get("X-User-Id")
	if ownerId == "" {
		writeError(w, http.StatusUnauthorized, "missing X-User-Id header")
		return
	}

	transfers, err := s.engine.History(r.Context(), ownerId, 50, 0)
	if err != nil {
		writeTransferError(w, err)
		return
	}

	type entry struct {
		Id          string `json:"id"`
		FromOwnerId string `json:"from_owner_id"`
		ToOwnerId   string `json:"to_owner_id"`
		Amount      string `json:"amount"`
		Status      string `json:"status"`
	}
	out := make([]entry, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, entry{t.Id, t.FromOwnerId, t.ToOwnerId, t.Amount.String(), t.Status})
	}
	writeJSON(w, http.StatusOK, out)
}

// writeTransferError maps engine error kinds to HTTP statuses. Caller errors
// are 4xx; a ledger inconsistency is the system's fault and reported as 500.
func writeTransferError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrSelfTransfer), errors.Is(err, store.ErrNonPositiveAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrLedgerInconsistency):
		zap.L().Error("Ledger inconsistency surfaced at HTTP boundary", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "ledger inconsistency, operator attention required")
	default:
		zap.L().Error("Unexpected transfer error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("Failed to encode response", zap.Error(err))
	}
}
