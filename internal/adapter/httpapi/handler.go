// Package httpapi exposes the teller operations over a thin JSON API.
// Handlers only decode requests, call the orchestrator and encode
// responses; every rule lives below this layer.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dquesada/tellercore-backend/internal/domain"
	"github.com/dquesada/tellercore-backend/internal/usecase/teller"
)

// Server is the HTTP adapter over the teller orchestrator.
type Server struct {
	svc    *teller.Service
	logger *zap.Logger
}

// NewServer creates a new HTTP adapter.
func NewServer(svc *teller.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{svc: svc, logger: logger}
}

// transactionDTO is the wire shape of a ledger record.
type transactionDTO struct {
	ID                string    `json:"id"`
	Kind              string    `json:"kind"`
	Amount            int64     `json:"amount"`
	CommissionCharged bool      `json:"commission_charged"`
	Commission        int64     `json:"commission"`
	Timestamp         time.Time `json:"timestamp"`
}

func toTransactionDTO(t domain.Transaction) transactionDTO {
	return transactionDTO{
		ID:                t.ID.String(),
		Kind:              string(t.Kind),
		Amount:            t.Amount,
		CommissionCharged: t.CommissionCharged,
		Commission:        t.Commission,
		Timestamp:         t.Timestamp,
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	c, err := s.svc.CreateClient(r.Context(), teller.CreateClientInput(req))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": c.ID, "name": c.Name})
}

func (s *Server) updateClientPhone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.svc.UpdateClientPhone(r.Context(), r.PathValue("id"), req.Phone); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) updateClientEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.svc.UpdateClientEmail(r.Context(), r.PathValue("id"), req.Email); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) openAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID       string `json:"client_id"`
		PIN            string `json:"pin"`
		InitialDeposit int64  `json:"initial_deposit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	a, err := s.svc.OpenAccount(r.Context(), teller.OpenAccountInput(req))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"number":  a.Number,
		"balance": a.Balance,
		"status":  string(a.Status),
	})
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	tx, err := s.svc.Deposit(r.Context(), r.PathValue("number"), req.Amount)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}

func (s *Server) depositUSD(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AmountUSD decimal.Decimal `json:"amount_usd"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	tx, err := s.svc.DepositUSD(r.Context(), r.PathValue("number"), req.AmountUSD)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN    string `json:"pin"`
		Code   string `json:"code"`
		Amount int64  `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	tx, err := s.svc.WithdrawWithConfirmation(r.Context(), teller.WithdrawInput{
		AccountNumber: r.PathValue("number"),
		PIN:           req.PIN,
		Code:          req.Code,
		Amount:        req.Amount,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}

func (s *Server) withdrawUSD(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN       string          `json:"pin"`
		Code      string          `json:"code"`
		AmountUSD decimal.Decimal `json:"amount_usd"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	tx, err := s.svc.WithdrawUSD(r.Context(), teller.WithdrawUSDInput{
		AccountNumber: r.PathValue("number"),
		PIN:           req.PIN,
		Code:          req.Code,
		AmountUSD:     req.AmountUSD,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}

func (s *Server) transfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Origin      string `json:"origin"`
		PIN         string `json:"pin"`
		Code        string `json:"code"`
		Destination string `json:"destination"`
		Amount      int64  `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	err := s.svc.Transfer(r.Context(), teller.TransferInput{
		OriginNumber:      req.Origin,
		PIN:               req.PIN,
		Code:              req.Code,
		DestinationNumber: req.Destination,
		Amount:            req.Amount,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "transferred"})
}

// balance and the other queries take the PIN in the request body: the
// PIN is a credential and must never appear in a URL or access log.
func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	balance, err := s.svc.Balance(r.Context(), r.PathValue("number"), req.PIN)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}

func (s *Server) balanceUSD(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	balance, err := s.svc.BalanceUSD(r.Context(), r.PathValue("number"), req.PIN)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"balance_usd": balance.String()})
}

func (s *Server) transactions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	txs, err := s.svc.Transactions(r.Context(), r.PathValue("number"), req.PIN)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]transactionDTO, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionDTO(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	sum, err := s.svc.AccountSummary(r.Context(), r.PathValue("number"), req.PIN)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":              string(sum.Status),
		"total_deposited":     sum.TotalDeposited,
		"total_withdrawn":     sum.TotalWithdrawn,
		"deposit_commission":  sum.DepositCommission,
		"withdraw_commission": sum.WithdrawCommission,
	})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	st, err := s.svc.AccountStatus(r.Context(), r.PathValue("number"), req.PIN)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(st)})
}

func (s *Server) changePIN(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewPIN string `json:"new_pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.svc.ChangePIN(r.Context(), r.PathValue("number"), req.NewPIN); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.svc.DeleteAccount(r.Context(), r.PathValue("number"), req.PIN); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) rates(w http.ResponseWriter, r *http.Request) {
	rates, err := s.svc.ExchangeRates(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"buy":  rates.Buy.String(),
		"sell": rates.Sell.String(),
	})
}
