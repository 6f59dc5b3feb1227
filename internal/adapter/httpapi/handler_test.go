package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dquesada/tellercore-backend/internal/adapter/rates"
	"github.com/dquesada/tellercore-backend/internal/domain"
	"github.com/dquesada/tellercore-backend/internal/idgen"
	"github.com/dquesada/tellercore-backend/internal/usecase/teller"
	"github.com/dquesada/tellercore-backend/internal/vault"
)

// In-memory repository fakes: enough persistence for end-to-end handler
// round trips without a database.

type memClients struct {
	m map[string]*domain.Client
}

func (s *memClients) LoadAll(ctx context.Context) ([]*domain.Client, error) {
	out := make([]*domain.Client, 0, len(s.m))
	for _, c := range s.m {
		out = append(out, c)
	}
	return out, nil
}

func (s *memClients) Save(ctx context.Context, c *domain.Client) error {
	s.m[c.ID] = c
	return nil
}

type memAccounts struct {
	m map[string]*domain.Account
}

func (s *memAccounts) LoadAll(ctx context.Context) ([]*domain.Account, error) {
	out := make([]*domain.Account, 0, len(s.m))
	for _, a := range s.m {
		out = append(out, a)
	}
	return out, nil
}

func (s *memAccounts) Save(ctx context.Context, a *domain.Account) error {
	s.m[a.Number] = a
	return nil
}

func (s *memAccounts) Delete(ctx context.Context, number string) error {
	delete(s.m, number)
	return nil
}

type memTxs struct {
	m map[string][]domain.Transaction
}

func (s *memTxs) LoadByAccount(ctx context.Context, number string) ([]domain.Transaction, error) {
	return s.m[number], nil
}

func (s *memTxs) Append(ctx context.Context, number string, tx domain.Transaction) error {
	s.m[number] = append(s.m[number], tx)
	return nil
}

func (s *memTxs) DeleteByAccount(ctx context.Context, number string) error {
	delete(s.m, number)
	return nil
}

type fixedCodes struct {
	code string
}

func (f fixedCodes) SendCode(ctx context.Context, phone string) (string, error) {
	return f.code, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	key := make([]byte, vault.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	v, err := vault.New(key)
	require.NoError(t, err)

	svc := teller.NewService(
		v,
		rates.Static{
			Buy:  decimal.RequireFromString("610.50"),
			Sell: decimal.RequireFromString("600.75"),
		},
		fixedCodes{code: "AZUL"},
		idgen.NewULIDGenerator(),
		&memClients{m: make(map[string]*domain.Client)},
		&memAccounts{m: make(map[string]*domain.Account)},
		&memTxs{m: make(map[string][]domain.Transaction)},
		nil,
	)
	require.NoError(t, svc.Load(context.Background()))
	return NewServer(svc, nil).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func openAccount(t *testing.T, h http.Handler, clientID, pin string, initial int64) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/v1/accounts", map[string]any{
		"client_id": clientID, "pin": pin, "initial_deposit": initial,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["number"].(string)
}

func TestFullTellerFlow(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/clients", map[string]string{
		"id": "c1", "name": "Ana", "phone": "88881234", "email": "ana@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	number := openAccount(t, h, "c1", "123456", 10000)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/accounts/"+number+"/deposit", map[string]any{"amount": 500})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/api/v1/accounts/"+number+"/withdraw", map[string]any{
		"pin": "123456", "code": "AZUL", "amount": 1000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "WITHDRAWAL", body["kind"])
	assert.Equal(t, float64(1000), body["amount"])

	rec = doJSON(t, h, http.MethodPost, "/api/v1/accounts/"+number+"/balance", map[string]string{"pin": "123456"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(9500), decodeBody(t, rec)["balance"])

	rec = doJSON(t, h, http.MethodPost, "/api/v1/accounts/"+number+"/transactions", map[string]string{"pin": "123456"})
	require.Equal(t, http.StatusOK, rec.Code)
	var txs []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &txs))
	assert.Len(t, txs, 3)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/accounts/"+number+"/summary", map[string]string{"pin": "123456"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(10500), decodeBody(t, rec)["total_deposited"])
}

func TestTransferEndpoint(t *testing.T) {
	h := newTestRouter(t)
	doJSON(t, h, http.MethodPost, "/api/v1/clients", map[string]string{
		"id": "c1", "name": "Ana", "phone": "88881234", "email": "ana@example.com",
	})
	origin := openAccount(t, h, "c1", "123456", 10000)
	dest := openAccount(t, h, "c1", "654321", 5000)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/transfers", map[string]any{
		"origin": origin, "pin": "123456", "code": "AZUL",
		"destination": dest, "amount": 2000,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/api/v1/accounts/"+dest+"/balance", map[string]string{"pin": "654321"})
	assert.Equal(t, float64(7000), decodeBody(t, rec)["balance"])
}

func TestErrorStatusMapping(t *testing.T) {
	h := newTestRouter(t)
	doJSON(t, h, http.MethodPost, "/api/v1/clients", map[string]string{
		"id": "c1", "name": "Ana", "phone": "88881234", "email": "ana@example.com",
	})
	number := openAccount(t, h, "c1", "123456", 1000)

	// Wrong PIN -> 401.
	rec := doJSON(t, h, http.MethodPost, "/api/v1/accounts/"+number+"/balance", map[string]string{"pin": "000000"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown account -> 404.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/accounts/CTA-GHOST/balance", map[string]string{"pin": "123456"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Insufficient funds -> 409.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/accounts/"+number+"/withdraw", map[string]any{
		"pin": "123456", "code": "AZUL", "amount": 999999,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Wrong confirmation code -> 403.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/accounts/"+number+"/withdraw", map[string]any{
		"pin": "123456", "code": "ROJO", "amount": 100,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Bad PIN format on account creation -> 400.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/accounts", map[string]any{
		"client_id": "c1", "pin": "12", "initial_deposit": 1000,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Duplicate client -> 409.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/clients", map[string]string{
		"id": "c1", "name": "Ana", "phone": "88881234", "email": "ana@example.com",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestErrStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.NewFormatError("pin"), http.StatusBadRequest},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrAuthenticationFailed, http.StatusUnauthorized},
		{domain.ErrAccountLocked, http.StatusForbidden},
		{domain.ErrConfirmationFailed, http.StatusForbidden},
		{domain.ErrOwnershipMismatch, http.StatusForbidden},
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrClientNotFound, http.StatusNotFound},
		{domain.ErrInsufficientFunds, http.StatusConflict},
		{domain.ErrCollaboratorUnavailable, http.StatusBadGateway},
		{domain.ErrCrypto, http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errStatus(tt.err), fmt.Sprintf("error %v", tt.err))
	}
}

func TestRatesEndpoint(t *testing.T) {
	h := newTestRouter(t)
	rec := doJSON(t, h, http.MethodGet, "/api/v1/rates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "610.5", body["buy"])
	assert.Equal(t, "600.75", body["sell"])
}

func TestChangePINAndDeleteEndpoints(t *testing.T) {
	h := newTestRouter(t)
	doJSON(t, h, http.MethodPost, "/api/v1/clients", map[string]string{
		"id": "c1", "name": "Ana", "phone": "88881234", "email": "ana@example.com",
	})
	number := openAccount(t, h, "c1", "123456", 10000)

	rec := doJSON(t, h, http.MethodPut, "/api/v1/accounts/"+number+"/pin", map[string]string{"new_pin": "654321"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/accounts/"+number+"/balance", map[string]string{"pin": "654321"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/accounts/"+number, map[string]string{"pin": "654321"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/accounts/"+number+"/balance", map[string]string{"pin": "654321"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
