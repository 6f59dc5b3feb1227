package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dquesada/tellercore-backend/internal/domain"
)

func TestBCCRClient_ReadsRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rates", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"buy": "610.50", "sell": "600.75"}`))
	}))
	defer srv.Close()

	c := NewBCCRClient(srv.URL)

	buy, err := c.BuyRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "610.5", buy.String())

	sell, err := c.SellRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "600.75", sell.String())
}

func TestBCCRClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewBCCRClient(srv.URL)
	_, err := c.BuyRate(context.Background())
	assert.ErrorIs(t, err, domain.ErrCollaboratorUnavailable)
}

func TestBCCRClient_BadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewBCCRClient(srv.URL)
	_, err := c.SellRate(context.Background())
	assert.ErrorIs(t, err, domain.ErrCollaboratorUnavailable)
}

func TestBCCRClient_RejectsNonPositiveRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"buy": "0", "sell": "600.75"}`))
	}))
	defer srv.Close()

	c := NewBCCRClient(srv.URL)
	_, err := c.BuyRate(context.Background())
	assert.ErrorIs(t, err, domain.ErrCollaboratorUnavailable)
}

func TestBCCRClient_Unreachable(t *testing.T) {
	c := NewBCCRClient("http://127.0.0.1:1")
	_, err := c.BuyRate(context.Background())
	assert.ErrorIs(t, err, domain.ErrCollaboratorUnavailable)
}

func TestStatic(t *testing.T) {
	s := Static{
		Buy:  decimal.RequireFromString("610.50"),
		Sell: decimal.RequireFromString("600.75"),
	}
	buy, err := s.BuyRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "610.5", buy.String())
	sell, err := s.SellRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "600.75", sell.String())
}
