package teller

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dquesada/tellercore-backend/internal/domain"
)

// Rates carries one fresh read of the buy and sell exchange rates.
// Successive reads may drift; no consistency is guaranteed between a
// query and a later money movement.
type Rates struct {
	Buy  decimal.Decimal // colones per USD bought
	Sell decimal.Decimal // colones per USD sold
}

// ExchangeRates reads both rates fresh from the external provider.
func (s *Service) ExchangeRates(ctx context.Context) (Rates, error) {
	buy, err := s.rates.BuyRate(ctx)
	if err != nil {
		return Rates{}, err
	}
	sell, err := s.rates.SellRate(ctx)
	if err != nil {
		return Rates{}, err
	}
	return Rates{Buy: buy, Sell: sell}, nil
}

// DepositUSD converts a USD amount to colones at the buy rate,
// round(usd × buy), and deposits the result.
func (s *Service) DepositUSD(ctx context.Context, accountNumber string, usd decimal.Decimal) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buy, err := s.rates.BuyRate(ctx)
	if err != nil {
		return domain.Transaction{}, err
	}
	colones := usd.Mul(buy).Round(0).IntPart()
	return s.deposit(ctx, accountNumber, colones)
}

// WithdrawUSDInput represents the input for a confirmed USD withdrawal
type WithdrawUSDInput struct {
	AccountNumber string
	PIN           string
	Code          string
	AmountUSD     decimal.Decimal
}

// WithdrawUSD converts a USD amount to colones at the sell rate,
// round(usd × sell), and runs the confirmed withdrawal sequence for
// the result.
func (s *Service) WithdrawUSD(ctx context.Context, input WithdrawUSDInput) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sell, err := s.rates.SellRate(ctx)
	if err != nil {
		return domain.Transaction{}, err
	}
	return s.withdraw(ctx, WithdrawInput{
		AccountNumber: input.AccountNumber,
		PIN:           input.PIN,
		Code:          input.Code,
		Amount:        input.AmountUSD.Mul(sell).Round(0).IntPart(),
	})
}

// BalanceUSD reports the authenticated balance converted to USD at the
// buy rate, rounded to 2 decimals.
func (s *Service) BalanceUSD(ctx context.Context, accountNumber, pin string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.findAccount(accountNumber)
	if err != nil {
		return decimal.Zero, err
	}
	if err := s.authenticate(ctx, a, pin); err != nil {
		return decimal.Zero, err
	}
	buy, err := s.rates.BuyRate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(a.Balance).Div(buy).Round(2), nil
}
