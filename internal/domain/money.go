package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency is used for amounts the remote store reports without a unit.
var DefaultCurrency = currency.INR

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) Mul(quantity int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(quantity))),
		Currency: m.Currency,
	}
}

func (m Money) Add(other Money) Money {
	unit := m.Currency
	if unit == (currency.Unit{}) {
		unit = other.Currency
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: unit}
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency.String())
}

type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.Amount, Currency: m.Currency.String()})
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	unit := DefaultCurrency
	if raw.Currency != "" {
		parsed, err := currency.ParseISO(raw.Currency)
		if err != nil {
			return fmt.Errorf("currency[%s] is not valid: %w", raw.Currency, err)
		}
		unit = parsed
	}

	m.Amount = raw.Amount
	m.Currency = unit
	return nil
}
