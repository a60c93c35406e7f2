// Package rate converts operator-entered foreign-currency amounts into Kwanza.
// It backs both the standalone calculator and the Kz amount on transaction entry.
package rate

import (
	"github.com/shopspring/decimal"

	"adox/apperr"
	"adox/transaction"
)

// Precision is the display precision of a Kwanza amount.
const Precision = 2

// Convert computes amount * rate in Kwanza, rounded to the display precision.
// It has no side effects and fails with a validation error when the amount is
// negative, the rate is not positive, or the currency is not accepted.
func Convert(amount decimal.Decimal, currency transaction.Currency, rate decimal.Decimal) (decimal.Decimal, error) {
	if !currency.Valid() {
		return decimal.Zero, apperr.Validationf("currency", "unsupported currency %q", string(currency))
	}
	if amount.IsNegative() {
		return decimal.Zero, apperr.Validation("amount", "must not be negative")
	}
	if !rate.IsPositive() {
		return decimal.Zero, apperr.Validation("rate", "must be greater than zero")
	}
	return amount.Mul(rate).Round(Precision), nil
}
