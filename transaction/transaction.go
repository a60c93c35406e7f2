package transaction

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"adox/apperr"
)

// Currency is a source currency the office accepts.
type Currency string

const (
	GBP Currency = "GBP"
	EUR Currency = "EUR"
)

// Currencies lists the accepted source currencies in display order.
var Currencies = []Currency{GBP, EUR}

func (c Currency) Valid() bool {
	return c == GBP || c == EUR
}

// Transaction represents one currency-exchange event: money received in GBP or
// EUR and the Kwanza amount sent out for it.
type Transaction struct {
	ID         int64           `db:"id" json:"id"`
	OccurredAt time.Time       `db:"occurred_at" json:"occurred_at"`
	Currency   Currency        `db:"currency" json:"currency"`
	Client     string          `db:"client" json:"client"`
	Recipient  string          `db:"recipient" json:"recipient"`
	Bank       string          `db:"bank" json:"bank"`
	AmountKz   decimal.Decimal `db:"amount_kz" json:"amount_kz"`
	CreatedBy  string          `db:"created_by" json:"created_by"`
}

// Validate checks the record invariants enforced before insert.
// The bank field is optional; everything else is required.
func (t *Transaction) Validate() error {
	if !t.Currency.Valid() {
		return apperr.Validationf("currency", "unsupported currency %q", string(t.Currency))
	}
	if strings.TrimSpace(t.Client) == "" {
		return apperr.Validation("client_name", "is required")
	}
	if strings.TrimSpace(t.Recipient) == "" {
		return apperr.Validation("recipient_name", "is required")
	}
	if t.AmountKz.IsNegative() {
		return apperr.Validation("amount_kz", "must not be negative")
	}
	if strings.TrimSpace(t.CreatedBy) == "" {
		return apperr.Validation("created_by", "is required")
	}
	return nil
}
