package rate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"adox/apperr"
	"adox/transaction"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestConvert(t *testing.T) {
	cases := []struct {
		name     string
		amount   string
		currency transaction.Currency
		rate     string
		want     string
	}{
		{"gbp at one and a half", "100", transaction.GBP, "1.5", "150"},
		{"eur street rate", "250.50", transaction.EUR, "1650", "413325"},
		{"rounds to two places", "33.335", transaction.GBP, "1.001", "33.37"},
		{"zero amount", "0", transaction.EUR, "1200", "0"},
		{"fractional rate", "10", transaction.GBP, "0.0001", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Convert(dec(tc.amount), tc.currency, dec(tc.rate))
			require.NoError(t, err)
			require.True(t, dec(tc.want).Equal(got), "want %s got %s", tc.want, got)
		})
	}
}

func TestConvertRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		amount   string
		currency transaction.Currency
		rate     string
	}{
		{"negative amount", "-5", transaction.GBP, "1.5"},
		{"zero rate", "100", transaction.GBP, "0"},
		{"negative rate", "100", transaction.EUR, "-2"},
		{"unknown currency", "100", transaction.Currency("USD"), "1.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Convert(dec(tc.amount), tc.currency, dec(tc.rate))
			require.Error(t, err)
			require.True(t, apperr.IsValidation(err))
			require.True(t, got.IsZero())
		})
	}
}
