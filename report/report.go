// Package report derives views over the ledger: per-currency totals and CSV
// exports. It owns no persistent state and recomputes everything per call.
package report

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"adox/internal/auth"
	"adox/transaction"
	"adox/transaction/options"
)

// MIMEType of an exported report.
const MIMEType = "text/csv"

// Totals is a point-in-time aggregation over the ledger. It is always
// recomputed from the live rows, never stored or hand-edited.
type Totals struct {
	Sums        map[transaction.Currency]decimal.Decimal `json:"sums"`
	Count       int                                      `json:"count"`
	GeneratedAt time.Time                                `json:"generated_at"`
}

// TotalsOf aggregates the Kz sums of the given rows by source currency.
// Both accepted currencies are always present in Sums, zero when absent.
func TotalsOf(txs []*transaction.Transaction) Totals {
	sums := make(map[transaction.Currency]decimal.Decimal, len(transaction.Currencies))
	for _, c := range transaction.Currencies {
		sums[c] = decimal.Zero
	}
	for _, t := range txs {
		sums[t.Currency] = sums[t.Currency].Add(t.AmountKz)
	}
	return Totals{
		Sums:        sums,
		Count:       len(txs),
		GeneratedAt: time.Now().UTC(),
	}
}

// Lister is the slice of the ledger store the engine reads from.
type Lister interface {
	List(ctx context.Context, opts ...*options.ListOptions) ([]*transaction.Transaction, error)
}

type Authorizer interface {
	Authorize(subject, object, action string) error
}

type Engine struct {
	ledger Lister
	auth   Authorizer
}

func NewEngine(ledger Lister, authorizer Authorizer) *Engine {
	return &Engine{ledger: ledger, auth: authorizer}
}

// scope narrows the filter for employees to rows they recorded themselves.
// Admins see the ledger unscoped.
func scope(id auth.Identity, opts []*options.ListOptions) []*options.ListOptions {
	if id.Role == auth.Admin {
		return opts
	}
	var opt *options.ListOptions
	if len(opts) > 0 && opts[0] != nil {
		opt = opts[0]
	} else {
		opt = options.NewListOptions()
	}
	opt.SetCreatedBy(id.Username)
	return []*options.ListOptions{opt}
}

// Totals computes a fresh totals snapshot over the (filtered) ledger.
func (e *Engine) Totals(ctx context.Context, id auth.Identity, opts ...*options.ListOptions) (*Totals, error) {
	err := e.auth.Authorize(string(id.Role), auth.ObjectReports, auth.ActionRead)
	if err != nil {
		return nil, err
	}

	txs, err := e.ledger.List(ctx, scope(id, opts)...)
	if err != nil {
		return nil, err
	}

	totals := TotalsOf(txs)
	return &totals, nil
}

// Transactions returns the rows the caller may see, for on-screen rendering.
// Employees see their own rows; admins see everything.
func (e *Engine) Transactions(ctx context.Context, id auth.Identity, opts ...*options.ListOptions) ([]*transaction.Transaction, error) {
	err := e.auth.Authorize(string(id.Role), auth.ObjectReports, auth.ActionRead)
	if err != nil {
		return nil, err
	}
	return e.ledger.List(ctx, scope(id, opts)...)
}

// csv column order, matching List ordering row for row
var csvHeader = []string{
	"id",
	"timestamp",
	"source_currency",
	"client_name",
	"recipient_name",
	"bank",
	"amount_kz",
}

// ExportCSV writes the full filtered ledger as CSV followed by a totals
// section. Admin only.
func (e *Engine) ExportCSV(ctx context.Context, id auth.Identity, w io.Writer, opts ...*options.ListOptions) error {
	err := e.auth.Authorize(string(id.Role), auth.ObjectReports, auth.ActionExport)
	if err != nil {
		return err
	}

	txs, err := e.ledger.List(ctx, opts...)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range txs {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.OccurredAt.UTC().Format(time.RFC3339),
			string(t.Currency),
			t.Client,
			t.Recipient,
			t.Bank,
			t.AmountKz.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	// trailing totals section, same column count as the rows above
	totals := TotalsOf(txs)
	for _, c := range transaction.Currencies {
		record := []string{"total", "", string(c), "", "", "", totals.Sums[c].StringFixed(2)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	record := []string{"count", "", "", "", "", "", strconv.Itoa(totals.Count)}
	if err := cw.Write(record); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// Filename returns the download name for an export taken at the given time,
// e.g. report-2025-08-29.csv
func Filename(ts time.Time) string {
	return "report-" + ts.UTC().Format("2006-01-02") + ".csv"
}
