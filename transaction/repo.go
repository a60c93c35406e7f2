package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"adox/apperr"
	"adox/transaction/options"
)

// Data store abstraction for the transaction ledger
type Repo interface {
	// Insert validates the record, assigns a monotonically increasing id and
	// commits the row before returning.
	Insert(ctx context.Context, t *Transaction) (int64, error)
	// List returns transactions ordered by occurrence time ascending, ties
	// broken by id. The options can be used to filter the result.
	List(ctx context.Context, opts ...*options.ListOptions) ([]*Transaction, error)
	// Delete removes the transaction with the given id and reports whether a
	// record existed. Deleting an absent id is not an error.
	Delete(ctx context.Context, id int64) (bool, error)
	// Clear removes all transactions and returns the number removed.
	// Clearing an empty ledger returns 0.
	Clear(ctx context.Context) (int64, error)
}

var _ Repo = (*SQLRepo)(nil)

// DefaultTimeout bounds every store call so a wedged database surfaces as a
// storage error instead of a hung request.
const DefaultTimeout = 5 * time.Second

type SQLRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewSQLRepo(db *sqlx.DB) (*SQLRepo, error) {
	return &SQLRepo{db: db, timeout: DefaultTimeout}, nil
}

func (r *SQLRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLRepo) Insert(ctx context.Context, t *Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if t.OccurredAt.IsZero() {
		t.OccurredAt = time.Now().UTC()
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO transactions (occurred_at, currency, client, recipient, bank, amount_kz, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	args := []interface{}{
		t.OccurredAt, t.Currency, t.Client, t.Recipient, t.Bank, t.AmountKz, t.CreatedBy,
	}

	// lib/pq has no LastInsertId support, so Postgres goes through RETURNING
	if r.db.DriverName() == "postgres" {
		var id int64
		query = r.db.Rebind(query + " RETURNING id")
		if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, apperr.Storage("inserting transaction", err)
		}
		t.ID = id
		return id, nil
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, apperr.Storage("inserting transaction", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperr.Storage("reading inserted transaction id", err)
	}
	t.ID = id
	return id, nil
}

// Executes a List operation and returns the matching Transactions
// The `listOptions` can be used to specify filters for the operation
func (r *SQLRepo) List(ctx context.Context, listOptions ...*options.ListOptions) ([]*Transaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := []*Transaction{}
	// build query
	query := "SELECT * FROM transactions"
	const orderBy = " ORDER BY occurred_at ASC, id ASC"

	if len(listOptions) == 0 || listOptions[0] == nil {
		if err := r.db.SelectContext(ctx, &result, query+orderBy); err != nil {
			return nil, apperr.Storage("listing transactions", err)
		}
		return result, nil
	}

	opt := listOptions[0]
	filters := make(map[string]interface{})
	if opt.Timestamp != nil {
		filters["occurred_at"] = opt.Timestamp
	}
	if opt.AmountKz != nil {
		filters["amount_kz"] = opt.AmountKz
	}
	if opt.Currency != "" {
		filters["currency"] = opt.Currency
	}
	if opt.CreatedBy != "" {
		filters["created_by"] = opt.CreatedBy
	}

	var where []string
	namedParams := make(map[string]interface{})

	updateQueryParams := func(stmt, key string, value interface{}) {
		where = append(where, stmt)
		namedParams[key] = value
	}

	for columnName, arg := range filters {
		switch v := arg.(type) {
		case options.Range:
			var key string

			from, ok := v.From()
			if ok {
				key = columnName + "_from"
				fromStmt := fmt.Sprintf("%s >= :%s", columnName, key)
				updateQueryParams(fromStmt, key, from)
			}
			to, ok := v.To()
			if ok {
				key = columnName + "_to"
				toStmt := fmt.Sprintf("%s <= :%s", columnName, key)
				updateQueryParams(toStmt, key, to)
			}

		default:
			stmt := fmt.Sprintf("%s = :%s", columnName, columnName)
			updateQueryParams(stmt, columnName, v)
		}
	}

	if len(where) > 0 {
		query = fmt.Sprintf("%s WHERE %s",
			query,
			strings.Join(where, " AND "),
		)
	}

	query, args, err := sqlx.Named(query+orderBy, namedParams)
	if err != nil {
		return nil, apperr.Storage("building transaction query", err)
	}
	query = r.db.Rebind(query)
	if err := r.db.SelectContext(ctx, &result, query, args...); err != nil {
		return nil, apperr.Storage("listing transactions", err)
	}

	return result, nil
}

func (r *SQLRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM transactions WHERE id = ?"), id)
	if err != nil {
		return false, apperr.Storage("deleting transaction", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperr.Storage("deleting transaction", err)
	}
	return n > 0, nil
}

func (r *SQLRepo) Clear(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, "DELETE FROM transactions")
	if err != nil {
		return 0, apperr.Storage("clearing ledger", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperr.Storage("clearing ledger", err)
	}
	return n, nil
}
