package backup

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"adox/apperr"
	"adox/transaction"
)

// Data store abstraction for backup records
type Repo interface {
	// Save commits the record atomically: the full backup is stored or none of it.
	Save(ctx context.Context, rec *Record) error
	// Get returns the record with the given id, snapshot included.
	Get(ctx context.Context, id string) (*Record, error)
	// List returns record metadata, newest first, without snapshots.
	List(ctx context.Context) ([]*Record, error)
}

var _ Repo = (*SQLRepo)(nil)

type SQLRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewSQLRepo(db *sqlx.DB) (*SQLRepo, error) {
	return &SQLRepo{db: db, timeout: transaction.DefaultTimeout}, nil
}

func (r *SQLRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, r.timeout)
}

// row is the persisted shape: the snapshot travels as an opaque JSON blob.
type row struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Payload   string    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *SQLRepo) Save(ctx context.Context, rec *Record) error {
	payload, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return apperr.Storage("serializing backup snapshot", err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Storage("opening backup transaction", err)
	}

	query := tx.Rebind("INSERT INTO backups (id, name, payload, created_at) VALUES (?, ?, ?, ?)")
	_, err = tx.ExecContext(ctx, query, rec.ID, rec.Name, string(payload), rec.CreatedAt)
	if err != nil {
		tx.Rollback()
		return apperr.Storage("saving backup", err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage("committing backup", err)
	}
	return nil
}

func (r *SQLRepo) Get(ctx context.Context, id string) (*Record, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var result row
	err := r.db.GetContext(ctx, &result, r.db.Rebind("SELECT * FROM backups WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("no backup with id %s", id)
	}
	if err != nil {
		return nil, apperr.Storage("loading backup", err)
	}

	rec := &Record{ID: result.ID, Name: result.Name, CreatedAt: result.CreatedAt}
	if err := json.Unmarshal([]byte(result.Payload), &rec.Snapshot); err != nil {
		return nil, apperr.Storage("decoding backup snapshot", err)
	}
	return rec, nil
}

func (r *SQLRepo) List(ctx context.Context) ([]*Record, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []*row
	err := r.db.SelectContext(ctx, &rows,
		"SELECT id, name, created_at FROM backups ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, apperr.Storage("listing backups", err)
	}

	result := make([]*Record, 0, len(rows))
	for _, v := range rows {
		result = append(result, &Record{ID: v.ID, Name: v.Name, CreatedAt: v.CreatedAt})
	}
	return result, nil
}
