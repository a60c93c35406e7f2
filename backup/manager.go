package backup

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"adox/internal/auth"
	"adox/report"
	"adox/transaction"
	"adox/transaction/options"
)

// Ledger is the slice of the transaction store the manager needs.
// transaction.Repo satisfies it.
type Ledger interface {
	Insert(ctx context.Context, t *transaction.Transaction) (int64, error)
	List(ctx context.Context, opts ...*options.ListOptions) ([]*transaction.Transaction, error)
	Clear(ctx context.Context) (int64, error)
}

type Authorizer interface {
	Authorize(subject, object, action string) error
}

// Manager orchestrates backup creation, loading, restores and the
// backup-then-clear reset.
type Manager struct {
	ledger  Ledger
	backups Repo
	auth    Authorizer
	logger  *zap.Logger
}

func NewManager(ledger Ledger, backups Repo, authorizer Authorizer, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{ledger: ledger, backups: backups, auth: authorizer, logger: logger}
}

// Create snapshots the full ledger plus its totals into a new immutable
// record and commits it. An empty name gets a date-stamped default.
func (m *Manager) Create(ctx context.Context, id auth.Identity, name string) (*Record, error) {
	err := m.auth.Authorize(string(id.Role), auth.ObjectBackups, auth.ActionCreate)
	if err != nil {
		return nil, err
	}

	txs, err := m.ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if name == "" {
		name = "Backup_" + now.Format("2006-01-02")
	}

	rec := &Record{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		Snapshot: Snapshot{
			Transactions: txs,
			Totals:       report.TotalsOf(txs),
		},
	}

	if err := m.backups.Save(ctx, rec); err != nil {
		return nil, err
	}

	m.logger.Info("backup created",
		zap.String("backup_id", rec.ID),
		zap.String("name", rec.Name),
		zap.Int("transactions", len(txs)),
		zap.String("created_by", id.Username),
	)
	return rec, nil
}

// Reset backs the ledger up and then clears it. The backup is committed
// durably before the clear is issued: if anything fails in between, the
// outcome is "no reset happened" plus a harmless extra backup, never data
// loss. Admin only.
func (m *Manager) Reset(ctx context.Context, id auth.Identity, name string) (*Record, int64, error) {
	err := m.auth.Authorize(string(id.Role), auth.ObjectBackups, auth.ActionReset)
	if err != nil {
		return nil, 0, err
	}

	if name == "" {
		name = "BeforeReset_" + time.Now().UTC().Format("2006-01-02")
	}

	rec, err := m.Create(ctx, id, name)
	if err != nil {
		return nil, 0, err
	}

	cleared, err := m.ledger.Clear(ctx)
	if err != nil {
		// the backup exists; the ledger is untouched
		m.logger.Error("reset aborted after backup", zap.String("backup_id", rec.ID), zap.Error(err))
		return rec, 0, err
	}

	m.logger.Info("ledger reset",
		zap.String("backup_id", rec.ID),
		zap.Int64("cleared", cleared),
		zap.String("created_by", id.Username),
	)
	return rec, cleared, nil
}

// Load returns a stored backup, snapshot included. It does not touch the
// live ledger.
func (m *Manager) Load(ctx context.Context, id auth.Identity, backupID string) (*Record, error) {
	err := m.auth.Authorize(string(id.Role), auth.ObjectBackups, auth.ActionLoad)
	if err != nil {
		return nil, err
	}
	return m.backups.Get(ctx, backupID)
}

// List returns backup metadata, newest first.
func (m *Manager) List(ctx context.Context, id auth.Identity) ([]*Record, error) {
	err := m.auth.Authorize(string(id.Role), auth.ObjectBackups, auth.ActionLoad)
	if err != nil {
		return nil, err
	}
	return m.backups.List(ctx)
}

// Restore re-inserts every transaction of a stored backup into the live
// ledger. Rows go through the normal insert path, re-validated, with fresh
// ids; existing rows are left alone.
func (m *Manager) Restore(ctx context.Context, id auth.Identity, backupID string) (int, error) {
	err := m.auth.Authorize(string(id.Role), auth.ObjectBackups, auth.ActionRestore)
	if err != nil {
		return 0, err
	}

	rec, err := m.backups.Get(ctx, backupID)
	if err != nil {
		return 0, err
	}

	restored := 0
	for _, t := range rec.Snapshot.Transactions {
		row := *t
		row.ID = 0
		if _, err := m.ledger.Insert(ctx, &row); err != nil {
			return restored, err
		}
		restored++
	}

	m.logger.Info("backup restored",
		zap.String("backup_id", rec.ID),
		zap.Int("restored", restored),
		zap.String("created_by", id.Username),
	)
	return restored, nil
}
