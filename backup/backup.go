// Package backup owns the point-in-time ledger snapshots taken before a reset
// (or on demand) and the reset orchestration itself.
package backup

import (
	"time"

	"adox/report"
	"adox/transaction"
)

// Snapshot is the serialized copy of the ledger stored inside a backup record.
type Snapshot struct {
	Transactions []*transaction.Transaction `json:"transactions"`
	Totals       report.Totals              `json:"totals"`
}

// Record is one immutable backup. It is written once, read on demand and
// never mutated.
type Record struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Snapshot  Snapshot  `db:"-" json:"snapshot"`
}
