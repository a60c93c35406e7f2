package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"adox/transaction/sqlite"
)

const aclModel = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

const aclPolicy = `p, admin, ledger, insert
p, admin, ledger, delete
p, admin, reports, read
p, admin, reports, export
p, admin, backups, create
p, admin, backups, load
p, admin, backups, restore
p, admin, backups, reset
p, employee, ledger, insert
p, employee, reports, read
p, employee, backups, create
p, employee, backups, load
p, employee, backups, restore
`

// WriteACL writes a throwaway casbin model and policy for the office roles and
// returns their paths.
func WriteACL(t *testing.T) (model, policy string) {
	t.Helper()

	dir := t.TempDir()
	model = filepath.Join(dir, "model.conf")
	policy = filepath.Join(dir, "policy.csv")

	require.NoError(t, os.WriteFile(model, []byte(aclModel), 0o644))
	require.NoError(t, os.WriteFile(policy, []byte(aclPolicy), 0o644))
	return model, policy
}

// OpenDB opens a fresh in-memory ledger database with the full schema installed.
func OpenDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func NewUUID() string {
	id := uuid.New()
	return id.String()
}
