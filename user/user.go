// Package user manages the portal accounts: the admin and the counter staff.
package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"adox/apperr"
	"adox/internal/auth"
	"adox/transaction"
)

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Role         auth.Role `db:"role"`
}

// Data store abstraction for portal accounts
type Repo interface {
	Create(ctx context.Context, username, password string, role auth.Role) (*User, error)
	// Authenticate checks the password and returns the caller's identity,
	// or an authorization error on unknown user / wrong password.
	Authenticate(ctx context.Context, username, password string) (auth.Identity, error)
	Count(ctx context.Context) (int64, error)
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

func (r *SQLRepo) Create(ctx context.Context, username, password string, role auth.Role) (*User, error) {
	if username == "" {
		return nil, apperr.Validation("username", "is required")
	}
	if password == "" {
		return nil, apperr.Validation("password", "is required")
	}
	if role != auth.Admin && role != auth.Employee {
		return nil, apperr.Validationf("role", "unknown role %q", string(role))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage("hashing password", err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.Rebind("INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)")
	if _, err := r.db.ExecContext(ctx, query, username, string(hash), role); err != nil {
		return nil, apperr.Storage("creating user", err)
	}

	var u User
	err = r.db.GetContext(ctx, &u, r.db.Rebind("SELECT * FROM users WHERE username = ?"), username)
	if err != nil {
		return nil, apperr.Storage("reading created user", err)
	}
	return &u, nil
}

func (r *SQLRepo) Authenticate(ctx context.Context, username, password string) (auth.Identity, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u User
	err := r.db.GetContext(ctx, &u, r.db.Rebind("SELECT * FROM users WHERE username = ?"), username)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Identity{}, apperr.Authorizationf("invalid credentials")
	}
	if err != nil {
		return auth.Identity{}, apperr.Storage("looking up user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return auth.Identity{}, apperr.Authorizationf("invalid credentials")
	}

	return auth.Identity{Username: u.Username, Role: u.Role}, nil
}

func (r *SQLRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM users"); err != nil {
		return 0, apperr.Storage("counting users", err)
	}
	return n, nil
}

// seed accounts installed on first run, one admin plus the counter staff
var seedUsers = []struct {
	username string
	password string
	role     auth.Role
}{
	{"admin", "Admin123!", auth.Admin},
	{"ana", "Adox123!", auth.Employee},
	{"domingas", "Adox123!", auth.Employee},
	{"nelio", "Adox123!", auth.Employee},
	{"staff4", "Adox123!", auth.Employee},
}

// Seed installs the default accounts when the users table is empty.
func Seed(ctx context.Context, repo Repo) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, s := range seedUsers {
		if _, err := repo.Create(ctx, s.username, s.password, s.role); err != nil {
			return err
		}
	}
	return nil
}
