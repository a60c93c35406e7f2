// Package web is the employee-facing portal: session login, transaction
// entry, calculator, reports and backups over the core packages. It is the
// auth gate — it resolves the session cookie to an identity and the core
// trusts that tuple.
package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"adox/apperr"
	"adox/backup"
	"adox/internal/auth"
	"adox/report"
	"adox/transaction"
	"adox/user"
)

const (
	sessionCookie = "adox_session"
	langCookie    = "adox_lang"
)

// Config wires the core into the portal.
type Config struct {
	Ledger  transaction.Repo
	Reports *report.Engine
	Backups *backup.Manager
	Users   user.Repo
	Auth    Authorizer
	Logger  *zap.Logger
}

type Authorizer interface {
	Authorize(subject, object, action string) error
}

func NewServer(addr string, config *Config) *http.Server {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	s := &server{
		Config:   config,
		sessions: make(map[string]auth.Identity),
	}

	r := mux.NewRouter()
	r.HandleFunc("/login", s.handleLoginPage).Methods("GET")
	r.HandleFunc("/login", s.handleLogin).Methods("POST")
	r.HandleFunc("/logout", s.handleLogout).Methods("GET")
	r.HandleFunc("/lang/{lang}", s.handleLang).Methods("GET")

	r.HandleFunc("/", s.requireUser(s.handleHome)).Methods("GET")
	r.HandleFunc("/tx/{currency}", s.requireUser(s.handleTxPage)).Methods("GET")
	r.HandleFunc("/tx/{currency}", s.requireUser(s.handleTxSubmit)).Methods("POST")
	r.HandleFunc("/calc", s.requireUser(s.handleCalc)).Methods("GET", "POST")
	r.HandleFunc("/reports", s.requireUser(s.handleReports)).Methods("GET")
	r.HandleFunc("/tx/delete/{id}", s.requireUser(s.handleDelete)).Methods("POST")
	r.HandleFunc("/export.csv", s.requireUser(s.handleExport)).Methods("GET")
	r.HandleFunc("/backups", s.requireUser(s.handleBackupsPage)).Methods("GET")
	r.HandleFunc("/backups/save", s.requireUser(s.handleBackupSave)).Methods("POST")
	r.HandleFunc("/backups/restore", s.requireUser(s.handleBackupRestore)).Methods("POST")
	r.HandleFunc("/reset-totals", s.requireUser(s.handleResetPage)).Methods("GET")
	r.HandleFunc("/reset-totals", s.requireUser(s.handleReset)).Methods("POST")

	return &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

type server struct {
	*Config

	mu       sync.Mutex
	sessions map[string]auth.Identity
}

// requireUser resolves the session cookie and rejects anonymous requests by
// redirecting to the login page.
func (s *server) requireUser(next func(http.ResponseWriter, *http.Request, auth.Identity)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.identity(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r, id)
	}
}

func (s *server) identity(r *http.Request) (auth.Identity, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return auth.Identity{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sessions[c.Value]
	return id, ok
}

func (s *server) startSession(w http.ResponseWriter, id auth.Identity) {
	token := uuid.New().String()
	s.mu.Lock()
	s.sessions[token] = id
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *server) endSession(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, c.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
}

func (s *server) lang(r *http.Request) Lang {
	if c, err := r.Cookie(langCookie); err == nil {
		return langFor(c.Value)
	}
	return langFor("en")
}

// httpStatus maps the core error taxonomy onto HTTP status codes.
func httpStatus(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuthorization:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindPrecondition:
		return http.StatusConflict
	case apperr.KindStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail surfaces a core error with its kind and message; nothing is swallowed.
func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.Logger.Warn("request failed",
		zap.String("path", r.URL.Path),
		zap.String("kind", string(apperr.KindOf(err))),
		zap.Error(err),
	)
	http.Error(w, err.Error(), httpStatus(err))
}
