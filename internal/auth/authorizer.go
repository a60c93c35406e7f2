package auth

import (
	"github.com/casbin/casbin"

	"adox/apperr"
)

// Role of an authenticated portal user.
type Role string

const (
	Admin    Role = "admin"
	Employee Role = "employee"
)

// Identity is the (user, role) tuple the session layer attaches to every call.
// The core trusts it and does not re-authenticate.
type Identity struct {
	Username string
	Role     Role
}

// Objects and actions known to the access policy.
const (
	ObjectLedger  = "ledger"
	ObjectReports = "reports"
	ObjectBackups = "backups"

	ActionInsert  = "insert"
	ActionDelete  = "delete"
	ActionRead    = "read"
	ActionExport  = "export"
	ActionCreate  = "create"
	ActionLoad    = "load"
	ActionRestore = "restore"
	ActionReset   = "reset"
)

// Accepts ACL model and policy files
func New(model, policy string) *Authorizer {
	enforcer := casbin.NewEnforcer(model, policy)
	return &Authorizer{enforcer}
}

type Authorizer struct {
	enforcer *casbin.Enforcer
}

func (this *Authorizer) Authorize(subject, object, action string) error {
	if !this.enforcer.Enforce(subject, object, action) {
		return apperr.Authorizationf(
			"%s not permitted to %s on %s",
			subject,
			action,
			object,
		)
	}

	return nil
}
