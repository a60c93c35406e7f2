package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"adox/apperr"
	"adox/internal/auth"
	"adox/testutil"
)

func TestAuthorize(t *testing.T) {
	model, policy := testutil.WriteACL(t)
	authorizer := auth.New(model, policy)

	cases := []struct {
		name    string
		subject string
		object  string
		action  string
		allowed bool
	}{
		{"admin exports", "admin", auth.ObjectReports, auth.ActionExport, true},
		{"admin resets", "admin", auth.ObjectBackups, auth.ActionReset, true},
		{"admin deletes rows", "admin", auth.ObjectLedger, auth.ActionDelete, true},
		{"employee records", "employee", auth.ObjectLedger, auth.ActionInsert, true},
		{"employee reads reports", "employee", auth.ObjectReports, auth.ActionRead, true},
		{"employee cannot export", "employee", auth.ObjectReports, auth.ActionExport, false},
		{"employee cannot reset", "employee", auth.ObjectBackups, auth.ActionReset, false},
		{"employee cannot delete rows", "employee", auth.ObjectLedger, auth.ActionDelete, false},
		{"unknown role denied", "intern", auth.ObjectLedger, auth.ActionInsert, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := authorizer.Authorize(tc.subject, tc.object, tc.action)
			if tc.allowed {
				require.NoError(t, err)
				return
			}
			require.True(t, apperr.IsAuthorization(err), "got %v", err)
		})
	}
}
