package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	dynaport "github.com/travisjeffery/go-dynaport"

	"adox/backup"
	"adox/internal/auth"
	"adox/report"
	"adox/testutil"
	"adox/transaction"
	"adox/user"
)

func testSetup(t *testing.T) (baseURL string, teardown func()) {
	t.Helper()

	db := testutil.OpenDB(t)

	ledger, err := transaction.NewSQLRepo(db)
	require.NoError(t, err)
	backups, err := backup.NewSQLRepo(db)
	require.NoError(t, err)
	users, err := user.NewSQLRepo(db)
	require.NoError(t, err)
	require.NoError(t, user.Seed(context.Background(), users))

	model, policy := testutil.WriteACL(t)
	authorizer := auth.New(model, policy)

	ports := dynaport.Get(1)
	addr := fmt.Sprintf("127.0.0.1:%d", ports[0])

	srv := NewServer(addr, &Config{
		Ledger:  ledger,
		Reports: report.NewEngine(ledger, authorizer),
		Backups: backup.NewManager(ledger, backups, authorizer, nil),
		Users:   users,
		Auth:    authorizer,
	})
	go srv.ListenAndServe()

	baseURL = "http://" + addr
	waitUntilUp(t, baseURL)

	return baseURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func waitUntilUp(t *testing.T, baseURL string) {
	t.Helper()
	for i := 0; i < 50; i++ {
		res, err := http.Get(baseURL + "/login")
		if err == nil {
			res.Body.Close()
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("server never came up")
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func login(t *testing.T, client *http.Client, baseURL, username, password string) {
	t.Helper()
	res, err := client.PostForm(baseURL+"/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "/", res.Request.URL.Path)
}

func TestPortal(t *testing.T) {
	baseURL, teardown := testSetup(t)
	defer teardown()

	t.Run("anonymous requests are sent to login", func(t *testing.T) {
		client := newClient(t)
		res, err := client.Get(baseURL + "/reports")
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, "/login", res.Request.URL.Path)
	})

	t.Run("bad credentials are rejected", func(t *testing.T) {
		client := newClient(t)
		res, err := client.PostForm(baseURL+"/login", url.Values{
			"username": {"admin"},
			"password": {"nope"},
		})
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, "/login", res.Request.URL.Path)
	})

	t.Run("record, report, export, reset", func(t *testing.T) {
		client := newClient(t)
		login(t, client, baseURL, "admin", "Admin123!")

		res, err := client.PostForm(baseURL+"/tx/GBP", url.Values{
			"date":      {"2025-08-20"},
			"time":      {"10:30"},
			"client":    {"Ana Silva"},
			"recipient": {"Paulo Silva"},
			"bank":      {"BAI"},
			"amount":    {"100"},
			"rate":      {"1.5"},
		})
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		res, err = client.Get(baseURL + "/reports")
		require.NoError(t, err)
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		require.Contains(t, string(body), "Ana Silva")
		require.Contains(t, string(body), "150.00")

		res, err = client.Get(baseURL + "/export.csv")
		require.NoError(t, err)
		require.Equal(t, "text/csv", res.Header.Get("Content-Type"))
		require.Contains(t, res.Header.Get("Content-Disposition"), "report-")
		csvBody, _ := io.ReadAll(res.Body)
		res.Body.Close()
		require.Contains(t, string(csvBody), "Ana Silva")
		require.Contains(t, string(csvBody), "150.00")

		res, err = client.PostForm(baseURL+"/reset-totals", url.Values{
			"name": {"BeforeReset_test"},
		})
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		res, err = client.Get(baseURL + "/reports")
		require.NoError(t, err)
		body, _ = io.ReadAll(res.Body)
		res.Body.Close()
		require.NotContains(t, string(body), "Ana Silva")

		res, err = client.Get(baseURL + "/backups")
		require.NoError(t, err)
		body, _ = io.ReadAll(res.Body)
		res.Body.Close()
		require.Contains(t, string(body), "BeforeReset_test")
	})

	t.Run("employee cannot export or reset", func(t *testing.T) {
		client := newClient(t)
		login(t, client, baseURL, "nelio", "Adox123!")

		res, err := client.Get(baseURL + "/export.csv")
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusForbidden, res.StatusCode)

		res, err = client.PostForm(baseURL+"/reset-totals", url.Values{})
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusForbidden, res.StatusCode)
	})

	t.Run("invalid amount is a 400", func(t *testing.T) {
		client := newClient(t)
		login(t, client, baseURL, "nelio", "Adox123!")

		res, err := client.PostForm(baseURL+"/tx/EUR", url.Values{
			"client":    {"Ana"},
			"recipient": {"Paulo"},
			"amount":    {"abc"},
			"rate":      {"1.5"},
		})
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("language toggle", func(t *testing.T) {
		client := newClient(t)
		res, err := client.Get(baseURL + "/lang/pt")
		require.NoError(t, err)
		res.Body.Close()

		res, err = client.Get(baseURL + "/login")
		require.NoError(t, err)
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		require.Contains(t, string(body), "Portal do Colaborador")
		require.False(t, strings.Contains(string(body), "Employee Portal"))
	})
}
