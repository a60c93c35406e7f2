package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"adox/apperr"
	"adox/internal/auth"
	"adox/rate"
	"adox/report"
	"adox/transaction"
)

func (s *server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login", auth.Identity{}, nil)
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	id, err := s.Users.Authenticate(r.Context(), username, password)
	if err != nil {
		if apperr.IsAuthorization(err) {
			http.Redirect(w, r, "/login?msg=msg.bad_login", http.StatusSeeOther)
			return
		}
		s.fail(w, r, err)
		return
	}

	s.startSession(w, id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.endSession(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *server) handleLang(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["lang"]
	if code != "pt" {
		code = "en"
	}
	http.SetCookie(w, &http.Cookie{Name: langCookie, Value: code, Path: "/"})

	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	s.render(w, r, "home", id, nil)
}

func txCurrency(r *http.Request) (transaction.Currency, bool) {
	c := transaction.Currency(mux.Vars(r)["currency"])
	return c, c.Valid()
}

func (s *server) handleTxPage(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	currency, ok := txCurrency(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.render(w, r, "tx", id, map[string]interface{}{"Currency": currency})
}

func (s *server) handleTxSubmit(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	currency, ok := txCurrency(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	err := s.Auth.Authorize(string(id.Role), auth.ObjectLedger, auth.ActionInsert)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	amount, err := decimal.NewFromString(r.FormValue("amount"))
	if err != nil {
		s.fail(w, r, apperr.Validation("amount", "must be a number"))
		return
	}
	rateVal, err := decimal.NewFromString(r.FormValue("rate"))
	if err != nil {
		s.fail(w, r, apperr.Validation("rate", "must be a number"))
		return
	}

	amountKz, err := rate.Convert(amount, currency, rateVal)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	occurredAt, err := parseOccurredAt(r.FormValue("date"), r.FormValue("time"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	t := &transaction.Transaction{
		OccurredAt: occurredAt,
		Currency:   currency,
		Client:     r.FormValue("client"),
		Recipient:  r.FormValue("recipient"),
		Bank:       r.FormValue("bank"),
		AmountKz:   amountKz,
		CreatedBy:  id.Username,
	}
	if _, err := s.Ledger.Insert(r.Context(), t); err != nil {
		s.fail(w, r, err)
		return
	}

	http.Redirect(w, r, "/tx/"+string(currency)+"?msg=msg.tx_saved", http.StatusSeeOther)
}

// parseOccurredAt combines the form's date and time fields. Both empty means
// "now", which the store fills in on insert.
func parseOccurredAt(date, clock string) (time.Time, error) {
	if date == "" && clock == "" {
		return time.Time{}, nil
	}
	if clock == "" {
		clock = "00:00"
	}
	ts, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.UTC)
	if err != nil {
		return time.Time{}, apperr.Validation("timestamp", "must be a valid date and time")
	}
	return ts, nil
}

func (s *server) handleCalc(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var result string
	if r.Method == http.MethodPost {
		amount, aerr := decimal.NewFromString(r.FormValue("amount"))
		rateVal, rerr := decimal.NewFromString(r.FormValue("rate"))
		currency := transaction.Currency(r.FormValue("currency"))

		if aerr != nil || rerr != nil {
			result = "Enter amount and rate."
		} else if kz, err := rate.Convert(amount, currency, rateVal); err != nil {
			result = err.Error()
		} else {
			result = fmt.Sprintf("%s %s ≈ %s Kz", amount.StringFixed(2), currency, kz.StringFixed(2))
		}
	}
	s.render(w, r, "calc", id, map[string]interface{}{"Result": result})
}

// txView is a transaction prepared for template rendering.
type txView struct {
	ID        int64
	Date      string
	Client    string
	Currency  transaction.Currency
	Recipient string
	Bank      string
	Kz        string
}

func (s *server) handleReports(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	totals, err := s.Reports.Totals(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rows, err := s.Reports.Transactions(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	views := make([]txView, 0, len(rows))
	for _, t := range rows {
		views = append(views, txView{
			ID:        t.ID,
			Date:      t.OccurredAt.UTC().Format("2006-01-02 15:04"),
			Client:    t.Client,
			Currency:  t.Currency,
			Recipient: t.Recipient,
			Bank:      t.Bank,
			Kz:        t.AmountKz.StringFixed(2),
		})
	}

	s.render(w, r, "reports", id, map[string]interface{}{
		"Rows":    views,
		"SumGBP":  totals.Sums[transaction.GBP].StringFixed(2),
		"SumEUR":  totals.Sums[transaction.EUR].StringFixed(2),
		"Count":   totals.Count,
		"IsAdmin": id.Role == auth.Admin,
	})
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	err := s.Auth.Authorize(string(id.Role), auth.ObjectLedger, auth.ActionDelete)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	txID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.fail(w, r, apperr.Validation("id", "must be an integer"))
		return
	}

	// absent ids are not an error, the row is simply already gone
	if _, err := s.Ledger.Delete(r.Context(), txID); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/reports?msg=msg.tx_deleted", http.StatusSeeOther)
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var buf bytes.Buffer
	if err := s.Reports.ExportCSV(r.Context(), id, &buf); err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", report.MIMEType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.Filename(time.Now())))
	w.Write(buf.Bytes())
}

func (s *server) handleBackupsPage(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	records, err := s.Backups.List(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, "backups", id, map[string]interface{}{"Records": records})
}

func (s *server) handleBackupSave(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	if _, err := s.Backups.Create(r.Context(), id, r.FormValue("name")); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/backups?msg=msg.backup_saved", http.StatusSeeOther)
}

func (s *server) handleBackupRestore(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	if _, err := s.Backups.Restore(r.Context(), id, r.FormValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/reports?msg=msg.restored", http.StatusSeeOther)
}

func (s *server) handleResetPage(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	s.render(w, r, "reset", id, nil)
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	if _, _, err := s.Backups.Reset(r.Context(), id, r.FormValue("name")); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/reports?msg=msg.reset_done", http.StatusSeeOther)
}
