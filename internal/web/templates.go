package web

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"adox/internal/auth"
)

type pageData struct {
	L    Lang
	User auth.Identity
	Msg  string
	Data map[string]interface{}
}

func (s *server) render(w http.ResponseWriter, r *http.Request, page string, id auth.Identity, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	l := s.lang(r)

	msg := r.URL.Query().Get("msg")
	if msg != "" {
		msg = l.T(msg)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pages.ExecuteTemplate(w, page, pageData{L: l, User: id, Msg: msg, Data: data})
	if err != nil {
		s.Logger.Error("rendering page", zap.String("page", page), zap.Error(err))
	}
}

var pages = template.Must(template.New("portal").Parse(`
{{define "header"}}
<!doctype html>
<html>
<head>
<meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.L.T "title"}}</title>
<style>
body{font-family:system-ui,sans-serif;max-width:1000px;margin:0 auto;padding:16px;color:#1f2937}
.card{background:#fff;border:1px solid #e5e7eb;border-radius:12px;padding:16px;margin-bottom:16px}
.btn{display:inline-block;padding:10px 14px;border-radius:10px;background:#0b5ed7;color:#fff;text-decoration:none;border:none;cursor:pointer}
table{width:100%;border-collapse:collapse} th,td{border-bottom:1px solid #eee;padding:6px;text-align:left}
label{display:block;font-weight:600;margin:8px 0 2px}
input,select{padding:8px;border:1px solid #d1d5db;border-radius:8px}
</style>
</head>
<body>
<header class="card">
<h1>{{.L.T "title"}}</h1>
<nav>
{{if .User.Username}}<span>{{.User.Username}} ({{.User.Role}})</span> <a href="/logout">{{.L.T "signOut"}}</a>{{end}}
<a href="/lang/en">EN</a> <a href="/lang/pt">PT</a>
</nav>
</header>
{{if .Msg}}<div class="card">{{.Msg}}</div>{{end}}
{{end}}

{{define "footer"}}
<p><a href="/">⬅</a></p>
</body></html>
{{end}}

{{define "login"}}
{{template "header" .}}
<section class="card">
<h2>{{.L.T "loginTitle"}}</h2>
<form method="post" action="/login">
<label>{{.L.T "username"}}</label><input name="username" required>
<label>{{.L.T "password"}}</label><input name="password" type="password" required>
<p><button class="btn">{{.L.T "signIn"}}</button></p>
</form>
</section>
</body></html>
{{end}}

{{define "home"}}
{{template "header" .}}
<section class="card">
<h2>{{.L.T "welcomeTitle"}}</h2>
<p>
<a class="btn" href="/tx/GBP">{{.L.T "btnGbp"}}</a>
<a class="btn" href="/tx/EUR">{{.L.T "btnEur"}}</a>
<a class="btn" href="/calc">{{.L.T "btnCalc"}}</a>
<a class="btn" href="/reports">{{.L.T "btnReports"}}</a>
<a class="btn" href="/backups">{{.L.T "btnBackups"}}</a>
</p>
</section>
</body></html>
{{end}}

{{define "tx"}}
{{template "header" .}}
<section class="card">
<h2>{{if eq (printf "%v" .Data.Currency) "EUR"}}{{.L.T "btnEur"}}{{else}}{{.L.T "btnGbp"}}{{end}}</h2>
<form method="post" action="/tx/{{.Data.Currency}}">
<label>{{.L.T "lblDate"}}</label><input type="date" name="date">
<label>{{.L.T "lblTime"}}</label><input type="time" name="time">
<label>{{.L.T "lblClient"}}</label><input name="client" required>
<label>{{.L.T "lblRecipient"}}</label><input name="recipient" required>
<label>{{.L.T "lblBank"}}</label><input name="bank">
<label>{{.L.T "lblAmount"}} ({{.Data.Currency}})</label><input type="number" step="0.01" name="amount" required>
<label>{{.L.T "lblRate"}}</label><input type="number" step="0.0001" name="rate" required>
<p><button class="btn">{{.L.T "btnSubmit"}}</button></p>
</form>
</section>
{{template "footer" .}}
{{end}}

{{define "calc"}}
{{template "header" .}}
<section class="card">
<h2>{{.L.T "btnCalc"}}</h2>
<form method="post" action="/calc">
<label>{{.L.T "lblAmount"}}</label><input type="number" step="0.01" name="amount" required>
<label>{{.L.T "thCurrency"}}</label>
<select name="currency"><option>GBP</option><option>EUR</option></select>
<label>{{.L.T "lblRate"}}</label><input type="number" step="0.0001" name="rate" required>
<p><button class="btn">{{.L.T "btnCalcNow"}}</button></p>
</form>
{{if .Data.Result}}<div class="card"><b>{{.Data.Result}}</b></div>{{end}}
</section>
{{template "footer" .}}
{{end}}

{{define "reports"}}
{{template "header" .}}
<section class="card">
<h2>{{.L.T "reportsTitle"}}</h2>
<p>{{.L.T "sumGbp"}}: <b>{{.Data.SumGBP}}</b> • {{.L.T "sumEur"}}: <b>{{.Data.SumEUR}}</b> • {{.L.T "sumCount"}}: <b>{{.Data.Count}}</b></p>
{{if .Data.IsAdmin}}
<p><a class="btn" href="/export.csv">{{.L.T "btnExport"}}</a>
<a class="btn" href="/reset-totals">{{.L.T "btnReset"}}</a></p>
{{end}}
<table>
<tr><th>{{.L.T "thId"}}</th><th>{{.L.T "thDate"}}</th><th>{{.L.T "thClient"}}</th><th>{{.L.T "thCurrency"}}</th><th>{{.L.T "thRecipient"}}</th><th>{{.L.T "thBank"}}</th><th>{{.L.T "thKz"}}</th>{{if .Data.IsAdmin}}<th>{{.L.T "thDelete"}}</th>{{end}}</tr>
{{range .Data.Rows}}
<tr>
<td>{{.ID}}</td><td>{{.Date}}</td><td>{{.Client}}</td>
<td>{{.Currency}}</td><td>{{.Recipient}}</td><td>{{.Bank}}</td><td>{{.Kz}}</td>
{{if $.Data.IsAdmin}}<td><form method="post" action="/tx/delete/{{.ID}}"><button class="btn">✖</button></form></td>{{end}}
</tr>
{{end}}
</table>
</section>
{{template "footer" .}}
{{end}}

{{define "backups"}}
{{template "header" .}}
<section class="card">
<h2>{{.L.T "backupsTitle"}}</h2>
<form method="post" action="/backups/save">
<label>{{.L.T "lblBackupName"}}</label><input name="name">
<p><button class="btn">{{.L.T "btnSaveBackup"}}</button></p>
</form>
<table>
<tr><th>{{.L.T "lblBackupName"}}</th><th>{{.L.T "thDate"}}</th><th></th></tr>
{{range .Data.Records}}
<tr>
<td>{{.Name}}</td><td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td>
<td><form method="post" action="/backups/restore"><input type="hidden" name="id" value="{{.ID}}"><button class="btn">{{$.L.T "btnRestore"}}</button></form></td>
</tr>
{{end}}
</table>
</section>
{{template "footer" .}}
{{end}}

{{define "reset"}}
{{template "header" .}}
<section class="card">
<h2>{{.L.T "resetTitle"}}</h2>
<p>{{.L.T "resetWarning"}}</p>
<form method="post" action="/reset-totals">
<label>{{.L.T "lblBackupName"}}</label><input name="name">
<p><button class="btn">{{.L.T "btnConfirmReset"}}</button></p>
</form>
</section>
{{template "footer" .}}
{{end}}
`))
