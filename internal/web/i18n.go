package web

// Lang resolves display strings for one of the two portal languages.
type Lang map[string]string

// T returns the string for key, or the key itself when it has no entry,
// which keeps missing translations visible instead of blank.
func (l Lang) T(key string) string {
	if v, ok := l[key]; ok {
		return v
	}
	return key
}

var translations = map[string]Lang{
	"en": {
		"title":      "Adox – Employee Portal",
		"loginTitle": "Sign in",
		"username":   "Username",
		"password":   "Password",
		"signIn":     "Sign in",
		"signOut":    "Sign out",

		"welcomeTitle": "Welcome",
		"btnGbp":       "Record Transaction (GBP)",
		"btnEur":       "Record Transaction (EUR)",
		"btnCalc":      "Exchange Rate Calculator",
		"btnReports":   "Reports",
		"btnBackups":   "Saved Backups",

		"lblDate":      "Date",
		"lblTime":      "Time",
		"lblClient":    "Client name",
		"lblRecipient": "Who should receive the money",
		"lblBank":      "Recipient bank",
		"lblAmount":    "Amount received",
		"lblRate":      "Exchange rate",
		"lblKz":        "Amount sent (AOA/Kz)",
		"btnSubmit":    "Submit Transaction",
		"btnCalcNow":   "Calculate",

		"reportsTitle": "Reports",
		"sumGbp":       "Total GBP received (Kz)",
		"sumEur":       "Total EUR received (Kz)",
		"sumCount":     "Transactions",
		"btnExport":    "Export CSV",
		"btnReset":     "Reset Totals (with backup)",
		"thId":         "Id",
		"thDate":       "Date",
		"thClient":     "Client",
		"thCurrency":   "Currency",
		"thRecipient":  "Recipient",
		"thBank":       "Bank",
		"thKz":         "Kz Sent",
		"thDelete":     "Delete",

		"backupsTitle":   "Saved Backups",
		"lblBackupName":  "Backup name",
		"btnSaveBackup":  "Save current data",
		"btnRestore":     "Restore",
		"resetTitle":     "Reset Totals",
		"resetWarning":   "All transactions will be backed up and then removed.",
		"btnConfirmReset": "Back up and reset",

		"msg.tx_saved":       "Transaction saved",
		"msg.tx_deleted":     "Deleted",
		"msg.backup_saved":   "Backup saved",
		"msg.restored":       "Backup restored",
		"msg.reset_done":     "Totals reset and backup saved",
		"msg.bad_login":      "Invalid credentials",
		"msg.missing_fields": "Please fill the required fields",
	},
	"pt": {
		"title":      "Adox – Portal do Colaborador",
		"loginTitle": "Entrar",
		"username":   "Utilizador",
		"password":   "Palavra-passe",
		"signIn":     "Entrar",
		"signOut":    "Sair",

		"welcomeTitle": "Bem-vindo",
		"btnGbp":       "Registar Transação (GBP)",
		"btnEur":       "Registar Transação (EUR)",
		"btnCalc":      "Calculadora de Câmbio",
		"btnReports":   "Relatórios",
		"btnBackups":   "Cópias Guardadas",

		"lblDate":      "Data",
		"lblTime":      "Hora",
		"lblClient":    "Nome do cliente",
		"lblRecipient": "Quem deve receber o dinheiro",
		"lblBank":      "Banco do destinatário",
		"lblAmount":    "Montante recebido",
		"lblRate":      "Taxa de câmbio",
		"lblKz":        "Montante enviado (AOA/Kz)",
		"btnSubmit":    "Submeter Transação",
		"btnCalcNow":   "Calcular",

		"reportsTitle": "Relatórios",
		"sumGbp":       "Total GBP recebido (Kz)",
		"sumEur":       "Total EUR recebido (Kz)",
		"sumCount":     "Transações",
		"btnExport":    "Exportar CSV",
		"btnReset":     "Repor Totais (com cópia)",
		"thId":         "Id",
		"thDate":       "Data",
		"thClient":     "Cliente",
		"thCurrency":   "Moeda",
		"thRecipient":  "Destinatário",
		"thBank":       "Banco",
		"thKz":         "Kz Enviado",
		"thDelete":     "Apagar",

		"backupsTitle":   "Cópias Guardadas",
		"lblBackupName":  "Nome da cópia",
		"btnSaveBackup":  "Guardar dados atuais",
		"btnRestore":     "Restaurar",
		"resetTitle":     "Repor Totais",
		"resetWarning":   "Todas as transações serão copiadas e depois removidas.",
		"btnConfirmReset": "Copiar e repor",

		"msg.tx_saved":       "Transação guardada",
		"msg.tx_deleted":     "Apagado",
		"msg.backup_saved":   "Cópia guardada",
		"msg.restored":       "Cópia restaurada",
		"msg.reset_done":     "Totais repostos e cópia guardada",
		"msg.bad_login":      "Credenciais inválidas",
		"msg.missing_fields": "Preencha os campos obrigatórios",
	},
}

func langFor(code string) Lang {
	if l, ok := translations[code]; ok {
		return l
	}
	return translations["en"]
}
