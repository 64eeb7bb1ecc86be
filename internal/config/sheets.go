package config

// Sheets — доступ к таблице: идентификатор и JSON сервисного аккаунта как
// есть, одной переменной.
type Sheets struct {
	SpreadsheetID   string `env:"SHEET_ID"`
	CredentialsJSON string `env:"GOOGLE_CREDENTIALS" json:"-"`
}
