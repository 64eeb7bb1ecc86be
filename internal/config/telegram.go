package config

// Bot — креденшелы Telegram. ChatID — единственный разрешённый отправитель,
// сравнивается со строковым from.id апдейта.
type Bot struct {
	Token  string `env:"BOT_TOKEN" json:"-"`
	ChatID string `env:"CHAT_ID"`
}
