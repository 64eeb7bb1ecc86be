package config

// Reminder — утренний дайджест задач в разрешённый чат. Требует Redis
// (расписание и очередь живут в asynq).
type Reminder struct {
	Enabled  bool   `env:"REMINDER_ENABLED" envDefault:"false"`
	Cronspec string `env:"REMINDER_CRONSPEC" envDefault:"0 9 * * *"`
}
