package rest

// Ack — ответ вебхука. Транспорту всегда отвечаем 200, иначе Telegram начнёт
// дублировать доставку апдейта.
type Ack struct {
	OK    bool   `json:"ok"`
	Skip  string `json:"skip,omitempty"`
	Error string `json:"error,omitempty"`
}

// Health — статус обязательных значений конфигурации. Только SET/MISSING,
// сами значения наружу не отдаём.
type Health struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	Chat   string `json:"chat"`
	Sheet  string `json:"sheet"`
	Creds  string `json:"creds"`
}

const (
	ValueSet     = "SET"
	ValueMissing = "MISSING"
)

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
