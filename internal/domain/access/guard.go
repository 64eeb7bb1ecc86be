package access

// Guard решает, может ли отправитель сообщения работать с ботом. Разрешён
// ровно один идентификатор; всё остальное молча игнорируется, чтобы не
// выдавать посторонним само существование бота.
type Guard struct {
	allowedID string
}

func NewGuard(allowedID string) Guard {
	return Guard{allowedID: allowedID}
}

// Authorize — чистый предикат: строгое строковое сравнение, пустой
// идентификатор никогда не авторизован.
func (g Guard) Authorize(senderID string) bool {
	return senderID != "" && senderID == g.allowedID
}
