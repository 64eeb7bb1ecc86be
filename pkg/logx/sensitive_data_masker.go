package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

// Запросы к Telegram и Google логируются целиком, поэтому прячем токен бота в
// пути, сервисный ключ и выданные OAuth-токены.
//
//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	regexp.MustCompile("(?s)(Authorization: Bearer ).+?(\r)"),
	regexp.MustCompile(`(/bot)[0-9]+:[A-Za-z0-9_-]+(/)`),
	regexp.MustCompile(`(?s)("private_key":\s?").+?[^\\](")`),
	regexp.MustCompile(`(?s)("access_token":\s?").+?(")`),
	regexp.MustCompile(`(?s)("client_email":\s?").+?(")`),
	regexp.MustCompile(`(assertion=)[^&\s]+(.?)`),
}

type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}

	return input
}
