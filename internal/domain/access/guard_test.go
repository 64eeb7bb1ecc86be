package access_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"crm_bot/internal/domain/access"
)

func TestGuardAuthorize(t *testing.T) {
	rq := require.New(t)

	guard := access.NewGuard("1217838677")

	testCases := []struct {
		name       string
		senderID   string
		authorized bool
	}{
		{
			name:       "Allowed sender",
			senderID:   "1217838677",
			authorized: true,
		},
		{
			name:       "Other sender",
			senderID:   "42",
			authorized: false,
		},
		{
			name:       "Empty sender",
			senderID:   "",
			authorized: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.authorized, guard.Authorize(tc.senderID))
		})
	}
}

func TestGuardEmptyAllowList(t *testing.T) {
	rq := require.New(t)

	// Пустая конфигурация не должна превращаться в "разрешено всем" или
	// "разрешено пустому отправителю".
	guard := access.NewGuard("")

	rq.False(guard.Authorize(""))
	rq.False(guard.Authorize("42"))
}
