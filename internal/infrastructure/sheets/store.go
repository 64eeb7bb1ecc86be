package sheets

import (
	"context"
	"fmt"
	"net/http"

	"crm_bot/internal/domain/entity"
	"crm_bot/pkg/httpx"
	"crm_bot/pkg/logx"
)

const dealsRange = "A:K"

// Store — хранилище сделок поверх одного листа таблицы. Только чтение всего
// диапазона и дозапись строки в конец; порядок строк листа и есть порядок
// создания.
type Store struct {
	client *Client
}

// NewStore собирает клиент с bearer-авторизацией и логированием обоих
// направлений.
func NewStore(spreadsheetID, credentialsJSON string) *Store {
	auth := NewAuthenticator(credentialsJSON, nil)

	httpClient := &http.Client{
		Transport: httpx.NewAuthBearerRoundTripper(
			httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			),
			auth,
		),
	}

	return &Store{client: NewClient(spreadsheetID, httpClient)}
}

// NewStoreWithClient используется в тестах.
func NewStoreWithClient(client *Client) *Store {
	return &Store{client: client}
}

func (s *Store) ReadAll(ctx context.Context) ([]entity.Deal, error) {
	rows, err := s.client.GetValues(ctx, dealsRange)
	if err != nil {
		return nil, fmt.Errorf("client.GetValues: %w", err)
	}

	deals := make([]entity.Deal, 0, len(rows))

	for _, row := range rows {
		if deal, ok := dealFromRow(row); ok {
			deals = append(deals, deal)
		}
	}

	return deals, nil
}

func (s *Store) Append(ctx context.Context, deal entity.Deal) error {
	if err := s.client.AppendRow(ctx, dealsRange, rowFromDeal(deal)); err != nil {
		return fmt.Errorf("client.AppendRow: %w", err)
	}

	return nil
}
