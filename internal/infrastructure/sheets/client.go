package sheets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://sheets.googleapis.com"

// Client — минимальный клиент Google Sheets API v4: ровно две операции над
// значениями, которые нужны хранилищу.
type Client struct {
	baseURL       string
	spreadsheetID string
	httpClient    *http.Client
}

func NewClient(spreadsheetID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:       defaultBaseURL,
		spreadsheetID: spreadsheetID,
		httpClient:    httpClient,
	}
}

// WithBaseURL используется в тестах для подмены эндпоинта.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// GetValues читает все строки диапазона. Sheets возвращает отформатированные
// значения, то есть строки; хвостовые пустые ячейки диапазона опускаются.
func (c *Client) GetValues(ctx context.Context, valueRange string) ([][]string, error) {
	endpoint := fmt.Sprintf(
		"%s/v4/spreadsheets/%s/values/%s",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(valueRange),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	var body struct {
		Values [][]string `json:"values"`
	}

	if err := c.do(req, &body); err != nil {
		return nil, err
	}

	return body.Values, nil
}

// AppendRow дописывает одну строку в конец диапазона.
func (c *Client) AppendRow(ctx context.Context, valueRange string, row []string) error {
	endpoint := fmt.Sprintf(
		"%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=USER_ENTERED",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(valueRange),
	)

	payload, err := json.Marshal(map[string][][]string{"values": {row}})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, dest any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024)) //nolint:errcheck
		return fmt.Errorf("sheets api: status %d: %s", resp.StatusCode, body)
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	return nil
}
