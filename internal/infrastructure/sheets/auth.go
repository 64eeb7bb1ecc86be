package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"

	"crm_bot/internal/domain"
	"crm_bot/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	defaultTokenURI  = "https://oauth2.googleapis.com/token" //nolint:gosec // endpoint, not a credential
	spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"
	grantTypeJWT     = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	tokenCacheKey = "access-token"
	// Google выдаёт токен на час; обновляем чуть раньше, чтобы не ловить 401
	// на границе.
	tokenExpiryMargin = time.Minute
)

type serviceAccountKey struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// Authenticator меняет сервисный ключ на OAuth-токен по схеме JWT bearer и
// держит выданный токен в кэше до истечения. Реализует контракт
// httpx.AuthBearerRoundTripper.
//
// Ключ разбирается при первом обмене, не при создании: процесс обязан
// подниматься и с пустым GOOGLE_CREDENTIALS, ошибка конфигурации всплывает
// при первом обращении к таблице.
type Authenticator struct {
	credentialsJSON string
	httpClient      *http.Client
	tokens          *cache.Cache
	now             func() time.Time
}

func NewAuthenticator(credentialsJSON string, httpClient *http.Client) *Authenticator {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Authenticator{
		credentialsJSON: credentialsJSON,
		httpClient:      httpClient,
		tokens:          cache.New(cache.NoExpiration, 5*time.Minute),
		now:             time.Now,
	}
}

func (a *Authenticator) BearerToken() string {
	token, ok := a.tokens.Get(tokenCacheKey)
	if !ok {
		return ""
	}

	return token.(string)
}

func (a *Authenticator) Authenticate(ctx context.Context) error {
	key, err := a.parseKey()
	if err != nil {
		return err
	}

	assertion, err := signAssertion(key, a.now())
	if err != nil {
		return fmt.Errorf("signAssertion: %w", err)
	}

	form := url.Values{
		"grant_type": {grantTypeJWT},
		"assertion":  {assertion},
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, key.TokenURI, strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024)) //nolint:errcheck
		return fmt.Errorf("token endpoint: status %d: %s", resp.StatusCode, body)
	}

	var issued struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&issued); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	ttl := time.Duration(issued.ExpiresIn)*time.Second - tokenExpiryMargin
	a.tokens.Set(tokenCacheKey, issued.AccessToken, ttl)

	return nil
}

func (a *Authenticator) parseKey() (serviceAccountKey, error) {
	var key serviceAccountKey

	if a.credentialsJSON == "" {
		return key, domain.NewError(errcodes.ConfigValueMissing, "GOOGLE_CREDENTIALS is empty")
	}

	if err := json.Unmarshal([]byte(a.credentialsJSON), &key); err != nil {
		return key, domain.WrapError(err, errcodes.ConfigValueMissing, "GOOGLE_CREDENTIALS is not valid JSON")
	}

	if key.ClientEmail == "" || key.PrivateKey == "" {
		return key, domain.NewError(errcodes.ConfigValueMissing, "credentials: client_email and private_key are required")
	}

	if key.TokenURI == "" {
		key.TokenURI = defaultTokenURI
	}

	return key, nil
}

func signAssertion(key serviceAccountKey, now time.Time) (string, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(key.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("jwt.ParseRSAPrivateKeyFromPEM: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":   key.ClientEmail,
		"scope": spreadsheetScope,
		"aud":   key.TokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	})

	signed, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("token.SignedString: %w", err)
	}

	return signed, nil
}
