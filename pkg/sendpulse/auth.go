package sendpulse

import (
	"context"
	"net/http"

	"github.com/natserract/sendpulse/pkg/config"
	httpclient "github.com/natserract/sendpulse/pkg/http"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const tokenPath = "oauth/access_token"

// AuthRequest is the client credentials grant sent to the token endpoint
type AuthRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// AuthResponse is the token endpoint reply
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Init builds a client for the given credentials, creating storageDir when
// needed, and makes sure it holds a token.
func Init(ctx context.Context, userID, secret, storageDir string, opts ...Option) (*Client, error) {
	cfg := &config.Config{
		APIURL:           config.DefaultAPIURL,
		UserID:           userID,
		Secret:           secret,
		TokenStorage:     storageDir,
		HTTPTimeout:      config.DefaultHTTPTimeout,
		TransportRetries: config.DefaultTransportRetries,
	}

	c, err := NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}

	if _, err := c.Init(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Init loads the cached token for this client's credentials. When there is
// none it fetches a new one.
func (c *Client) Init(ctx context.Context) (string, error) {
	token, ok, err := c.store.Load(ctx, c.cacheKey)
	if err != nil {
		c.logger.Warn("Failed to read cached token, requesting a new one",
			zap.Error(err),
			zap.String("cache_key", c.cacheKey))
	}

	if ok {
		c.session.set(token)
		c.logger.Info("Using cached access token", zap.String("cache_key", c.cacheKey))
		return token, nil
	}

	return c.FetchToken(ctx)
}

// FetchToken requests a new token, persists it and makes it current. On
// failure neither the store nor the in-memory token change.
func (c *Client) FetchToken(ctx context.Context) (string, error) {
	c.logger.Info("Authenticating with SendPulse", zap.String("cache_key", c.cacheKey))

	payload, err := httpclient.EncodeJSON(AuthRequest{
		GrantType:    "client_credentials",
		ClientID:     c.config.UserID,
		ClientSecret: c.config.Secret,
	})
	if err != nil {
		return "", refreshError(err)
	}

	// Sent directly: a 401 here must not trigger another refresh
	resp, err := c.send(ctx, requestDescriptor{
		path:   tokenPath,
		method: http.MethodPost,
		body:   payload,
	}, c.logger)
	if err != nil {
		c.logger.Error("Token request failed", zap.Error(err))
		return "", refreshError(err)
	}

	if !gjson.ValidBytes(resp.Body) {
		c.logger.Error("Token endpoint returned invalid JSON", zap.Int("status_code", resp.StatusCode))
		return "", refreshError(invalidResponseError())
	}

	reply := gjson.ParseBytes(resp.Body)
	if reply.Get("error").String() == "invalid_client" {
		c.logger.Error("Credentials rejected", zap.Int("status_code", resp.StatusCode))
		return "", invalidCredentialsError()
	}

	token := reply.Get("access_token").String()
	if token == "" {
		msg := firstNonEmpty(
			reply.Get("error_description").String(),
			reply.Get("message").String(),
			msgInvalidToken,
		)
		c.logger.Error("Token endpoint returned no token",
			zap.Int("status_code", resp.StatusCode),
			zap.String("reason", msg))
		return "", newError(KindTokenRefresh, msg, nil)
	}

	err = c.session.persistAndSet(token, func() error {
		return c.store.Save(ctx, c.cacheKey, token)
	})
	if err != nil {
		c.logger.Error("Failed to persist token", zap.Error(err))
		return "", refreshError(err)
	}

	c.logger.Info("Successfully authenticated",
		zap.Int64("expires_in", reply.Get("expires_in").Int()))

	return token, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
