package sendpulse

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	httpclient "github.com/natserract/sendpulse/pkg/http"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Result is an API reply that parsed as JSON, whatever its status code.
// Business failures such as 400 or 404 arrive here rather than as an Error.
type Result struct {
	StatusCode int
	Body       json.RawMessage
}

// Decode unmarshals the reply into v.
func (r *Result) Decode(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// OK reports a 2xx status.
func (r *Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get extracts a single field by gjson path, e.g. "0.id" or "result".
func (r *Result) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// requestDescriptor is one logical call. The body is already encoded so a
// resend after refresh carries identical bytes.
type requestDescriptor struct {
	path         string
	method       string
	body         []byte
	requiresAuth bool
}

// Request sends body as JSON to path and returns the parsed reply. An empty
// method means POST and a nil body is sent as {}. With requiresAuth the
// current token is attached; a 401 triggers one token refresh and one resend.
func (c *Client) Request(ctx context.Context, path, method string, body interface{}, requiresAuth bool) (*Result, error) {
	if method == "" {
		method = http.MethodPost
	}

	logger := c.logger.With(
		zap.String("call_id", uuid.NewString()),
		zap.String("method", method),
		zap.String("path", path))

	payload, err := httpclient.EncodeBody(body)
	if err != nil {
		logger.Error("Failed to encode request body", zap.Error(err))
		return nil, newError(KindValidation, err.Error(), err)
	}

	rd := requestDescriptor{
		path:         path,
		method:       method,
		body:         payload,
		requiresAuth: requiresAuth,
	}

	resp, err := c.send(ctx, rd, logger)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return parseResult(resp, logger)
	}

	if gjson.GetBytes(resp.Body, "error").String() == "invalid_client" {
		logger.Error("Credentials rejected")
		return nil, invalidCredentialsError()
	}

	logger.Info("Token rejected, refreshing")
	if _, err := c.FetchToken(ctx); err != nil {
		logger.Error("Token refresh failed", zap.Error(err))
		return nil, err
	}

	rd.requiresAuth = true
	resp, err = c.send(ctx, rd, logger)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		logger.Warn("Request still unauthorized after token refresh")
	}
	return parseResult(resp, logger)
}

// send performs one round trip. It never refreshes the token.
func (c *Client) send(ctx context.Context, rd requestDescriptor, logger *zap.Logger) (*httpclient.Response, error) {
	url, err := httpclient.JoinURL(c.config.APIURL, rd.path)
	if err != nil {
		return nil, transportError(err)
	}

	headers := map[string]string{}
	if rd.requiresAuth {
		if token := c.session.get(); token != "" {
			headers["Authorization"] = "Bearer " + token
		}
	}

	resp, err := c.httpClient.Do(httpclient.RequestOptions{
		Method:   rd.method,
		URL:      url,
		Headers:  headers,
		Body:     rd.body,
		Context:  ctx,
		MaxTries: c.config.TransportRetries,
	})
	if err != nil {
		apiErr := transportError(err)
		logger.Error("Request failed", zap.String("code", apiErr.Message))
		return nil, apiErr
	}

	logger.Debug("Received response", zap.Int("status_code", resp.StatusCode))
	return resp, nil
}

func parseResult(resp *httpclient.Response, logger *zap.Logger) (*Result, error) {
	if !json.Valid(resp.Body) {
		logger.Error("Response is not valid JSON",
			zap.Int("status_code", resp.StatusCode),
			zap.Int("body_length", len(resp.Body)))
		return nil, invalidResponseError()
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       json.RawMessage(resp.Body),
	}, nil
}

// call is the authorized request every endpoint method goes through.
func (c *Client) call(ctx context.Context, method, path string, body interface{}) (*Result, error) {
	return c.Request(ctx, path, method, body, true)
}
