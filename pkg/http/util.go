package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// JoinURL resolves path against the base URL, keeping any path prefix the
// base already carries.
func JoinURL(baseURL, path string) (string, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("error parsing base URL: %w", err)
	}

	parsedURL.Path = strings.TrimRight(parsedURL.Path, "/") + "/" + strings.TrimLeft(path, "/")
	parsedURL.RawPath = ""

	return parsedURL.String(), nil
}

// EncodeBody returns the bytes sent on the wire for body.
func EncodeBody(body interface{}) ([]byte, error) {
	switch v := body.(type) {
	case []byte:
		return v, nil
	case nil:
		return []byte("{}"), nil
	}
	return EncodeJSON(body)
}

// EncodeJSON marshals v without HTML escaping and without a trailing newline,
// so "<h1>" stays "<h1>" on the wire.
func EncodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
