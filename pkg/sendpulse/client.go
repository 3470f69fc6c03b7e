// Package sendpulse provides a client for the SendPulse REST API.
//
// SendPulse is a multichannel marketing platform covering bulk email,
// transactional SMTP mail and SMS campaigns. Every API call is authorized
// with an OAuth bearer token obtained through the client credentials grant.
//
// The client keeps the current token in memory and persists it in a token
// store (a directory of plain files by default, or a Postgres table), so a
// restarted process reuses the token instead of fetching a new one. When the
// API answers 401 the client fetches a fresh token and resends the request
// exactly once, so callers never see an expired token.
//
// Every endpoint method returns a *Result holding the raw JSON reply, or an
// *Error when the call could not produce one.
package sendpulse

import (
	"fmt"
	"sync"

	"github.com/natserract/sendpulse/pkg/config"
	httpclient "github.com/natserract/sendpulse/pkg/http"
	"github.com/natserract/sendpulse/pkg/tokenstore"
	"go.uber.org/zap"
)

// Client is the main client for interacting with the SendPulse API
type Client struct {
	config     *config.Config
	httpClient *httpclient.Client
	store      tokenstore.Store
	cacheKey   string
	session    *session
	logger     *zap.Logger
}

// session holds the bearer token with thread-safe access
type session struct {
	mu    sync.RWMutex
	token string

	// persistMu orders store writes with the token they publish, so the
	// last token persisted is always the one held in memory.
	persistMu sync.Mutex
}

func (s *session) get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *session) set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// persistAndSet runs save and, when it succeeds, makes token current.
// Readers are not blocked while save runs.
func (s *session) persistAndSet(token string, save func() error) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if err := save(); err != nil {
		return err
	}
	s.set(token)
	return nil
}

// Option customizes a Client.
type Option func(*Client)

// WithAPIURL points the client at another API host.
func WithAPIURL(url string) Option {
	return func(c *Client) {
		c.config.APIURL = url
	}
}

// WithStore replaces the token store derived from the configuration.
func WithStore(store tokenstore.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithHTTPClient replaces the transport.
func WithHTTPClient(httpClient *httpclient.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used by the client and the stores it creates.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new SendPulse client with default production logger
func NewClient(cfg *config.Config, opts ...Option) (*Client, error) {
	logger, _ := zap.NewProduction()
	return NewClientWithLogger(cfg, logger, opts...)
}

// NewClientWithLogger creates a new SendPulse client with a custom logger.
// The token store is a FileStore under cfg.TokenStorage unless WithStore is
// given. No network I/O happens until Init or the first request.
func NewClientWithLogger(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.UserID == "" || cfg.Secret == "" {
		return nil, fmt.Errorf("user id and secret are required")
	}

	// The client owns its copy so options never leak into the caller's config
	owned := *cfg
	if owned.APIURL == "" {
		owned.APIURL = config.DefaultAPIURL
	}
	if owned.TransportRetries < 1 {
		owned.TransportRetries = config.DefaultTransportRetries
	}

	c := &Client{
		config:   &owned,
		cacheKey: tokenstore.Key(owned.UserID, owned.Secret),
		session:  &session{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = httpclient.NewClientWithTimeout(c.logger, owned.HTTPTimeout)
	}

	if c.store == nil {
		store, err := tokenstore.NewFileStore(owned.TokenStorage, c.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open token storage: %w", err)
		}
		c.store = store
	}

	return c, nil
}

// Token returns the bearer token currently held in memory.
func (c *Client) Token() string {
	return c.session.get()
}

// CacheKey returns the name under which the token is persisted.
func (c *Client) CacheKey() string {
	return c.cacheKey
}

var _ SendPulseClient = (*Client)(nil)
