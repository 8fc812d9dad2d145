package graph

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/c360/lexigraph/errors"
)

// Runner abstracts parameterized query execution against the graph store.
// The production implementation is Client; tests supply fakes.
type Runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) ([]Row, error)
}

// ConnectionStatus represents the state of the database connection
type ConnectionStatus int

// Possible connection statuses
const (
	StatusDisconnected ConnectionStatus = iota
	StatusConnecting
	StatusConnected
)

// String returns the string representation of ConnectionStatus
func (s ConnectionStatus) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Client manages the process-scoped Neo4j driver. The driver is created
// once at startup and closed once at shutdown; each query acquires its own
// request-scoped session. The driver is safe for concurrent use.
type Client struct {
	uri      string
	username string
	password string
	logger   *slog.Logger

	connectTimeout time.Duration

	driver neo4j.DriverWithContext
	status atomic.Value // stores ConnectionStatus

	mu      sync.RWMutex // protects driver
	closeMu sync.Mutex   // ensures Close is called only once
	closed  atomic.Bool
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithLogger sets the structured logger for connection lifecycle events
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithConnectTimeout sets the connectivity verification timeout
func WithConnectTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.connectTimeout = timeout
	}
}

// NewClient creates a new graph database client. The connection is not
// established until Connect is called.
func NewClient(uri, username, password string, opts ...ClientOption) (*Client, error) {
	if uri == "" {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "Client", "NewClient",
			"database URI is required")
	}

	c := &Client{
		uri:            uri,
		username:       username,
		password:       password,
		logger:         slog.Default(),
		connectTimeout: 10 * time.Second,
	}
	c.status.Store(StatusDisconnected)

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Connect creates the driver and verifies connectivity
func (c *Client) Connect(ctx context.Context) error {
	if c.closed.Load() {
		return errors.WrapFatal(errors.ErrShuttingDown, "Client", "Connect",
			"client is closed")
	}

	c.mu.Lock()
	if c.driver != nil {
		c.mu.Unlock()
		return errors.WrapInvalid(errors.ErrAlreadyStarted, "Client", "Connect",
			"driver already created")
	}
	c.status.Store(StatusConnecting)

	driver, err := neo4j.NewDriverWithContext(c.uri, neo4j.BasicAuth(c.username, c.password, ""))
	if err != nil {
		c.status.Store(StatusDisconnected)
		c.mu.Unlock()
		return errors.WrapInvalid(err, "Client", "Connect", "create driver")
	}
	c.driver = driver
	c.mu.Unlock()

	verifyCtx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		c.status.Store(StatusDisconnected)
		return errors.WrapTransient(err, "Client", "Connect", "verify connectivity")
	}

	c.status.Store(StatusConnected)
	c.logger.Info("graph database connection established", "status", c.Status().String())
	return nil
}

// Status returns the current connection status
func (c *Client) Status() ConnectionStatus {
	if s, ok := c.status.Load().(ConnectionStatus); ok {
		return s
	}
	return StatusDisconnected
}

// IsConnected reports whether the client has a verified connection
func (c *Client) IsConnected() bool {
	return c.Status() == StatusConnected
}

// Verify re-checks connectivity and updates the connection status.
// Used by health checks to detect a connection lost after startup.
func (c *Client) Verify(ctx context.Context) error {
	c.mu.RLock()
	driver := c.driver
	c.mu.RUnlock()

	if driver == nil {
		return errors.WrapTransient(errors.ErrNoConnection, "Client", "Verify",
			"driver not created")
	}

	verifyCtx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		c.status.Store(StatusDisconnected)
		return errors.WrapTransient(err, "Client", "Verify", "verify connectivity")
	}

	c.status.Store(StatusConnected)
	return nil
}

// Run executes a parameterized Cypher query on a request-scoped session and
// materializes every record into a Row. The session is always released,
// on success or error.
func (c *Client) Run(ctx context.Context, cypher string, params map[string]any) ([]Row, error) {
	c.mu.RLock()
	driver := c.driver
	c.mu.RUnlock()

	if driver == nil {
		return nil, errors.WrapTransient(errors.ErrNoConnection, "Client", "Run",
			"driver not created")
	}

	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer func() {
		_ = session.Close(ctx)
	}()

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, errors.WrapTransient(err, "Client", "Run", "execute query")
	}

	var rows []Row
	for result.Next(ctx) {
		rows = append(rows, Row(result.Record().AsMap()))
	}
	if err := result.Err(); err != nil {
		return nil, errors.WrapTransient(err, "Client", "Run", "consume results")
	}

	return rows, nil
}

// Close releases the driver. Safe to call multiple times.
func (c *Client) Close(ctx context.Context) error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()

	if c.closed.Load() {
		return nil
	}
	c.closed.Store(true)
	c.status.Store(StatusDisconnected)

	c.mu.Lock()
	driver := c.driver
	c.driver = nil
	c.mu.Unlock()

	if driver == nil {
		return nil
	}

	if err := driver.Close(ctx); err != nil {
		return errors.WrapTransient(err, "Client", "Close", "close driver")
	}

	c.logger.Info("graph database connection closed")
	return nil
}
