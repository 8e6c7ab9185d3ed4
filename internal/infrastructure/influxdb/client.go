package influxdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/recipe-manager/internal/infrastructure/config"
)

// Default timeouts for InfluxDB operations.
const (
	defaultConnectTimeout = 10 * time.Second
	defaultPingTimeout    = 5 * time.Second
	defaultHTTPTimeout    = 5 // seconds
)

// pointWriter is the blocking write API subset the client uses.
type pointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// pinger checks server health.
type pinger interface {
	Ping(ctx context.Context) (bool, error)
}

// Client wraps the InfluxDB v2 client.
//
// All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	client influxdb2.Client
	pinger pinger
	writer pointWriter
	cfg    config.InfluxDBConfig

	connected bool
	mu        sync.RWMutex
}

// Connect establishes a connection to the InfluxDB server.
//
// It creates a token-authenticated client, verifies connectivity with a
// ping and prepares the blocking write API for cfg.Org and cfg.Bucket.
func Connect(cfg config.InfluxDBConfig) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	// #nosec G115 -- timeout validated above to be positive
	client := influxdb2.NewClientWithOptions(
		cfg.URL,
		cfg.Token,
		influxdb2.DefaultOptions().SetHTTPRequestTimeout(uint(timeout)),
	)

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	healthy, err := client.Ping(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping failed: %w", ErrConnectionFailed, err)
	}
	if !healthy {
		client.Close()
		return nil, fmt.Errorf("%w: server not healthy", ErrConnectionFailed)
	}

	return &Client{
		client:    client,
		pinger:    client,
		writer:    client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		cfg:       cfg,
		connected: true,
	}, nil
}

// Close shuts down the InfluxDB connection. Blocking writes have nothing
// buffered, so there is nothing to flush.
func (c *Client) Close() error {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()

	if c.client != nil {
		c.client.Close()
	}
	return nil
}

// HealthCheck pings the server.
func (c *Client) HealthCheck(ctx context.Context) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	checkCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	healthy, err := c.pinger.Ping(checkCtx)
	if err != nil {
		return fmt.Errorf("influxdb health check failed: %w", err)
	}
	if !healthy {
		return fmt.Errorf("influxdb health check failed: server not healthy")
	}

	return nil
}

// IsConnected returns the last known connection state.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}
