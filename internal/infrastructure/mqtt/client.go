package mqtt

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/recipe-manager/internal/infrastructure/config"
)

// Logger receives connection warnings. *logging.Logger and *slog.Logger
// both satisfy it.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
}

// hooks are the optional callbacks fired from paho's connection handlers.
type hooks struct {
	onConnect    func()
	onDisconnect func(err error)
	logger       Logger
}

// Client publishes recipe change events. It is safe for concurrent use.
type Client struct {
	paho   pahomqtt.Client
	cfg    config.MQTTConfig
	topics Topics

	// online tracks our view of the link; paho's IsConnected is consulted too
	// because it flips during reconnects before the lost handler runs.
	online atomic.Bool

	mu    sync.RWMutex
	hooks hooks
}

// Connect dials the broker and blocks until the first connection succeeds
// or the connect timeout expires. The broker publishes a retained offline
// status on our behalf if the process dies without calling Close.
func Connect(cfg config.MQTTConfig) (*Client, error) {
	c := &Client{cfg: cfg, topics: NewTopics(cfg.TopicPrefix)}

	opts := buildClientOptions(cfg)
	configureLWT(opts, c.topics, cfg.Broker.ClientID)
	opts.SetOnConnectHandler(func(pahomqtt.Client) { c.handleConnect() })
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) { c.handleDisconnect(err) })

	c.paho = pahomqtt.NewClient(opts)
	token := c.paho.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: no answer from %s:%d within %v",
			ErrConnectionFailed, cfg.Broker.Host, cfg.Broker.Port, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// paho runs the connect handler on its own goroutine.
	c.online.Store(true)
	return c, nil
}

// newClient wraps an already connected paho client.
func newClient(pc pahomqtt.Client, cfg config.MQTTConfig) *Client {
	c := &Client{paho: pc, cfg: cfg, topics: NewTopics(cfg.TopicPrefix)}
	c.online.Store(true)
	return c
}

func (c *Client) currentHooks() hooks {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hooks
}

func (c *Client) handleConnect() {
	c.online.Store(true)
	c.publishStatus("online", "")

	if fn := c.currentHooks().onConnect; fn != nil {
		fn()
	}
}

func (c *Client) handleDisconnect(err error) {
	c.online.Store(false)

	h := c.currentHooks()
	if h.logger != nil {
		h.logger.Warn("MQTT connection lost", "error", err)
	}
	if h.onDisconnect != nil {
		h.onDisconnect(err)
	}
}

// publishStatus replaces the retained status message. It returns the token
// so Close can wait for delivery; the reconnect path does not.
func (c *Client) publishStatus(status, reason string) pahomqtt.Token {
	return c.paho.Publish(c.topics.SystemStatus(), c.QoS(), true,
		buildStatusPayload(status, c.cfg.Broker.ClientID, reason))
}

// Topics returns the topic builder for the configured prefix.
func (c *Client) Topics() Topics {
	return c.topics
}

// QoS returns the configured default QoS.
func (c *Client) QoS() byte {
	return byte(c.cfg.QoS)
}

// IsConnected reports whether events can be published right now.
func (c *Client) IsConnected() bool {
	return c.paho != nil && c.online.Load() && c.paho.IsConnected()
}

// HealthCheck returns ErrNotConnected while the broker link is down.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mqtt health check: %w", err)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// Close marks the service offline on the broker and disconnects.
// Calling it more than once is harmless.
func (c *Client) Close() error {
	if c.paho == nil {
		return nil
	}
	if c.IsConnected() {
		c.publishStatus("offline", "graceful_shutdown").WaitTimeout(defaultPublishTimeout)
	}
	c.paho.Disconnect(defaultDisconnectQuiesce)
	c.online.Store(false)
	return nil
}

// SetOnConnect registers fn to run after the first connect and every reconnect.
func (c *Client) SetOnConnect(fn func()) {
	c.mu.Lock()
	c.hooks.onConnect = fn
	c.mu.Unlock()
}

// SetOnDisconnect registers fn to run when the connection drops.
func (c *Client) SetOnDisconnect(fn func(err error)) {
	c.mu.Lock()
	c.hooks.onDisconnect = fn
	c.mu.Unlock()
}

// SetLogger enables connection-loss warnings.
func (c *Client) SetLogger(logger Logger) {
	c.mu.Lock()
	c.hooks.logger = logger
	c.mu.Unlock()
}
