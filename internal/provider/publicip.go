package provider

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/girste/hostprobe/internal/errors"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const (
	DefaultPublicIPEndpoint = "https://api.ipify.org"
	maxPublicIPBody         = 64
)

// PublicIPClient asks an echo service for the caller's address.
type PublicIPClient struct {
	endpoint string
	http     *retryablehttp.Client
}

// PublicIPOptions tunes the lookup client.
type PublicIPOptions struct {
	Endpoint string
	Timeout  time.Duration
	RetryMax int
	Logger   *zap.Logger
}

// NewPublicIP builds a lookup client. Zero options select the defaults.
func NewPublicIP(opts PublicIPOptions) *PublicIPClient {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultPublicIPEndpoint
	}

	client := retryablehttp.NewClient()
	client.RetryMax = opts.RetryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	if opts.Timeout > 0 {
		client.HTTPClient.Timeout = opts.Timeout
	}
	if opts.Logger != nil {
		client.Logger = leveledZap{opts.Logger.Sugar()}
	} else {
		client.Logger = nil
	}

	return &PublicIPClient{endpoint: opts.Endpoint, http: client}
}

// Lookup performs one GET against the endpoint and validates the reply.
func (c *PublicIPClient) Lookup(ctx context.Context) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build public ip request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: public ip lookup: %v", errors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: public ip lookup: unexpected status %s", errors.ErrProviderUnavailable, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPublicIPBody))
	if err != nil {
		return "", fmt.Errorf("%w: read public ip response: %v", errors.ErrIO, err)
	}

	addr := strings.TrimSpace(string(body))
	if net.ParseIP(addr) == nil {
		return "", fmt.Errorf("%w: public ip response %q is not an address", errors.ErrParse, addr)
	}
	return addr, nil
}

// leveledZap adapts a zap sugared logger to retryablehttp.LeveledLogger.
type leveledZap struct {
	l *zap.SugaredLogger
}

func (z leveledZap) Error(msg string, kv ...interface{}) { z.l.Errorw(msg, kv...) }
func (z leveledZap) Info(msg string, kv ...interface{})  { z.l.Infow(msg, kv...) }
func (z leveledZap) Debug(msg string, kv ...interface{}) { z.l.Debugw(msg, kv...) }
func (z leveledZap) Warn(msg string, kv ...interface{})  { z.l.Warnw(msg, kv...) }
