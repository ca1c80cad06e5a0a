package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

type ValkeyOptions struct {
	Address  string
	Password string
	UseTLS   bool
}

// ValkeyClient stores rendered exports so repeated downloads of the same table
// state skip serialization, across server instances.
type ValkeyClient struct {
	Client valkey.Client
	opts   ValkeyOptions
	mu     sync.RWMutex
}

func NewValkeyClient(opts ValkeyOptions) (*ValkeyClient, error) {
	client, err := connectValkey(opts)
	if err != nil {
		return nil, err
	}
	slog.Info("[ValkeyClient] Successfully connected to valkey",
		slog.String("address", opts.Address))
	return &ValkeyClient{Client: client, opts: opts}, nil
}

func connectValkey(opts ValkeyOptions) (valkey.Client, error) {
	clientOpts := valkey.ClientOption{
		InitAddress:      []string{opts.Address},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if opts.UseTLS {
		clientOpts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}
	return client, nil
}

func (vc *ValkeyClient) client() valkey.Client {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return vc.Client
}

func (vc *ValkeyClient) recreateClient() {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := connectValkey(vc.opts)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed",
			slog.String("error", err.Error()))
		return
	}
	vc.Client.Close()
	vc.Client = client
	slog.Info("[ValkeyClient] Successfully reconnected to valkey")
}

func (vc *ValkeyClient) Close() {
	vc.client().Close()
}

func (vc *ValkeyClient) Ping(ctx context.Context) error {
	c := vc.client()
	return c.Do(ctx, c.B().Ping().Build()).Error()
}

// GetBytes returns nil without error when the key does not exist.
func (vc *ValkeyClient) GetBytes(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := vc.withRetry(ctx, "GET", MAX_RETRIES, func(c valkey.Client) error {
		var err error
		data, err = c.Do(ctx, getCommand(c.B(), key)).AsBytes()
		return err
	})
	if valkey.IsValkeyNil(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// SetBytes stores value with its expiry in a single SET so a key never
// outlives ttl.
func (vc *ValkeyClient) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := vc.withRetry(ctx, "SET", MAX_RETRIES, func(c valkey.Client) error {
		return c.Do(ctx, setCommand(c.B(), key, value, ttl)).Error()
	})
	if err != nil {
		return err
	}

	slog.Debug("[ValkeyClient] Stored export",
		slog.String("key", key),
		slog.Int("bytes", len(value)))
	return nil
}

// Built commands go back to valkey's pool once sent, so every attempt builds
// its own.
func getCommand(b valkey.Builder, key string) valkey.Completed {
	return b.Get().Key(key).Build()
}

func setCommand(b valkey.Builder, key string, value []byte, ttl time.Duration) valkey.Completed {
	ttl = max(ttl, time.Second)
	return b.Set().Key(key).Value(valkey.BinaryString(value)).Ex(ttl).Build()
}

// withRetry runs attempt against the current client, recreating the client
// after connection errors.
func (vc *ValkeyClient) withRetry(ctx context.Context, op string, retries int, attempt func(c valkey.Client) error) error {
	return retry(ctx, retries, INITIAL_BACKOFF, func(i int) error {
		err := attempt(vc.client())
		if err != nil && !valkey.IsValkeyNil(err) {
			slog.Warn("[ValkeyClient] Command failed",
				slog.String("op", op),
				slog.Int("attempt", i),
				slog.String("error", err.Error()))
			if isConnectionError(err) {
				vc.recreateClient()
			}
		}
		return err
	})
}

// retry calls attempt until it succeeds or retries runs out. A valkey nil
// reply is final. There is no sleep after the last attempt.
func retry(ctx context.Context, retries int, backoff time.Duration, attempt func(i int) error) error {
	retries = max(retries, 1)
	var err error
	for i := 1; i <= retries; i++ {
		err = attempt(i)
		if err == nil || valkey.IsValkeyNil(err) || i == retries {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, MAX_BACKOFF)
	}
	return err
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
