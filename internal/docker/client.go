// Package docker provides a preflight check against the local Docker daemon
// so a live benchmark fails fast with a clear error instead of dying on the
// first compose invocation mid-sweep.
package docker

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
)

// APIClient is the subset of the Docker API the preflight uses. Narrow so
// tests can substitute a mock.
type APIClient interface {
	Ping(ctx context.Context) (types.Ping, error)
	Close() error
}

// Client wraps the official Docker client.
type Client struct {
	api APIClient
}

func NewClient() (*Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return &Client{api: cli}, nil
}

// NewClientWithAPI builds a Client around an existing API implementation.
func NewClientWithAPI(api APIClient) *Client {
	return &Client{api: api}
}

func (c *Client) Close() error {
	return c.api.Close()
}

// CheckDaemon verifies that the Docker daemon is running and reachable.
func (c *Client) CheckDaemon(ctx context.Context) error {
	if _, err := c.api.Ping(ctx); err != nil {
		return fmt.Errorf("docker daemon is not reachable: %w", err)
	}
	return nil
}
