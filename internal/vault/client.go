package vault

import (
	"context"
	"fmt"
	"os"

	vault "github.com/hashicorp/vault/api"
)

// Client wraps the Vault API for credential lookups.
type Client struct {
	api *vault.Client
}

// Credentials are the database login fields stored in a Vault secret.
type Credentials struct {
	Username string
	Password string
}

type Option func(*config)

type config struct {
	address string
	token   string
}

func WithAddress(address string) Option {
	return func(c *config) {
		c.address = address
	}
}

func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// NewClient creates a Vault client. Address and token default to the
// standard VAULT_ADDR / VAULT_TOKEN environment variables and can be
// overridden through options.
func NewClient(opts ...Option) (*Client, error) {
	cfg := &config{
		address: os.Getenv("VAULT_ADDR"),
		token:   os.Getenv("VAULT_TOKEN"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiCfg := vault.DefaultConfig()
	if cfg.address != "" {
		apiCfg.Address = cfg.address
	}

	api, err := vault.NewClient(apiCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault API client: %w", err)
	}
	if cfg.token != "" {
		api.SetToken(cfg.token)
	}

	return &Client{api: api}, nil
}

// ReadCredentials reads the username and password fields from the secret at
// path. Both KV v1 layouts and the nested data map of KV v2 are accepted.
func (c *Client) ReadCredentials(ctx context.Context, path string) (Credentials, error) {
	secret, err := c.api.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return Credentials{}, err
	}
	if secret == nil {
		return Credentials{}, fmt.Errorf("no data found at path: %s", path)
	}

	data := secret.Data
	if nested, ok := data["data"].(map[string]any); ok {
		data = nested
	}

	user, userOK := data["username"].(string)
	pass, passOK := data["password"].(string)
	if !userOK || !passOK {
		return Credentials{}, fmt.Errorf("invalid data format at path: %s", path)
	}

	return Credentials{Username: user, Password: pass}, nil
}
