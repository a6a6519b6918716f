package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vk/cmdsync/internal/catalog"
	"github.com/vk/cmdsync/internal/ctxlog"
	"resty.dev/v3"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://discord.com/api/v10"

// DefaultTimeout bounds each API call when Config.Timeout is not set.
const DefaultTimeout = 15 * time.Second

const userAgent = "DiscordBot (https://github.com/vk/cmdsync, 1.0)"

// Config configures a Client.
type Config struct {
	BaseURL string
	Token   string
	// Timeout bounds every API call, on top of any deadline in the caller's context.
	Timeout time.Duration
}

// Identity is the application that owns the registration endpoint.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Client talks to the remote command registry.
type Client struct {
	http    *resty.Client
	timeout time.Duration
}

// New creates a Client. Call Close when done with it.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		http.SetHeader("Authorization", "Bot "+cfg.Token)
	}

	return &Client{http: http, timeout: cfg.Timeout}
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	return c.http.Close()
}

// ResolveIdentity returns the application the credential belongs to.
func (c *Client) ResolveIdentity(ctx context.Context) (Identity, error) {
	logger := ctxlog.FromContext(ctx)
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger.Debug("Resolving application identity.")
	var id Identity
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&id).
		Get("/applications/@me")
	if err != nil {
		return Identity{}, &IdentityResolutionError{Err: err}
	}
	if resp.IsError() {
		return Identity{}, &IdentityResolutionError{
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s: %s", resp.Status(), resp.String()),
		}
	}
	if id.ID == "" {
		return Identity{}, &IdentityResolutionError{
			StatusCode: resp.StatusCode(),
			Err:        errors.New("response carries no application id"),
		}
	}

	logger.Info("Resolved application identity.", "application_id", id.ID, "application", id.Name)
	return id, nil
}

// ReplaceCommands sets the command set of identity within scope to exactly
// cat. An empty catalog removes every command in scope.
func (c *Client) ReplaceCommands(ctx context.Context, identity Identity, scope string, cat catalog.Catalog) error {
	logger := ctxlog.FromContext(ctx).With("scope", scope)
	if identity.ID == "" {
		return &RegistrationError{Scope: scope, Err: errors.New("identity has no id")}
	}
	if scope == "" {
		return &RegistrationError{Scope: scope, Err: errors.New("scope must not be empty")}
	}

	if cat == nil {
		cat = catalog.Catalog{}
	}
	body, err := json.Marshal(cat)
	if err != nil {
		return &RegistrationError{Scope: scope, Err: fmt.Errorf("encode catalog: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger.Debug("Replacing remote command set.", "commands", len(cat))
	var applied []json.RawMessage
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParams(map[string]string{
			"application": identity.ID,
			"scope":       scope,
		}).
		SetBody(body).
		SetResult(&applied).
		Put("/applications/{application}/guilds/{scope}/commands")
	if err != nil {
		return &RegistrationError{Scope: scope, Err: err}
	}
	if resp.IsError() {
		return &RegistrationError{
			Scope:      scope,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s: %s", resp.Status(), resp.String()),
		}
	}

	logger.Info("Remote command set replaced.", "commands", len(cat), "applied", len(applied))
	return nil
}
