package gcal

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/ricardomaia/agendador/internal/database"
)

var ErrNotAuthenticated = errors.New("user has not connected google calendar")

// IsNotAuthenticated returns true when the user has no usable Google token.
func IsNotAuthenticated(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}

// Client talks to Google Calendar on behalf of bot users. Tokens are
// stored per user in the database, so every call is scoped to a user ID.
type Client struct {
	db     *database.DB
	config *oauth2.Config
}

// NewClient creates a Google Calendar client backed by per-user tokens.
func NewClient(db *database.DB, credentialsFile string) (*Client, error) {
	config, err := loadOAuthConfig(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth config: %w", err)
	}

	return &Client{db: db, config: config}, nil
}

// IsAuthenticated reports whether the user has a stored token.
func (c *Client) IsAuthenticated(ctx context.Context, userID int64) (bool, error) {
	return c.db.HasGoogleToken(userID)
}

// AuthURL returns the OAuth consent URL the user must open in a browser.
func (c *Client) AuthURL(userID int64) string {
	state := fmt.Sprintf("tg-%d", userID)
	return c.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode trades a pasted authorization code for a token and
// stores it for the user.
func (c *Client) ExchangeCode(ctx context.Context, userID int64, code string) error {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange code for token: %w", err)
	}

	if err := c.db.SaveGoogleToken(userID, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// Disconnect drops the user's stored token.
func (c *Client) Disconnect(ctx context.Context, userID int64) error {
	return c.db.DeleteGoogleToken(userID)
}

// serviceFor builds a calendar service for one user, refreshing the
// stored token when it has expired.
func (c *Client) serviceFor(ctx context.Context, userID int64) (*calendar.Service, error) {
	token, err := c.db.GetGoogleToken(userID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ErrNotAuthenticated
	}

	source := c.config.TokenSource(ctx, token)
	fresh, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	if fresh.AccessToken != token.AccessToken {
		if fresh.RefreshToken == "" {
			fresh.RefreshToken = token.RefreshToken
		}
		if err := c.db.SaveGoogleToken(userID, fresh); err != nil {
			log.Printf("Warning: could not save refreshed token for user %d: %v", userID, err)
		}
	}

	service, err := calendar.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(fresh)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return service, nil
}
