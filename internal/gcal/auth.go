package gcal

import (
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// The bot never serves the redirect. The user opens the consent URL in
// a browser and pastes the code from the localhost redirect back into
// the chat.
const oauthRedirectURL = "http://localhost"

// OAuthScopes contains only Calendar scopes
var OAuthScopes = []string{
	calendar.CalendarScope,
}

// loadOAuthConfig loads OAuth2 configuration from credentials file or environment variable
func loadOAuthConfig(credentialsFile string) (*oauth2.Config, error) {
	// Try environment variable first (useful for container deployments)
	if credJSON := os.Getenv("AGENDADOR_GOOGLE_CREDENTIALS_JSON"); credJSON != "" {
		config, err := google.ConfigFromJSON([]byte(credJSON), OAuthScopes...)
		if err == nil {
			config.RedirectURL = oauthRedirectURL
			return config, nil
		}
	}

	// Try specified file
	if credentialsFile != "" {
		if config, err := loadConfigFromFile(credentialsFile); err == nil {
			return config, nil
		}
	}

	// Try default credentials.json in current directory
	if config, err := loadConfigFromFile("./credentials.json"); err == nil {
		return config, nil
	}

	return nil, fmt.Errorf("no credentials file found - please provide credentials.json or set AGENDADOR_GOOGLE_CREDENTIALS_JSON env var")
}

// loadConfigFromFile attempts to load OAuth config from a file
func loadConfigFromFile(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config, err := google.ConfigFromJSON(data, OAuthScopes...)
	if err != nil {
		return nil, err
	}

	config.RedirectURL = oauthRedirectURL
	return config, nil
}
