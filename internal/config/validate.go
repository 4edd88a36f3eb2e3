package config

import (
	"fmt"

	"github.com/google/uuid"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	// Shared keys are optional, but a configured key this short is almost
	// certainly a placeholder left over from an example file.
	if c.Auth.BotAPIKey != "" && len(c.Auth.BotAPIKey) < 16 {
		return fmt.Errorf("auth.bot_api_key must be at least 16 characters")
	}
	if c.Auth.WhatsAppAPIKey != "" && len(c.Auth.WhatsAppAPIKey) < 16 {
		return fmt.Errorf("auth.whatsapp_api_key must be at least 16 characters")
	}

	if c.Bookmarks.DefaultUserID != "" {
		if _, err := uuid.Parse(c.Bookmarks.DefaultUserID); err != nil {
			return fmt.Errorf("bookmarks.default_user_id: %w", err)
		}
	}
	if c.Bookmarks.ImportChunkSize <= 0 {
		return fmt.Errorf("bookmarks.import_chunk_size must be > 0 (got %d)", c.Bookmarks.ImportChunkSize)
	}
	if c.Bookmarks.ImportMaxItems < c.Bookmarks.ImportChunkSize {
		return fmt.Errorf("bookmarks.import_max_items must be >= import_chunk_size")
	}

	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be > 0 (got %v)", c.Fetch.Timeout)
	}

	return nil
}
