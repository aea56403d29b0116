package config

import (
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// Validate reports a missing or inconsistent token configuration as
// common.ErrMisconfigured. The server must not start with such a config.
func (c *Config) Validate() error {
	switch {
	case c.AccessSecret == "":
		return fmt.Errorf("%w: %s is not set", common.ErrMisconfigured, EnvAccessSecret)
	case c.RefreshSecret == "":
		return fmt.Errorf("%w: %s is not set", common.ErrMisconfigured, EnvRefreshSecret)
	case c.AccessSecret == c.RefreshSecret:
		return fmt.Errorf("%w: access and refresh secrets must differ", common.ErrMisconfigured)
	case c.AccessTokenTTL <= 0:
		return fmt.Errorf("%w: %s must be positive", common.ErrMisconfigured, EnvAccessTTL)
	case c.RefreshTokenTTL <= 0:
		return fmt.Errorf("%w: %s must be positive", common.ErrMisconfigured, EnvRefreshTTL)
	case c.AccessTokenTTL >= c.RefreshTokenTTL:
		return fmt.Errorf("%w: access lifetime must be shorter than refresh lifetime", common.ErrMisconfigured)
	case c.RefreshStore != StorePostgres && c.RefreshStore != StoreRedis:
		return fmt.Errorf("%w: unknown refresh store %q", common.ErrMisconfigured, c.RefreshStore)
	}
	return nil
}
