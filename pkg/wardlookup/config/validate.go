package config

import (
	"errors"
	"fmt"

	"github.com/ukaji3/wardlookup/pkg/wardlookup/logging"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/postcodes"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateLookup(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAPI() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must be set")
	}
	if c.API.BatchSize < 1 || c.API.BatchSize > postcodes.MaxBatchSize {
		return fmt.Errorf("api.batch_size must be between 1 and %d", postcodes.MaxBatchSize)
	}
	if c.API.SingleTimeoutSeconds <= 0 {
		return errors.New("api.single_timeout_seconds must be positive")
	}
	if c.API.BatchTimeoutSeconds <= 0 {
		return errors.New("api.batch_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLookup() error {
	if c.Lookup.DelaySeconds < 0 {
		return errors.New("lookup.delay_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("logging.format %q is not supported (use console or json)", c.Logging.Format)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}
