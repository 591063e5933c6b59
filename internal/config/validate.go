package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of console, json", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.SheetSlots < 1 {
		return errors.New("batch.sheet_slots must be at least 1")
	}
	if strings.TrimSpace(c.Batch.DefaultLedger) == "" {
		return errors.New("batch.default_ledger must be set")
	}
	if c.Printing.TimeoutSeconds < 0 {
		return errors.New("printing.timeout_seconds must not be negative")
	}
	return nil
}

// ValidatePrintOutput checks the configuration required before a batch may
// start: there must be somewhere for rendered checks to go. This is the only
// configuration problem surfaced at batch time rather than at load time,
// because inspection commands work fine without it.
func (c *Config) ValidatePrintOutput() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" && strings.TrimSpace(c.Printing.Command) == "" {
		return errors.New("no print destination configured: set paths.output_dir or printing.command")
	}
	return nil
}
