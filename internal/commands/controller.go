// Package commands contains the CLI commands for the application
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/okra-platform/abiparse/internal/config"
	"github.com/okra-platform/abiparse/internal/fetch"
	"github.com/okra-platform/abiparse/internal/imports"
)

type Flags struct {
	LogLevel   string
	ConfigPath string
	Format     string
	Output     string
}

type Controller struct {
	Flags  *Flags
	Stdout io.Writer
	Logger zerolog.Logger
}

func (c *Controller) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// project is the loaded configuration with every configured path made absolute
type project struct {
	config *config.Config
	root   string
}

// loadProject loads the configuration named by --config, or discovers abiparse.json from the
// working directory. Without a config file the defaults apply relative to the working directory.
func (c *Controller) loadProject() (*project, error) {
	var (
		cfg  *config.Config
		root string
		err  error
	)

	if c.Flags.ConfigPath != "" {
		cfg, err = config.LoadConfigFromPath(c.Flags.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		root = filepath.Dir(c.Flags.ConfigPath)
	} else {
		cfg, root, err = config.LoadConfig()
		if errors.Is(err, config.ErrNotFound) {
			c.Logger.Debug().Msg("no config file found, using defaults")
			cfg = config.Default()
			root, err = os.Getwd()
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	cfg.ApplyEnv()

	p := &project{config: cfg, root: root}
	cfg.Schema = p.path(cfg.Schema)
	cfg.Output = p.path(cfg.Output)
	cfg.Fetch.Root = p.path(cfg.Fetch.Root)

	// Flags win over the file and are relative to the working directory
	if c.Flags.Format != "" {
		cfg.Format = c.Flags.Format
	}
	if c.Flags.Output != "" {
		cfg.Output = c.Flags.Output
	}

	c.Logger.Debug().
		Str("root", root).
		Str("schema", cfg.Schema).
		Str("format", cfg.Format).
		Msg("configuration loaded")

	return p, nil
}

func (p *project) path(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.root, rel)
}

// fetcher builds the cached fetcher used to load imported schemas
func (p *project) fetcher(logger zerolog.Logger) (imports.Fetcher, error) {
	timeout, err := p.config.FetchTimeout()
	if err != nil {
		return nil, err
	}

	opts := fetch.Options{
		Root:      p.config.Fetch.Root,
		CacheSize: p.config.Fetch.CacheSize,
		Timeout:   timeout,
		Logger:    logger,
	}
	if s3 := p.config.Fetch.S3; s3 != nil {
		opts.S3 = &fetch.S3Config{
			Endpoint:  s3.Endpoint,
			Region:    s3.Region,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
			UseSSL:    s3.UseSSL,
		}
	}

	fetcher, err := fetch.New(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create fetcher: %w", err)
	}
	return fetcher, nil
}
