package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"comicbox/internal/catalog"
	"comicbox/internal/comic"
	"comicbox/internal/config"
	"comicbox/internal/formats"
	"comicbox/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	registryOnce sync.Once
	registry     *formats.Registry
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) formatRegistry() *formats.Registry {
	c.registryOnce.Do(func() {
		logger, err := c.ensureLogger()
		if err != nil {
			logger = logging.NewNop()
		}
		c.registry = formats.NewRegistry(logger)
	})
	return c.registry
}

// options builds comic options from the config, applying flag overrides.
func (c *commandContext) options(metadataFlags []string, writeFormats []string) (comic.Options, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return comic.Options{}, err
	}
	opts, err := comic.OptionsFromConfig(cfg)
	if err != nil {
		return comic.Options{}, err
	}
	opts.CLI = metadataFlags
	if len(writeFormats) > 0 {
		opts.WriteFormats = opts.WriteFormats[:0]
		for _, name := range writeFormats {
			f, err := formats.ParseFormat(name)
			if err != nil {
				return comic.Options{}, err
			}
			opts.WriteFormats = append(opts.WriteFormats, f)
		}
	}
	return opts, nil
}

func (c *commandContext) loader(opts comic.Options) (*comic.Loader, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return comic.NewLoader(c.formatRegistry(), opts, logger), nil
}

func (c *commandContext) writer(opts comic.Options) (*comic.Writer, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return comic.NewWriter(c.formatRegistry(), opts, logger), nil
}

func (c *commandContext) withCatalog(fn func(*catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
