package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gdugdh24/faithmatch-backend/internal/client/api"
	"github.com/gdugdh24/faithmatch-backend/internal/config"
	"github.com/gdugdh24/faithmatch-backend/internal/logging"
)

var errNotLoggedIn = errors.New("not logged in; run `faithctl login` first")

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := &commandContext{configFlag: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "faithctl",
		Short:         "faithmatch command line client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.ensure()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (YAML)")

	rootCmd.AddCommand(newLoginCommand(ctx))
	rootCmd.AddCommand(newLogoutCommand(ctx))
	rootCmd.AddCommand(newWhoamiCommand(ctx))
	rootCmd.AddCommand(newOnboardCommand(ctx))
	rootCmd.AddCommand(newDiscoverCommand(ctx))
	rootCmd.AddCommand(newSwipeCommand(ctx))
	rootCmd.AddCommand(newLikeCommand(ctx))
	rootCmd.AddCommand(newPassCommand(ctx))
	rootCmd.AddCommand(newMatchesCommand(ctx))
	rootCmd.AddCommand(newNotificationsCommand(ctx))

	return rootCmd
}

type commandContext struct {
	configFlag *string

	once   sync.Once
	cfg    *config.CLIConfig
	logger *zap.Logger
	err    error
}

func (c *commandContext) ensure() error {
	c.once.Do(func() {
		cfg, err := config.LoadCLI(strings.TrimSpace(*c.configFlag))
		if err != nil {
			c.err = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:       cfg.LogLevel,
			Format:      "console",
			OutputPaths: []string{"stderr"},
		})
		if err != nil {
			c.err = err
			return
		}
		c.cfg = cfg
		c.logger = logger
	})
	return c.err
}

func (c *commandContext) close() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

// client returns an unauthenticated API client.
func (c *commandContext) client() (*api.Client, error) {
	return api.New(api.Config{
		BaseURL:    c.cfg.APIURL,
		HTTPClient: &http.Client{Timeout: c.cfg.Timeout},
		Logger:     c.logger.Named("api"),
	})
}

// sessionClient returns a client bound to the stored session.
func (c *commandContext) sessionClient() (*api.Client, error) {
	sess, err := loadSession(c.cfg.SessionFile)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errNotLoggedIn
	}
	client, err := c.client()
	if err != nil {
		return nil, err
	}
	return client.WithSession(sess), nil
}

// explain turns a rejected session into a hint to log in again.
func explain(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Unauthorized() {
		return fmt.Errorf("%w (session rejected; run `faithctl login`)", err)
	}
	return err
}
