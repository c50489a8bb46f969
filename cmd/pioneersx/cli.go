package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pioneersx/pioneersx/internal/browser"
	"github.com/pioneersx/pioneersx/internal/config"
	"github.com/pioneersx/pioneersx/internal/logging"
	"github.com/pioneersx/pioneersx/pkg/client"
)

// cli holds the per-invocation state shared by every command.
type cli struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer

	verbose bool
	jsonOut bool

	// quietExpiry suppresses the session-expired hint while the dashboard
	// owns the terminal.
	quietExpiry bool

	open   browser.Opener
	log    *zap.Logger
	client *client.Client
	closer func() error
}

func newCLI(in io.Reader, out, errOut io.Writer) *cli {
	return &cli{in: in, out: out, errOut: errOut, open: browser.Open}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pioneersx",
		Short: "Manage your PioneersX account, payments and subscriptions",
		Long: `pioneersx talks to the PioneersX backend shared by AnalyticsX, AssistX,
CliniX, WebAR and the PioneersX studio.

Settings come from PIONEERSX_* environment variables or a .env file:
  PIONEERSX_API_URL          backend base URL
  PIONEERSX_SESSION_BACKEND  file | sqlite | redis | memory
  PIONEERSX_SESSION_DIR      directory for the file/sqlite session
  PIONEERSX_REDIS_URL        redis://host:port/db for the redis session`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "Print the raw result as JSON")

	root.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.forgotPasswordCmd(),
		c.resetPasswordCmd(),
		c.verifyEmailCmd(),
		c.profileCmd(),
		c.passwordCmd(),
		c.orderCmd(),
		c.paymentsCmd(),
		c.plansCmd(),
		c.subsCmd(),
		c.dashboardCmd(),
		c.versionCmd(),
	)
	return root
}

// backend lazily loads configuration and builds the API client so that
// commands like version never touch the session store.
func (c *cli) backend(ctx context.Context) (*client.Client, error) {
	if c.client != nil {
		return c.client, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(c.verbose || cfg.Debug)
	if err != nil {
		return nil, err
	}
	store, closer, err := cfg.OpenStore(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug("session store opened",
		zap.String("backend", cfg.SessionBackend),
		zap.String("api_url", cfg.APIURL))

	c.log = log
	c.closer = closer
	c.client = client.New(cfg.APIURL, store,
		client.WithLogger(log),
		client.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		client.WithUserAgent("pioneersx-cli/"+version),
		client.WithSessionExpiredHandler(func() {
			if c.quietExpiry {
				return
			}
			fmt.Fprintln(c.errOut, hintStyle.Render("Your session has expired. Run `pioneersx login` to sign in again."))
		}),
	)
	return c.client, nil
}

func (c *cli) close() {
	if c.closer != nil {
		if err := c.closer(); err != nil && c.log != nil {
			c.log.Warn("close session store", zap.Error(err))
		}
	}
	if c.log != nil {
		c.log.Sync() //nolint:errcheck // stderr sync fails on some terminals
	}
}

// emit prints res as JSON when --json is set, otherwise runs render on
// success. A failed result is returned as an error so the exit status is
// non-zero.
func (c *cli) emit(res client.Result, render func() error) error {
	if c.jsonOut {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return res.Err()
	}
	if err := res.Err(); err != nil {
		return err
	}
	if render == nil {
		printOK(c.out, res.Message)
		return nil
	}
	return render()
}

// run wraps a command body that needs the API client.
func (c *cli) run(fn func(ctx context.Context, api *client.Client, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		api, err := c.backend(cmd.Context())
		if err != nil {
			return err
		}
		return fn(cmd.Context(), api, args)
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(c.out, "pioneersx "+version)
		},
	}
}
