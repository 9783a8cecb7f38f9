// Command nutshelld is the reference stdio terminal binary for the
// nutshell shell library: it puts the real terminal in raw mode, wires
// the demo command tree and handler, and optionally serves Prometheus
// metrics over HTTP — the demo counterpart to the teacher's
// cmd/dittofs daemon (cobra root command, viper/YAML config, graceful
// shutdown on signal).
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/marmos91/nutshell/internal/demo"
	"github.com/marmos91/nutshell/internal/demo/accesslevel"
	"github.com/marmos91/nutshell/internal/demo/credentials"
	"github.com/marmos91/nutshell/internal/logger"
	"github.com/marmos91/nutshell/pkg/credential"
	"github.com/marmos91/nutshell/pkg/metrics"
	"github.com/marmos91/nutshell/pkg/shell"
)

var (
	version = "dev"

	configFile string
	noAuth     bool
)

func main() {
	root := &cobra.Command{
		Use:   "nutshelld",
		Short: "Reference stdio terminal for the nutshell embedded shell",
		Long: `nutshelld drives the nutshell shell library from the real
terminal over stdin/stdout, demonstrating login, navigation, tab
completion, history recall, and sync/async command dispatch.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")
	root.Flags().BoolVar(&noAuth, "no-auth", false, "disable authentication, skipping straight to the command prompt")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starting configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInit,
	}
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("nutshelld", version)
			return nil
		},
	}
	root.AddCommand(initCmd, versionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "nutshelld:", err)
		os.Exit(1)
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "nutshelld.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	return writeSampleConfig(path, defaultConfig())
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	reg := prometheus.NewRegistry()
	shellMetrics := metrics.New(reg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.MetricsAddr != "" {
		srv := startMetricsServer(ctx, cfg.MetricsAddr, reg, log)
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	handler := demo.NewHandler()

	shellCfg := shell.Config[accesslevel.AccessLevel]{
		MaxInput:                  cfg.MaxInput,
		MaxPathDepth:              cfg.MaxPathDepth,
		MaxArgs:                   cfg.MaxArgs,
		MaxPrompt:                 cfg.MaxPrompt,
		MaxResponse:               cfg.MaxResponse,
		HistorySize:               cfg.HistorySize,
		CompletionEnabled:         cfg.Completion,
		WelcomeBanner:             "nutshelld " + version,
		WelcomeBannerAuth:         "nutshelld " + version + " -- login required",
		LoginPrompt:               "login: ",
		LoginSuccessMessage:       "login successful",
		LoginFailedMessage:        "login incorrect",
		InvalidLoginFormatMessage: `expected "username:password"`,
		LogoutMessage:             "logged out",
		LevelName:                 accesslevel.Name,
		LevelFromName:             accesslevel.FromName,
	}

	opts := []shell.Option[accesslevel.AccessLevel]{
		shell.WithMetrics[accesslevel.AccessLevel](shellMetrics),
		shell.WithLogger[accesslevel.AccessLevel](log),
	}

	if !noAuth {
		provider, err := credential.NewStaticProvider(credentials.Table)
		if err != nil {
			return fmt.Errorf("nutshelld: building credential provider: %w", err)
		}
		opts = append(opts, shell.WithCredentialProvider[accesslevel.AccessLevel](provider))
	}

	sh, err := shell.New(&demo.Root, handler, shellCfg, opts...)
	if err != nil {
		return fmt.Errorf("nutshelld: constructing shell: %w", err)
	}
	handler.CurrentUser = func() string {
		if u := sh.User(); u != nil {
			return u.Username
		}
		return ""
	}

	io, err := NewTermIO()
	if err != nil {
		return fmt.Errorf("nutshelld: entering raw mode: %w", err)
	}
	defer func() { _ = io.Restore() }()
	sh.SetIO(io)

	if err := sh.Activate(ctx); err != nil {
		return fmt.Errorf("nutshelld: activating shell: %w", err)
	}

	return runLoop(ctx, sh, io)
}

// runLoop polls TermIO for available bytes and feeds them to the shell
// one at a time, the canonical "ISR -> bounded queue -> main loop polls
// queue -> ProcessChar" pattern spec.md section 5 describes (here the
// background reader goroutine plays the ISR's role).
func runLoop(ctx context.Context, sh *shell.Shell[accesslevel.AccessLevel], io *TermIO) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		c, ok, err := io.GetChar()
		if err != nil {
			return err
		}
		if !ok {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err := sh.ProcessCharAsync(ctx, c); err != nil {
			return fmt.Errorf("nutshelld: processing input: %w", err)
		}
	}
}

func startMetricsServer(ctx context.Context, addr string, reg *prometheus.Registry, log *logger.Logger) *http.Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "metrics server exited", "error", err)
		}
	}()
	return srv
}
