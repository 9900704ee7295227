package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/wgapi/client"
	"github.com/s0up4200/wgapi/cluster"
	"github.com/s0up4200/wgapi/config"
	"github.com/s0up4200/wgapi/request"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	// Global flags
	clusterFlag string
	regionFlag  string
	appIDFlag   string
	logLevel    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wgapi",
	Short: "Query the Wargaming public API from the command line",
	Long: `wgapi sends requests to the Wargaming public game-statistics API and
prints the decoded data. Any method block can be called with get or post;
regions lists the known API hosts and status reports online players.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&clusterFlag, "cluster", "c", "", "cluster to query (wot, wotb, wotx, wows, wowp, wgn)")
	rootCmd.PersistentFlags().StringVarP(&regionFlag, "region", "r", "", "region to query (ru, eu, na, asia, ps4, xbox)")
	rootCmd.PersistentFlags().StringVar(&appIDFlag, "app-id", "", "application id, overrides api.application_id")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides logging.level")
}

// initializeApp loads the configuration and sets up the logger
func initializeApp(cmd *cobra.Command, args []string) error {
	var overrides []config.LoadOption
	if cmd.Flags().Changed("app-id") {
		overrides = append(overrides, config.WithOverride("api.application_id", appIDFlag))
	}
	if cmd.Flags().Changed("log-level") {
		overrides = append(overrides, config.WithOverride("logging.level", logLevel))
	}

	var err error
	cfg, err = config.Load(cfgFile, overrides...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out *os.File) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	var w io.Writer = zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newClient creates an API client from the loaded configuration
func newClient() (*client.Client, error) {
	if err := cfg.ValidateForRequests(); err != nil {
		return nil, fmt.Errorf("%w (set it in the config file, WGAPI_API_APPLICATION_ID or --app-id)", err)
	}

	c, err := client.NewFromConfig(cfg.API, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return c, nil
}

// target resolves the cluster and region from flags, falling back to the configured defaults
func target() (cluster.Cluster, cluster.Region, error) {
	clusterName := cfg.Defaults.Cluster
	if clusterFlag != "" {
		clusterName = clusterFlag
	}
	regionName := cfg.Defaults.Region
	if regionFlag != "" {
		regionName = regionFlag
	}

	c, err := cluster.ParseCluster(clusterName)
	if err != nil {
		return "", "", err
	}
	r, err := cluster.ParseRegion(regionName)
	if err != nil {
		return "", "", err
	}
	return c, r, nil
}

// baseBuilder returns a builder for the resolved cluster and region
func baseBuilder() (request.Builder, error) {
	c, r, err := target()
	if err != nil {
		return request.Builder{}, err
	}
	return request.New().
		WithScheme(request.Scheme(cfg.API.Scheme)).
		WithCluster(c).
		WithRegion(r), nil
}
