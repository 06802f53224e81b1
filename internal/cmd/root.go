package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CauceloJuanma/reserva/internal/api"
	"github.com/CauceloJuanma/reserva/internal/auth"
	"github.com/CauceloJuanma/reserva/internal/config"
	"github.com/CauceloJuanma/reserva/internal/logging"
	"github.com/CauceloJuanma/reserva/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "reserva",
	Short: "Terminal client for the reservation marketplace",
	Long: `Reserva is a terminal client for the reservation marketplace.
Browse companies and their products, create reservations, and manage
their lifecycle (confirm or cancel) from the terminal. The session is
kept across runs in a local cookie file.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/reserva/config.yaml)")
	rootCmd.PersistentFlags().String("server", "", "backend base URL (overrides config)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("server.base_url", rootCmd.PersistentFlags().Lookup("server"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/reserva")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("RESERVA")
	// Replace dots with underscores for nested keys in env vars
	// e.g., RESERVA_SERVER_BASE_URL for server.base_url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// appContext bundles the wired components shared by the subcommands.
type appContext struct {
	cfg     *config.Config
	log     *logging.Logger
	client  *api.Client
	session *auth.Manager
}

// newAppContext builds the client stack from the effective configuration.
func newAppContext() (*appContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logging.NopLogger()
	if cfg.Logging.Enabled {
		log, err = logging.NewLogger(config.ConfigDir(), cfg.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
	}

	origin, err := url.Parse(cfg.Server.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server base URL %q: %w", cfg.Server.BaseURL, err)
	}

	sessionFile := ""
	if cfg.Session.Persist {
		sessionFile = config.SessionFile()
	}
	jar, err := session.NewJar(origin, sessionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	client, err := api.New(cfg.Server.BaseURL, jar, cfg.Server.Timeout(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return &appContext{
		cfg:     cfg,
		log:     log,
		client:  client,
		session: auth.NewManager(client, log),
	}, nil
}

func (a *appContext) Close() {
	a.log.Close()
}
