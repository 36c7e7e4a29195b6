package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/sitescan/internal/config"
	"github.com/nao1215/sitescan/internal/database"
)

// addDatabaseFlags registers the flags shared by commands that open the store.
func addDatabaseFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sitescan in current or home directory)")
	cmd.Flags().String("driver", config.DefaultDriver,
		"Database driver: mysql or sqlite")
	cmd.Flags().String("db-address", config.DefaultDBAddress,
		"MySQL server address (host:port)")
	cmd.Flags().String("db-name", config.DefaultDBName,
		"Database name (file name for sqlite)")
	cmd.Flags().String("db-dir", "",
		"Directory of the SQLite database (default: XDG data directory)")
	cmd.Flags().String("db-user", "",
		"Database user (default: $"+config.EnvDBUser+" or prompt)")
	cmd.Flags().String("db-password", "",
		"Database password (default: $"+config.EnvDBPassword+" or prompt)")
}

// buildConfig creates a Config from defaults, the configuration file, the
// environment and the command flags, in increasing order of precedence.
// Flags only override when set explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly requested file must exist; the default locations are optional.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := config.LoadEnvFiles(); err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)

	stringFlags := []struct {
		name string
		dst  *string
	}{
		{"driver", &cfg.Driver},
		{"db-address", &cfg.DBAddress},
		{"db-name", &cfg.DBName},
		{"db-dir", &cfg.DBDir},
		{"db-user", &cfg.DBUser},
		{"db-password", &cfg.DBPassword},
		{"list", &cfg.SitesFile},
		{"user-agent", &cfg.UserAgent},
		{"report", &cfg.ReportFormat},
		{"output", &cfg.ReportFile},
	}
	for _, f := range stringFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		if *f.dst, err = cmd.Flags().GetString(f.name); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-body-size") {
		if cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// databaseOptions converts the configuration into store options.
func databaseOptions(cfg *config.Config) database.Options {
	return database.Options{
		Driver:         cfg.Driver,
		Address:        cfg.DBAddress,
		User:           cfg.DBUser,
		Password:       cfg.DBPassword,
		Name:           cfg.DBName,
		Dir:            cfg.DBDir,
		ConnectTimeout: cfg.Timeout,
	}
}
