// Package cli implements the momento CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wanplusss/momento/internal/config"
	"github.com/wanplusss/momento/internal/store"
)

var (
	dbPath     string
	configPath string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "momento",
	Short: "Adaptive habit tracker",
	Long:  "Track habits with self-calibrating targets, tiered sessions, and rest-day aware streaks. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $MOMENTO_DB or ~/.momento/momento.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ~/.momento/config.yaml)")
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	return cfg
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("MOMENTO_DB"); env != "" {
		return env
	}
	return loadConfig().DBPath
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
