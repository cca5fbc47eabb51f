// Package cli holds the folio command line: serve, check and user
// management, configured through viper.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/folio/internal/config"
)

var cfgFile string
var appConfig config.AppConfig

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio serves a single-page personal portfolio",
	Long: `folio renders a personal portfolio from the JSON and markdown files of a
data directory and serves it with scroll reveals, paging and modals driven
by small htmx requests.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("data", "", "content data directory (default is ./data)")
}

func initializeConfig(cmd *cobra.Command) error {
	v := config.NewViper()
	if err := config.ReadFile(v, cfgFile); err != nil {
		return err
	}
	if err := bindFlags(v, cmd, map[string]string{
		"data_dir": "data",
		"port":     "port",
	}); err != nil {
		return err
	}

	appConfig = config.FromViper(v)
	if used := v.ConfigFileUsed(); used != "" {
		log.Printf("[config] using %s", used)
	}
	return nil
}

// bindFlags maps config keys to the flags of cmd that exist.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
