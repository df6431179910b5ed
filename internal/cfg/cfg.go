// Package cfg provides configuration and command-line interface setup for Podtube.
package cfg

import (
	"context"
	"fmt"
	"os"
	"strings"

	"podtube/internal/contracts"
	"podtube/internal/domain/keys"
	"podtube/internal/registry"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "podtube",
	Short: "Podtube turns Youtube channels and playlists into podcast feeds.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.IsSet(keys.ConfigFile) {
			configFile := viper.GetString(keys.ConfigFile)
			if configFile == "" {
				return
			}

			cInfo, err := os.Stat(configFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed check for config file path: %v\n", err)
				os.Exit(1)
			} else if cInfo.IsDir() {
				fmt.Fprintln(os.Stderr, "config file entered is a directory, should be a file")
				os.Exit(1)
			}

			if err := loadConfigFile(configFile); err != nil {
				fmt.Fprintf(os.Stderr, "failed loading config file: %v\n", err)
				os.Exit(1)
			}
		}

		for _, f := range readyFns {
			if err := f(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
	},
}

var readyFns []func() error

// OnReady registers a function to run once flags and the config file are
// loaded, before any command executes.
func OnReady(f func() error) {
	readyFns = append(readyFns, f)
}

// InitCommands initializes all commands and their flags.
func InitCommands(ctx context.Context, s contracts.Store, reg *registry.Registry) error {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("_", "-"))

	if err := initProgramFlags(rootCmd); err != nil {
		return err
	}

	rootCmd.AddCommand(initChannelCmds(s))
	rootCmd.AddCommand(initRefreshCmd(ctx, s, reg))
	rootCmd.AddCommand(initDownloadCmd(ctx, s, reg))

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfigFile loads and merges a Viper-supported config file.
func loadConfigFile(path string) error {
	viper.SetConfigFile(path)
	if err := viper.MergeInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	return nil
}
