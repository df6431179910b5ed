package cfg

import (
	"podtube/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initProgramFlags initializes the program-wide flags.
func initProgramFlags(rootCmd *cobra.Command) error {
	rootCmd.PersistentFlags().String(keys.ConfigFile, "", "Config file to load settings from")
	if err := viper.BindPFlag(keys.ConfigFile, rootCmd.PersistentFlags().Lookup(keys.ConfigFile)); err != nil {
		return err
	}

	rootCmd.PersistentFlags().Int(keys.DebugLevel, 0, "Debugging verbosity level (0 - 3)")
	if err := viper.BindPFlag(keys.DebugLevel, rootCmd.PersistentFlags().Lookup(keys.DebugLevel)); err != nil {
		return err
	}

	rootCmd.PersistentFlags().String(keys.VideoDir, ".", "Directory downloaded episodes are saved into")
	if err := viper.BindPFlag(keys.VideoDir, rootCmd.PersistentFlags().Lookup(keys.VideoDir)); err != nil {
		return err
	}

	rootCmd.PersistentFlags().StringSlice(keys.FormatIDs, nil, "Preferred format IDs, tried in order")
	if err := viper.BindPFlag(keys.FormatIDs, rootCmd.PersistentFlags().Lookup(keys.FormatIDs)); err != nil {
		return err
	}

	rootCmd.PersistentFlags().Bool(keys.ManageChannel, true, "Handle Youtube channel and playlist feed URLs")
	if err := viper.BindPFlag(keys.ManageChannel, rootCmd.PersistentFlags().Lookup(keys.ManageChannel)); err != nil {
		return err
	}

	rootCmd.PersistentFlags().Bool(keys.ManageDownloads, true, "Handle downloads of Youtube watch URLs")
	if err := viper.BindPFlag(keys.ManageDownloads, rootCmd.PersistentFlags().Lookup(keys.ManageDownloads)); err != nil {
		return err
	}

	rootCmd.PersistentFlags().String(keys.CookieSource, "", "Browser to import cookies from (e.g. firefox, chrome)")
	if err := viper.BindPFlag(keys.CookieSource, rootCmd.PersistentFlags().Lookup(keys.CookieSource)); err != nil {
		return err
	}

	rootCmd.PersistentFlags().String(keys.YtDlpPath, "", "Path to the yt-dlp binary (searches PATH when unset)")
	if err := viper.BindPFlag(keys.YtDlpPath, rootCmd.PersistentFlags().Lookup(keys.YtDlpPath)); err != nil {
		return err
	}

	return nil
}
