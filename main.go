// Package main is the entrypoint of Podtube.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"podtube/internal/app"
	"podtube/internal/backend"
	"podtube/internal/cfg"
	"podtube/internal/database"
	"podtube/internal/domain/consts"
	"podtube/internal/domain/keys"
	"podtube/internal/domain/paths"
	"podtube/internal/registry"
	"podtube/internal/repo"
	"podtube/internal/scraper"
	"podtube/internal/utils/logging"

	"github.com/spf13/viper"
)

// init runs before the program begins.
func init() {
	if err := paths.InitProgFilesDirs(); err != nil {
		fmt.Printf("Podtube exiting with error: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	if err := logging.SetupLogging(paths.LogFilePath, 0); err != nil {
		fmt.Printf("Podtube exiting with error: %v\n", err)
		os.Exit(1)
	}

	// The database must be open before command parsing, so its path is
	// only overridable through the environment.
	viper.SetDefault(keys.DBPath, paths.DBFilePath)
	if err := viper.BindEnv(keys.DBPath, "PODTUBE_DB_PATH"); err != nil {
		logging.E("Error binding environment: %v", err)
		os.Exit(1)
	}

	dbc, err := database.InitDB(viper.GetString(keys.DBPath))
	if err != nil {
		logging.E("Error initializing database: %v", err)
		os.Exit(1)
	}
	defer dbc.Close()

	stores := repo.InitStores(dbc.DB)

	ytdlp := backend.NewYtDlp(paths.CacheDir)
	scrape := scraper.New()

	formatSelector := func() string {
		return backend.FormatSelector(viper.GetStringSlice(keys.FormatIDs), consts.FallbackFormatID)
	}

	reg := registry.New()
	ext := app.NewExtension(ytdlp, scrape, formatSelector)

	// Runs after flags and the config file are parsed.
	cfg.OnReady(func() error {
		logging.Level = viper.GetInt(keys.DebugLevel)

		if path := viper.GetString(keys.YtDlpPath); path != "" {
			ytdlp.Path = path
		}
		ytdlp.FormatSelector = formatSelector()

		ext.Register(reg,
			viper.GetBool(keys.ManageChannel),
			viper.GetBool(keys.ManageDownloads))

		if source := viper.GetString(keys.CookieSource); source != "" {
			cm := scraper.NewCookieManager()
			cm.SetSource(source)
			ok, err := cm.ExportCookieFile("https://www.youtube.com", paths.CookieFilePath)
			if err != nil {
				return err
			}
			if ok {
				ytdlp.CookieFile = paths.CookieFilePath
			} else {
				logging.W("No cookies found in browser %q, proceeding without cookies", source)
			}
		}
		return nil
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	defer cancel()

	if err := cfg.InitCommands(ctx, stores, reg); err != nil {
		logging.E("Error: %v", err)
		os.Exit(1)
	}

	if err := cfg.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
