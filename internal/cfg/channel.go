package cfg

import (
	"context"
	"fmt"

	"podtube/internal/app"
	"podtube/internal/contracts"
	"podtube/internal/domain/consts"
	"podtube/internal/domain/keys"
	"podtube/internal/models"
	"podtube/internal/registry"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initChannelCmds is the entrypoint for initializing channel commands.
func initChannelCmds(s contracts.Store) *cobra.Command {
	channelCmd := &cobra.Command{
		Use:   "channel",
		Short: "Channel commands",
		Long:  "Manage channel subscriptions with subcommands like add and list.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("please specify a subcommand. Use --help to see available subcommands")
		},
	}

	cs := s.ChannelStore()

	channelCmd.AddCommand(addChannelCmd(cs))
	channelCmd.AddCommand(listChannelCmd(cs))

	return channelCmd
}

// addChannelCmd adds a new channel subscription into the database.
func addChannelCmd(cs contracts.ChannelStore) *cobra.Command {
	var (
		url, name   string
		maxEpisodes int
	)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a channel",
		Long:  "Add a channel or playlist subscription by its feed-style URL.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				return fmt.Errorf("must enter a channel URL")
			}
			if name == "" {
				name = url
			}

			c := &models.Channel{
				URL:         url,
				Name:        name,
				MaxEpisodes: maxEpisodes,
			}

			id, err := cs.AddChannel(c)
			if err != nil {
				return err
			}
			fmt.Printf("Added channel %q (ID: %d)\n", url, id)
			return nil
		},
	}

	addCmd.Flags().StringVar(&url, keys.ChannelURL, "", "Feed-style channel or playlist URL")
	addCmd.Flags().StringVar(&name, keys.ChannelName, "", "Display name for the channel")
	addCmd.Flags().IntVar(&maxEpisodes, keys.MaxEpisodes, 0, "Cap on episodes per refresh (0 = unlimited)")

	return addCmd
}

// listChannelCmd lists the subscribed channels.
func listChannelCmd(cs contracts.ChannelStore) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			channels, err := cs.ListChannels()
			if err != nil {
				return err
			}
			if len(channels) == 0 {
				fmt.Println("No channels in database")
				return nil
			}
			for _, c := range channels {
				lastRefresh := "never"
				if !c.LastRefresh.IsZero() {
					lastRefresh = c.LastRefresh.Format("2006-01-02 15:04:05")
				}
				fmt.Printf("%sID: %d%s\nName: %s%s%s\nURL: %s\nMax episodes: %d\nLast refresh: %s\n\n",
					consts.ColorCyan, c.ID, consts.ColorReset,
					consts.ColorGreen, c.Name, consts.ColorReset,
					c.URL, c.MaxEpisodes, lastRefresh)
			}
			return nil
		},
	}
}

// initRefreshCmd refreshes one channel, or every channel when no URL is
// given.
func initRefreshCmd(ctx context.Context, s contracts.Store, reg *registry.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh [channel-url]",
		Short: "Refresh channel feeds",
		Long:  "Fetch channel contents and sync any new episodes into the database.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return app.RefreshChannel(ctx, s, reg, args[0])
			}
			return app.CheckChannels(ctx, s, reg)
		},
	}
}

// initDownloadCmd downloads a channel's pending episodes.
func initDownloadCmd(ctx context.Context, s contracts.Store, reg *registry.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "download <channel-url>",
		Short: "Download pending episodes",
		Long:  "Download every pending episode of the given channel into the video directory.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoDir := viper.GetString(keys.VideoDir)
			return app.DownloadPending(ctx, s, reg, args[0], videoDir)
		},
	}
}
