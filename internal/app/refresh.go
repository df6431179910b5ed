package app

import (
	"context"
	"errors"
	"fmt"

	"podtube/internal/contracts"
	"podtube/internal/registry"
	"podtube/internal/utils/logging"
)

// CheckChannels refreshes every subscribed channel, syncing new episodes
// into the store. Channels no handler claims are skipped; per-channel
// failures are aggregated so one bad channel does not stop the rest.
func CheckChannels(ctx context.Context, s contracts.Store, reg *registry.Registry) error {
	cs := s.ChannelStore()

	channels, err := cs.ListChannels()
	if err != nil {
		return err
	}
	if len(channels) == 0 {
		logging.I("No channels in database")
		return nil
	}

	var errs []error
	for _, c := range channels {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := RefreshChannel(ctx, s, reg, c.URL); err != nil {
			errs = append(errs, fmt.Errorf("channel %q: %w", c.URL, err))
		}
	}
	return errors.Join(errs...)
}

// RefreshChannel syncs one channel: resolve its feed, diff against the
// stored GUIDs, persist the new episodes, and record the fresh channel
// metadata.
func RefreshChannel(ctx context.Context, s contracts.Store, reg *registry.Registry, channelURL string) error {
	cs := s.ChannelStore()
	es := s.EpisodeStore()

	c, err := cs.GetChannelByURL(channelURL)
	if err != nil {
		return err
	}

	res, err := reg.ResolveFeed(ctx, c, c.MaxEpisodes)
	if err != nil {
		return fmt.Errorf("resolving feed: %w", err)
	}
	if res == nil {
		logging.W("No handler claimed channel %q, skipping", c.URL)
		return nil
	}
	f := res.Feed

	known, err := es.GUIDs(c.ID)
	if err != nil {
		return fmt.Errorf("loading known GUIDs: %w", err)
	}

	newEpisodes, _, err := f.GetNewEpisodes(ctx, es.Factory(c.ID), known)
	if err != nil {
		return fmt.Errorf("syncing episodes: %w", err)
	}

	if err := cs.UpdateChannelMeta(c.ID, f.Title(), f.Description(), f.CoverURL()); err != nil {
		return err
	}
	if err := cs.SetLastRefresh(c.ID); err != nil {
		return err
	}

	logging.S(0, "Refreshed channel %q: %d new episode(s)", f.Title(), len(newEpisodes))
	return nil
}
