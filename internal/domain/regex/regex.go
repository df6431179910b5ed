// Package regex compiles and caches various regex expressions.
package regex

import (
	"regexp"
)

var (
	feedChannel  *regexp.Regexp
	feedPlaylist *regexp.Regexp
	watchURL     *regexp.Regexp
	bareURL      *regexp.Regexp
)

// FeedChannelCompile compiles regex for feed-style channel URLs.
//
// The capture group is the channel identifier.
func FeedChannelCompile() *regexp.Regexp {
	if feedChannel == nil {
		feedChannel = regexp.MustCompile(`^https://www\.youtube\.com/feeds/videos\.xml\?channel_id=(.+)$`)
	}
	return feedChannel
}

// FeedPlaylistCompile compiles regex for feed-style playlist URLs.
//
// The capture group is the playlist identifier.
func FeedPlaylistCompile() *regexp.Regexp {
	if feedPlaylist == nil {
		feedPlaylist = regexp.MustCompile(`^https://www\.youtube\.com/feeds/videos\.xml\?playlist_id=(.+)$`)
	}
	return feedPlaylist
}

// WatchURLCompile compiles regex for direct video watch URLs.
func WatchURLCompile() *regexp.Regexp {
	if watchURL == nil {
		watchURL = regexp.MustCompile(`^https://www\.youtube\.com/watch\?v=.+`)
	}
	return watchURL
}

// BareURLCompile compiles regex matching bare URLs inside plain text.
func BareURLCompile() *regexp.Regexp {
	if bareURL == nil {
		bareURL = regexp.MustCompile(`https?://[^\s]+`)
	}
	return bareURL
}
