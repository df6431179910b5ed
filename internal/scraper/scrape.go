// Package scraper looks up channel metadata the extraction backend does
// not provide: cover image URL and channel description.
package scraper

import (
	"net/http"

	"podtube/internal/utils/logging"

	"github.com/gocolly/colly"
)

// Scraper handles channel page scraping operations.
type Scraper struct {
	collector     *colly.Collector
	cookieManager *CookieManager
}

// New returns a new Scraper instance.
func New() *Scraper {
	return &Scraper{
		collector:     colly.NewCollector(),
		cookieManager: NewCookieManager(),
	}
}

// CoverURL returns the channel's cover image URL, or "" when none can be
// found. Absence is not an error, covers are optional feed metadata.
func (s *Scraper) CoverURL(channelURL string) string {
	return s.metaContent(channelURL, `meta[property="og:image"]`)
}

// ChannelDescription returns the channel's description text, or "" when
// none can be found.
func (s *Scraper) ChannelDescription(channelURL string) string {
	return s.metaContent(channelURL, `meta[property="og:description"]`)
}

// metaContent scrapes a single meta tag's content attribute off the
// channel page.
func (s *Scraper) metaContent(channelURL, selector string) string {
	c := s.collector.Clone()

	if cookies := s.cookieManager.GetCookies(channelURL); len(cookies) > 0 {
		if err := c.SetCookies(channelURL, cookies); err != nil {
			logging.D(1, "failed setting cookies for %q: %v", channelURL, err)
		}
	}

	var content string
	c.OnHTML(selector, func(e *colly.HTMLElement) {
		if content == "" {
			content = e.Attr("content")
		}
	})

	if err := c.Visit(channelURL); err != nil {
		logging.D(1, "error visiting %q for %q: %v", channelURL, selector, err)
		return ""
	}
	c.Wait()

	return content
}

// SetCookies overrides the cookie manager's lookups, primarily for tests.
func (s *Scraper) SetCookies(domain string, cookies []*http.Cookie) {
	s.cookieManager.setCookies(domain, cookies)
}
