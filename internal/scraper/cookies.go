package scraper

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"podtube/internal/domain/consts"
	"podtube/internal/utils/logging"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all"
)

// CookieManager caches browser cookies per base domain.
type CookieManager struct {
	mu      sync.RWMutex
	source  string
	cookies map[string][]*http.Cookie
}

// NewCookieManager returns a new cookie manager instance.
func NewCookieManager() *CookieManager {
	return &CookieManager{
		cookies: make(map[string][]*http.Cookie),
	}
}

// SetSource restricts cookie reads to one browser (e.g. "firefox"). An
// empty source reads from every installed browser.
func (cm *CookieManager) SetSource(browser string) {
	cm.mu.Lock()
	cm.source = strings.ToLower(browser)
	cm.cookies = make(map[string][]*http.Cookie)
	cm.mu.Unlock()
}

// GetCookies returns the cookies for the given URL's base domain, reading
// them from installed browsers on first use.
func (cm *CookieManager) GetCookies(rawURL string) []*http.Cookie {
	domain := baseDomain(rawURL)
	if domain == "" {
		return nil
	}

	cm.mu.RLock()
	cached, ok := cm.cookies[domain]
	source := cm.source
	cm.mu.RUnlock()
	if ok {
		return cached
	}

	var kookyCookies []*kooky.Cookie
	if source != "" {
		for _, store := range kooky.FindAllCookieStores() {
			if !strings.EqualFold(store.Browser(), source) {
				continue
			}
			cookies, err := store.ReadCookies(kooky.Valid, kooky.Domain(domain))
			if err != nil {
				logging.D(1, "failed to read cookies from %s: %v", store.Browser(), err)
				continue
			}
			kookyCookies = append(kookyCookies, cookies...)
		}
	} else {
		kookyCookies = kooky.ReadCookies(kooky.Valid, kooky.Domain(domain))
	}
	httpCookies := convertToHTTPCookies(kookyCookies)

	cm.mu.Lock()
	cm.cookies[domain] = httpCookies
	cm.mu.Unlock()

	logging.D(2, "loaded %d browser cookies for domain %q", len(httpCookies), domain)
	return httpCookies
}

// setCookies replaces the cached cookies for a domain.
func (cm *CookieManager) setCookies(domain string, cookies []*http.Cookie) {
	cm.mu.Lock()
	cm.cookies[domain] = cookies
	cm.mu.Unlock()
}

// ExportCookieFile writes the cookies for the given URL to path in Netscape
// format so subprocess tooling can consume them. Returns false when no
// cookies were available.
func (cm *CookieManager) ExportCookieFile(rawURL, path string) (bool, error) {
	cookies := cm.GetCookies(rawURL)
	if len(cookies) == 0 {
		return false, nil
	}

	var b strings.Builder
	b.WriteString("# Netscape HTTP Cookie File\n")
	for _, c := range cookies {
		flag := "FALSE"
		if strings.HasPrefix(c.Domain, ".") {
			flag = "TRUE"
		}
		secure := "FALSE"
		if c.Secure {
			secure = "TRUE"
		}
		var expires int64
		if !c.Expires.IsZero() {
			expires = c.Expires.Unix()
		}
		cookiePath := c.Path
		if cookiePath == "" {
			cookiePath = "/"
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			c.Domain, flag, cookiePath, secure, expires, c.Name, c.Value)
	}

	if err := os.WriteFile(path, []byte(b.String()), consts.PermsFile); err != nil {
		return false, fmt.Errorf("failed to write cookie file %q: %w", path, err)
	}
	return true, nil
}

// convertToHTTPCookies converts kooky cookies to standard library cookies.
func convertToHTTPCookies(kookyCookies []*kooky.Cookie) []*http.Cookie {
	httpCookies := make([]*http.Cookie, 0, len(kookyCookies))
	for _, c := range kookyCookies {
		httpCookies = append(httpCookies, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
			Secure:  c.Secure,
		})
	}
	return httpCookies
}

// baseDomain reduces a URL to its registrable two-label domain.
func baseDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	parts := strings.Split(u.Hostname(), ".")
	if len(parts) < 2 {
		return u.Hostname()
	}
	return strings.Join(parts[len(parts)-2:], ".")
}
