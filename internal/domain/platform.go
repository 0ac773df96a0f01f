package domain

import (
	"net/url"
	"strings"
)

// Platform identifies the social network a post URL belongs to.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformUnknown   Platform = "unknown"
)

func (p Platform) String() string {
	return string(p)
}

// platformHosts is checked in order; the first platform with a matching host fragment wins.
var platformHosts = []struct {
	platform  Platform
	fragments []string
}{
	{PlatformInstagram, []string{"instagram.com", "instagr.am"}},
	{PlatformTikTok, []string{"tiktok.com"}},
	{PlatformYouTube, []string{"youtube.com", "youtu.be"}},
	{PlatformLinkedIn, []string{"linkedin.com"}},
}

// DetectPlatform classifies rawURL by its host. It never fails: a URL with no host
// or a host matching no known platform is PlatformUnknown. Malformed paths,
// queries or fragments do not affect the result.
func DetectPlatform(rawURL string) Platform {
	host := hostOf(strings.ToLower(strings.TrimSpace(rawURL)))
	if host == "" {
		return PlatformUnknown
	}

	for _, entry := range platformHosts {
		for _, fragment := range entry.fragments {
			if strings.Contains(host, fragment) {
				return entry.platform
			}
		}
	}
	return PlatformUnknown
}

// hostOf returns the host of rawURL. url.Parse rejects bad escapes and control
// characters anywhere in the URL, so the authority is cut out by hand when it fails.
func hostOf(rawURL string) string {
	if parsed, err := url.Parse(rawURL); err == nil {
		return parsed.Hostname()
	}

	_, rest, ok := strings.Cut(rawURL, "://")
	if !ok {
		return ""
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		rest = rest[i+1:]
	}
	if i := strings.LastIndex(rest, ":"); i >= 0 && !strings.Contains(rest[i:], "]") {
		rest = rest[:i]
	}
	return strings.Trim(rest, "[]")
}
