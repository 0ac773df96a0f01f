package scrapecreators

import "github.com/officialfindso-gif/samma/internal/domain"

// platformEndpoints lists endpoint paths per platform in preference order.
var platformEndpoints = map[domain.Platform][]string{
	domain.PlatformInstagram: {"/v1/instagram/reel", "/v1/instagram/post"}, // reel 먼저, 실패 시 post
	domain.PlatformTikTok:    {"/v2/tiktok/video"},
	domain.PlatformYouTube:   {"/v1/youtube/video"},
	domain.PlatformLinkedIn:  {"/v1/linkedin/post"},
}

// Endpoints returns the absolute endpoint URLs for platform under a normalized base URL.
// ok is false when the platform has no endpoint list.
func Endpoints(baseURL string, platform domain.Platform) (endpoints []string, ok bool) {
	paths, ok := platformEndpoints[platform]
	if !ok {
		return nil, false
	}

	endpoints = make([]string, len(paths))
	for i, path := range paths {
		endpoints[i] = baseURL + path
	}
	return endpoints, true
}
