package constants

import "time"

var APIConfig = struct {
	ScrapeCreatorsBaseURL string
	APIKeyHeader          string
	RequestTimeout        time.Duration
}{
	ScrapeCreatorsBaseURL: "https://api.scrapecreators.com",
	APIKeyHeader:          "x-api-key",
	RequestTimeout:        60 * time.Second, // 엔드포인트당 응답 대기 시간
}

var TransportConfig = struct {
	DialTimeout         time.Duration
	KeepAlive           time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	TLSHandshakeTimeout time.Duration
}{
	DialTimeout:         10 * time.Second,
	KeepAlive:           30 * time.Second,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

var BatchConfig = struct {
	DefaultConcurrency int
}{
	DefaultConcurrency: 4,
}

var StringLimits = struct {
	MockURLPreview int
}{
	MockURLPreview: 50,
}

// MockMetrics are the fixed values returned in mock mode.
var MockMetrics = struct {
	Views          int64
	Likes          int64
	Comments       int64
	Shares         int64
	Plays          int64
	Saves          int64
	Followers      int64
	EngagementRate float64
	VideoDuration  int64
}{
	Views:          125000,
	Likes:          8500,
	Comments:       320,
	Shares:         1200,
	Plays:          145000,
	Saves:          2100,
	Followers:      45000,
	EngagementRate: 9.6,
	VideoDuration:  45,
}
