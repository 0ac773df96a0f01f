package scrapecreators

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/officialfindso-gif/samma/internal/config"
	"github.com/officialfindso-gif/samma/internal/domain"
	"github.com/officialfindso-gif/samma/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testBase   = "https://api.test"
	reelURL    = "https://www.instagram.com/reel/C1a2b3c4/"
	tiktokURL  = "https://www.tiktok.com/@someone/video/7301"
	successDoc = `{"data":{"xdt_shortcode_media":{"owner":{"username":"creator"},"video_view_count":1000,"edge_media_preview_like":{"count":80},"edge_media_to_comment":{"count":15},"share_count":5}}}`
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

type scriptedReply struct {
	status int
	body   string
	err    error
}

type fakeRequester struct {
	mu      sync.Mutex
	replies []scriptedReply
	calls   []string
	postURL []string
}

func (f *fakeRequester) Get(_ context.Context, endpoint, postURL string) (*RawResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := len(f.calls)
	f.calls = append(f.calls, endpoint)
	f.postURL = append(f.postURL, postURL)

	if idx >= len(f.replies) {
		return nil, stderrors.New("unexpected call")
	}
	reply := f.replies[idx]
	if reply.err != nil {
		return nil, reply.err
	}
	return &RawResponse{StatusCode: reply.status, Body: []byte(reply.body)}, nil
}

func liveConfig() config.ScrapeCreatorsConfig {
	return config.ScrapeCreatorsConfig{
		APIKey:  "test-key",
		BaseURL: testBase,
		Timeout: time.Second,
	}
}

func newTestClient(t *testing.T, cfg config.ScrapeCreatorsConfig, requester Requester) *Client {
	t.Helper()
	client, err := NewClient(cfg, requester, nil, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestFetchMockModeWithoutKey(t *testing.T) {
	requester := &fakeRequester{}
	cfg := liveConfig()
	cfg.APIKey = ""
	client := newTestClient(t, cfg, requester)

	content, err := client.Fetch(context.Background(), tiktokURL)
	require.NoError(t, err)

	assert.Empty(t, requester.calls)
	assert.Equal(t, domain.PlatformTikTok, content.Platform)
	assert.Equal(t, tiktokURL, content.MediaURL)
	assert.Equal(t, "test_user_tiktok", content.Author)
}

func TestFetchMockModeExplicitFlag(t *testing.T) {
	requester := &fakeRequester{}
	cfg := liveConfig()
	cfg.UseMock = true
	client := newTestClient(t, cfg, requester)

	content, err := client.Fetch(context.Background(), reelURL)
	require.NoError(t, err)

	assert.Empty(t, requester.calls)
	assert.Equal(t, domain.PlatformInstagram, content.Platform)
	assert.Equal(t, reelURL, content.MediaURL)
}

func TestFetchUnknownPlatformFailsBeforeNetwork(t *testing.T) {
	requester := &fakeRequester{}
	client := newTestClient(t, liveConfig(), requester)

	content, err := client.Fetch(context.Background(), "https://twitter.com/someone/status/1")
	require.Error(t, err)
	assert.Nil(t, content)
	assert.True(t, errors.HasCode(err, errors.CodeUnsupportedPlatform))
	assert.Empty(t, requester.calls)
}

func TestFetchInstagramTriesReelThenPost(t *testing.T) {
	requester := &fakeRequester{replies: []scriptedReply{
		{status: http.StatusNotFound, body: `{"error":"not a reel"}`},
		{status: http.StatusNotFound, body: `{"error":"missing"}`},
	}}
	client := newTestClient(t, liveConfig(), requester)

	_, err := client.Fetch(context.Background(), reelURL)
	require.Error(t, err)

	assert.Equal(t, []string{testBase + "/v1/instagram/reel", testBase + "/v1/instagram/post"}, requester.calls)
	assert.Equal(t, []string{reelURL, reelURL}, requester.postURL)
	assert.Equal(t, errors.CodeNotFound, errors.CodeOf(err))
	assert.True(t, errors.HasCode(err, errors.CodeAllEndpointsFailed))
	assert.Contains(t, err.Error(), "missing")

	var allFailed *errors.AllEndpointsFailedError
	require.True(t, stderrors.As(err, &allFailed))
	assert.Equal(t, 2, allFailed.Attempts)
}

func TestFetchRecoversFromTimeoutOnEarlierEndpoint(t *testing.T) {
	requester := &fakeRequester{replies: []scriptedReply{
		{err: timeoutError{}},
		{status: http.StatusOK, body: successDoc},
	}}
	client := newTestClient(t, liveConfig(), requester)

	content, err := client.Fetch(context.Background(), reelURL)
	require.NoError(t, err)

	want := Normalize([]byte(successDoc), reelURL, domain.PlatformInstagram)
	assert.Equal(t, want, content)
	assert.Len(t, requester.calls, 2)
	require.NotNil(t, content.EngagementRate)
	assert.Equal(t, 10.0, *content.EngagementRate)
}

func TestFetchReportsLastClassifiedError(t *testing.T) {
	tests := []struct {
		name    string
		replies []scriptedReply
		code    string
		status  int
	}{
		{
			name:    "forbidden after not found",
			replies: []scriptedReply{{status: 404}, {status: 403, body: "private"}},
			code:    errors.CodeForbidden,
			status:  403,
		},
		{
			name:    "rate limited",
			replies: []scriptedReply{{status: 500}, {status: 429}},
			code:    errors.CodeRateLimited,
			status:  429,
		},
		{
			name:    "generic api error carries body",
			replies: []scriptedReply{{status: 404}, {status: 502, body: "bad gateway"}},
			code:    errors.CodeAPIError,
			status:  502,
		},
		{
			name:    "timeout last",
			replies: []scriptedReply{{status: 404}, {err: timeoutError{}}},
			code:    errors.CodeTimeout,
		},
		{
			name:    "network error last",
			replies: []scriptedReply{{status: 404}, {err: stderrors.New("connection refused")}},
			code:    errors.CodeNetwork,
		},
		{
			name:    "non-json success body",
			replies: []scriptedReply{{status: 404}, {status: 200, body: "<html>oops</html>"}},
			code:    errors.CodeAPIError,
			status:  200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, liveConfig(), &fakeRequester{replies: tt.replies})

			_, err := client.Fetch(context.Background(), reelURL)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))

			var allFailed *errors.AllEndpointsFailedError
			require.True(t, stderrors.As(err, &allFailed))
			last, ok := errors.AsScrapeError(allFailed.Cause)
			require.True(t, ok)
			assert.Equal(t, tt.status, last.StatusCode)
		})
	}
}

func TestFetchSingleEndpointPlatformUsesV2Path(t *testing.T) {
	requester := &fakeRequester{replies: []scriptedReply{{status: 200, body: `{"aweme_detail":{"desc":"hi"}}`}}}
	cfg := liveConfig()
	cfg.BaseURL = testBase + "/v1/"
	client := newTestClient(t, cfg, requester)

	content, err := client.Fetch(context.Background(), tiktokURL)
	require.NoError(t, err)

	assert.Equal(t, []string{testBase + "/v2/tiktok/video"}, requester.calls)
	assert.Equal(t, "hi", content.Caption)
}

func TestFetchStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	requester := &fakeRequester{}
	client := newTestClient(t, liveConfig(), requester)

	_, err := client.Fetch(ctx, reelURL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, requester.calls)
}

func TestFetchIsIdempotent(t *testing.T) {
	requester := &fakeRequester{replies: []scriptedReply{
		{status: 200, body: successDoc},
		{status: 200, body: successDoc},
	}}
	client := newTestClient(t, liveConfig(), requester)

	first, err := client.Fetch(context.Background(), reelURL)
	require.NoError(t, err)
	second, err := client.Fetch(context.Background(), reelURL)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFetchMockIsIdempotent(t *testing.T) {
	client := newTestClient(t, config.ScrapeCreatorsConfig{BaseURL: testBase}, nil)

	first, err := client.Fetch(context.Background(), reelURL)
	require.NoError(t, err)
	second, err := client.Fetch(context.Background(), reelURL)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNewClientRequiresRequesterInLiveMode(t *testing.T) {
	_, err := NewClient(liveConfig(), nil, nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewClient(liveConfig(), &fakeRequester{}, nil, nil)
	assert.Error(t, err)
}

func TestFetchRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	requester := &fakeRequester{replies: []scriptedReply{
		{status: 404},
		{status: 200, body: successDoc},
	}}
	client, err := NewClient(liveConfig(), requester, metrics, zap.NewNop())
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), reelURL)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.EndpointAttempts.WithLabelValues("instagram", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.EndpointAttempts.WithLabelValues("instagram", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Fetches.WithLabelValues("instagram", "success")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.EndpointDuration))
}
