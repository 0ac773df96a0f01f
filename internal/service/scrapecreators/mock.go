package scrapecreators

import (
	"fmt"

	"github.com/officialfindso-gif/samma/internal/constants"
	"github.com/officialfindso-gif/samma/internal/domain"
	"github.com/officialfindso-gif/samma/internal/util"
)

const mockTranscript = "Test video transcript for demonstrating the pipeline"

// MockContent builds the deterministic record returned when no live API call is made.
func MockContent(postURL string, platform domain.Platform) *domain.ScrapedContent {
	m := constants.MockMetrics
	preview := util.TruncateRunes(postURL, constants.StringLimits.MockURLPreview)

	return &domain.ScrapedContent{
		Caption:    fmt.Sprintf("Test content from %s | URL: %s...", platform, preview),
		Transcript: mockTranscript,
		MediaURL:   postURL,
		Author:     fmt.Sprintf("test_user_%s", platform),
		Platform:   platform,

		ViewsCount:      int64Ptr(m.Views),
		LikesCount:      int64Ptr(m.Likes),
		CommentsCount:   int64Ptr(m.Comments),
		SharesCount:     int64Ptr(m.Shares),
		PlayCount:       int64Ptr(m.Plays),
		SavesCount:      int64Ptr(m.Saves),
		AuthorFollowers: int64Ptr(m.Followers),
		EngagementRate:  float64Ptr(m.EngagementRate),
		VideoDuration:   int64Ptr(m.VideoDuration),
		HasAudio:        boolPtr(true),
		IsVideo:         boolPtr(true),
	}
}

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool          { return &v }
