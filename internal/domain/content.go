package domain

import "time"

// ScrapedContent is the normalized record for one post. Optional metrics are nil
// when the remote API did not supply them and serialize as null.
type ScrapedContent struct {
	Caption    string   `json:"caption"`
	Transcript string   `json:"transcript"`
	MediaURL   string   `json:"media_url"`
	Author     string   `json:"author"`
	Platform   Platform `json:"platform"`

	ViewsCount      *int64     `json:"views_count"`
	LikesCount      *int64     `json:"likes_count"`
	CommentsCount   *int64     `json:"comments_count"`
	SharesCount     *int64     `json:"shares_count"`
	PlayCount       *int64     `json:"play_count"`
	SavesCount      *int64     `json:"saves_count"`
	AuthorFollowers *int64     `json:"author_followers"`
	EngagementRate  *float64   `json:"engagement_rate"`
	VideoDuration   *int64     `json:"video_duration"`
	PublishedAt     *time.Time `json:"published_at"`
	HasAudio        *bool      `json:"has_audio"`
	IsVideo         *bool      `json:"is_video"`
}
