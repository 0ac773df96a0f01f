package scrapecreators

import (
	"github.com/officialfindso-gif/samma/internal/domain"
	"github.com/tidwall/gjson"
)

// Instagram responses carry the post under data.xdt_shortcode_media.
const mediaPath = "data.xdt_shortcode_media"

func media(path string) string {
	return mediaPath + "." + path
}

const unknownAuthor = "unknown"

// Strategies are listed in priority order. Instagram paths come first; TikTok
// (aweme_detail) and YouTube shapes follow as lower-priority alternatives.
var (
	captionStrategies = []stringStrategy{
		stringAt(media("edge_media_to_caption.edges.0.node.text")),
		stringAt("caption"),
		stringAt("description"),
		stringAt("text"),
		stringAt("aweme_detail.desc"),
		stringAt("title"),
	}
	authorStrategies = []stringStrategy{
		stringAt(media("owner.username")),
		stringAt("aweme_detail.author.unique_id"),
		stringAt("channel.handle"),
	}
	mediaURLStrategies = []stringStrategy{
		stringAt(media("video_url")),
		stringAt(media("display_url")),
	}
	transcriptStrategies = []stringStrategy{
		stringAt("transcript"),
	}

	viewsStrategies = []intStrategy{
		intAt(media("video_view_count")),
		intAt("aweme_detail.statistics.play_count"),
		intAt("viewCountInt"),
	}
	playStrategies = []intStrategy{
		intAt(media("video_play_count")),
		intAt("aweme_detail.statistics.play_count"),
	}
	likesStrategies = []intStrategy{
		countIn(media("edge_media_preview_like")),
		intAt("aweme_detail.statistics.digg_count"),
		intAt("likeCountInt"),
	}
	// A zero primary count falls through to the alternates; the preview container
	// outranks the scalar alternates. The last entry keeps a zero primary count.
	commentsStrategies = []intStrategy{
		nonZero(countIn(media("edge_media_to_comment"))),
		nonZero(intAt(media("edge_media_preview_comment.count"))),
		nonZero(intAt(media("comment_count"))),
		nonZero(intAt(media("comments_count"))),
		intAt("aweme_detail.statistics.comment_count"),
		intAt("commentCountInt"),
		countIn(media("edge_media_to_comment")),
	}
	sharesStrategies = []intStrategy{
		intAt(media("share_count")),
		intAt("aweme_detail.statistics.share_count"),
	}
	savesStrategies = []intStrategy{
		countInNonEmpty(media("edge_media_saved")),
		intAt("aweme_detail.statistics.collect_count"),
	}
	followersStrategies = []intStrategy{
		intAt(media("owner.edge_followed_by.count")),
		intAt("aweme_detail.author.follower_count"),
	}
	durationStrategies = []intStrategy{
		intAt(media("video_duration")),
	}

	publishedStrategies = []timeStrategy{
		unixTimeAt(media("taken_at_timestamp")),
		unixTimeAt("aweme_detail.create_time"),
	}

	hasAudioStrategies = []boolStrategy{boolAt(media("has_audio"))}
	isVideoStrategies  = []boolStrategy{boolAt(media("is_video"))}
)

// Normalize maps a successful API document onto the flat content record.
func Normalize(body []byte, postURL string, platform domain.Platform) *domain.ScrapedContent {
	doc := gjson.ParseBytes(body)

	content := &domain.ScrapedContent{
		Caption:    stringOr(doc, captionStrategies, ""),
		Transcript: stringOr(doc, transcriptStrategies, ""),
		MediaURL:   stringOr(doc, mediaURLStrategies, postURL),
		Author:     stringOr(doc, authorStrategies, unknownAuthor),
		Platform:   platform,

		ViewsCount:      firstInt(doc, viewsStrategies),
		PlayCount:       firstInt(doc, playStrategies),
		LikesCount:      firstInt(doc, likesStrategies),
		CommentsCount:   firstInt(doc, commentsStrategies),
		SharesCount:     firstInt(doc, sharesStrategies),
		SavesCount:      firstInt(doc, savesStrategies),
		AuthorFollowers: firstInt(doc, followersStrategies),
		VideoDuration:   firstInt(doc, durationStrategies),
		PublishedAt:     firstTime(doc, publishedStrategies),
		HasAudio:        firstBool(doc, hasAudioStrategies),
		IsVideo:         firstBool(doc, isVideoStrategies),
	}
	content.EngagementRate = domain.EngagementRate(
		content.ViewsCount,
		content.LikesCount,
		content.CommentsCount,
		content.SharesCount,
	)

	return content
}
