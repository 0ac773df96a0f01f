package domain

import "math"

// EngagementRate returns 100 * (likes + comments + shares) / views rounded to two
// decimals. Missing interaction counts count as zero; the rate itself is nil unless
// views is present and positive.
func EngagementRate(views, likes, comments, shares *int64) *float64 {
	if views == nil || *views <= 0 {
		return nil
	}

	total := valueOrZero(likes) + valueOrZero(comments) + valueOrZero(shares)
	rate := math.Round(float64(total)/float64(*views)*100*100) / 100
	return &rate
}

func valueOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
