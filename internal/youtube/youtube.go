// Package youtube wraps the YouTube Data API for the video commands: channel
// resolution, uploads listing and the formatting helpers the embeds use.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// ErrNotConfigured is returned when no API key was provided. Commands map it
// to a distinct "not configured" reply instead of a generic failure.
var ErrNotConfigured = errors.New("youtube: API key not configured")

// LongFormMinimum is the duration cutoff separating full videos from Shorts.
const LongFormMinimum = 240 * time.Second

// Video is the subset of the API response the embeds render.
type Video struct {
	ID          string
	Title       string
	Description string
	Thumbnail   string
	Duration    time.Duration
	Views       uint64
	PublishedAt time.Time
}

// URL returns the public watch link for the video.
func (v Video) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// Client fetches uploads for a single configured channel.
type Client struct {
	svc       *yt.Service
	channelID string

	// uploads playlist ID, resolved once on first use
	uploadsID string
}

// NewClient builds a client for the given channel, which may be a handle
// ("@voidesports") or a raw channel ID ("UC...."). Returns ErrNotConfigured
// when the key is empty so callers can degrade gracefully.
func NewClient(ctx context.Context, apiKey, channel string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	svc, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &Client{svc: svc, channelID: channel}, nil
}

func (c *Client) resolveUploads(ctx context.Context) (string, error) {
	if c.uploadsID != "" {
		return c.uploadsID, nil
	}

	call := c.svc.Channels.List([]string{"contentDetails"}).Context(ctx)
	if strings.HasPrefix(c.channelID, "UC") {
		call = call.Id(c.channelID)
	} else {
		call = call.ForHandle(strings.TrimPrefix(c.channelID, "@"))
	}

	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up channel %q: %w", c.channelID, err)
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("channel %q not found", c.channelID)
	}

	c.uploadsID = resp.Items[0].ContentDetails.RelatedPlaylists.Uploads
	return c.uploadsID, nil
}

// RecentUploads returns the newest uploads in publish order, with durations
// and view counts filled in. It over-fetches so the caller can filter Shorts
// out and still have enough long-form videos left.
func (c *Client) RecentUploads(ctx context.Context, limit int) ([]Video, error) {
	uploads, err := c.resolveUploads(ctx)
	if err != nil {
		return nil, err
	}

	fetch := int64(limit * 3)
	if fetch > 50 {
		fetch = 50
	}
	items, err := c.svc.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(uploads).
		MaxResults(fetch).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	if len(items.Items) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(items.Items))
	for _, item := range items.Items {
		ids = append(ids, item.ContentDetails.VideoId)
	}

	details, err := c.svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video details: %w", err)
	}

	videos := make([]Video, 0, len(details.Items))
	for _, item := range details.Items {
		v := Video{
			ID:       item.Id,
			Title:    item.Snippet.Title,
			Duration: ParseISODuration(item.ContentDetails.Duration),
		}
		if item.Snippet.Description != "" {
			v.Description = item.Snippet.Description
		}
		if item.Statistics != nil {
			v.Views = item.Statistics.ViewCount
		}
		if thumbs := item.Snippet.Thumbnails; thumbs != nil {
			switch {
			case thumbs.High != nil:
				v.Thumbnail = thumbs.High.Url
			case thumbs.Medium != nil:
				v.Thumbnail = thumbs.Medium.Url
			case thumbs.Default != nil:
				v.Thumbnail = thumbs.Default.Url
			}
		}
		if ts, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			v.PublishedAt = ts
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// LongForm filters out Shorts and caps the result at limit. When every recent
// upload is a Short it falls back to the unfiltered list so the command never
// answers with nothing while the channel clearly has content.
func LongForm(videos []Video, limit int) []Video {
	long := make([]Video, 0, limit)
	for _, v := range videos {
		if v.Duration >= LongFormMinimum {
			long = append(long, v)
			if len(long) == limit {
				return long
			}
		}
	}
	if len(long) > 0 {
		return long
	}
	if len(videos) > limit {
		videos = videos[:limit]
	}
	return videos
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration parses the ISO-8601 durations the API returns (PT1H2M3S).
// Malformed input parses as zero.
func ParseISODuration(s string) time.Duration {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	days, _ := strconv.Atoi(m[1])
	hours, _ := strconv.Atoi(m[2])
	mins, _ := strconv.Atoi(m[3])
	secs, _ := strconv.Atoi(m[4])
	return time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(mins)*time.Minute +
		time.Duration(secs)*time.Second
}

// FormatDuration renders a duration the way YouTube's player does: m:ss for
// anything under an hour, h:mm:ss above.
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatViewCount compacts a view count for display: 987, 1.2K, 4.5M, 1.1B.
// A whole-number quotient drops the decimal (2K, not 2.0K).
func FormatViewCount(views uint64) string {
	format := func(v float64, suffix string) string {
		s := strconv.FormatFloat(v, 'f', 1, 64)
		s = strings.TrimSuffix(s, ".0")
		return s + suffix
	}
	switch {
	case views >= 1_000_000_000:
		return format(float64(views)/1_000_000_000, "B")
	case views >= 1_000_000:
		return format(float64(views)/1_000_000, "M")
	case views >= 1_000:
		return format(float64(views)/1_000, "K")
	default:
		return strconv.FormatUint(views, 10)
	}
}
