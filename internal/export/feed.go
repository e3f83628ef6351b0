package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"course-admin/internal/domain"
)

// FeedItem is one card on the public marketing page: the subset of fields it
// actually renders. The page itself lives elsewhere; this side only produces
// the static feed it consumes.
type FeedItem struct {
	Name         string       `json:"name"`
	Instructor   string       `json:"instructor"`
	Price        domain.Price `json:"price"`
	ThumbnailURL string       `json:"thumbnail_url"`
}

// BuildFeed picks the first limit courses with a displayable name and
// thumbnail. limit <= 0 means all.
func BuildFeed(courses []domain.Course, limit int) []FeedItem {
	out := make([]FeedItem, 0, len(courses))
	for _, c := range courses {
		if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.ThumbnailURL) == "" {
			continue
		}
		out = append(out, FeedItem{
			Name:         c.Name,
			Instructor:   c.Instructor,
			Price:        c.Price,
			ThumbnailURL: c.ThumbnailURL,
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// WriteFeed writes the feed as plain JSON (the page fetches it as-is).
func WriteFeed(w io.Writer, items []FeedItem) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// WriteFeedFile writes the feed JSON to path.
func WriteFeedFile(path string, items []FeedItem) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteFeed(f, items); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return f.Close()
}
