// Package feed computes the newsfeed view: which posts to show and in what
// order. Everything here is a pure function of its inputs. Results are never
// cached.
package feed

import (
	"slices"
	"strings"
	"time"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// SortOrder selects the direction of the creation-date sort
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// ParseSortOrder maps a query value to a SortOrder, defaulting to newest.
func ParseSortOrder(v string) SortOrder {
	if SortOrder(strings.ToLower(strings.TrimSpace(v))) == SortOldest {
		return SortOldest
	}
	return SortNewest
}

// Query holds the inputs of Apply. At most one of Search and Hashtag is set
// when built through State.
type Query struct {
	Search  string
	Hashtag string
	// Start and End are calendar days. Zero means unbounded.
	Start time.Time
	End   time.Time
	Sort  SortOrder
}

// AuthorNameFunc resolves an author id to a display name
type AuthorNameFunc func(authorID string) string

// Apply filters and sorts posts. The input slice is not modified.
func Apply(posts []models.Post, authorName AuthorNameFunc, q Query) []models.Post {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	tag := NormalizeHashtag(q.Hashtag)
	lower, upper, hasLower, hasUpper := bounds(q.Start, q.End)

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if !matchesText(p, authorName, search, tag) {
			continue
		}
		if hasLower && p.CreatedAt.Before(lower) {
			continue
		}
		if hasUpper && p.CreatedAt.After(upper) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b models.Post) int {
		c := a.CreatedAt.Compare(b.CreatedAt)
		if q.Sort == SortOldest {
			return c
		}
		return -c
	})
	return out
}

func matchesText(p models.Post, authorName AuthorNameFunc, search, tag string) bool {
	content := strings.ToLower(p.Content)
	if tag != "" {
		return strings.Contains(content, "#"+tag)
	}
	if search == "" {
		return true
	}
	if strings.Contains(content, search) {
		return true
	}
	if authorName == nil {
		return false
	}
	return strings.Contains(strings.ToLower(authorName(p.AuthorID)), search)
}

// bounds turns the calendar-day range into instants. The end bound covers
// the whole end day: end + 1 day - 1ms.
func bounds(start, end time.Time) (lower, upper time.Time, hasLower, hasUpper bool) {
	if !start.IsZero() {
		lower = startOfDay(start)
		hasLower = true
	}
	if !end.IsZero() {
		upper = startOfDay(end).AddDate(0, 0, 1).Add(-time.Millisecond)
		hasUpper = true
	}
	return lower, upper, hasLower, hasUpper
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NormalizeHashtag lowercases a tag and strips a leading '#'.
func NormalizeHashtag(tag string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}

// ParseDay parses a YYYY-MM-DD date in loc. An empty string yields the zero
// time.
func ParseDay(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(time.DateOnly, v, loc)
}
