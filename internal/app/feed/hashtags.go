package feed

import (
	"regexp"
	"slices"
	"strings"

	"github.com/yigit/campusbuzz/internal/app/models"
)

var hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// TagCount is a hashtag and how many posts use it
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Hashtags extracts the distinct lowercase hashtags of a post
func Hashtags(content string) []string {
	var out []string
	for _, m := range hashtagPattern.FindAllStringSubmatch(content, -1) {
		tag := strings.ToLower(m[1])
		if !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}
	return out
}

// Trending counts hashtags across posts and returns the top n, most used
// first, ties broken alphabetically.
func Trending(posts []models.Post, n int) []TagCount {
	counts := make(map[string]int)
	for _, p := range posts {
		for _, tag := range Hashtags(p.Content) {
			counts[tag]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for tag, c := range counts {
		out = append(out, TagCount{Tag: tag, Count: c})
	}
	slices.SortFunc(out, func(a, b TagCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Tag, b.Tag)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
