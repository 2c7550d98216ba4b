package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yigit/campusbuzz/internal/app/models"
)

var authors = map[string]string{"u1": "Alex Morgan", "u2": "Priya Shah"}

func authorName(id string) string { return authors[id] }

func ids(posts []models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func TestSortNewestAndOldest(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	posts := []models.Post{
		{ID: "t-1", CreatedAt: now.Add(-time.Hour)},
		{ID: "t", CreatedAt: now},
		{ID: "t-2", CreatedAt: now.Add(-2 * time.Hour)},
	}

	newest := Apply(posts, authorName, Query{Sort: SortNewest})
	assert.Equal(t, []string{"t", "t-1", "t-2"}, ids(newest))

	oldest := Apply(posts, authorName, Query{Sort: SortOldest})
	assert.Equal(t, []string{"t-2", "t-1", "t"}, ids(oldest))

	assert.Equal(t, "t-1", posts[0].ID, "input must not be reordered")
}

func TestSortIsStableForEqualTimestamps(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	posts := []models.Post{{ID: "a", CreatedAt: now}, {ID: "b", CreatedAt: now}, {ID: "c", CreatedAt: now}}

	assert.Equal(t, []string{"a", "b", "c"}, ids(Apply(posts, nil, Query{Sort: SortNewest})))
	assert.Equal(t, []string{"a", "b", "c"}, ids(Apply(posts, nil, Query{Sort: SortOldest})))
}

func TestDateRangeIncludesWholeEndDay(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	posts := []models.Post{
		{ID: "before", CreatedAt: day.Add(-time.Second)},
		{ID: "start", CreatedAt: day},
		{ID: "late", CreatedAt: day.Add(23*time.Hour + 59*time.Minute + 59*time.Second)},
		{ID: "next", CreatedAt: day.AddDate(0, 0, 1)},
	}

	got := Apply(posts, nil, Query{Start: day, End: day, Sort: SortOldest})
	assert.Equal(t, []string{"start", "late"}, ids(got))
}

func TestDateRangeRespectsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	end, err := ParseDay("2024-03-15", loc)
	assert.NoError(t, err)

	// 22:30 UTC on the 15th is already the 16th at UTC+3.
	posts := []models.Post{{ID: "p", CreatedAt: time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC)}}
	assert.Empty(t, Apply(posts, nil, Query{End: end}))
}

func TestSearchMatchesContentOrAuthor(t *testing.T) {
	posts := []models.Post{
		{ID: "p1", AuthorID: "u1", Content: "Library is packed today"},
		{ID: "p2", AuthorID: "u2", Content: "Anyone up for football?"},
		{ID: "p3", AuthorID: "u1", Content: "Study group at 5"},
	}

	assert.ElementsMatch(t, []string{"p1"}, ids(Apply(posts, authorName, Query{Search: "LIBRARY"})))
	assert.ElementsMatch(t, []string{"p2"}, ids(Apply(posts, authorName, Query{Search: "priya"})))
	assert.Len(t, Apply(posts, authorName, Query{}), 3)
}

func TestHashtagMatchesContentOnly(t *testing.T) {
	posts := []models.Post{
		{ID: "p1", AuthorID: "u1", Content: "Finals week #StudyTips"},
		{ID: "p2", AuthorID: "u2", Content: "studytips without the hash"},
	}

	got := Apply(posts, authorName, Query{Hashtag: "#studytips"})
	assert.Equal(t, []string{"p1"}, ids(got))
}

func TestTextAndDateCombineWithAnd(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	posts := []models.Post{
		{ID: "in-range-match", Content: "#exam prep", CreatedAt: day.Add(time.Hour)},
		{ID: "in-range-miss", Content: "lunch", CreatedAt: day.Add(2 * time.Hour)},
		{ID: "out-range-match", Content: "#exam again", CreatedAt: day.AddDate(0, 0, 3)},
	}

	got := Apply(posts, nil, Query{Hashtag: "exam", Start: day, End: day})
	assert.Equal(t, []string{"in-range-match"}, ids(got))
}

func TestStateFiltersAreMutuallyExclusive(t *testing.T) {
	s := NewState()

	s.SetSearch("pizza")
	s.SetHashtag("#Food")
	assert.Equal(t, "", s.Search())
	assert.Equal(t, "food", s.Hashtag())

	s.SetSearch("pizza")
	assert.Equal(t, "pizza", s.Search())
	assert.Equal(t, "", s.Hashtag())

	s.SetSort(SortOldest).Reset()
	assert.Equal(t, Query{Sort: SortNewest}, s.Query())
}

func TestTrending(t *testing.T) {
	posts := []models.Post{
		{Content: "#Exams #coffee"},
		{Content: "#exams again #exams"},
		{Content: "#coffee"},
		{Content: "#zebra"},
	}

	got := Trending(posts, 2)
	assert.Equal(t, []TagCount{{Tag: "coffee", Count: 2}, {Tag: "exams", Count: 2}}, got)
}
