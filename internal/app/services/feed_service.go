package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/feed"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/store"
)

// FeedService computes the filtered newsfeed
type FeedService interface {
	Feed(ctx context.Context, req *dto.FeedRequest) (*dto.FeedResponse, error)
	FeedFor(ctx context.Context, state *feed.State) (*dto.FeedResponse, error)
	Hashtags(ctx context.Context, limit int) ([]feed.TagCount, error)
}

// feedServiceImpl implements FeedService
type feedServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewFeedService creates a new FeedService
func NewFeedService(deps *Deps) FeedService {
	return &feedServiceImpl{deps: deps, logger: deps.component("feed_service")}
}

// Feed applies query parameters to a fresh filter state. Search is applied
// before hashtag, so a hashtag wins when both are given.
func (s *feedServiceImpl) Feed(ctx context.Context, req *dto.FeedRequest) (*dto.FeedResponse, error) {
	start, err := feed.ParseDay(req.StartDate, s.deps.location())
	if err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid startDate %q", req.StartDate))
	}
	end, err := feed.ParseDay(req.EndDate, s.deps.location())
	if err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid endDate %q", req.EndDate))
	}

	state := feed.NewState().
		SetSearch(req.Search).
		SetHashtag(req.Hashtag).
		SetDateRange(start, end).
		SetSort(feed.ParseSortOrder(req.Sort))
	return s.FeedFor(ctx, state)
}

// FeedFor runs the feed view for an explicit filter state
func (s *feedServiceImpl) FeedFor(ctx context.Context, state *feed.State) (*dto.FeedResponse, error) {
	q := state.Query()
	s.logger.Debug().
		Str("search", q.Search).
		Str("hashtag", q.Hashtag).
		Time("start", q.Start).
		Time("end", q.End).
		Str("sort", string(q.Sort)).
		Msg("Computing feed")

	resp := &dto.FeedResponse{
		Search:  q.Search,
		Hashtag: q.Hashtag,
		Sort:    string(q.Sort),
	}
	s.deps.Store.View(func(st *store.State) {
		authorName := func(id string) string {
			if u, ok := st.Users.Get(id); ok {
				return u.Name
			}
			return ""
		}
		posts := feed.Apply(st.Posts.All(), authorName, q)
		lookup := lookupIn(st)
		resp.Posts = make([]dto.PostResponse, 0, len(posts))
		for _, p := range posts {
			resp.Posts = append(resp.Posts, dto.NewPostResponse(p, lookup))
		}
	})
	resp.Total = len(resp.Posts)
	return resp, nil
}

// Hashtags returns the most used hashtags across all posts
func (s *feedServiceImpl) Hashtags(ctx context.Context, limit int) ([]feed.TagCount, error) {
	if limit <= 0 {
		limit = 10
	}
	var tags []feed.TagCount
	s.deps.Store.View(func(st *store.State) {
		tags = feed.Trending(st.Posts.All(), limit)
	})
	return tags, nil
}
