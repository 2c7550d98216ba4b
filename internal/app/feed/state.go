package feed

import "time"

// State is the newsfeed filter state. Search and hashtag filtering are
// mutually exclusive: setting one clears the other.
type State struct {
	search  string
	hashtag string
	start   time.Time
	end     time.Time
	sort    SortOrder
}

// NewState returns a State with no filters and newest-first sorting
func NewState() *State {
	return &State{sort: SortNewest}
}

// SetSearch sets the free-text query and clears any hashtag filter
func (s *State) SetSearch(q string) *State {
	s.search = q
	if q != "" {
		s.hashtag = ""
	}
	return s
}

// SetHashtag sets the hashtag filter and clears any free-text query
func (s *State) SetHashtag(tag string) *State {
	s.hashtag = NormalizeHashtag(tag)
	if s.hashtag != "" {
		s.search = ""
	}
	return s
}

// SetDateRange sets the inclusive day range. Either bound may be zero.
func (s *State) SetDateRange(start, end time.Time) *State {
	s.start, s.end = start, end
	return s
}

// SetSort sets the sort order
func (s *State) SetSort(order SortOrder) *State {
	if order != SortOldest {
		order = SortNewest
	}
	s.sort = order
	return s
}

// Reset clears every filter
func (s *State) Reset() *State {
	*s = *NewState()
	return s
}

// Search returns the active free-text query
func (s *State) Search() string { return s.search }

// Hashtag returns the active hashtag filter, without '#'
func (s *State) Hashtag() string { return s.hashtag }

// Query exports the state as Apply inputs
func (s *State) Query() Query {
	return Query{
		Search:  s.search,
		Hashtag: s.hashtag,
		Start:   s.start,
		End:     s.end,
		Sort:    s.sort,
	}
}
