package dto

import (
	"time"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// ScheduleItemRequest creates or replaces a schedule item
type ScheduleItemRequest struct {
	Title     string         `json:"title" binding:"required,notblank,max=120"`
	Location  string         `json:"location" binding:"max=120"`
	Day       models.Weekday `json:"day" binding:"required,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	StartTime string         `json:"startTime" binding:"required,datetime=15:04"`
	EndTime   string         `json:"endTime" binding:"required,datetime=15:04"`
	Color     string         `json:"color" binding:"max=20"`
}

// TodoRequest creates a todo
type TodoRequest struct {
	Text    string     `json:"text" binding:"required,notblank,max=500"`
	DueDate *time.Time `json:"dueDate"`
}

// LibraryResourceRequest creates or replaces a library catalog entry
type LibraryResourceRequest struct {
	Title     string                     `json:"title" binding:"required,notblank,max=200"`
	Author    string                     `json:"author" binding:"max=200"`
	Type      models.LibraryResourceType `json:"type" binding:"required,oneof=Book Journal Digital"`
	Available *bool                      `json:"available"`
	Location  string                     `json:"location" binding:"max=120"`
}

// LibraryFilterRequest filters the catalog
type LibraryFilterRequest struct {
	Search    string `form:"search"`
	Type      string `form:"type" binding:"omitempty,oneof=Book Journal Digital"`
	Available *bool  `form:"available"`
}

// LostFoundRequest reports a lost or found item
type LostFoundRequest struct {
	Title       string               `json:"title" form:"title" binding:"required,notblank,max=200"`
	Description string               `json:"description" form:"description" binding:"max=2000"`
	Location    string               `json:"location" form:"location" binding:"max=200"`
	Kind        models.LostFoundKind `json:"kind" form:"kind" binding:"required,oneof=lost found"`
	ImageURL    string               `json:"imageUrl" form:"imageUrl"`
}

// LostFoundResponse is a lost and found report with the reporter resolved
type LostFoundResponse struct {
	ID          string               `json:"id"`
	Reporter    UserSummary          `json:"reporter"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Location    string               `json:"location,omitempty"`
	Kind        models.LostFoundKind `json:"kind"`
	ImageURL    string               `json:"imageUrl,omitempty"`
	Resolved    bool                 `json:"resolved"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// NewLostFoundResponse resolves a report
func NewLostFoundResponse(l models.LostAndFoundItem, lookup UserLookup) LostFoundResponse {
	return LostFoundResponse{
		ID:          l.ID,
		Reporter:    Summarize(lookup, l.ReporterID),
		Title:       l.Title,
		Description: l.Description,
		Location:    l.Location,
		Kind:        l.Kind,
		ImageURL:    l.ImageURL,
		Resolved:    l.Resolved,
		CreatedAt:   l.CreatedAt,
	}
}

// CreatePollRequest creates a poll
type CreatePollRequest struct {
	Question string   `json:"question" binding:"required,notblank,max=300"`
	Options  []string `json:"options" binding:"required,min=2,max=10,dive,notblank,max=200"`
}

// VoteRequest casts, moves or retracts a vote
type VoteRequest struct {
	OptionID string `json:"optionId" binding:"required"`
}

// PollOptionResponse is one poll option with its tally
type PollOptionResponse struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// PollResponse is a poll with tallies for the viewer
type PollResponse struct {
	ID         string               `json:"id"`
	Author     UserSummary          `json:"author"`
	Question   string               `json:"question"`
	Options    []PollOptionResponse `json:"options"`
	TotalVotes int                  `json:"totalVotes"`
	MyVote     string               `json:"myVote,omitempty"`
	Closed     bool                 `json:"closed"`
	CreatedAt  time.Time            `json:"createdAt"`
}

// NewPollResponse resolves a poll for viewerID
func NewPollResponse(p models.Poll, lookup UserLookup, viewerID string) PollResponse {
	resp := PollResponse{
		ID:        p.ID,
		Author:    Summarize(lookup, p.AuthorID),
		Question:  p.Question,
		Options:   make([]PollOptionResponse, 0, len(p.Options)),
		Closed:    p.Closed,
		CreatedAt: p.CreatedAt,
	}
	for _, o := range p.Options {
		resp.Options = append(resp.Options, PollOptionResponse{ID: o.ID, Text: o.Text, Votes: len(o.Voters)})
		resp.TotalVotes += len(o.Voters)
		if models.ContainsID(o.Voters, viewerID) {
			resp.MyVote = o.ID
		}
	}
	return resp
}

// JobRequest creates or replaces a job posting
type JobRequest struct {
	Title       string         `json:"title" binding:"required,notblank,max=200"`
	Company     string         `json:"company" binding:"required,notblank,max=200"`
	Location    string         `json:"location" binding:"max=200"`
	Type        models.JobType `json:"type" binding:"required,oneof=Full-time Part-time Internship"`
	Description string         `json:"description" binding:"max=5000"`
}

// JobFilterRequest filters the job board
type JobFilterRequest struct {
	Search string `form:"search"`
	Type   string `form:"type" binding:"omitempty,oneof=Full-time Part-time Internship"`
}

// HeroSlideRequest creates or replaces a hero slide
type HeroSlideRequest struct {
	Title    string `json:"title" form:"title" binding:"required,notblank,max=200"`
	Subtitle string `json:"subtitle" form:"subtitle" binding:"max=300"`
	ImageURL string `json:"imageUrl" form:"imageUrl"`
	LinkURL  string `json:"linkUrl" form:"linkUrl"`
	Order    int    `json:"order" form:"order" binding:"gte=0"`
}

// ReorderHeroSlidesRequest lists every slide id in the new display order
type ReorderHeroSlidesRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,required"`
}
