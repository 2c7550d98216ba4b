package simulator

import (
	"context"
	"math"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/store"
)

var postTemplates = []string{
	"Anyone else pulling an all-nighter at the library? #finals",
	"The quad looks amazing today, perfect for a study break #campuslife",
	"Looking for a study partner for Organic Chemistry #studygroup",
	"Just finished my capstone presentation! #seniors",
	"Free pizza at the student center right now #freefood",
	"Who's going to the basketball game tonight? #gameday",
	"Coffee recommendations near the engineering building? #coffee",
	"Club fair was huge this year, signed up for three new clubs #clubs",
}

type listingTemplate struct {
	title     string
	category  string
	condition string
	minPrice  float64
	maxPrice  float64
}

var listingTemplates = []listingTemplate{
	{"Intro to Psychology textbook", "Books", "Good", 20, 60},
	{"Mini fridge", "Furniture", "Like New", 40, 90},
	{"TI-84 graphing calculator", "Electronics", "Good", 35, 80},
	{"Desk lamp", "Furniture", "Fair", 5, 20},
	{"Road bike", "Sports", "Used", 80, 200},
	{"Noise-cancelling headphones", "Electronics", "Like New", 60, 150},
}

var messageTemplates = []string{
	"Hey! Are you free later?",
	"Did you finish the assignment?",
	"See you at the event tonight 🎉",
	"Can you send me the lecture notes?",
	"Haha that's great",
	"Let's grab lunch tomorrow",
}

// others returns active users other than the current user
func others(st *store.State) []models.User {
	return st.Users.Filter(func(u models.User) bool {
		return u.ID != st.CurrentUserID && u.IsActive()
	})
}

func (r *Runner) randomOther() (models.User, bool) {
	var candidates []models.User
	r.store.View(func(st *store.State) { candidates = others(st) })
	if len(candidates) == 0 {
		return models.User{}, false
	}
	return pick(r, candidates), true
}

func (r *Runner) tickPost(ctx context.Context) error {
	author, ok := r.randomOther()
	if !ok {
		return ErrNoCandidate
	}
	_, err := r.svc.Posts.CreatePost(ctx, author.ID, &dto.CreatePostRequest{Content: pick(r, postTemplates)})
	if err == nil {
		r.logger.Debug().Str("authorID", author.ID).Msg("Simulated post")
	}
	return err
}

func (r *Runner) tickListing(ctx context.Context) error {
	seller, ok := r.randomOther()
	if !ok {
		return ErrNoCandidate
	}
	tpl := pick(r, listingTemplates)
	span := int(tpl.maxPrice - tpl.minPrice)
	price := tpl.minPrice
	if span > 0 {
		price += float64(r.intn(span + 1))
	}
	_, err := r.svc.Marketplace.CreateListing(ctx, seller.ID, &dto.CreateListingRequest{
		Title:     tpl.title,
		Category:  tpl.category,
		Condition: tpl.condition,
		Price:     math.Round(price*100) / 100,
		Images:    []string{},
	})
	if err == nil {
		r.logger.Debug().Str("sellerID", seller.ID).Str("title", tpl.title).Msg("Simulated listing")
	}
	return err
}

// tickFriendRequest sends the current user a request from someone who is
// neither a friend nor already in a pending request with them.
func (r *Runner) tickFriendRequest(ctx context.Context) error {
	var (
		candidates []models.User
		currentID  string
	)
	r.store.View(func(st *store.State) {
		currentID = st.CurrentUserID
		me, _ := st.CurrentUser()
		for _, u := range others(st) {
			if models.ContainsID(me.Friends, u.ID) {
				continue
			}
			if _, pending := st.FriendRequests.Find(func(fr models.FriendRequest) bool {
				return fr.Involves(u.ID, currentID)
			}); pending {
				continue
			}
			candidates = append(candidates, u)
		}
	})
	if len(candidates) == 0 {
		return ErrNoCandidate
	}
	from := pick(r, candidates)
	_, err := r.svc.Friends.SendFriendRequest(ctx, from.ID, currentID)
	if err == nil {
		r.logger.Debug().Str("fromUserID", from.ID).Msg("Simulated friend request")
	}
	return err
}

// tickMessage posts a reply from another participant in one of the current
// user's conversations.
func (r *Runner) tickMessage(ctx context.Context) error {
	type option struct {
		conversationID string
		senderID       string
	}
	var options []option
	r.store.View(func(st *store.State) {
		st.Conversations.Each(func(c models.Conversation) {
			if !c.HasParticipant(st.CurrentUserID) {
				return
			}
			for _, p := range c.Participants {
				if p == st.CurrentUserID {
					continue
				}
				if u, ok := st.Users.Get(p); ok && u.IsActive() {
					options = append(options, option{conversationID: c.ID, senderID: p})
				}
			}
		})
	})
	if len(options) == 0 {
		return ErrNoCandidate
	}
	o := pick(r, options)
	_, err := r.svc.Messaging.SendMessage(ctx, o.senderID, o.conversationID, &dto.SendMessageRequest{Text: pick(r, messageTemplates)})
	if err == nil {
		r.logger.Debug().Str("senderID", o.senderID).Str("conversationID", o.conversationID).Msg("Simulated message")
	}
	return err
}
