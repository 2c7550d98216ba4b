package seed

import (
	"time"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/store"
)

// fixture mirrors the YAML layout. Times are relative: "ago" is subtracted
// from the load time and "in" is added to it.
type fixture struct {
	Users              []fixtureUser      `yaml:"users"`
	Events             []fixtureEvent     `yaml:"events"`
	Posts              []fixturePost      `yaml:"posts"`
	Listings           []fixtureListing   `yaml:"listings"`
	Articles           []fixtureArticle   `yaml:"articles"`
	Groups             []fixtureGroup     `yaml:"groups"`
	Conversations      []fixtureChat      `yaml:"conversations"`
	Notifications      []fixtureNotice    `yaml:"notifications"`
	FriendRequests     []fixtureFriendReq `yaml:"friend_requests"`
	MentorshipRequests []fixtureMentorReq `yaml:"mentorship_requests"`
	Schedule           []fixtureSchedule  `yaml:"schedule"`
	Todos              []fixtureTodo      `yaml:"todos"`
	Jobs               []fixtureJob       `yaml:"jobs"`
	HeroSlides         []fixtureHero      `yaml:"hero_slides"`
	Polls              []fixturePoll      `yaml:"polls"`
	Library            []fixtureLibrary   `yaml:"library"`
	LostAndFound       []fixtureLostFound `yaml:"lost_and_found"`
}

type fixtureSettings struct {
	EmailNotifications bool   `yaml:"email_notifications"`
	PushNotifications  bool   `yaml:"push_notifications"`
	ProfileVisibility  string `yaml:"profile_visibility"`
	DarkMode           bool   `yaml:"dark_mode"`
}

type fixtureUser struct {
	ID                string          `yaml:"id"`
	Name              string          `yaml:"name"`
	Email             string          `yaml:"email"`
	AvatarURL         string          `yaml:"avatar_url"`
	CoverURL          string          `yaml:"cover_url"`
	Bio               string          `yaml:"bio"`
	Major             string          `yaml:"major"`
	Year              string          `yaml:"year"`
	Role              string          `yaml:"role"`
	Status            string          `yaml:"status"`
	Friends           []string        `yaml:"friends"`
	Settings          fixtureSettings `yaml:"settings"`
	IsMentor          bool            `yaml:"is_mentor"`
	MentorExpertise   []string        `yaml:"mentor_expertise"`
	MentorCommunityID string          `yaml:"mentor_community_id"`
	JoinedAgo         time.Duration   `yaml:"joined_ago"`
}

type fixtureReactions struct {
	Like  int `yaml:"like"`
	Love  int `yaml:"love"`
	Laugh int `yaml:"laugh"`
	Wow   int `yaml:"wow"`
	Sad   int `yaml:"sad"`
}

type fixtureComment struct {
	ID       string        `yaml:"id"`
	AuthorID string        `yaml:"author_id"`
	Text     string        `yaml:"text"`
	Ago      time.Duration `yaml:"ago"`
}

type fixturePost struct {
	ID        string           `yaml:"id"`
	AuthorID  string           `yaml:"author_id"`
	Content   string           `yaml:"content"`
	ImageURL  string           `yaml:"image_url"`
	EventID   string           `yaml:"event_id"`
	Reactions fixtureReactions `yaml:"reactions"`
	Comments  []fixtureComment `yaml:"comments"`
	Ago       time.Duration    `yaml:"ago"`
}

type fixtureEvent struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Location    string        `yaml:"location"`
	Category    string        `yaml:"category"`
	ImageURL    string        `yaml:"image_url"`
	OrganizerID string        `yaml:"organizer_id"`
	Attendees   []string      `yaml:"attendees"`
	In          time.Duration `yaml:"in"`
	Length      time.Duration `yaml:"length"`
	Ago         time.Duration `yaml:"ago"`
}

type fixtureListing struct {
	ID          string        `yaml:"id"`
	SellerID    string        `yaml:"seller_id"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Price       float64       `yaml:"price"`
	Category    string        `yaml:"category"`
	Condition   string        `yaml:"condition"`
	Images      []string      `yaml:"images"`
	Status      string        `yaml:"status"`
	Ago         time.Duration `yaml:"ago"`
}

type fixtureArticle struct {
	ID            string           `yaml:"id"`
	AuthorID      string           `yaml:"author_id"`
	Title         string           `yaml:"title"`
	Content       string           `yaml:"content"`
	CoverImageURL string           `yaml:"cover_image_url"`
	Tags          []string         `yaml:"tags"`
	Status        string           `yaml:"status"`
	Reactions     fixtureReactions `yaml:"reactions"`
	Comments      []fixtureComment `yaml:"comments"`
	Ago           time.Duration    `yaml:"ago"`
}

type fixtureGroup struct {
	ID           string        `yaml:"id"`
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	Category     string        `yaml:"category"`
	ImageURL     string        `yaml:"image_url"`
	Members      []string      `yaml:"members"`
	Admins       []string      `yaml:"admins"`
	IsMentorship bool          `yaml:"is_mentorship"`
	Ago          time.Duration `yaml:"ago"`
}

type fixtureMessage struct {
	ID       string        `yaml:"id"`
	SenderID string        `yaml:"sender_id"`
	Text     string        `yaml:"text"`
	Ago      time.Duration `yaml:"ago"`
}

type fixtureChat struct {
	ID           string           `yaml:"id"`
	Name         string           `yaml:"name"`
	IsGroup      bool             `yaml:"is_group"`
	Participants []string         `yaml:"participants"`
	Unread       map[string]int   `yaml:"unread"`
	Messages     []fixtureMessage `yaml:"messages"`
}

type fixtureNotice struct {
	ID          string        `yaml:"id"`
	RecipientID string        `yaml:"recipient_id"`
	Type        string        `yaml:"type"`
	Text        string        `yaml:"text"`
	LinkID      string        `yaml:"link_id"`
	Read        bool          `yaml:"read"`
	Ago         time.Duration `yaml:"ago"`
}

type fixtureFriendReq struct {
	ID         string        `yaml:"id"`
	FromUserID string        `yaml:"from_user_id"`
	ToUserID   string        `yaml:"to_user_id"`
	Ago        time.Duration `yaml:"ago"`
}

type fixtureMentorReq struct {
	ID          string        `yaml:"id"`
	FromUserID  string        `yaml:"from_user_id"`
	ToMentorID  string        `yaml:"to_mentor_id"`
	CommunityID string        `yaml:"community_id"`
	Message     string        `yaml:"message"`
	Status      string        `yaml:"status"`
	Ago         time.Duration `yaml:"ago"`
}

type fixtureSchedule struct {
	ID        string `yaml:"id"`
	OwnerID   string `yaml:"owner_id"`
	Title     string `yaml:"title"`
	Location  string `yaml:"location"`
	Day       string `yaml:"day"`
	StartTime string `yaml:"start_time"`
	EndTime   string `yaml:"end_time"`
	Color     string `yaml:"color"`
}

type fixtureTodo struct {
	ID        string         `yaml:"id"`
	OwnerID   string         `yaml:"owner_id"`
	Text      string         `yaml:"text"`
	Completed bool           `yaml:"completed"`
	DueIn     *time.Duration `yaml:"due_in"`
}

type fixtureJob struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title"`
	Company     string        `yaml:"company"`
	Location    string        `yaml:"location"`
	Type        string        `yaml:"type"`
	Description string        `yaml:"description"`
	PostedByID  string        `yaml:"posted_by_id"`
	Ago         time.Duration `yaml:"ago"`
}

type fixtureHero struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	ImageURL string `yaml:"image_url"`
	LinkURL  string `yaml:"link_url"`
	Order    int    `yaml:"order"`
}

type fixturePollOption struct {
	ID     string   `yaml:"id"`
	Text   string   `yaml:"text"`
	Voters []string `yaml:"voters"`
}

type fixturePoll struct {
	ID       string              `yaml:"id"`
	AuthorID string              `yaml:"author_id"`
	Question string              `yaml:"question"`
	Closed   bool                `yaml:"closed"`
	Options  []fixturePollOption `yaml:"options"`
	Ago      time.Duration       `yaml:"ago"`
}

type fixtureLibrary struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Author    string `yaml:"author"`
	Type      string `yaml:"type"`
	Available bool   `yaml:"available"`
	Location  string `yaml:"location"`
}

type fixtureLostFound struct {
	ID          string        `yaml:"id"`
	ReporterID  string        `yaml:"reporter_id"`
	Kind        string        `yaml:"kind"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Location    string        `yaml:"location"`
	ImageURL    string        `yaml:"image_url"`
	Resolved    bool          `yaml:"resolved"`
	Ago         time.Duration `yaml:"ago"`
}

// nonNil keeps empty id lists serialised as [] rather than null
func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func (r fixtureReactions) model() models.Reactions {
	return models.Reactions{Like: r.Like, Love: r.Love, Laugh: r.Laugh, Wow: r.Wow, Sad: r.Sad}
}

func comments(in []fixtureComment, now time.Time) []models.Comment {
	out := make([]models.Comment, 0, len(in))
	for _, c := range in {
		out = append(out, models.Comment{ID: c.ID, AuthorID: c.AuthorID, Text: c.Text, Timestamp: now.Add(-c.Ago)})
	}
	return out
}

// build converts the fixture into a State. Collections keep fixture order.
func (f *fixture) build(now time.Time) *store.State {
	st := store.NewState()

	for _, u := range f.Users {
		status := models.UserStatus(u.Status)
		if status == "" {
			status = models.UserActive
		}
		visibility := models.ProfileVisibility(u.Settings.ProfileVisibility)
		if visibility == "" {
			visibility = models.VisibilityPublic
		}
		st.Users.Append(models.User{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			AvatarURL: u.AvatarURL,
			CoverURL:  u.CoverURL,
			Bio:       u.Bio,
			Major:     u.Major,
			Year:      u.Year,
			Role:      models.RoleType(u.Role),
			Status:    status,
			Friends:   nonNil(u.Friends),
			Settings: models.UserSettings{
				EmailNotifications: u.Settings.EmailNotifications,
				PushNotifications:  u.Settings.PushNotifications,
				ProfileVisibility:  visibility,
				DarkMode:           u.Settings.DarkMode,
			},
			IsMentor:          u.IsMentor,
			MentorExpertise:   u.MentorExpertise,
			MentorCommunityID: u.MentorCommunityID,
			JoinedAt:          now.Add(-u.JoinedAgo),
		})
	}

	for _, e := range f.Events {
		start := now.Add(e.In)
		st.Events.Append(models.Event{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Location:    e.Location,
			Category:    e.Category,
			ImageURL:    e.ImageURL,
			OrganizerID: e.OrganizerID,
			Attendees:   nonNil(e.Attendees),
			StartTime:   start,
			EndTime:     start.Add(e.Length),
			CreatedAt:   now.Add(-e.Ago),
		})
	}

	for _, p := range f.Posts {
		st.Posts.Append(models.Post{
			ID:        p.ID,
			AuthorID:  p.AuthorID,
			Content:   p.Content,
			ImageURL:  p.ImageURL,
			EventID:   p.EventID,
			Reactions: p.Reactions.model(),
			Comments:  comments(p.Comments, now),
			CreatedAt: now.Add(-p.Ago),
		})
	}

	for _, m := range f.Listings {
		st.Listings.Append(models.MarketplaceItem{
			ID:          m.ID,
			SellerID:    m.SellerID,
			Title:       m.Title,
			Description: m.Description,
			Price:       m.Price,
			Category:    m.Category,
			Condition:   m.Condition,
			Images:      nonNil(m.Images),
			Status:      models.ListingStatus(m.Status),
			CreatedAt:   now.Add(-m.Ago),
		})
	}

	for _, a := range f.Articles {
		created := now.Add(-a.Ago)
		st.Articles.Append(models.Article{
			ID:            a.ID,
			AuthorID:      a.AuthorID,
			Title:         a.Title,
			Content:       a.Content,
			CoverImageURL: a.CoverImageURL,
			Tags:          a.Tags,
			Status:        models.ArticleStatus(a.Status),
			Reactions:     a.Reactions.model(),
			Comments:      comments(a.Comments, now),
			CreatedAt:     created,
			UpdatedAt:     created,
		})
	}

	for _, g := range f.Groups {
		st.Groups.Append(models.Group{
			ID:           g.ID,
			Name:         g.Name,
			Description:  g.Description,
			Category:     g.Category,
			ImageURL:     g.ImageURL,
			Members:      nonNil(g.Members),
			Admins:       nonNil(g.Admins),
			IsMentorship: g.IsMentorship,
			CreatedAt:    now.Add(-g.Ago),
		})
	}

	for _, c := range f.Conversations {
		conv := models.Conversation{
			ID:           c.ID,
			Name:         c.Name,
			IsGroup:      c.IsGroup,
			Participants: nonNil(c.Participants),
			Messages:     make([]models.Message, 0, len(c.Messages)),
			Unread:       make(map[string]int, len(c.Participants)),
		}
		for _, p := range c.Participants {
			conv.Unread[p] = c.Unread[p]
		}
		for _, m := range c.Messages {
			conv.Messages = append(conv.Messages, models.Message{ID: m.ID, SenderID: m.SenderID, Text: m.Text, Timestamp: now.Add(-m.Ago)})
		}
		if last, ok := conv.LastMessage(); ok {
			conv.UpdatedAt = last.Timestamp
		} else {
			conv.UpdatedAt = now
		}
		st.Conversations.Append(conv)
	}

	for _, n := range f.Notifications {
		st.Notifications.Append(models.Notification{
			ID:          n.ID,
			RecipientID: n.RecipientID,
			Type:        models.NotificationType(n.Type),
			Text:        n.Text,
			LinkID:      n.LinkID,
			IsRead:      n.Read,
			Timestamp:   now.Add(-n.Ago),
		})
	}

	for _, r := range f.FriendRequests {
		st.FriendRequests.Append(models.FriendRequest{
			ID:         r.ID,
			FromUserID: r.FromUserID,
			ToUserID:   r.ToUserID,
			Status:     models.FriendRequestPending,
			CreatedAt:  now.Add(-r.Ago),
		})
	}

	for _, r := range f.MentorshipRequests {
		status := models.MentorshipStatus(r.Status)
		if status == "" {
			status = models.MentorshipPending
		}
		st.MentorshipRequests.Append(models.MentorshipRequest{
			ID:          r.ID,
			FromUserID:  r.FromUserID,
			ToMentorID:  r.ToMentorID,
			CommunityID: r.CommunityID,
			Message:     r.Message,
			Status:      status,
			CreatedAt:   now.Add(-r.Ago),
		})
	}

	for _, s := range f.Schedule {
		st.ScheduleItems.Append(models.ScheduleItem{
			ID:        s.ID,
			OwnerID:   s.OwnerID,
			Title:     s.Title,
			Location:  s.Location,
			Day:       models.Weekday(s.Day),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Color:     s.Color,
		})
	}

	for _, t := range f.Todos {
		todo := models.TodoItem{ID: t.ID, OwnerID: t.OwnerID, Text: t.Text, Completed: t.Completed}
		if t.DueIn != nil {
			due := now.Add(*t.DueIn)
			todo.DueDate = &due
		}
		st.Todos.Append(todo)
	}

	for _, j := range f.Jobs {
		st.Jobs.Append(models.Job{
			ID:          j.ID,
			Title:       j.Title,
			Company:     j.Company,
			Location:    j.Location,
			Type:        models.JobType(j.Type),
			Description: j.Description,
			PostedByID:  j.PostedByID,
			PostedAt:    now.Add(-j.Ago),
		})
	}

	for _, h := range f.HeroSlides {
		st.HeroSlides.Append(models.HeroSlide{
			ID:       h.ID,
			Title:    h.Title,
			Subtitle: h.Subtitle,
			ImageURL: h.ImageURL,
			LinkURL:  h.LinkURL,
			Order:    h.Order,
		})
	}

	for _, p := range f.Polls {
		poll := models.Poll{
			ID:        p.ID,
			AuthorID:  p.AuthorID,
			Question:  p.Question,
			Closed:    p.Closed,
			Options:   make([]models.PollOption, 0, len(p.Options)),
			CreatedAt: now.Add(-p.Ago),
		}
		for _, o := range p.Options {
			poll.Options = append(poll.Options, models.PollOption{ID: o.ID, Text: o.Text, Voters: nonNil(o.Voters)})
		}
		st.Polls.Append(poll)
	}

	for _, l := range f.Library {
		st.LibraryResources.Append(models.LibraryResource{
			ID:        l.ID,
			Title:     l.Title,
			Author:    l.Author,
			Type:      models.LibraryResourceType(l.Type),
			Available: l.Available,
			Location:  l.Location,
		})
	}

	for _, l := range f.LostAndFound {
		st.LostAndFound.Append(models.LostAndFoundItem{
			ID:          l.ID,
			ReporterID:  l.ReporterID,
			Kind:        models.LostFoundKind(l.Kind),
			Title:       l.Title,
			Description: l.Description,
			Location:    l.Location,
			ImageURL:    l.ImageURL,
			Resolved:    l.Resolved,
			CreatedAt:   now.Add(-l.Ago),
		})
	}

	return st
}
