package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/controllers"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/middleware"
	"github.com/yigit/campusbuzz/internal/pkg/websocket"
)

// Controllers bundles every HTTP handler the router mounts
type Controllers struct {
	Session      *controllers.SessionController
	Posts        *controllers.PostController
	Profiles     *controllers.ProfileController
	Friends      *controllers.FriendController
	Groups       *controllers.GroupController
	Messaging    *controllers.MessagingController
	Events       *controllers.EventController
	Marketplace  *controllers.MarketplaceController
	Articles     *controllers.ArticleController
	Notification *controllers.NotificationController
	Campus       *controllers.CampusController
	Jobs         *controllers.JobController
	Admin        *controllers.AdminController
	WebSocket    *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	session := v1.Group("/session")
	{
		session.POST("", c.Session.StartSession)
		session.POST("/default", c.Session.CurrentUserSession)
	}
	v1.GET("/hero-slides", c.Admin.ListHeroSlides)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Browsers pass the token as ?token= on the upgrade request
	authenticated.GET("/ws", c.WebSocket.HandleConnection)

	me := authenticated.Group("/me")
	{
		me.GET("", c.Profiles.GetMyProfile)
		me.PATCH("", c.Profiles.UpdateProfile)
		me.PUT("/settings", c.Profiles.UpdateSettings)
		me.POST("/mentor", c.Profiles.BecomeMentor)
	}

	users := authenticated.Group("/users")
	{
		users.GET("", c.Profiles.ListUsers)
		users.GET("/:id", c.Profiles.GetProfile)
		users.GET("/:id/posts", c.Posts.GetUserPosts)
		users.GET("/:id/articles", c.Articles.GetUserArticles)
	}

	posts := authenticated.Group("/posts")
	{
		posts.GET("", c.Posts.GetFeed)
		posts.GET("/hashtags", c.Posts.GetHashtags)
		posts.POST("", c.Posts.CreatePost)
		posts.GET("/:id", c.Posts.GetPost)
		posts.PATCH("/:id", c.Posts.EditPost)
		posts.DELETE("/:id", c.Posts.DeletePost)
		posts.POST("/:id/comments", c.Posts.AddComment)
		posts.POST("/:id/reactions", c.Posts.React)
		posts.DELETE("/:id/reactions/:kind", c.Posts.Unreact)
	}

	friends := authenticated.Group("/friends")
	{
		friends.GET("", c.Friends.ListFriends)
		friends.GET("/suggestions", c.Friends.Suggestions)
		friends.GET("/requests", c.Friends.ListRequests)
		friends.POST("/requests", c.Friends.SendRequest)
		friends.POST("/requests/:id/accept", c.Friends.AcceptRequest)
		friends.POST("/requests/:id/decline", c.Friends.DeclineRequest)
		friends.DELETE("/requests/:id", c.Friends.CancelRequest)
		friends.DELETE("/:id", c.Friends.Unfriend)
	}

	groups := authenticated.Group("/groups")
	{
		groups.GET("", c.Groups.ListGroups)
		groups.POST("", c.Groups.CreateGroup)
		groups.GET("/:id", c.Groups.GetGroup)
		groups.DELETE("/:id", c.Groups.DeleteGroup)
		groups.POST("/:id/join", c.Groups.JoinGroup)
		groups.POST("/:id/leave", c.Groups.LeaveGroup)
		groups.POST("/:id/membership", c.Groups.ToggleMembership)
	}

	authenticated.GET("/mentors", c.Groups.ListMentors)
	mentorship := authenticated.Group("/mentorship")
	{
		mentorship.POST("/community", c.Groups.CreateCommunity)
		mentorship.GET("/requests", c.Groups.ListMentorshipRequests)
		mentorship.POST("/requests", c.Groups.SendMentorshipRequest)
		mentorship.POST("/requests/:id/accept", c.Groups.AcceptMentorshipRequest)
		mentorship.POST("/requests/:id/decline", c.Groups.DeclineMentorshipRequest)
		mentorship.DELETE("/mentees/:id", c.Groups.RemoveMentee)
	}

	conversations := authenticated.Group("/conversations")
	{
		conversations.GET("", c.Messaging.ListConversations)
		conversations.GET("/unread", c.Messaging.UnreadTotal)
		conversations.POST("", c.Messaging.CreateConversation)
		conversations.GET("/:id", c.Messaging.SelectConversation)
		conversations.POST("/:id/messages", c.Messaging.SendMessage)
	}

	events := authenticated.Group("/events")
	{
		events.GET("", c.Events.ListEvents)
		events.POST("", c.Events.CreateEvent)
		events.GET("/:id", c.Events.GetEvent)
		events.PATCH("/:id", c.Events.UpdateEvent)
		events.DELETE("/:id", c.Events.DeleteEvent)
		events.POST("/:id/rsvp", c.Events.RSVP)
	}

	listings := authenticated.Group("/listings")
	{
		listings.GET("", c.Marketplace.ListListings)
		listings.POST("", c.Marketplace.CreateListing)
		listings.GET("/:id", c.Marketplace.GetListing)
		listings.PATCH("/:id", c.Marketplace.UpdateListing)
		listings.PUT("/:id/status", c.Marketplace.SetStatus)
		listings.DELETE("/:id", c.Marketplace.DeleteListing)
	}

	articles := authenticated.Group("/articles")
	{
		articles.GET("", c.Articles.ListArticles)
		articles.POST("", c.Articles.CreateArticle)
		articles.GET("/:id", c.Articles.GetArticle)
		articles.PATCH("/:id", c.Articles.UpdateArticle)
		articles.DELETE("/:id", c.Articles.DeleteArticle)
		articles.POST("/:id/reactions", c.Articles.React)
		articles.POST("/:id/comments", c.Articles.AddComment)
	}

	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", c.Notification.ListNotifications)
		notifications.GET("/unread-count", c.Notification.UnreadCount)
		notifications.POST("/read-all", c.Notification.MarkAllRead)
		notifications.POST("/:id/read", c.Notification.MarkRead)
	}
	authenticated.GET("/toast", c.Notification.GetToast)
	authenticated.DELETE("/toast", c.Notification.CloseToast)

	schedule := authenticated.Group("/schedule")
	{
		schedule.GET("", c.Campus.ListSchedule)
		schedule.POST("", c.Campus.CreateScheduleItem)
		schedule.PUT("/:id", c.Campus.UpdateScheduleItem)
		schedule.DELETE("/:id", c.Campus.DeleteScheduleItem)
	}

	todos := authenticated.Group("/todos")
	{
		todos.GET("", c.Campus.ListTodos)
		todos.POST("", c.Campus.CreateTodo)
		todos.POST("/:id/toggle", c.Campus.ToggleTodo)
		todos.DELETE("/:id", c.Campus.DeleteTodo)
	}

	library := authenticated.Group("/library")
	{
		library.GET("", c.Campus.ListLibrary)
		library.POST("/:id/checkout", c.Campus.ToggleCheckout)

		libraryStaff := library.Group("")
		libraryStaff.Use(authMiddleware.RoleRequired(models.RoleStaff, models.RoleAdmin))
		{
			libraryStaff.POST("", c.Campus.CreateLibraryResource)
			libraryStaff.PUT("/:id", c.Campus.UpdateLibraryResource)
			libraryStaff.DELETE("/:id", c.Campus.DeleteLibraryResource)
		}
	}

	lostFound := authenticated.Group("/lost-found")
	{
		lostFound.GET("", c.Campus.ListLostAndFound)
		lostFound.POST("", c.Campus.ReportLostAndFound)
		lostFound.POST("/:id/resolve", c.Campus.ResolveLostAndFound)
		lostFound.DELETE("/:id", c.Campus.DeleteLostAndFound)
	}

	jobs := authenticated.Group("/jobs")
	{
		jobs.GET("", c.Jobs.ListJobs)
		jobs.GET("/:id", c.Jobs.GetJob)

		jobsStaff := jobs.Group("")
		jobsStaff.Use(authMiddleware.RoleRequired(models.RoleStaff, models.RoleAdmin))
		{
			jobsStaff.POST("", c.Jobs.CreateJob)
			jobsStaff.PUT("/:id", c.Jobs.UpdateJob)
			jobsStaff.DELETE("/:id", c.Jobs.DeleteJob)
		}
	}

	polls := authenticated.Group("/polls")
	{
		polls.GET("", c.Jobs.ListPolls)
		polls.POST("", c.Jobs.CreatePoll)
		polls.POST("/:id/vote", c.Jobs.Vote)
		polls.POST("/:id/close", c.Jobs.ClosePoll)
	}

	admin := authenticated.Group("/admin")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/dashboard", c.Admin.Dashboard)
		admin.GET("/users", c.Admin.ListUsers)
		admin.PUT("/users/:id/status", c.Admin.SetUserStatus)
		admin.PUT("/users/:id/role", c.Admin.SetUserRole)
		admin.DELETE("/users/:id", c.Admin.DeleteUser)
		admin.POST("/hero-slides", c.Admin.CreateHeroSlide)
		admin.PUT("/hero-slides/order", c.Admin.ReorderHeroSlides)
		admin.PUT("/hero-slides/:id", c.Admin.UpdateHeroSlide)
		admin.DELETE("/hero-slides/:id", c.Admin.DeleteHeroSlide)
	}
}
