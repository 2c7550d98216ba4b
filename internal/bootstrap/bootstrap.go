package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/campusbuzz/internal/app/auth"
	appControllers "github.com/yigit/campusbuzz/internal/app/controllers"
	"github.com/yigit/campusbuzz/internal/app/models"
	appRoutes "github.com/yigit/campusbuzz/internal/app/routes"
	appServices "github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/app/toast"
	"github.com/yigit/campusbuzz/internal/config"
	appMiddleware "github.com/yigit/campusbuzz/internal/middleware"
	pkgAuth "github.com/yigit/campusbuzz/internal/pkg/auth"
	"github.com/yigit/campusbuzz/internal/pkg/idgen"
	"github.com/yigit/campusbuzz/internal/pkg/imagedata"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/pkg/logger"
	"github.com/yigit/campusbuzz/internal/pkg/websocket"
	"github.com/yigit/campusbuzz/internal/seed"
	"github.com/yigit/campusbuzz/internal/simulator"
	"github.com/yigit/campusbuzz/internal/store"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store      *store.Store
	Deps       *appServices.Deps
	JWTService *pkgAuth.JWTService
	Board      *toast.Board
	Hub        *websocket.Hub
	Simulator  *simulator.Runner

	PostService         appServices.PostService
	FeedService         appServices.FeedService
	FriendService       appServices.FriendService
	GroupService        appServices.GroupService
	MentorshipService   appServices.MentorshipService
	MessagingService    appServices.MessagingService
	EventService        appServices.EventService
	MarketplaceService  appServices.MarketplaceService
	ArticleService      appServices.ArticleService
	NotificationService appServices.NotificationService
	CampusService       appServices.CampusService
	JobService          appServices.JobService
	PollService         appServices.PollService
	ProfileService      appServices.ProfileService
	AdminService        appServices.AdminService
	SessionService      *appServices.SessionService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	format := strings.ToLower(cfg.Logging.Format)
	prettyLog := format == "text" || format == "console"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore loads the seed fixture into a fresh in-memory store
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (*store.Store, error) {
	st, err := seed.NewStore(cfg.Seed.Fixture, time.Now(), cfg.Seed.CurrentUserID, logger.ForComponent(lgr, "store"))
	if err != nil {
		lgr.Error().Err(err).Str("fixture", cfg.Seed.Fixture).Msg("Failed to load seed data")
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}
	return st, nil
}

// newDelayer builds the simulated latency from config
func newDelayer(cfg *config.Config) latency.Delayer {
	if !cfg.Latency.Enabled {
		return latency.None{}
	}
	overrides := make(map[latency.Op]time.Duration, len(cfg.Latency.Operations))
	for op, d := range cfg.Latency.Operations {
		overrides[latency.Op(op)] = d
	}
	return latency.NewSimulated(cfg.Latency.Default, overrides)
}

// BuildDependencies initializes services, the live channels (toast, websocket
// hub, simulator) and controllers.
func BuildDependencies(cfg *config.Config, st *store.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Store: st, Logger: lgr}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	deps.Board = toast.NewBoard(cfg.Toast.Display, cfg.Toast.Fade, toast.RealAfterFunc)
	deps.Hub = websocket.NewHub(lgr)
	deps.Board.SetListener(websocket.ToastEvents(deps.Hub))

	deps.Deps = &appServices.Deps{
		Store:   st,
		Delayer: newDelayer(cfg),
		Clock:   time.Now,
		IDs:     idgen.New(),
		Notifier: appServices.Fanout{
			appServices.NotifierFunc(func(_ context.Context, n models.Notification) { deps.Board.Show(n) }),
			deps.Hub,
		},
		Authz:    appAuth.NewAuthorizationService(st),
		Logger:   lgr,
		Location: loc,
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.JWT.AccessTokenExpiration,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.PostService = appServices.NewPostService(deps.Deps)
	deps.FeedService = appServices.NewFeedService(deps.Deps)
	deps.FriendService = appServices.NewFriendService(deps.Deps)
	deps.GroupService = appServices.NewGroupService(deps.Deps)
	deps.MentorshipService = appServices.NewMentorshipService(deps.Deps)
	deps.MessagingService = appServices.NewMessagingService(deps.Deps)
	deps.EventService = appServices.NewEventService(deps.Deps)
	deps.MarketplaceService = appServices.NewMarketplaceService(deps.Deps)
	deps.ArticleService = appServices.NewArticleService(deps.Deps)
	deps.NotificationService = appServices.NewNotificationService(deps.Deps)
	deps.CampusService = appServices.NewCampusService(deps.Deps)
	deps.JobService = appServices.NewJobService(deps.Deps)
	deps.PollService = appServices.NewPollService(deps.Deps)
	deps.ProfileService = appServices.NewProfileService(deps.Deps)
	deps.AdminService = appServices.NewAdminService(deps.Deps)
	deps.SessionService = appServices.NewSessionService(deps.Deps, deps.JWTService)

	websocket.NewMessageHandler(deps.NotificationService, deps.MessagingService, deps.Board, lgr).Attach(deps.Hub)
	wsHandler := websocket.NewHandler(deps.Hub, lgr)
	wsHandler.OnConnect(func(userID string) []websocket.Event {
		snapshot := deps.Board.Current(userID)
		if snapshot.Phase == toast.Hidden {
			return nil
		}
		return []websocket.Event{{Type: websocket.EventToast, Data: snapshot, Timestamp: time.Now()}}
	})

	if cfg.Simulator.Enabled {
		intervals := make(map[simulator.Task]time.Duration, len(cfg.Simulator.Intervals))
		for task, d := range cfg.Simulator.Intervals {
			intervals[simulator.Task(task)] = d
		}
		deps.Simulator = simulator.NewRunner(st, simulator.Services{
			Posts:       deps.PostService,
			Marketplace: deps.MarketplaceService,
			Friends:     deps.FriendService,
			Messaging:   deps.MessagingService,
		}, simulator.Config{Seed: cfg.Simulator.Seed, Intervals: intervals}, lgr)
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, st)

	images := imagedata.NewEncoder(imagedata.MaxSize)
	deps.Controllers = appRoutes.Controllers{
		Session:      appControllers.NewSessionController(deps.SessionService),
		Posts:        appControllers.NewPostController(deps.PostService, deps.FeedService, images),
		Profiles:     appControllers.NewProfileController(deps.ProfileService, images),
		Friends:      appControllers.NewFriendController(deps.FriendService),
		Groups:       appControllers.NewGroupController(deps.GroupService, deps.MentorshipService, images),
		Messaging:    appControllers.NewMessagingController(deps.MessagingService),
		Events:       appControllers.NewEventController(deps.EventService, images),
		Marketplace:  appControllers.NewMarketplaceController(deps.MarketplaceService, images),
		Articles:     appControllers.NewArticleController(deps.ArticleService, images),
		Notification: appControllers.NewNotificationController(deps.NotificationService, deps.Board),
		Campus:       appControllers.NewCampusController(deps.CampusService, images),
		Jobs:         appControllers.NewJobController(deps.JobService, deps.PollService),
		Admin:        appControllers.NewAdminController(deps.AdminService, images),
		WebSocket:    wsHandler,
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}
	if err := appMiddleware.RegisterValidators(); err != nil {
		lgr.Warn().Err(err).Msg("Custom validation rules not registered")
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
