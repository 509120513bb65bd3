package bootstrap

import (
	"context"
	"log"
	"os"

	"personal-notes-be/internal/config"
	"personal-notes-be/internal/controller"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/pkg/mailer"
	"personal-notes-be/internal/repository/cache"
	"personal-notes-be/internal/repository/memory"
	"personal-notes-be/internal/repository/unitofwork"
	"personal-notes-be/internal/service"

	pktNats "personal-notes-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const auditTopic = "AUDIT_EVENTS"

type Container struct {
	// Controllers
	NoteController  controller.INoteController
	UserController  controller.IUserController
	OAuthController controller.IOAuthController

	// Background Services (Exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService service.INotificationService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// 2. Event Bus (in-process audit pipeline)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	stateRepo := memory.NewStateRepository()
	userCache := cache.NewUserCache(rdb)

	// JwtMiddleware reads the secret from the environment; keep them aligned
	// when the secret came from .env parsing rather than the process env.
	if os.Getenv("JWT_SECRET") == "" && cfg.Auth.JWTSecret != "" {
		os.Setenv("JWT_SECRET", cfg.Auth.JWTSecret)
	}

	// 3. Services
	auditPublisher := service.NewPublisherService(auditTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, auditTopic, uowFactory, sysLogger)

	notifLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	notificationService := service.NewNotificationService(natsSub, notifLogger)

	oauthService := service.NewOAuthService(
		uowFactory,
		stateRepo,
		userCache,
		emailService,
		auditPublisher,
		natsPub,
		sysLogger,
		&cfg.Auth,
	)
	noteService := service.NewNoteService(uowFactory, auditPublisher, natsPub, sysLogger)
	userService := service.NewUserService(uowFactory, userCache)

	// 4. Controllers
	return &Container{
		NoteController:  controller.NewNoteController(noteService),
		UserController:  controller.NewUserController(userService),
		OAuthController: controller.NewOAuthController(oauthService, sysLogger, &cfg.App),

		ConsumerService:     consumerService,
		NotificationService: notificationService,

		Logger: sysLogger,
	}
}
