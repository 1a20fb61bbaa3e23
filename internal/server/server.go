package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ticketchain/ticketchain/config"
	"github.com/ticketchain/ticketchain/internal/auth"
	"github.com/ticketchain/ticketchain/internal/chain"
	"github.com/ticketchain/ticketchain/internal/handlers"
	"github.com/ticketchain/ticketchain/internal/middleware"
	"github.com/ticketchain/ticketchain/internal/notify"
	"github.com/ticketchain/ticketchain/internal/settlement"
	"github.com/ticketchain/ticketchain/monitoring"
)

const sweepInterval = time.Hour

func Start() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	redisClient, err := config.InitRedis(context.Background(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize redis: %v", err)
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	provider := chain.NewMock(logger)
	engine := settlement.NewEngine(db, provider, cfg.PrimaryFeeRate, logger)
	queue := notify.NewQueue(redisClient, logger)

	go runCompletedSweep(engine, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	setupRoutes(r, db, tokens, engine, queue)

	logger.Info("server starting", zap.String("port", cfg.Port))
	return r.Run(":" + cfg.Port)
}

// runCompletedSweep periodically flips approved events whose end time has
// passed to completed.
func runCompletedSweep(engine *settlement.Engine, logger *zap.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		if _, err := engine.CompletePastEvents(context.Background()); err != nil {
			logger.Error("completed sweep failed", zap.Error(err))
		}
	}
}

func setupRoutes(r *gin.Engine, db *gorm.DB, tokens *auth.TokenService, engine *settlement.Engine, queue *notify.Queue) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.TokensMiddleware(tokens))
	r.Use(middleware.SettlementMiddleware(engine))
	r.Use(middleware.NotifyMiddleware(queue))

	r.GET("/metrics", gin.WrapH(monitoring.Handler()))

	public := r.Group("/v1")
	{
		public.POST("/auth/login", handlers.Login)

		public.GET("/events", handlers.ListEvents)
		public.GET("/events/:id", handlers.GetEvent)
		public.GET("/ticket-types/:id", handlers.GetTicketType)
		public.GET("/listings", handlers.ListListings)
		public.GET("/golden-tickets", handlers.ListGoldenTickets)
		public.GET("/artists/:id/perks", handlers.GetArtistPerks)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(tokens))
	{
		protected.POST("/events",
			middleware.RequireCapability(auth.CapEventCreate), handlers.CreateEvent)
		protected.POST("/events/:id/banner",
			middleware.RequireCapability(auth.CapEventCreate), handlers.UploadEventBanner)
		protected.POST("/events/:id/ticket-types",
			middleware.RequireCapability(auth.CapEventCreate), handlers.CreateTicketType)
		protected.POST("/organizer/events/:id/cancel",
			middleware.RequireCapability(auth.CapEventCancel), handlers.CancelEvent)

		buyer := protected.Group("/buyer")
		{
			buyer.POST("/purchase",
				middleware.RequireCapability(auth.CapTicketPurchase), handlers.Purchase)
			buyer.POST("/resell",
				middleware.RequireCapability(auth.CapTicketResell), handlers.ResellTicket)
			buyer.POST("/listings/:id/purchase",
				middleware.RequireCapability(auth.CapTicketPurchase), handlers.PurchaseListing)
			buyer.POST("/listings/:id/cancel",
				middleware.RequireCapability(auth.CapTicketResell), handlers.CancelListing)
			buyer.GET("/tickets", handlers.MyTickets)
			buyer.GET("/tickets/:id/qr", handlers.TicketQR)
			buyer.POST("/golden-tickets/:id/purchase",
				middleware.RequireCapability(auth.CapGoldenPurchase), handlers.PurchaseGoldenTicket)
		}

		protected.POST("/inspector/verify",
			middleware.RequireCapability(auth.CapTicketCheckIn), handlers.VerifyTicket)

		artist := protected.Group("/artist")
		{
			artist.POST("/verification",
				middleware.RequireCapability(auth.CapGoldenCreate), handlers.RequestVerification)
			artist.POST("/golden-tickets",
				middleware.RequireCapability(auth.CapGoldenCreate), handlers.CreateGoldenTicket)
		}

		referrals := protected.Group("/referrals")
		referrals.Use(middleware.RequireCapability(auth.CapReferralManage))
		{
			referrals.POST("", handlers.CreateReferral)
			referrals.GET("", handlers.MyReferrals)
			referrals.POST("/:id/deactivate", handlers.DeactivateReferral)
		}

		admin := protected.Group("/admin")
		{
			admin.POST("/events/:id/approve",
				middleware.RequireCapability(auth.CapEventModerate), handlers.ApproveEvent)
			admin.POST("/events/:id/reject",
				middleware.RequireCapability(auth.CapEventModerate), handlers.RejectEvent)
			admin.POST("/ticket-types/:id/supply",
				middleware.RequireCapability(auth.CapSupplyCorrect), handlers.CorrectSupply)
			admin.POST("/artists/:id/approve",
				middleware.RequireCapability(auth.CapArtistVerify), handlers.ApproveArtist)
			admin.POST("/artists/:id/reject",
				middleware.RequireCapability(auth.CapArtistVerify), handlers.RejectArtist)
			admin.GET("/dashboard",
				middleware.RequireCapability(auth.CapDashboardView), handlers.Dashboard)
		}
	}
}
