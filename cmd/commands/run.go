package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"storysync"
	"storysync/config"
	"storysync/internal/application/usecase"
	"storysync/internal/infrastructure/connectivity"
	"storysync/internal/infrastructure/database"
	"storysync/internal/infrastructure/identity"
	"storysync/internal/infrastructure/minio"
	"storysync/internal/infrastructure/pending"
	"storysync/internal/presentation"
	"storysync/internal/presentation/handler"
	"storysync/internal/presentation/middleware"
	"storysync/pkg/logger"
)

func HandleRun(args []string) {
	if len(args) < 3 {
		ExitOnError(errors.New("at least 1 arguments expected\nuse help command for more information"))
	}

	cfg, err := config.Load(args[2])
	if err != nil {
		ExitOnError(err)
	}

	logger.InitGlobalLogger(&cfg.Logger)

	logger.Info("running storysync", "version", storysync.StringVersion())

	pendingStore, err := pending.Open(cfg.PendingStore)
	if err != nil {
		ExitOnError(err)
	}
	defer pendingStore.Close()

	db, err := database.Connect(cfg.DBConfig)
	if err != nil {
		ExitOnError(err)
	}
	defer func() {
		if err := db.Stop(); err != nil {
			logger.Error("couldn't stop db instance", "err", err)
		}
	}()

	dbWriter := database.NewStoryWriter(db)
	dbRetriever := database.NewStoryRetriever(db)
	dbRemover := database.NewStoryRemover(db)
	dbLister := database.NewStoryLister(db)
	dbWatcher := database.NewStoryWatcher(db)

	minIOClient, err := minio.New(&cfg.MinIOClient)
	if err != nil {
		ExitOnError(err)
	}
	minIOUploader := minio.NewUploader(minIOClient, &cfg.MinIOUploader)
	minIORemover := minio.NewRemover(minIOClient, &cfg.MinIORemover)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := minIOClient.EnsureBucket(ctx); err != nil {
		logger.Error("couldn't ensure bucket, uploads may fail until it exists", "err", err)
	}

	provider := identity.New(cfg.Identity)

	reconciler := usecase.NewReconciler(pendingStore, minIOUploader, minIORemover)
	go reconciler.Drain(ctx)

	tracker := connectivity.NewTracker()
	prober := connectivity.NewProber(cfg.Connectivity)
	go tracker.Run(ctx, prober.Observe(ctx), func() {
		// an extra pass on regained connectivity; best effort
		go reconciler.Drain(ctx)
	})

	storyService := usecase.NewStoryService(dbWriter, dbRetriever, dbRemover,
		minIORemover, pendingStore, provider, tracker.Last)
	feedService := usecase.NewFeedService(dbLister, dbRetriever, dbWatcher, provider,
		time.Duration(cfg.Feed.DebounceMS)*time.Millisecond)
	galleryCommitter := usecase.NewGalleryCommitter(minIOUploader, minIORemover, pendingStore)
	imageService := usecase.NewImageService(dbWriter, dbRetriever, galleryCommitter, provider)

	storyHandler := handler.NewStoryHandler(storyService)
	feedHandler := handler.NewFeedHandler(feedService)
	galleryHandler := handler.NewGalleryHandler(imageService)

	e := echo.New()
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderContentLength},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost,
			http.MethodDelete, http.MethodHead, http.MethodOptions},
		MaxAge: 86400,
	}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	e.Use(echoMiddleware.BodyLimit("1M"))
	e.Use(echoMiddleware.RateLimiter(echoMiddleware.NewRateLimiterMemoryStore(20)))

	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	auth := middleware.AuthMiddleware([]byte(cfg.Identity.Secret), provider)
	e.POST("/stories", storyHandler.HandleCreate, auth)
	e.PUT("/stories/:"+presentation.StoryIDParam, storyHandler.HandleUpdate, auth)
	e.DELETE("/stories/:"+presentation.StoryIDParam, storyHandler.HandleDelete, auth)
	e.DELETE("/stories", storyHandler.HandleDeleteAll, auth)
	e.GET("/stories", feedHandler.HandleFeed, auth)
	e.POST("/stories/:"+presentation.StoryIDParam+"/images", galleryHandler.HandleAttach, auth)
	e.DELETE("/stories/:"+presentation.StoryIDParam+"/images", galleryHandler.HandleDetach, auth)

	go func() {
		if err := e.Start(cfg.Default.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ExitOnError(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		ExitOnError(err)
	}
}
