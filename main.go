package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wealthy-cats/config"
	"wealthy-cats/controller"
	"wealthy-cats/deck"
	"wealthy-cats/entities"
	"wealthy-cats/middleware"
	"wealthy-cats/portal"
	"wealthy-cats/repository"
	"wealthy-cats/router"
	"wealthy-cats/service"
	"wealthy-cats/ws"
)

func newLogger(cfg config.Config) *zap.Logger {
	zc := zap.NewProductionConfig()
	if cfg.LogDev {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	log, err := zc.Build()
	if err != nil {
		return zap.NewExample()
	}
	return log
}

func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) repository.Store {
	if !cfg.UseRedis {
		log.Info("using in-memory prefs store")
		return repository.NewMemoryStore()
	}
	rdb, err := repository.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Warn("⚠️ redis unavailable, using in-memory prefs store", zap.Error(err))
		return repository.NewMemoryStore()
	}
	return repository.NewRedisStore(rdb)
}

func loadDecks(path string) (entities.DecksConfig, error) {
	if path == "" {
		return deck.Default(), nil
	}
	return deck.LoadFile(path)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("❌ config", zap.Error(err))
	}
	log := newLogger(cfg)
	defer log.Sync()

	gameCfg := config.DefaultGame()
	if cfg.BoardPath != "" {
		if gameCfg, err = config.LoadGame(cfg.BoardPath); err != nil {
			log.Fatal("❌ board config", zap.Error(err))
		}
	}
	decks, err := loadDecks(cfg.DecksPath)
	if err != nil {
		log.Fatal("❌ decks", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore(ctx, cfg, log)
	prefs := service.NewPrefsService(store)
	progress := service.NewProgressService(store, log)

	telemetry := portal.NewClient(portal.Options{
		Enabled: cfg.UseAPI,
		Domain:  cfg.PortalDomain,
		GameID:  cfg.GameID,
		Log:     log,
	})
	if telemetry.Enabled() {
		initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		level, err := telemetry.Init(initCtx)
		cancel()
		if err != nil {
			log.Warn("⚠️ portal unavailable, running offline", zap.Error(err))
		} else if _, err := progress.SyncFromAPI(ctx, level); err != nil {
			log.Warn("⚠️ sync progress", zap.Error(err))
		}
	}

	hub := ws.NewHub(log)
	sessions := service.NewSessionService(service.Deps{
		Game:      gameCfg,
		Decks:     decks,
		TickHz:    cfg.TickHz,
		Hub:       hub,
		Telemetry: telemetry,
		Prefs:     prefs,
		Progress:  progress,
		Log:       log,
	})
	defer sessions.Close()

	if !cfg.LogDev {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log))

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	router.InitRouter(r, controller.New(sessions, prefs, progress), sessions, ws.NewHandler(hub, sessions, log))

	srv := &http.Server{Addr: cfg.Addr, Handler: r}
	go func() {
		log.Info("🚀 listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("⚠️ shutdown", zap.Error(err))
	}
}
