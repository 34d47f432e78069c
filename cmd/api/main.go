package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/labourlink/internal/config"
	"github.com/Windi-Fikriyansyah/labourlink/internal/db"
	"github.com/Windi-Fikriyansyah/labourlink/internal/handlers"
	"github.com/Windi-Fikriyansyah/labourlink/internal/logger"
	"github.com/Windi-Fikriyansyah/labourlink/internal/session"
	"github.com/Windi-Fikriyansyah/labourlink/internal/upload"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.NewForEnvironment(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	gdb, err := db.Connect(cfg.DBDSN, log)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal("migrate database", zap.Error(err))
	}

	rdb := session.NewRedis(session.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = rdb.Ping(ctx).Err()
	cancel()
	if err != nil {
		log.Fatal("connect redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	log.Info("redis connected", zap.String("addr", cfg.RedisAddr))

	sessions := &handlers.Sessions{
		Signer:  session.NewSigner(cfg.SessionSecret, time.Duration(cfg.SessionTTLMin)*time.Minute),
		Revoker: session.NewRedisRevoker(rdb),
		Cookie:  cfg.SessionCookie,
		Secure:  !cfg.IsDevelopment(),
		Log:     log,
	}

	var google *handlers.GoogleOAuthHandler
	if cfg.GoogleEnabled() {
		google = handlers.NewGoogleOAuthHandler(gdb, sessions, log,
			cfg.GoogleClientID, cfg.GoogleSecret, cfg.GoogleRedirect)
	}

	app := handlers.NewApp(handlers.Options{
		DB:          gdb,
		Log:         log,
		Sessions:    sessions,
		Uploads:     upload.NewStore(cfg.UploadDir, int64(cfg.UploadMaxMB)<<20),
		Google:      google,
		Development: cfg.IsDevelopment(),
	})

	log.Info("server starting", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
