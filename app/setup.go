package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/biosecret/todopages/config"
	"github.com/biosecret/todopages/database"
	"github.com/biosecret/todopages/handlers"
	"github.com/biosecret/todopages/middleware"
	"github.com/biosecret/todopages/notify"
	"github.com/biosecret/todopages/router"
	"github.com/biosecret/todopages/services"
	"github.com/biosecret/todopages/store"
)

const shutdownTimeout = 10 * time.Second

// Deps là các thành phần đã khởi tạo để dựng ứng dụng Fiber
type Deps struct {
	Store       *store.Store
	Services    *services.Services
	Hub         *notify.Hub
	Tokens      middleware.Tokens
	CORSOrigins string
	Log         zerolog.Logger
	// AccessLog nhận log truy cập của Fiber; nil thì tắt
	AccessLog io.Writer
}

// NewFiber tạo ứng dụng Fiber với middleware và route
func NewFiber(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "todopages",
		DisableStartupMessage: true,
	})

	if d.CORSOrigins == "" {
		d.CORSOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", // Các phương thức được phép
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Đính kèm middleware để xử lý lỗi và ghi log
	app.Use(recover.New())
	app.Use(middleware.RequestID)
	if d.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency} ${respHeader:X-Request-ID}\n",
			Output: d.AccessLog,
		}))
	}

	h := handlers.New(d.Services, d.Tokens, d.Hub, d.Store, d.Log)
	router.SetupRoutes(app, h, middleware.JWTMiddleware(d.Tokens))

	// Đính kèm Swagger
	config.AddSwaggerRoutes(app)

	return app
}

// SetupAndRunApp khởi động ứng dụng Fiber và chờ tín hiệu tắt
func SetupAndRunApp(cfg *config.Config, log zerolog.Logger, accessLog io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Kết nối database
	db, dialect, err := database.Open(ctx, database.Options{
		Driver:         cfg.Database.Driver,
		URL:            cfg.Database.URL,
		MaxConnections: cfg.Database.MaxConnections,
	}, log)
	if err != nil {
		return err
	}

	// Đảm bảo kết nối với cơ sở dữ liệu được đóng sau khi ứng dụng kết thúc
	defer database.Close(db, log)

	if err := database.Migrate(ctx, db, dialect); err != nil {
		return err
	}

	st := store.New(db, dialect)
	hub := notify.NewHub()
	sinks := []notify.Sink{hub}

	if cfg.MQTT.URL != "" {
		publisher, err := notify.ConnectMQTT(cfg.MQTT.URL, log)
		if err != nil {
			// MQTT không bắt buộc; server vẫn chạy với SSE
			log.Warn().Err(err).Msg("mqtt disabled")
		} else {
			defer publisher.Close()
			sinks = append(sinks, publisher)
		}
	}

	svc := services.New(st, services.Config{
		Notifier: notify.NewBroker(st, log, sinks...),
	})

	app := NewFiber(Deps{
		Store:    st,
		Services: svc,
		Hub:      hub,
		Tokens: middleware.Tokens{
			Secret:     []byte(cfg.Auth.JWTSecret),
			AccessTTL:  cfg.Auth.AccessTokenTTL,
			RefreshTTL: cfg.Auth.RefreshTokenTTL,
		},
		CORSOrigins: cfg.CORSOrigins,
		Log:         log,
		AccessLog:   accessLog,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		// Lắng nghe trên cổng chỉ định
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	}
}
