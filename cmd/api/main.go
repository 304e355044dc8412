package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/amber-studios/workspace-api/internal/application/auth"
	"github.com/amber-studios/workspace-api/internal/application/usecase"
	"github.com/amber-studios/workspace-api/internal/infrastructure/kvstore"
	infrapdf "github.com/amber-studios/workspace-api/internal/infrastructure/pdf"
	"github.com/amber-studios/workspace-api/internal/infrastructure/postgres"
	"github.com/amber-studios/workspace-api/internal/infrastructure/schedulefs"
	"github.com/amber-studios/workspace-api/internal/infrastructure/storage"
	httpRouter "github.com/amber-studios/workspace-api/internal/interfaces/http"
	"github.com/amber-studios/workspace-api/pkg/config"
	"github.com/amber-studios/workspace-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Almacén clave-valor según driver.
	var kv kvstore.Store
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store := postgres.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("crear esquema")
		}
		kv = store
	case "memory":
		kv = kvstore.NewMemStore()
	default:
		fileStore, err := kvstore.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Storage.Dir).Msg("abrir almacén de ficheros")
		}
		kv = fileStore
	}

	accountRepo := storage.NewAccountRepository(kv)
	updateRepo := storage.NewUpdateRepository(kv)
	sessionRepo := storage.NewSessionRepository(kv)
	lastReadRepo := storage.NewLastReadRepository(kv)

	accountUC := usecase.NewAccountUseCase(accountRepo)
	if created, err := accountUC.EnsureRootAdmin(); err != nil {
		log.Fatal().Err(err).Msg("sembrar administrador raíz")
	} else if created {
		log.Warn().Msg("administrador raíz creado con la contraseña por defecto; cámbiela")
	}
	if err := accountUC.MigrateAccountTypes(); err != nil {
		log.Fatal().Err(err).Msg("migrar tipos de cuenta")
	}

	authUC := auth.NewAuthUseCase(accountRepo, sessionRepo, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.Session.TTLDays) * 24 * time.Hour,
	})

	updateUC := usecase.NewUpdateUseCase(updateRepo, lastReadRepo)
	matrixUC := usecase.NewMatrixUseCase(accountRepo, updateUC)
	exportUC := usecase.NewExportUseCase(updateUC, infrapdf.NewMarotoPDFGenerator())
	scheduleUC := usecase.NewScheduleUseCase(accountRepo, schedulefs.NewSource(cfg.Schedule.Dir, cfg.Schedule.Encoding))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		AccountUC:  accountUC,
		UpdateUC:   updateUC,
		MatrixUC:   matrixUC,
		ExportUC:   exportUC,
		ScheduleUC: scheduleUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
