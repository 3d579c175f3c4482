package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	appanalytics "github.com/jhoicas/megastore-web/internal/application/analytics"
	"github.com/jhoicas/megastore-web/internal/application/auth"
	"github.com/jhoicas/megastore-web/internal/application/session"
	"github.com/jhoicas/megastore-web/internal/application/usecase"
	"github.com/jhoicas/megastore-web/internal/infrastructure/api"
	infrapdf "github.com/jhoicas/megastore-web/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/megastore-web/internal/interfaces/http"
	"github.com/jhoicas/megastore-web/pkg/config"
	"github.com/jhoicas/megastore-web/pkg/logger"
	"github.com/jhoicas/megastore-web/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando aplicación")

	if cfg.Session.Secret == "" {
		log.Warn().Msg("SESSION_SECRET vacío: se usa una clave aleatoria y las sesiones no sobreviven a un reinicio")
	}
	codec, err := session.NewCodec(cfg.Session.Secret)
	if err != nil {
		log.Fatal().Err(err).Msg("clave de sesión")
	}
	sessions := session.NewManager(codec, cfg.Session.TTL())

	client := api.NewClient(cfg.API, session.TokenFromContext, log)
	productRepo := api.NewProductGateway(client)
	variantRepo := api.NewVariantGateway(client)
	categoryRepo := api.NewCategoryGateway(client)
	subcategoryRepo := api.NewSubcategoryGateway(client)
	brandRepo := api.NewBrandGateway(client)
	cartRepo := api.NewCartGateway(client)
	saleRepo := api.NewSaleGateway(client)
	userRepo := api.NewUserGateway(client)
	docs := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	guard := httpRouter.NewSessionGuard(sessions, cfg.Session.CookieSecure, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        web.Engine(cfg.App.Env == "development"),
		ErrorHandler: httpRouter.ErrorHandler(log),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   web.Static(),
		MaxAge: 3600,
	}))

	// Swagger UI de los view models JSON: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Megastore view models",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Guard:      guard,
		AuthUC:     auth.NewAuthUseCase(api.NewAuthGateway(client), sessions),
		CatalogUC:  usecase.NewCatalogUseCase(productRepo, variantRepo, categoryRepo, subcategoryRepo, brandRepo, cartRepo),
		CartUC:     usecase.NewCartUseCase(cartRepo),
		CheckoutUC: usecase.NewCheckoutUseCase(cartRepo, saleRepo, docs),
		ProfileUC:  usecase.NewProfileUseCase(userRepo, saleRepo),
		ProductsUC: usecase.NewProductAdminUseCase(productRepo, variantRepo, categoryRepo, subcategoryRepo, brandRepo),
		TaxonomyUC: usecase.NewTaxonomyUseCase(categoryRepo, subcategoryRepo, brandRepo),
		UsersUC:    usecase.NewUserUseCase(userRepo),
		SalesUC:    usecase.NewSalesUseCase(saleRepo),
		StatsUC:    appanalytics.NewDashboardUseCase(saleRepo, docs),
		DebounceMS: cfg.Store.SearchDebounceMS,
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
