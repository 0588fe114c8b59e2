package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yazeedhani/Gytshop-API/config"
	"github.com/yazeedhani/Gytshop-API/internal/controller"
	"github.com/yazeedhani/Gytshop-API/internal/infrastructure/message-queue/kafka"
	paymentgateway "github.com/yazeedhani/Gytshop-API/internal/infrastructure/payment-gateway"
	"github.com/yazeedhani/Gytshop-API/internal/infrastructure/tracing"
	"github.com/yazeedhani/Gytshop-API/internal/middleware"
	"github.com/yazeedhani/Gytshop-API/internal/repository"
	"github.com/yazeedhani/Gytshop-API/internal/service"
	"github.com/yazeedhani/Gytshop-API/pkg/response"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	DB     *mongo.Database
	Config *config.Config
	Server *echo.Echo
}

func (app *App) Start() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	e := echo.New()
	app.Server = e

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracing")
	}

	defer func() {
		if traceProvider == nil {
			return
		}
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown tracing")
		}
	}()

	if traceProvider != nil {
		tracer := traceProvider.Tracer("gytshop-api")

		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				req := c.Request()
				c.SetRequest(req.WithContext(ctx))

				return next(c)
			}
		})
	}

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	if app.Config.ClientOrigin != "" {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: []string{app.Config.ClientOrigin},
		}))
	}

	g := e.Group("/api/v1")
	g.Use(middleware.Logger)

	isLoggedIn := middleware.RequireToken(app.Config.JWTSecret)

	kafkaProducer, err := kafka.CreateKafkaProducer(app.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Kafka broker")
	}
	defer kafkaProducer.Close()

	gateway := paymentgateway.CreateMidtransGateway(app.Config)

	repo := repository.CreateNewMongoDBRepository(app.DB)
	productSvc := service.CreateProductService(repo, kafkaProducer)
	orderSvc := service.CreateOrderService(repo, kafkaProducer)
	paymentSvc := service.CreatePaymentService(repo, orderSvc, gateway, *app.Config)

	controller.CreateProductController(g, productSvc, isLoggedIn)
	controller.CreateOrderController(g, orderSvc, isLoggedIn)
	controller.CreatePaymentController(g, paymentSvc, isLoggedIn)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(
			time.Minute,
		),
		gocron.NewTask(
			paymentSvc.ExpireStalePayments,
		),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule payment expiry job")
	}

	scheduler.Start()
	defer scheduler.Shutdown()

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)))
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.Server.Shutdown(ctx)
}
