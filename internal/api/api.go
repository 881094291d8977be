package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"github.com/caeptox/labops/internal/api/controller"
	"github.com/caeptox/labops/internal/pkg/logger"
	"github.com/caeptox/labops/internal/service/dashboard"
)

type APIService struct {
	router           *echo.Echo
	dashboardService *dashboard.Service
}

// Serve blocks until the listener fails or Shutdown closes the server.
// ErrServerClosed is the normal stop path and must not kill the process
// while Shutdown is still draining requests.
func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
	logger.Infof(context.Background(), "http server stopped")
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(dashboardService *dashboard.Service) (*APIService, error) {
	svc := &APIService{router: echo.New(), dashboardService: dashboardService}

	svc.router.HideBanner = true
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = NewSonicSerializer()
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return random.String(16) },
	}))
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(svc.dashboardService)

	dash := api.Group("/dashboard")
	dash.GET("/summary", cntrl.GetSummary)
	dash.GET("/years", cntrl.GetYears)

	volumes := api.Group("/volumes")
	volumes.GET("/monthly", cntrl.GetMonthlyVolumes)
	volumes.GET("/weekly", cntrl.GetWeeklyVolumes)
	volumes.GET("/variations", cntrl.GetMonthlyVariations)

	rankings := api.Group("/rankings")
	rankings.GET("/representatives", cntrl.GetRepresentativeRanking)
	rankings.GET("/laboratories", cntrl.GetLaboratoryRanking)

	metrics := api.Group("/metrics")
	metrics.GET("/representatives", cntrl.GetRepresentativeMetrics)
	metrics.GET("/categories", cntrl.GetCategorySummary)
	metrics.GET("/states", cntrl.GetStateMetrics)
	metrics.GET("/cities", cntrl.GetCityMetrics)

	alerts := api.Group("/alerts")
	alerts.GET("/inactivity", cntrl.GetInactivityAlert)
	alerts.GET("/new-accreditations", cntrl.GetNewAccreditations)

	reps := api.Group("/representatives")
	reps.GET("/:name/overview", cntrl.GetRepresentativeOverview)

	admin := api.Group("/admin", svc.AdminMiddleware)
	admin.POST("/reload", cntrl.ReloadDataset)

	return svc, nil
}
