package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "weather-explorer/docs"
	"weather-explorer/internal/services/explorer"
	"weather-explorer/internal/services/weather"
	"weather-explorer/pkg/logger"
)

type routes struct {
	weather  *weather.WeatherService
	sessions *explorer.Store
	l        *logger.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService *weather.WeatherService,
	sessions *explorer.Store,
	l *logger.Logger,
) {
	r := &routes{
		weather:  weatherService,
		sessions: sessions,
		l:        l,
	}

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	api := app.Group("/api")
	api.Get("/weather", r.handleWeatherCall)
	api.Get("/health", r.handleHealth)

	s := app.Group("/explorer/sessions")
	s.Post("/", r.handleCreateSession)
	s.Get("/:id", r.handleGetSession)
	s.Delete("/:id", r.handleDeleteSession)
	s.Put("/:id/selection", r.handleSelect)
	s.Delete("/:id/selection", r.handleCloseSelection)
	s.Put("/:id/range", r.handleSetRange)
	s.Post("/:id/carousel/:action", r.handleCarouselAction)
	s.Put("/:id/carousel/:index", r.handleCarouselShow)
	s.Get("/:id/slides/:index/chart.svg", r.handleSlideChart)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Endpoint not found",
		})
	})
}
