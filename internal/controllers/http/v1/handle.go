package http

import (
	"github.com/gofiber/fiber/v2"

	"weather-explorer/internal/services/weather"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"start_time must be less than end_time"`
}

// HealthResponse is the body of /api/health.
type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message" example:"Weather API is running"`
}

// GetWeather godoc
// @Summary Get a weather series
// @Description Returns the samples of one metric at the grid point nearest to lat/lon within [start_time, end_time].
// @Description Temperature is in °C, wind values are "u,v" component pairs in m/s, precipitation is the 6h accumulation in mm.
// @Tags Weather
// @Produce json
// @Param start_time query integer true "Start of the window, epoch seconds" example(1748736000)
// @Param end_time query integer true "End of the window, epoch seconds" example(1749686400)
// @Param lat query number true "Latitude (-90 to 90)" minimum(-90) maximum(90) example(39.90)
// @Param lon query number true "Longitude (-180 to 180)" minimum(-180) maximum(180) example(116.40)
// @Param type query string true "Metric" Enums(temperature, wind_speed, precipitation)
// @Success 200 {object} models.WeatherResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters or no data in range"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/weather [get]
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	q, err := weather.ParseQuery(
		c.Query("start_time"),
		c.Query("end_time"),
		c.Query("lat"),
		c.Query("lon"),
		c.Query("type"),
	)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	resp, err := r.weather.FetchWeather(c.UserContext(), q)
	if err != nil {
		if weather.IsClientError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}

		r.l.Error(err, map[string]any{
			"lat":  q.Latitude,
			"lon":  q.Longitude,
			"type": q.Type,
		})

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal server error",
		})
	}

	return c.JSON(resp)
}

// Health godoc
// @Summary Health check
// @Tags Weather
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (r *routes) handleHealth(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "healthy",
		Message: "Weather API is running",
	})
}
