package http

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"weather-explorer/internal/carousel"
	"weather-explorer/internal/chart"
	"weather-explorer/internal/models"
	"weather-explorer/internal/services/explorer"
)

type SessionCreatedResponse struct {
	ID string `json:"id" example:"0b6f8a3e-4f0c-4b8e-9a57-3f1f0c2d9a10"`
}

// RangeRequest carries YYYY-MM-DD bounds; an empty bound is left unset.
type RangeRequest struct {
	From string `json:"from" example:"2025-06-01"`
	To   string `json:"to" example:"2025-06-11"`
}

// CreateSession godoc
// @Summary Create an explorer session
// @Tags Explorer
// @Produce json
// @Success 201 {object} SessionCreatedResponse
// @Router /explorer/sessions [post]
func (r *routes) handleCreateSession(c *fiber.Ctx) error {
	s := r.sessions.Create()
	return c.Status(fiber.StatusCreated).JSON(SessionCreatedResponse{ID: s.ID()})
}

// GetSession godoc
// @Summary Get the popup view of a session
// @Tags Explorer
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} explorer.View
// @Failure 404 {object} ErrorResponse
// @Router /explorer/sessions/{id} [get]
func (r *routes) handleGetSession(c *fiber.Ctx) error {
	s, err := r.sessions.Get(c.Params("id"))
	if err != nil {
		return r.explorerError(c, err)
	}
	return c.JSON(s.View())
}

// DeleteSession godoc
// @Summary Destroy a session
// @Tags Explorer
// @Param id path string true "Session id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /explorer/sessions/{id} [delete]
func (r *routes) handleDeleteSession(c *fiber.Ctx) error {
	if err := r.sessions.Delete(c.Params("id")); err != nil {
		return r.explorerError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Select godoc
// @Summary Select a map location and open the popup
// @Tags Explorer
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param location body models.SelectedLocation true "Clicked location"
// @Success 200 {object} explorer.View
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /explorer/sessions/{id}/selection [put]
func (r *routes) handleSelect(c *fiber.Ctx) error {
	s, err := r.sessions.Get(c.Params("id"))
	if err != nil {
		return r.explorerError(c, err)
	}

	var loc models.SelectedLocation
	if err := c.BodyParser(&loc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}
	if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid coordinates. Latitude must be [-90, 90], longitude must be [-180, 180]",
		})
	}

	return c.JSON(s.Select(loc))
}

// CloseSelection godoc
// @Summary Close the popup
// @Tags Explorer
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} explorer.View
// @Failure 404 {object} ErrorResponse
// @Router /explorer/sessions/{id}/selection [delete]
func (r *routes) handleCloseSelection(c *fiber.Ctx) error {
	s, err := r.sessions.Get(c.Params("id"))
	if err != nil {
		return r.explorerError(c, err)
	}
	return c.JSON(s.Close())
}

// SetRange godoc
// @Summary Set the date range
// @Tags Explorer
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param range body RangeRequest true "Inclusive date range"
// @Success 200 {object} explorer.View
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /explorer/sessions/{id}/range [put]
func (r *routes) handleSetRange(c *fiber.Ctx) error {
	s, err := r.sessions.Get(c.Params("id"))
	if err != nil {
		return r.explorerError(c, err)
	}

	var req RangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	dr, err := models.ParseDateRange(req.From, req.To)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	v, err := s.SetDateRange(dr)
	if err != nil {
		return r.explorerError(c, err)
	}
	return c.JSON(v)
}

// CarouselAction godoc
// @Summary Move, pause or resume the carousel
// @Tags Explorer
// @Produce json
// @Param id path string true "Session id"
// @Param action path string true "Action" Enums(next, prev, pause, resume)
// @Success 200 {object} carousel.State
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No location selected"
// @Router /explorer/sessions/{id}/carousel/{action} [post]
func (r *routes) handleCarouselAction(c *fiber.Ctx) error {
	s, err := r.sessions.Get(c.Params("id"))
	if err != nil {
		return r.explorerError(c, err)
	}

	var st carousel.State
	switch c.Params("action") {
	case "next":
		st, err = s.Next()
	case "prev":
		st, err = s.Prev()
	case "pause":
		st, err = s.Pause()
	case "resume":
		st, err = s.Resume()
	default:
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid action. Must be one of: next, prev, pause, resume",
		})
	}
	if err != nil {
		return r.explorerError(c, err)
	}
	return c.JSON(st)
}

// CarouselShow godoc
// @Summary Jump to a slide
// @Tags Explorer
// @Produce json
// @Param id path string true "Session id"
// @Param index path integer true "Slide index"
// @Success 200 {object} carousel.State
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No location selected"
// @Router /explorer/sessions/{id}/carousel/{index} [put]
func (r *routes) handleCarouselShow(c *fiber.Ctx) error {
	s, err := r.sessions.Get(c.Params("id"))
	if err != nil {
		return r.explorerError(c, err)
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Slide index must be an integer"})
	}

	st, err := s.Show(index)
	if err != nil {
		return r.explorerError(c, err)
	}
	return c.JSON(st)
}

// SlideChart godoc
// @Summary Render a slide as SVG
// @Tags Explorer
// @Produce image/svg+xml
// @Param id path string true "Session id"
// @Param index path integer true "Slide index"
// @Param width query integer false "Width in px" default(800)
// @Param height query integer false "Height in px" default(400)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No location selected"
// @Router /explorer/sessions/{id}/slides/{index}/chart.svg [get]
func (r *routes) handleSlideChart(c *fiber.Ctx) error {
	s, err := r.sessions.Get(c.Params("id"))
	if err != nil {
		return r.explorerError(c, err)
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Slide index must be an integer"})
	}

	slide, err := s.Slide(index)
	if err != nil {
		return r.explorerError(c, err)
	}

	opts := chart.Options{
		Width:  c.QueryInt("width"),
		Height: c.QueryInt("height"),
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, slide.Series, opts); err != nil {
		return err
	}

	c.Type("svg")
	return c.Send(buf.Bytes())
}

func (r *routes) explorerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, explorer.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, explorer.ErrNoSelection):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, explorer.ErrInvalidDateRange), errors.Is(err, carousel.ErrSlideOutOfRange):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	r.l.Error(err, map[string]any{"path": c.Path()})
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Internal server error"})
}
