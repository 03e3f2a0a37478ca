package server

import (
	"thalanet/internal/models"
	"thalanet/internal/query"
	"thalanet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitRequest handles POST /api/requests
func (s *Server) SubmitRequest(c *fiber.Ctx) error {
	ctx := c.Context()

	var in service.CreateRequestInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req, err := s.requestService.Submit(ctx, in)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

// GetRequests handles GET /api/requests?urgency=&blood_type=&location=
func (s *Server) GetRequests(c *fiber.Ctx) error {
	ctx := c.Context()

	filter := query.FilterSpec{
		Urgency:   c.Query("urgency"),
		BloodType: c.Query("blood_type", c.Query("bloodType")),
		Location:  c.Query("location"),
	}

	requests, err := s.requestService.List(ctx, filter)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(requests)
}

// GetRequest handles GET /api/requests/:id
func (s *Server) GetRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	req, err := s.requestService.Get(ctx, id)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(req)
}

// FulfillRequest handles POST /api/requests/:id/fulfill
func (s *Server) FulfillRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	req, err := s.requestService.MarkFulfilled(ctx, id)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(req)
}

// SweepRequests handles POST /api/requests/sweep
func (s *Server) SweepRequests(c *fiber.Ctx) error {
	ctx := c.Context()

	count, err := s.requestService.SweepExpired(ctx)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{"swept": count})
}
