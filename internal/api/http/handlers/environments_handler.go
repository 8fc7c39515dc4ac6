package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crisis-support-service/internal/api/dto"
	"github.com/spec-kit/crisis-support-service/internal/auth"
	"github.com/spec-kit/crisis-support-service/internal/domain"
	"github.com/spec-kit/crisis-support-service/internal/service"
)

// EnvironmentsHandler exposes school environment endpoints.
type EnvironmentsHandler struct {
	environments *service.EnvironmentService
}

// NewEnvironmentsHandler constructs handler.
func NewEnvironmentsHandler(environmentService *service.EnvironmentService) *EnvironmentsHandler {
	return &EnvironmentsHandler{environments: environmentService}
}

// Create handles POST /environments.
func (h *EnvironmentsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	var req dto.CreateEnvironmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	env, err := h.environments.CreateEnvironment(c.Context(), principal.User, req.SchoolID, req.Name, req.Description, req.MediaURLs)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": environmentResponse(*env)})
}

// Update handles PATCH /environments/:envId.
func (h *EnvironmentsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	var req dto.UpdateEnvironmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	env, err := h.environments.UpdateEnvironment(c.Context(), principal.User, c.Params("envId"), service.EnvironmentUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		MediaURLs:   req.MediaURLs,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": environmentResponse(*env)})
}

// ListBySchool handles GET /schools/:schoolId/environments.
func (h *EnvironmentsHandler) ListBySchool(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	envs, err := h.environments.ListEnvironments(c.Context(), principal.User, c.Params("schoolId"))
	if err != nil {
		return err
	}
	items := make([]dto.EnvironmentResponse, 0, len(envs))
	for _, env := range envs {
		items = append(items, environmentResponse(env))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Delete handles DELETE /environments/:envId.
func (h *EnvironmentsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	if err := h.environments.DeleteEnvironment(c.Context(), principal.User, c.Params("envId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func environmentResponse(env domain.SchoolEnvironment) dto.EnvironmentResponse {
	return dto.EnvironmentResponse{
		ID:          env.ID,
		SchoolID:    env.SchoolID,
		Name:        env.Name,
		Description: env.Description,
		MediaURLs:   env.MediaURLs,
	}
}
