package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crisis-support-service/internal/api/dto"
	"github.com/spec-kit/crisis-support-service/internal/auth"
	"github.com/spec-kit/crisis-support-service/internal/domain"
	"github.com/spec-kit/crisis-support-service/internal/service"
)

// PersonalizationHandler exposes sensory profile endpoints.
type PersonalizationHandler struct {
	personalization *service.PersonalizationService
}

// NewPersonalizationHandler constructs handler.
func NewPersonalizationHandler(personalizationService *service.PersonalizationService) *PersonalizationHandler {
	return &PersonalizationHandler{personalization: personalizationService}
}

// Get handles GET /children/:id/sensory-profile.
func (h *PersonalizationHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	profile, err := h.personalization.GetProfile(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sensoryProfileResponse(*profile)})
}

// Update handles PUT /children/:id/sensory-profile.
func (h *PersonalizationHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	var req dto.UpdateSensoryProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	input := service.SensoryInput{
		Palette:      req.Palette,
		Icons:        req.Icons,
		Sounds:       req.Sounds,
		Animations:   req.Animations,
		HighContrast: req.HighContrast,
	}
	if req.FontSize != nil {
		fontSize, err := domain.ParseFontSize(*req.FontSize)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		input.FontSize = &fontSize
	}

	profile, err := h.personalization.UpdateProfile(c.Context(), principal.User, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sensoryProfileResponse(*profile)})
}

func sensoryProfileResponse(profile domain.SensoryProfile) dto.SensoryProfileResponse {
	return dto.SensoryProfileResponse{
		ChildID:      profile.ChildID,
		Palette:      profile.Palette,
		FontSize:     string(profile.FontSize),
		Icons:        profile.Icons,
		Sounds:       profile.Sounds,
		Animations:   profile.Animations,
		HighContrast: profile.HighContrast,
	}
}
