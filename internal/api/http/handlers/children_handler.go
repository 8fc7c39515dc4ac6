package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crisis-support-service/internal/api/dto"
	"github.com/spec-kit/crisis-support-service/internal/auth"
	"github.com/spec-kit/crisis-support-service/internal/domain"
	"github.com/spec-kit/crisis-support-service/internal/service"
)

// ChildrenHandler exposes child profile endpoints.
type ChildrenHandler struct {
	children *service.ChildService
}

// NewChildrenHandler constructs handler.
func NewChildrenHandler(childService *service.ChildService) *ChildrenHandler {
	return &ChildrenHandler{children: childService}
}

// Create handles POST /children.
func (h *ChildrenHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	var req dto.CreateChildRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	severity, err := domain.ParseSeverity(req.Severity)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	supportLevel, err := domain.ParseSupportLevel(req.SupportLevel)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	child, err := h.children.CreateChild(c.Context(), principal.User, service.ChildCreateInput{
		BirthDate:    req.BirthDate,
		Severity:     severity,
		SupportLevel: supportLevel,
		SchoolID:     req.SchoolID,
		GuardianIDs:  req.GuardianIDs,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": childResponse(*child)})
}

// Get handles GET /children/:id.
func (h *ChildrenHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	child, err := h.children.GetChild(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": childResponse(*child)})
}

// Update handles PATCH /children/:id.
func (h *ChildrenHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	var req dto.UpdateChildRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	input := service.ChildUpdateInput{SchoolID: req.SchoolID, GuardianIDs: req.GuardianIDs}
	if req.Severity != nil {
		severity, err := domain.ParseSeverity(*req.Severity)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		input.Severity = &severity
	}
	if req.SupportLevel != nil {
		supportLevel, err := domain.ParseSupportLevel(*req.SupportLevel)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		input.SupportLevel = &supportLevel
	}

	child, err := h.children.UpdateChild(c.Context(), principal.User, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": childResponse(*child)})
}

// Delete handles DELETE /children/:id.
func (h *ChildrenHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	if err := h.children.DeleteChild(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListBySchool handles GET /schools/:schoolId/children.
func (h *ChildrenHandler) ListBySchool(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	children, err := h.children.ListBySchool(c.Context(), principal.User, c.Params("schoolId"))
	if err != nil {
		return err
	}
	items := make([]dto.ChildResponse, 0, len(children))
	for _, child := range children {
		items = append(items, childResponse(child))
	}
	return c.JSON(fiber.Map{"data": items})
}

func childResponse(child domain.Child) dto.ChildResponse {
	return dto.ChildResponse{
		ID:           child.ID,
		BirthDate:    child.BirthDate.Date().Format("2006-01-02"),
		Age:          child.BirthDate.Age(),
		Severity:     string(child.Severity),
		SupportLevel: string(child.SupportLevel),
		SchoolID:     child.SchoolID,
		GuardianIDs:  child.GuardianIDs,
	}
}
