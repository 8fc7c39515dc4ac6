package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crisis-support-service/internal/api/dto"
	"github.com/spec-kit/crisis-support-service/internal/auth"
	"github.com/spec-kit/crisis-support-service/internal/domain"
	"github.com/spec-kit/crisis-support-service/internal/service"
)

// CrisesHandler exposes crisis, intervention and support endpoints.
type CrisesHandler struct {
	crises *service.CrisisService
}

// NewCrisesHandler constructs handler.
func NewCrisesHandler(crisisService *service.CrisisService) *CrisesHandler {
	return &CrisesHandler{crises: crisisService}
}

// RegisterCrisis handles POST /children/:id/crises.
func (h *CrisesHandler) RegisterCrisis(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	var req dto.RegisterCrisisRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	intensity, err := domain.ParseCrisisIntensity(req.Intensity)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	crisis, err := h.crises.RegisterCrisis(c.Context(), principal.User, c.Params("id"), service.CrisisInput{
		OccurredAt:  req.OccurredAt,
		Intensity:   intensity,
		Description: req.Description,
		Trigger:     req.Trigger,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": crisisResponse(*crisis)})
}

// RegisterIntervention handles POST /children/:id/interventions.
func (h *CrisesHandler) RegisterIntervention(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	var req dto.RegisterInterventionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	intervention, err := h.crises.RegisterIntervention(c.Context(), principal.User, c.Params("id"), service.InterventionInput{
		AppliedAt: req.AppliedAt,
		Strategy:  req.Strategy,
		AppliedBy: req.AppliedBy,
		Outcome:   req.Outcome,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": interventionResponse(*intervention)})
}

// MarkEfficacy handles PATCH /children/:id/crises/:crisisId/efficacy.
func (h *CrisesHandler) MarkEfficacy(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	var req dto.MarkEfficacyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.crises.MarkCrisisEfficacy(c.Context(), principal.User, c.Params("id"), c.Params("crisisId"), req.Effective); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"resolved": true}})
}

// RequestSupport handles POST /children/:id/support-requests.
func (h *CrisesHandler) RequestSupport(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	request, err := h.crises.RequestSupport(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": supportRequestResponse(*request)})
}

// UpdateSupportStatus handles PATCH /children/:id/support-requests/:requestId/status.
func (h *CrisesHandler) UpdateSupportStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	var req dto.UpdateSupportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	status, err := domain.ParseRequestStatus(req.Status)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.crises.UpdateSupportRequestStatus(c.Context(), principal.User, c.Params("id"), c.Params("requestId"), status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": string(status)}})
}

// History handles GET /children/:id/history.
func (h *CrisesHandler) History(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	history, err := h.crises.GetHistory(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}

	response := dto.ChildHistoryResponse{
		Child:           childResponse(history.Child),
		Crises:          make([]dto.CrisisResponse, 0, len(history.Crises)),
		SupportRequests: make([]dto.SupportRequestResponse, 0, len(history.SupportRequests)),
		Interventions:   make([]dto.InterventionResponse, 0, len(history.Interventions)),
	}
	for _, crisis := range history.Crises {
		response.Crises = append(response.Crises, crisisResponse(crisis))
	}
	for _, request := range history.SupportRequests {
		response.SupportRequests = append(response.SupportRequests, supportRequestResponse(request))
	}
	for _, intervention := range history.Interventions {
		response.Interventions = append(response.Interventions, interventionResponse(intervention))
	}
	return c.JSON(fiber.Map{"data": response})
}

func crisisResponse(crisis domain.CrisisRecord) dto.CrisisResponse {
	return dto.CrisisResponse{
		ID:          crisis.ID,
		OccurredAt:  crisis.OccurredAt,
		Intensity:   string(crisis.Intensity),
		Description: crisis.Description,
		Trigger:     crisis.Trigger,
		Efficacy:    crisis.Efficacy,
	}
}

func supportRequestResponse(request domain.SupportRequest) dto.SupportRequestResponse {
	return dto.SupportRequestResponse{
		ID:          request.ID,
		RequestedAt: request.RequestedAt,
		Status:      string(request.Status),
		Crisis:      crisisResponse(request.Crisis),
	}
}

func interventionResponse(intervention domain.Intervention) dto.InterventionResponse {
	return dto.InterventionResponse{
		ID:        intervention.ID,
		AppliedAt: intervention.AppliedAt,
		Strategy:  intervention.Strategy,
		AppliedBy: intervention.AppliedBy,
		Outcome:   intervention.Outcome,
	}
}
