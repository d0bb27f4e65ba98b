package appointment

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/docsearch/docsearch/internal/domain/identity"
	"github.com/docsearch/docsearch/internal/platform/apperr"
	"github.com/docsearch/docsearch/internal/platform/auth"
	"github.com/docsearch/docsearch/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	patient := api.Group("", auth.RequireRole(identity.RolePatient))
	patient.POST("/appointment", h.Book)
	patient.PUT("/appointment/:id/cancel", h.Cancel)

	api.GET("/appointment", h.List)
}

func (h *Handler) Book(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	if userID == "" {
		return apperr.Authentication("authentication required")
	}

	var in BookInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	a, err := h.svc.Book(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Cancel(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	if userID == "" {
		return apperr.Authentication("authentication required")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation("invalid appointment id")
	}
	a, err := h.svc.Cancel(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	if userID == "" {
		return apperr.Authentication("authentication required")
	}
	role := auth.RoleFromContext(c.Request().Context())

	p := pagination.FromContext(c)
	appts, total, err := h.svc.ListForUser(c.Request().Context(), userID, role, p.Limit, p.Offset)
	if err != nil {
		return err
	}
	if appts == nil {
		appts = []*Appointment{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(appts, total, p.Limit, p.Offset))
}
