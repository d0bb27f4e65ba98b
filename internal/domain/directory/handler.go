package directory

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
	own := api.Group("", auth.RequireRole(identity.RoleDoctor))
	own.POST("/doctor/profile", h.UpsertProfile)
	own.GET("/doctor/profile", h.GetOwnProfile)

	// Search and profile lookup are public; the search filter may arrive
	// as query parameters or as a JSON body.
	api.GET("/doctor/search", h.Search)
	api.POST("/doctor/search", h.Search)
	api.GET("/doctor/:id", h.GetProfile)
}

func (h *Handler) UpsertProfile(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	if userID == "" {
		return apperr.Authentication("authentication required")
	}
	role := auth.RoleFromContext(c.Request().Context())

	var in ProfileInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	p, err := h.svc.Upsert(c.Request().Context(), userID, role, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetOwnProfile(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	if userID == "" {
		return apperr.Authentication("authentication required")
	}
	p, err := h.svc.GetOwn(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetProfile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation("invalid profile id")
	}
	p, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Search(c echo.Context) error {
	f := SearchFilter{
		Specialty: c.QueryParam("specialty"),
		City:      c.QueryParam("city"),
		State:     c.QueryParam("state"),
		Name:      c.QueryParam("name"),
	}
	if c.Request().Method == http.MethodPost {
		var body SearchFilter
		if err := c.Bind(&body); err != nil {
			return apperr.Validation("invalid request body")
		}
		if body != (SearchFilter{}) {
			f = body
		}
	}

	p := pagination.FromContext(c)
	profiles, total, err := h.svc.Search(c.Request().Context(), f, p.Limit, p.Offset)
	if err != nil {
		return err
	}
	if profiles == nil {
		profiles = []*DoctorProfile{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(profiles, total, p.Limit, p.Offset))
}
