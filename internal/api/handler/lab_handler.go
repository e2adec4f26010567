package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arclab/arclab-api/internal/core/domain"
	"github.com/arclab/arclab-api/internal/core/ports"
)

// LabHandler handles HTTP requests for lab operations.
type LabHandler struct {
	service ports.LabService
}

func NewLabHandler(service ports.LabService) *LabHandler {
	return &LabHandler{service: service}
}

type createLabRequest struct {
	Name string `json:"name" validate:"required"`
}

type labResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type listLabsResponse struct {
	Data []labResponse `json:"data"`
}

func toLabResponse(l *domain.Lab) labResponse {
	return labResponse{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt}
}

// Create handles POST /arc/create.
//
// @Summary      Create a lab
// @Tags         labs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLabRequest  true  "Lab name"
// @Success      201   {object}  labResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /arc/create [post]
func (h *LabHandler) Create(c echo.Context) error {
	var req createLabRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	lab, err := h.service.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toLabResponse(lab))
}

// List handles GET /arc/get.
//
// @Summary      List the caller's labs
// @Tags         labs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listLabsResponse
// @Failure      401  {object}  errorResponse
// @Router       /arc/get [get]
func (h *LabHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	labs, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	data := make([]labResponse, 0, len(labs))
	for i := range labs {
		data = append(data, toLabResponse(&labs[i]))
	}
	return c.JSON(http.StatusOK, listLabsResponse{Data: data})
}

// Delete handles DELETE /arc/delete/:labId.
//
// @Summary      Delete a lab
// @Tags         labs
// @Produce      json
// @Security     BearerAuth
// @Param        labId  path      string  true  "Lab id"
// @Success      200    {object}  statusResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /arc/delete/{labId} [delete]
func (h *LabHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("labId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "deleted"})
}
