package echo

import (
	"errors"
	"net/http"
	"strconv"

	app "github.com/fairwaygolf/member-import/internal/application/member"
	"github.com/labstack/echo/v4"
)

type ImportHandler struct {
	runImport app.ImportMembers
	preview   app.PreviewImport
}

type runImportRequest struct {
	SkipExisting    bool   `json:"skip_existing"`
	UpdateExisting  bool   `json:"update_existing"`
	ForceJuniorType bool   `json:"force_junior_type"`
	DefaultStatus   string `json:"default_status"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func NewImportHandler(runImport app.ImportMembers, preview app.PreviewImport) *ImportHandler {
	return &ImportHandler{runImport: runImport, preview: preview}
}

func (h *ImportHandler) RunImport(c echo.Context) error {
	var req runImportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "invalid request body",
		}})
	}

	out, err := h.runImport.Execute(c.Request().Context(), app.ImportMembersInput{
		SkipExisting:    req.SkipExisting,
		UpdateExisting:  req.UpdateExisting,
		ForceJuniorType: req.ForceJuniorType,
		DefaultStatus:   req.DefaultStatus,
	})
	if err != nil {
		if errors.Is(err, app.ErrConflictingImportOptions) {
			return c.JSON(http.StatusUnprocessableEntity, apiResponse{Error: &errorBody{
				Code:    "conflicting_options",
				Message: "skip_existing and update_existing are mutually exclusive",
			}})
		}
		if errors.Is(err, app.ErrInvalidDefaultStatus) {
			return c.JSON(http.StatusUnprocessableEntity, apiResponse{Error: &errorBody{
				Code:    "invalid_default_status",
				Message: "default_status must be one of active, pending, suspended, expired",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "import run failed",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) PreviewImport(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_limit",
				Message: "limit must be an integer",
			}})
		}
		limit = parsed
	}

	out, err := h.preview.Execute(c.Request().Context(), app.PreviewImportInput{Limit: limit})
	if err != nil {
		if errors.Is(err, app.ErrInvalidPreviewLimit) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_limit",
				Message: "limit is out of range",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to preview import",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
