package echo

import (
	"errors"
	"net/http"
	"strconv"

	app "github.com/fairwaygolf/member-import/internal/application/member"
	"github.com/labstack/echo/v4"
)

type MemberHandler struct {
	useCase app.GetMemberByUserID
}

func NewMemberHandler(useCase app.GetMemberByUserID) *MemberHandler {
	return &MemberHandler{useCase: useCase}
}

func (h *MemberHandler) GetMemberByUserID(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "invalid_user_id",
			Message: "user_id must be a positive integer",
		}})
	}

	out, err := h.useCase.Execute(c.Request().Context(), app.GetMemberByUserIDInput{
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidMemberUserID) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_user_id",
				Message: "user_id must be a positive integer",
			}})
		}
		if errors.Is(err, app.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "member not found",
			}})
		}

		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to get member",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
