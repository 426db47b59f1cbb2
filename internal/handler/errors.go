package handler

import (
	"errors"
	"net/http"

	"choosecare-bff/internal/action"
	"choosecare-bff/internal/forms"
	"choosecare-bff/internal/screen"
	"choosecare-bff/internal/service"
	"choosecare-bff/internal/upstream"
	"choosecare-bff/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the response envelope. data is
// what the screen should keep rendering (an empty list, the current state).
func respondError(c *gin.Context, err error, data any) {
	var (
		verr *forms.ValidationError
		merr *upstream.MutationError
		aerr *action.UnknownActionError
	)
	switch {
	case errors.As(err, &verr):
		utils.ErrorResponseWithData(c, http.StatusBadRequest, verr.Error(), data)
	case errors.Is(err, screen.ErrSubmitting):
		utils.ErrorResponseWithData(c, http.StatusConflict, "A submission is already in progress", data)
	case errors.Is(err, upstream.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Your session has expired, please log in again")
	case errors.Is(err, upstream.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrUnknownRole):
		utils.ErrorResponse(c, http.StatusForbidden, "This account has no screen in the app")
	case errors.As(err, &merr):
		utils.ErrorResponseWithData(c, http.StatusBadGateway, merr.Message, data)
	case errors.Is(err, upstream.ErrFetchFailed):
		utils.ErrorResponseWithData(c, http.StatusBadGateway, "Failed to load data, please try again", data)
	case errors.Is(err, service.ErrUnknownScreen):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.As(err, &aerr):
		utils.ErrorResponse(c, http.StatusBadRequest, aerr.Error())
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "Something went wrong")
	}
}
