package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// FieldError describes one rejected request parameter.
type FieldError struct {
	Code    string                 `json:"code"`
	Field   string                 `json:"field,omitempty"`
	Message string                 `json:"message"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

func writeResponse(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Response{
		Status:  status,
		Message: http.StatusText(status),
		Data:    data,
	})
}

// SuccessResponse writes data with status 200.
func SuccessResponse(c echo.Context, data interface{}) error {
	return writeResponse(c, http.StatusOK, data)
}

// BadRequestResponse writes the rejected parameters with status 400.
func BadRequestResponse(c echo.Context, errs []FieldError) error {
	return writeResponse(c, http.StatusBadRequest, errs)
}

// InternalServerErrorResponse writes a generic 500 without internal detail.
func InternalServerErrorResponse(c echo.Context) error {
	return writeResponse(c, http.StatusInternalServerError, "Something went wrong")
}
