package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/locvowork/empdept/internal/logger"
)

// Response is the JSON envelope of every API reply.
type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func responseSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Message: message, Data: data})
}

func responseError(c echo.Context, status int, message string, err error) error {
	logger.ErrorLogErr(c.Request().Context(), message, err)
	return c.JSON(status, Response{Message: message, Error: err.Error()})
}
