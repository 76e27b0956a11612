package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/empdept/internal/service"
)

type ReportHandler struct {
	svc *service.EmployeeService
}

func NewReportHandler(svc *service.EmployeeService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) ListHandler(c echo.Context) error {
	return responseSuccess(c, http.StatusOK, "Reports listed successfully", h.svc.Catalog())
}

func (h *ReportHandler) RunHandler(c echo.Context) error {
	res, err := h.svc.Run(c.Request().Context(), c.Param("name"))
	if err != nil {
		return responseError(c, statusOf(err), "Failed to run report", err)
	}
	return responseSuccess(c, http.StatusOK, "Report generated successfully", res)
}

// ExportHandler serves a report as a download. format defaults to xlsx, which
// is streamed straight into the response.
func (h *ReportHandler) ExportHandler(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.Param("name")
	format := strings.ToLower(c.QueryParam("format"))
	if format == "" {
		format = service.FormatXLSX
	}

	if format == service.FormatXLSX {
		exporter, err := h.svc.Exporter(ctx, name)
		if err != nil {
			return responseError(c, statusOf(err), "Failed to export report", err)
		}
		return exporter.StreamToResponse(c.Response(), name+"."+format)
	}

	data, contentType, err := h.svc.Export(ctx, name, format)
	if err != nil {
		return responseError(c, statusOf(err), "Failed to export report", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.%s"`, name, format))
	return c.Blob(http.StatusOK, contentType, data)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
