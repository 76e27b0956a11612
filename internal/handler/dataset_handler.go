package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/empdept/internal/service"
)

// DatasetHandler exposes the raw tables the reports run over.
type DatasetHandler struct {
	svc *service.EmployeeService
}

func NewDatasetHandler(svc *service.EmployeeService) *DatasetHandler {
	return &DatasetHandler{svc: svc}
}

func (h *DatasetHandler) EmployeesHandler(c echo.Context) error {
	return responseSuccess(c, http.StatusOK, "Employees listed successfully", h.svc.Source().Emps())
}

func (h *DatasetHandler) DepartmentsHandler(c echo.Context) error {
	return responseSuccess(c, http.StatusOK, "Departments listed successfully", h.svc.Source().Depts())
}

func (h *DatasetHandler) SalgradesHandler(c echo.Context) error {
	return responseSuccess(c, http.StatusOK, "Salary grades listed successfully", h.svc.Source().Salgrades())
}
