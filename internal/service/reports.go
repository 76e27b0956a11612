package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/locvowork/empdept/internal/logger"
)

// Constants of the tutorial battery.
const (
	SalesJob            = "SALESMAN"
	SalesDeptNo         = 30
	SalesLocation       = "CHICAGO"
	FirstHiredCount     = 2
	SalaryFloor         = 500
	CommissionThreshold = 400
)

// ErrReportNotFound is returned by Run for an unknown report name.
var ErrReportNotFound = errors.New("report not found")

// Report describes one named query of the battery.
type Report struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	run func(*EmployeeService) (interface{}, error)
}

// Result is the outcome of running a report. Rows is always a slice of structs.
type Result struct {
	Report string      `json:"report"`
	Count  int         `json:"count"`
	Rows   interface{} `json:"rows"`
}

var catalog = []Report{
	{Name: "salesmen", Description: "Employees whose job is SALESMAN", run: func(s *EmployeeService) (interface{}, error) {
		return s.EmployeesWithJob(SalesJob), nil
	}},
	{Name: "dept30-by-salary", Description: "Department 30 ordered by salary, highest first", run: func(s *EmployeeService) (interface{}, error) {
		return s.DepartmentBySalaryDesc(SalesDeptNo), nil
	}},
	{Name: "chicago-employees", Description: "Employees of departments located in CHICAGO", run: func(s *EmployeeService) (interface{}, error) {
		return s.EmployeesInLocation(SalesLocation), nil
	}},
	{Name: "names-and-salaries", Description: "Name and salary of every employee", run: func(s *EmployeeService) (interface{}, error) {
		return s.NamesAndSalaries(), nil
	}},
	{Name: "employee-departments", Description: "Employees joined to their department", run: func(s *EmployeeService) (interface{}, error) {
		return s.EmployeeDepartments(), nil
	}},
	{Name: "headcount-per-department", Description: "Number of employees per department", run: func(s *EmployeeService) (interface{}, error) {
		return s.HeadCountPerDepartment(), nil
	}},
	{Name: "with-commission", Description: "Employees with a recorded commission", run: func(s *EmployeeService) (interface{}, error) {
		return s.EmployeesWithCommission(), nil
	}},
	{Name: "salary-grades", Description: "Salary grade of every employee", run: func(s *EmployeeService) (interface{}, error) {
		return s.EmployeeGrades(), nil
	}},
	{Name: "average-salary-per-department", Description: "Average salary per department", run: func(s *EmployeeService) (interface{}, error) {
		return s.AverageSalaryPerDepartment()
	}},
	{Name: "above-department-average", Description: "Employees earning more than their department average", run: func(s *EmployeeService) (interface{}, error) {
		names, err := s.AboveDepartmentAverageIndexed()
		if err != nil {
			return nil, err
		}
		rows := make([]NameRow, len(names))
		for i, n := range names {
			rows[i] = NameRow{EName: n}
		}
		return rows, nil
	}},
	{Name: "max-salary", Description: "Highest salary", run: func(s *EmployeeService) (interface{}, error) {
		v, err := s.MaxSalary()
		return metric("max_salary", v, err)
	}},
	{Name: "min-salary-dept30", Description: "Lowest salary in department 30", run: func(s *EmployeeService) (interface{}, error) {
		v, err := s.MinSalaryInDepartment(SalesDeptNo)
		return metric("min_salary_dept_30", v, err)
	}},
	{Name: "first-hired", Description: "The two earliest hires", run: func(s *EmployeeService) (interface{}, error) {
		return s.FirstHired(FirstHiredCount)
	}},
	{Name: "distinct-jobs", Description: "Every job title once", run: func(s *EmployeeService) (interface{}, error) {
		jobs := s.DistinctJobs()
		rows := make([]JobRow, len(jobs))
		for i, j := range jobs {
			rows[i] = JobRow{Job: j}
		}
		return rows, nil
	}},
	{Name: "with-manager", Description: "Employees that report to a manager", run: func(s *EmployeeService) (interface{}, error) {
		return s.EmployeesWithManagers(), nil
	}},
	{Name: "all-earn-over-500", Description: "Whether every employee earns more than 500", run: func(s *EmployeeService) (interface{}, error) {
		ok := s.AllEarnMoreThan(decimal.NewFromInt(SalaryFloor))
		return []Metric{{Metric: "all_earn_over_500", Value: strconv.FormatBool(ok)}}, nil
	}},
	{Name: "any-commission-over-400", Description: "Whether any commission exceeds 400", run: func(s *EmployeeService) (interface{}, error) {
		ok := s.AnyCommissionOver(decimal.NewFromInt(CommissionThreshold))
		return []Metric{{Metric: "any_commission_over_400", Value: strconv.FormatBool(ok)}}, nil
	}},
	{Name: "employee-managers", Description: "Employees paired with their manager", run: func(s *EmployeeService) (interface{}, error) {
		return s.EmployeeManagerPairs(), nil
	}},
	{Name: "total-income", Description: "Salary plus commission per employee", run: func(s *EmployeeService) (interface{}, error) {
		return s.TotalIncomes(), nil
	}},
	{Name: "employee-department-grades", Description: "Employees with department name and salary grade", run: func(s *EmployeeService) (interface{}, error) {
		return s.EmployeeDepartmentGrades(), nil
	}},
}

func metric(name string, v decimal.Decimal, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return []Metric{{Metric: name, Value: v.String()}}, nil
}

// Catalog lists the available reports in a stable order.
func (s *EmployeeService) Catalog() []Report {
	out := make([]Report, len(catalog))
	copy(out, catalog)
	return out
}

// Run executes the named report.
func (s *EmployeeService) Run(ctx context.Context, name string) (*Result, error) {
	for _, r := range catalog {
		if r.Name != name {
			continue
		}
		ctx = logger.WithLogger(ctx, map[string]interface{}{"report": name})
		rows, err := r.run(s)
		if err != nil {
			logger.ErrorLogErr(ctx, "report failed", err)
			return nil, fmt.Errorf("run report %s: %w", name, err)
		}
		count := rowCount(rows)
		logger.DebugLog(ctx, "report returned %d rows", count)
		return &Result{Report: name, Count: count, Rows: rows}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrReportNotFound, name)
}

func rowCount(rows interface{}) int {
	v := reflect.ValueOf(rows)
	if v.Kind() != reflect.Slice {
		return 0
	}
	return v.Len()
}
