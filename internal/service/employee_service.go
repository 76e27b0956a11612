package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/locvowork/empdept/internal/domain"
	"github.com/locvowork/empdept/pkg/query"
)

// EmployeeService answers the emp/dept/salgrade query battery against a data source.
type EmployeeService struct {
	src domain.DataSource
}

// NewEmployeeService creates a service reading from src.
func NewEmployeeService(src domain.DataSource) *EmployeeService {
	return &EmployeeService{src: src}
}

// Source returns the data source the service reads from.
func (s *EmployeeService) Source() domain.DataSource {
	return s.src
}

func salary(e domain.Employee) decimal.Decimal { return e.Sal }

func employeeName(e domain.Employee) string { return e.EName }

// EmployeesWithJob returns the employees holding job, in fixture order.
func (s *EmployeeService) EmployeesWithJob(job string) []domain.Employee {
	return query.Filter(s.src.Emps(), func(e domain.Employee) bool { return e.Job == job })
}

// DepartmentBySalaryDesc returns the employees of a department, highest salary first.
func (s *EmployeeService) DepartmentBySalaryDesc(deptNo int) []domain.Employee {
	inDept := query.Filter(s.src.Emps(), func(e domain.Employee) bool { return e.DeptNo == deptNo })
	return query.OrderByFunc(inDept, salary, decimal.Decimal.Cmp, query.Descending)
}

// EmployeesInLocation returns the employees whose department is located at loc.
func (s *EmployeeService) EmployeesInLocation(loc string) []domain.Employee {
	deptNos := query.Map(
		query.Filter(s.src.Depts(), func(d domain.Department) bool { return d.Loc == loc }),
		func(d domain.Department) int { return d.DeptNo },
	)
	return query.Filter(s.src.Emps(), func(e domain.Employee) bool { return query.Contains(deptNos, e.DeptNo) })
}

// NamesAndSalaries projects every employee onto name and salary.
func (s *EmployeeService) NamesAndSalaries() []NameSalary {
	return query.Map(s.src.Emps(), func(e domain.Employee) NameSalary {
		return NameSalary{EName: e.EName, Sal: e.Sal}
	})
}

// EmployeeDepartments joins employees to their departments.
func (s *EmployeeService) EmployeeDepartments() []EmployeeDepartment {
	return query.Join(s.src.Emps(), s.src.Depts(),
		func(e domain.Employee) int { return e.DeptNo },
		func(d domain.Department) int { return d.DeptNo },
		func(e domain.Employee, d domain.Department) EmployeeDepartment {
			return EmployeeDepartment{EName: e.EName, DName: d.DName}
		})
}

// HeadCountPerDepartment counts employees per department number.
func (s *EmployeeService) HeadCountPerDepartment() []DepartmentCount {
	groups := query.GroupBy(s.src.Emps(), func(e domain.Employee) int { return e.DeptNo })
	return query.Map(groups, func(g query.Group[int, domain.Employee]) DepartmentCount {
		return DepartmentCount{DeptNo: g.Key, Count: query.Count(g.Items)}
	})
}

// EmployeesWithCommission lists employees with a recorded commission.
func (s *EmployeeService) EmployeesWithCommission() []NameCommission {
	withComm := query.Filter(s.src.Emps(), domain.Employee.HasCommission)
	return query.Map(withComm, func(e domain.Employee) NameCommission {
		return NameCommission{EName: e.EName, Comm: e.Comm.Decimal}
	})
}

// EmployeeGrades matches each employee to the salary grade covering their salary.
func (s *EmployeeService) EmployeeGrades() []EmployeeGrade {
	grades := s.src.Salgrades()
	return query.SelectMany(s.src.Emps(), func(e domain.Employee) []EmployeeGrade {
		covering := query.Filter(grades, func(g domain.SalaryGrade) bool { return g.Covers(e.Sal) })
		return query.Map(covering, func(g domain.SalaryGrade) EmployeeGrade {
			return EmployeeGrade{EName: e.EName, Grade: g.Grade}
		})
	})
}

// AverageSalaryPerDepartment computes the mean salary per department number.
func (s *EmployeeService) AverageSalaryPerDepartment() ([]DepartmentAverage, error) {
	groups := query.GroupBy(s.src.Emps(), func(e domain.Employee) int { return e.DeptNo })
	result := make([]DepartmentAverage, 0, len(groups))
	for _, g := range groups {
		avg, err := query.AverageDecimal(g.Items, salary)
		if err != nil {
			return nil, fmt.Errorf("average salary of department %d: %w", g.Key, err)
		}
		result = append(result, DepartmentAverage{DeptNo: g.Key, AvgSal: avg})
	}
	return result, nil
}

// AboveDepartmentAverage returns the names of employees earning more than
// their department's average. The average is recomputed for every employee.
func (s *EmployeeService) AboveDepartmentAverage() ([]string, error) {
	emps := s.src.Emps()
	var aggErr error
	above := query.Filter(emps, func(e domain.Employee) bool {
		peers := query.Filter(emps, func(x domain.Employee) bool { return x.DeptNo == e.DeptNo })
		avg, err := query.AverageDecimal(peers, salary)
		if err != nil {
			aggErr = err
			return false
		}
		return e.Sal.GreaterThan(avg)
	})
	if aggErr != nil {
		return nil, aggErr
	}
	return query.Map(above, employeeName), nil
}

// AboveDepartmentAverageIndexed is AboveDepartmentAverage with the
// per-department averages computed once up front.
func (s *EmployeeService) AboveDepartmentAverageIndexed() ([]string, error) {
	averages, err := s.AverageSalaryPerDepartment()
	if err != nil {
		return nil, err
	}
	byDept := make(map[int]decimal.Decimal, len(averages))
	for _, a := range averages {
		byDept[a.DeptNo] = a.AvgSal
	}
	above := query.Filter(s.src.Emps(), func(e domain.Employee) bool { return e.Sal.GreaterThan(byDept[e.DeptNo]) })
	return query.Map(above, employeeName), nil
}

// MaxSalary returns the highest salary.
func (s *EmployeeService) MaxSalary() (decimal.Decimal, error) {
	return query.MaxFunc(s.src.Emps(), salary, decimal.Decimal.Cmp)
}

// MinSalaryInDepartment returns the lowest salary of a department.
func (s *EmployeeService) MinSalaryInDepartment(deptNo int) (decimal.Decimal, error) {
	inDept := query.Filter(s.src.Emps(), func(e domain.Employee) bool { return e.DeptNo == deptNo })
	return query.MinFunc(inDept, salary, decimal.Decimal.Cmp)
}

// FirstHired returns the n earliest hires.
func (s *EmployeeService) FirstHired(n int) ([]domain.Employee, error) {
	byHireDate := query.OrderByFunc(s.src.Emps(),
		func(e domain.Employee) time.Time { return e.HireDate }, time.Time.Compare, query.Ascending)
	return query.Take(byHireDate, n)
}

// DistinctJobs returns every job title once, in order of first appearance.
func (s *EmployeeService) DistinctJobs() []string {
	return query.Distinct(query.Map(s.src.Emps(), func(e domain.Employee) string { return e.Job }))
}

// EmployeesWithManagers returns employees that report to someone.
func (s *EmployeeService) EmployeesWithManagers() []domain.Employee {
	return query.Filter(s.src.Emps(), domain.Employee.HasManager)
}

// AllEarnMoreThan reports whether every salary exceeds threshold.
func (s *EmployeeService) AllEarnMoreThan(threshold decimal.Decimal) bool {
	return query.All(s.src.Emps(), func(e domain.Employee) bool { return e.Sal.GreaterThan(threshold) })
}

// AnyCommissionOver reports whether some recorded commission exceeds threshold.
func (s *EmployeeService) AnyCommissionOver(threshold decimal.Decimal) bool {
	return query.Any(s.src.Emps(), func(e domain.Employee) bool {
		return e.HasCommission() && e.Comm.Decimal.GreaterThan(threshold)
	})
}

// EmployeeManagerPairs self-joins employees to their managers. Employees
// without a manager, or whose manager is not on file, are left out.
func (s *EmployeeService) EmployeeManagerPairs() []EmployeeManager {
	emps := s.src.Emps()
	return query.Join(emps, emps,
		domain.Employee.ManagerKey,
		domain.Employee.EmployeeKey,
		func(e, m domain.Employee) EmployeeManager {
			return EmployeeManager{Employee: e.EName, Manager: m.EName}
		})
}

// TotalIncomes returns salary plus commission for every employee.
func (s *EmployeeService) TotalIncomes() []EmployeeIncome {
	return query.Map(s.src.Emps(), func(e domain.Employee) EmployeeIncome {
		return EmployeeIncome{EName: e.EName, Total: e.TotalIncome()}
	})
}

// EmployeeDepartmentGrades joins employees to their department and salary grade.
func (s *EmployeeService) EmployeeDepartmentGrades() []EmployeeDepartmentGrade {
	type empDept struct {
		emp  domain.Employee
		dept domain.Department
	}
	joined := query.Join(s.src.Emps(), s.src.Depts(),
		func(e domain.Employee) int { return e.DeptNo },
		func(d domain.Department) int { return d.DeptNo },
		func(e domain.Employee, d domain.Department) empDept { return empDept{emp: e, dept: d} })

	grades := s.src.Salgrades()
	return query.SelectMany(joined, func(ed empDept) []EmployeeDepartmentGrade {
		covering := query.Filter(grades, func(g domain.SalaryGrade) bool { return g.Covers(ed.emp.Sal) })
		return query.Map(covering, func(g domain.SalaryGrade) EmployeeDepartmentGrade {
			return EmployeeDepartmentGrade{EName: ed.emp.EName, DName: ed.dept.DName, Grade: g.Grade}
		})
	})
}
