package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/empdept/internal/domain"
	"github.com/locvowork/empdept/internal/fixture"
	"github.com/locvowork/empdept/pkg/query"
)

func newService() *EmployeeService {
	return NewEmployeeService(fixture.Default())
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func namesOf(emps []domain.Employee) []string {
	return query.Map(emps, func(e domain.Employee) string { return e.EName })
}

func TestEmployeesWithJob_Salesmen(t *testing.T) {
	result := newService().EmployeesWithJob("SALESMAN")

	require.Len(t, result, 2)
	for _, e := range result {
		assert.Equal(t, "SALESMAN", e.Job)
	}
}

func TestDepartmentBySalaryDesc(t *testing.T) {
	result := newService().DepartmentBySalaryDesc(30)

	require.Len(t, result, 2)
	assert.True(t, result[0].Sal.GreaterThanOrEqual(result[1].Sal))
	assert.Equal(t, []string{"ALLEN", "WARD"}, namesOf(result))
}

func TestEmployeesInLocation(t *testing.T) {
	result := newService().EmployeesInLocation("CHICAGO")

	require.NotEmpty(t, result)
	for _, e := range result {
		assert.Equal(t, 30, e.DeptNo)
	}
	assert.Empty(t, newService().EmployeesInLocation("BOSTON"), "OPERATIONS has no staff")
}

func TestNamesAndSalaries(t *testing.T) {
	result := newService().NamesAndSalaries()

	require.Len(t, result, 6)
	for _, r := range result {
		assert.NotEmpty(t, r.EName)
		assert.True(t, r.Sal.IsPositive())
	}
}

func TestEmployeeDepartments(t *testing.T) {
	result := newService().EmployeeDepartments()

	assert.Len(t, result, 6)
	assert.Contains(t, result, EmployeeDepartment{EName: "ALLEN", DName: "SALES"})
}

func TestHeadCountPerDepartment(t *testing.T) {
	result := newService().HeadCountPerDepartment()

	assert.Equal(t, []DepartmentCount{
		{DeptNo: 20, Count: 3},
		{DeptNo: 30, Count: 2},
		{DeptNo: 10, Count: 1},
	}, result)

	total := query.Sum(result, func(c DepartmentCount) int { return c.Count })
	assert.Equal(t, len(fixture.Default().Emps()), total)
}

func TestEmployeesWithCommission(t *testing.T) {
	result := newService().EmployeesWithCommission()

	require.Len(t, result, 2)
	assert.Equal(t, "ALLEN", result[0].EName)
	assert.Equal(t, "300", result[0].Comm.String())
	assert.Equal(t, "WARD", result[1].EName)
}

func TestEmployeeGrades(t *testing.T) {
	result := newService().EmployeeGrades()

	assert.Equal(t, []EmployeeGrade{
		{EName: "SMITH", Grade: 1},
		{EName: "ALLEN", Grade: 3},
		{EName: "WARD", Grade: 2},
		{EName: "JONES", Grade: 4},
		{EName: "KING", Grade: 5},
		{EName: "FORD", Grade: 4},
	}, result)
}

func TestAverageSalaryPerDepartment(t *testing.T) {
	result, err := newService().AverageSalaryPerDepartment()
	require.NoError(t, err)
	require.Len(t, result, 3)

	byDept := make(map[int]decimal.Decimal)
	for _, r := range result {
		byDept[r.DeptNo] = r.AvgSal
	}
	assert.True(t, byDept[30].GreaterThan(dec(1000)))
	assert.Equal(t, "1425", byDept[30].String())
	assert.Equal(t, "5000", byDept[10].String())
	assert.Equal(t, "2258.33", byDept[20].StringFixed(2))
}

func TestAboveDepartmentAverage(t *testing.T) {
	svc := newService()

	naive, err := svc.AboveDepartmentAverage()
	require.NoError(t, err)
	indexed, err := svc.AboveDepartmentAverageIndexed()
	require.NoError(t, err)

	assert.Contains(t, naive, "ALLEN")
	assert.Equal(t, []string{"ALLEN", "JONES", "FORD"}, naive)
	assert.Equal(t, naive, indexed)
}

func TestSalaryExtremes(t *testing.T) {
	svc := newService()

	hi, err := svc.MaxSalary()
	require.NoError(t, err)
	assert.True(t, hi.Equal(dec(5000)))

	lo, err := svc.MinSalaryInDepartment(30)
	require.NoError(t, err)
	assert.True(t, lo.Equal(dec(1250)))

	_, err = svc.MinSalaryInDepartment(40)
	assert.ErrorIs(t, err, query.ErrEmptyInput)
}

func TestFirstHired(t *testing.T) {
	svc := newService()

	result, err := svc.FirstHired(2)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.False(t, result[0].HireDate.After(result[1].HireDate))
	assert.Equal(t, []string{"SMITH", "ALLEN"}, namesOf(result))

	_, err = svc.FirstHired(-1)
	assert.ErrorIs(t, err, query.ErrInvalidArgument)
}

func TestDistinctJobs(t *testing.T) {
	jobs := newService().DistinctJobs()

	assert.Contains(t, jobs, "PRESIDENT")
	assert.Contains(t, jobs, "SALESMAN")
	assert.Equal(t, []string{"CLERK", "SALESMAN", "MANAGER", "PRESIDENT", "ANALYST"}, jobs)
}

func TestEmployeesWithManagers(t *testing.T) {
	result := newService().EmployeesWithManagers()

	assert.Len(t, result, 5)
	for _, e := range result {
		assert.True(t, e.Mgr.Valid)
	}
}

func TestQuantifiers(t *testing.T) {
	svc := newService()

	assert.True(t, svc.AllEarnMoreThan(dec(500)))
	assert.False(t, svc.AllEarnMoreThan(dec(800)))
	assert.True(t, svc.AnyCommissionOver(dec(400)))
	assert.False(t, svc.AnyCommissionOver(dec(500)))
}

func TestEmployeeManagerPairs(t *testing.T) {
	result := newService().EmployeeManagerPairs()

	assert.Contains(t, result, EmployeeManager{Employee: "SMITH", Manager: "FORD"})
	// ALLEN and WARD report to 7698, who is not on file; KING has no manager.
	assert.Equal(t, []EmployeeManager{
		{Employee: "SMITH", Manager: "FORD"},
		{Employee: "JONES", Manager: "KING"},
		{Employee: "FORD", Manager: "JONES"},
	}, result)
}

func TestTotalIncomes(t *testing.T) {
	result := newService().TotalIncomes()

	allen, ok := query.First(result, func(r EmployeeIncome) bool { return r.EName == "ALLEN" })
	require.True(t, ok)
	assert.True(t, allen.Total.Equal(dec(1900)))

	king, ok := query.First(result, func(r EmployeeIncome) bool { return r.EName == "KING" })
	require.True(t, ok)
	assert.True(t, king.Total.Equal(dec(5000)), "missing commission counts as zero")
}

func TestEmployeeDepartmentGrades(t *testing.T) {
	result := newService().EmployeeDepartmentGrades()

	assert.Len(t, result, 6)
	assert.Contains(t, result, EmployeeDepartmentGrade{EName: "ALLEN", DName: "SALES", Grade: 3})
}

func TestEmptyDataset(t *testing.T) {
	svc := NewEmployeeService(domain.NewDataset(nil, nil, nil))

	assert.Empty(t, svc.EmployeesWithJob("SALESMAN"))
	assert.Empty(t, svc.HeadCountPerDepartment())
	assert.True(t, svc.AllEarnMoreThan(dec(500)))
	assert.False(t, svc.AnyCommissionOver(dec(0)))

	avgs, err := svc.AverageSalaryPerDepartment()
	require.NoError(t, err)
	assert.Empty(t, avgs)

	_, err = svc.MaxSalary()
	assert.ErrorIs(t, err, query.ErrEmptyInput)

	_, err = svc.Run(context.Background(), "max-salary")
	assert.ErrorIs(t, err, query.ErrEmptyInput)
}
