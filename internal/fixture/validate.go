package fixture

import (
	"errors"
	"fmt"
	"math"

	"github.com/locvowork/empdept/internal/domain"
	"github.com/locvowork/empdept/pkg/query"
)

// ErrInvalidDataset is wrapped by every Validate failure.
var ErrInvalidDataset = errors.New("invalid dataset")

// Validate checks the invariants queries rely on: unique keys, positive
// salaries, resolvable department references and well-formed,
// non-overlapping salary grades.
func Validate(emps []domain.Employee, depts []domain.Department, grades []domain.SalaryGrade) error {
	var errs []error

	deptNos := make(map[int]struct{}, len(depts))
	for _, d := range depts {
		if _, dup := deptNos[d.DeptNo]; dup {
			errs = append(errs, fmt.Errorf("duplicate department %d", d.DeptNo))
		}
		deptNos[d.DeptNo] = struct{}{}
	}

	empNos := make(map[int]struct{}, len(emps))
	for _, e := range emps {
		if _, dup := empNos[e.EmpNo]; dup {
			errs = append(errs, fmt.Errorf("duplicate employee %d", e.EmpNo))
		}
		empNos[e.EmpNo] = struct{}{}

		if e.EmpNo < math.MinInt32 || e.EmpNo > math.MaxInt32 {
			errs = append(errs, fmt.Errorf("employee %d: number out of range", e.EmpNo))
		}

		if !e.Sal.IsPositive() {
			errs = append(errs, fmt.Errorf("employee %d: salary must be positive, got %s", e.EmpNo, e.Sal))
		}
		if _, ok := deptNos[e.DeptNo]; !ok {
			errs = append(errs, fmt.Errorf("employee %d: unknown department %d", e.EmpNo, e.DeptNo))
		}
	}

	ordered := query.OrderByFunc(grades, func(g domain.SalaryGrade) domain.SalaryGrade { return g },
		func(a, b domain.SalaryGrade) int { return a.LoSal.Cmp(b.LoSal) }, query.Ascending)
	for i, g := range ordered {
		if g.LoSal.GreaterThan(g.HiSal) {
			errs = append(errs, fmt.Errorf("salary grade %d: losal %s above hisal %s", g.Grade, g.LoSal, g.HiSal))
		}
		if i > 0 && !g.LoSal.GreaterThan(ordered[i-1].HiSal) {
			errs = append(errs, fmt.Errorf("salary grades %d and %d overlap", ordered[i-1].Grade, g.Grade))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataset, errors.Join(errs...))
	}
	return nil
}
