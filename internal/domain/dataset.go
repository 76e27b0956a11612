package domain

import "slices"

// Dataset is an immutable snapshot of the emp, dept and salgrade tables.
// Accessors hand out copies, so callers cannot change the snapshot.
type Dataset struct {
	employees    []Employee
	departments  []Department
	salaryGrades []SalaryGrade
}

// NewDataset copies the given records into a new snapshot.
func NewDataset(emps []Employee, depts []Department, grades []SalaryGrade) *Dataset {
	return &Dataset{
		employees:    cloneOrEmpty(emps),
		departments:  cloneOrEmpty(depts),
		salaryGrades: cloneOrEmpty(grades),
	}
}

func (d *Dataset) Emps() []Employee {
	return slices.Clone(d.employees)
}

func (d *Dataset) Depts() []Department {
	return slices.Clone(d.departments)
}

func (d *Dataset) Salgrades() []SalaryGrade {
	return slices.Clone(d.salaryGrades)
}

func cloneOrEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
