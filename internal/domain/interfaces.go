package domain

import "context"

// DataSource provides the three record sets queries run against.
type DataSource interface {
	Emps() []Employee
	Depts() []Department
	Salgrades() []SalaryGrade
}

// DatasetRepository loads a dataset from persistent storage.
type DatasetRepository interface {
	Load(ctx context.Context) (*Dataset, error)
}
