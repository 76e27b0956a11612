package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/empdept/internal/domain"
	"github.com/locvowork/empdept/internal/fixture"
	"github.com/locvowork/empdept/internal/repository/builder"
)

type datasetRepository struct {
	db *sql.DB
}

// NewDatasetRepository creates a repository reading the emp, dept and salgrade tables.
func NewDatasetRepository(db *sql.DB) domain.DatasetRepository {
	return &datasetRepository{db: db}
}

// rowScanner is the part of *sql.Rows the scan functions need.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Load reads all three tables into an immutable, validated snapshot.
func (r *datasetRepository) Load(ctx context.Context) (*domain.Dataset, error) {
	depts, err := queryAll(ctx, r.db, builder.NewSQLBuilder().
		Select("deptno", "dname", "loc").
		From("dept").
		OrderBy("deptno ASC"), scanDepartment)
	if err != nil {
		return nil, fmt.Errorf("failed to load departments: %w", err)
	}

	emps, err := queryAll(ctx, r.db, builder.NewSQLBuilder().
		Select("empno", "ename", "job", "mgr", "hiredate", "sal", "comm", "deptno").
		From("emp").
		OrderBy("empno ASC"), scanEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	grades, err := queryAll(ctx, r.db, builder.NewSQLBuilder().
		Select("grade", "losal", "hisal").
		From("salgrade").
		OrderBy("grade ASC"), scanSalaryGrade)
	if err != nil {
		return nil, fmt.Errorf("failed to load salary grades: %w", err)
	}

	if err := fixture.Validate(emps, depts, grades); err != nil {
		return nil, err
	}
	return domain.NewDataset(emps, depts, grades), nil
}

func queryAll[T any](ctx context.Context, db *sql.DB, b *builder.SQLBuilder, scan func(rowScanner) (T, error)) ([]T, error) {
	query, args, err := b.BuildSafe()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return out, nil
}

func scanDepartment(row rowScanner) (domain.Department, error) {
	var d domain.Department
	if err := row.Scan(&d.DeptNo, &d.DName, &d.Loc); err != nil {
		return domain.Department{}, fmt.Errorf("failed to scan department: %w", err)
	}
	return d, nil
}

func scanEmployee(row rowScanner) (domain.Employee, error) {
	var e domain.Employee
	if err := row.Scan(&e.EmpNo, &e.EName, &e.Job, &e.Mgr, &e.HireDate, &e.Sal, &e.Comm, &e.DeptNo); err != nil {
		return domain.Employee{}, fmt.Errorf("failed to scan employee: %w", err)
	}
	return e, nil
}

func scanSalaryGrade(row rowScanner) (domain.SalaryGrade, error) {
	var g domain.SalaryGrade
	if err := row.Scan(&g.Grade, &g.LoSal, &g.HiSal); err != nil {
		return domain.SalaryGrade{}, fmt.Errorf("failed to scan salary grade: %w", err)
	}
	return g, nil
}
