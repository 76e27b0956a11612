package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/locvowork/empdept/internal/domain"
	"github.com/locvowork/empdept/internal/logger"
	"github.com/locvowork/empdept/internal/repository/builder"
)

// Schema creates the three tables the dataset repository reads.
const Schema = `
CREATE TABLE IF NOT EXISTS dept (
	deptno  INTEGER PRIMARY KEY,
	dname   VARCHAR(14) NOT NULL,
	loc     VARCHAR(13) NOT NULL
);
CREATE TABLE IF NOT EXISTS emp (
	empno    INTEGER PRIMARY KEY,
	ename    VARCHAR(10) NOT NULL,
	job      VARCHAR(9) NOT NULL,
	mgr      INTEGER,
	hiredate DATE NOT NULL,
	sal      NUMERIC(7,2) NOT NULL CHECK (sal > 0),
	comm     NUMERIC(7,2),
	deptno   INTEGER NOT NULL REFERENCES dept (deptno)
);
CREATE TABLE IF NOT EXISTS salgrade (
	grade  INTEGER PRIMARY KEY,
	losal  NUMERIC(7,2) NOT NULL,
	hisal  NUMERIC(7,2) NOT NULL
);
`

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type DataSeeder struct {
	db *sql.DB
}

func NewDataSeeder(db *sql.DB) *DataSeeder {
	return &DataSeeder{db: db}
}

// SeedData creates the schema if needed and writes src in one transaction.
// Rows sharing a key with src are deleted first, so seeding twice is safe.
// Departments are inserted first so employee foreign keys resolve.
func (ds *DataSeeder) SeedData(ctx context.Context, src domain.DataSource) error {
	start := time.Now()

	if _, err := ds.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := ds.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statements := append(DeleteStatements(src), InsertStatements(src)...)
	for _, stmt := range statements {
		if err := exec(ctx, tx, stmt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	logger.InfoLog(ctx, "Seeded %d departments, %d employees, %d salary grades in %v",
		len(src.Depts()), len(src.Emps()), len(src.Salgrades()), time.Since(start))
	return nil
}

// ClearData deletes every row, children before parents.
func (ds *DataSeeder) ClearData(ctx context.Context) error {
	for _, table := range []string{"emp", "salgrade", "dept"} {
		if err := exec(ctx, ds.db, builder.NewSQLBuilder().Delete(table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	logger.InfoLog(ctx, "Cleared emp, salgrade and dept")
	return nil
}

// DeleteStatements returns the DELETE statements removing rows whose key
// appears in src, children before parents. Rows with other keys are kept.
func DeleteStatements(src domain.DataSource) []*builder.SQLBuilder {
	empNos := make([]interface{}, 0, len(src.Emps()))
	for _, e := range src.Emps() {
		empNos = append(empNos, e.EmpNo)
	}
	grades := make([]interface{}, 0, len(src.Salgrades()))
	for _, g := range src.Salgrades() {
		grades = append(grades, g.Grade)
	}
	deptNos := make([]interface{}, 0, len(src.Depts()))
	for _, d := range src.Depts() {
		deptNos = append(deptNos, d.DeptNo)
	}

	var out []*builder.SQLBuilder
	for _, k := range []struct {
		table, column string
		keys          []interface{}
	}{
		{"emp", "empno", empNos},
		{"salgrade", "grade", grades},
		{"dept", "deptno", deptNos},
	} {
		if b := deleteKeys(k.table, k.column, k.keys); b != nil {
			out = append(out, b)
		}
	}
	return out
}

// deleteKeys is nil for no keys; an unconditioned DELETE would empty the table.
func deleteKeys(table, column string, keys []interface{}) *builder.SQLBuilder {
	if len(keys) == 0 {
		return nil
	}
	cond := column + " = ?"
	b := builder.NewSQLBuilder().Delete(table).Where(cond, keys[0])
	for _, k := range keys[1:] {
		b.Or(cond, k)
	}
	return b
}

// InsertStatements returns the INSERT statements that reproduce src.
func InsertStatements(src domain.DataSource) []*builder.SQLBuilder {
	var out []*builder.SQLBuilder
	for _, d := range src.Depts() {
		out = append(out, builder.NewSQLBuilder().
			Insert("dept", "deptno", "dname", "loc").
			Values(d.DeptNo, d.DName, d.Loc))
	}
	for _, e := range src.Emps() {
		out = append(out, builder.NewSQLBuilder().
			Insert("emp", "empno", "ename", "job", "mgr", "hiredate", "sal", "comm", "deptno").
			Values(e.EmpNo, e.EName, e.Job, e.Mgr, e.HireDate, e.Sal, e.Comm, e.DeptNo))
	}
	for _, g := range src.Salgrades() {
		out = append(out, builder.NewSQLBuilder().
			Insert("salgrade", "grade", "losal", "hisal").
			Values(g.Grade, g.LoSal, g.HiSal))
	}
	return out
}

func exec(ctx context.Context, db execer, b *builder.SQLBuilder) error {
	query, args, err := b.BuildSafe()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to execute %q: %w", query, err)
	}
	return nil
}
