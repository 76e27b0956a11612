package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/empdept/internal/domain"
	"github.com/locvowork/empdept/internal/fixture"
)

type recordingExecer struct {
	queries []string
	args    [][]interface{}
	failOn  string
}

func (r *recordingExecer) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	if r.failOn != "" && strings.Contains(query, r.failOn) {
		return nil, errors.New("relation does not exist")
	}
	r.queries = append(r.queries, query)
	r.args = append(r.args, args)
	return driver.RowsAffected(1), nil
}

func TestInsertStatements(t *testing.T) {
	ds := fixture.Default()
	stmts := InsertStatements(ds)
	require.Len(t, stmts, len(ds.Depts())+len(ds.Emps())+len(ds.Salgrades()))

	rec := &recordingExecer{}
	for _, s := range stmts {
		require.NoError(t, exec(context.Background(), rec, s))
	}

	assert.Equal(t, "INSERT INTO dept (deptno, dname, loc) VALUES ($1, $2, $3)", rec.queries[0])
	assert.Equal(t, []interface{}{10, "ACCOUNTING", "NEW YORK"}, rec.args[0])

	firstEmp := len(ds.Depts())
	assert.True(t, strings.HasPrefix(rec.queries[firstEmp], "INSERT INTO emp ("))
	assert.Len(t, rec.args[firstEmp], 8)

	// Optional columns bind as driver values lib/pq understands.
	king := rec.args[firstEmp+4]
	mgr, err := king[3].(driver.Valuer).Value()
	require.NoError(t, err)
	assert.Nil(t, mgr)
	comm, err := king[6].(driver.Valuer).Value()
	require.NoError(t, err)
	assert.Nil(t, comm)

	smith := rec.args[firstEmp]
	mgr, err = smith[3].(driver.Valuer).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(7902), mgr)
	assert.IsType(t, time.Time{}, smith[4])
}

func TestDeleteStatements(t *testing.T) {
	testCases := map[string]struct {
		src      domain.DataSource
		expected []string
		args     [][]interface{}
	}{
		"default dataset": {
			src: fixture.Default(),
			expected: []string{
				"DELETE FROM emp WHERE empno = $1 OR empno = $2 OR empno = $3 OR empno = $4 OR empno = $5 OR empno = $6",
				"DELETE FROM salgrade WHERE grade = $1 OR grade = $2 OR grade = $3 OR grade = $4 OR grade = $5",
				"DELETE FROM dept WHERE deptno = $1 OR deptno = $2 OR deptno = $3 OR deptno = $4",
			},
			args: [][]interface{}{
				{7369, 7499, 7521, 7566, 7839, 7902},
				{1, 2, 3, 4, 5},
				{10, 20, 30, 40},
			},
		},
		"departments only": {
			src:      domain.NewDataset(nil, []domain.Department{{DeptNo: 50, DName: "LEGAL", Loc: "MIAMI"}}, nil),
			expected: []string{"DELETE FROM dept WHERE deptno = $1"},
			args:     [][]interface{}{{50}},
		},
		"empty dataset": {
			src: domain.NewDataset(nil, nil, nil),
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			rec := &recordingExecer{}
			for _, s := range DeleteStatements(tc.src) {
				require.NoError(t, exec(context.Background(), rec, s))
			}
			assert.Equal(t, tc.expected, rec.queries)
			assert.Equal(t, tc.args, rec.args)
		})
	}
}

func TestExec_WrapsErrors(t *testing.T) {
	stmts := InsertStatements(fixture.Default())
	rec := &recordingExecer{failOn: "salgrade"}
	err := exec(context.Background(), rec, stmts[len(stmts)-1])
	assert.ErrorContains(t, err, "INSERT INTO salgrade")
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5432, User: "scott", Password: "tiger", DBName: "scott", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=scott password=tiger dbname=scott sslmode=disable", cfg.DSN())
}
