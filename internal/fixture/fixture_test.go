package fixture

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/empdept/internal/domain"
)

func TestDefault(t *testing.T) {
	ds := Default()

	emps := ds.Emps()
	require.Len(t, emps, 6)
	require.Len(t, ds.Depts(), 4)
	require.Len(t, ds.Salgrades(), 5)

	allen := emps[1]
	assert.Equal(t, "ALLEN", allen.EName)
	assert.Equal(t, "SALESMAN", allen.Job)
	assert.Equal(t, 30, allen.DeptNo)
	assert.Equal(t, "1600", allen.Sal.String())
	assert.True(t, allen.HasCommission())
	assert.Equal(t, "300", allen.Comm.Decimal.String())
	assert.Equal(t, "1981-02-20", allen.HireDate.Format(hireDateLayout))

	king := emps[4]
	assert.Equal(t, "KING", king.EName)
	assert.False(t, king.HasManager())
	assert.False(t, king.HasCommission())

	smith := emps[0]
	assert.Equal(t, int32(7902), smith.Mgr.Int32)

	assert.Same(t, ds, Default(), "default dataset is parsed once")
}

func TestParse_Errors(t *testing.T) {
	testCases := map[string]struct {
		doc     string
		wantErr string
	}{
		"bad yaml": {
			doc:     "employees: [",
			wantErr: "decode fixture yaml",
		},
		"bad salary": {
			doc: `
departments: [{ deptno: 10, dname: A, loc: X }]
employees: [{ empno: 1, ename: A, job: J, hiredate: "1981-01-01", sal: "abc", deptno: 10 }]`,
			wantErr: "parse sal",
		},
		"bad hire date": {
			doc: `
departments: [{ deptno: 10, dname: A, loc: X }]
employees: [{ empno: 1, ename: A, job: J, hiredate: "01/01/1981", sal: "1", deptno: 10 }]`,
			wantErr: "parse hiredate",
		},
		"unknown department": {
			doc: `
departments: [{ deptno: 10, dname: A, loc: X }]
employees: [{ empno: 1, ename: A, job: J, hiredate: "1981-01-01", sal: "1", deptno: 99 }]`,
			wantErr: "unknown department 99",
		},
		"non positive salary": {
			doc: `
departments: [{ deptno: 10, dname: A, loc: X }]
employees: [{ empno: 1, ename: A, job: J, hiredate: "1981-01-01", sal: "0", deptno: 10 }]`,
			wantErr: "salary must be positive",
		},
		"duplicate employee": {
			doc: `
departments: [{ deptno: 10, dname: A, loc: X }]
employees:
  - { empno: 1, ename: A, job: J, hiredate: "1981-01-01", sal: "1", deptno: 10 }
  - { empno: 1, ename: B, job: J, hiredate: "1981-01-01", sal: "1", deptno: 10 }`,
			wantErr: "duplicate employee 1",
		},
		"manager number out of range": {
			doc: `
departments: [{ deptno: 10, dname: A, loc: X }]
employees: [{ empno: 1, ename: A, job: J, mgr: 4294967297, hiredate: "1981-01-01", sal: "1", deptno: 10 }]`,
			wantErr: "mgr 4294967297 out of range",
		},
		"employee number out of range": {
			doc: `
departments: [{ deptno: 10, dname: A, loc: X }]
employees: [{ empno: 4294967297, ename: A, job: J, hiredate: "1981-01-01", sal: "1", deptno: 10 }]`,
			wantErr: "empno 4294967297 out of range",
		},
		"overlapping grades": {
			doc: `
salgrades:
  - { grade: 2, losal: "1000", hisal: "2000" }
  - { grade: 1, losal: "500", hisal: "1000" }`,
			wantErr: "salary grades 1 and 2 overlap",
		},
		"inverted grade": {
			doc:     `salgrades: [{ grade: 1, losal: "900", hisal: "100" }]`,
			wantErr: "losal 900 above hisal 100",
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParse_ValidationErrorsAreTyped(t *testing.T) {
	_, err := Parse(strings.NewReader(`employees: [{ empno: 1, ename: A, job: J, hiredate: "1981-01-01", sal: "1", deptno: 5 }]`))
	assert.ErrorIs(t, err, ErrInvalidDataset)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini.yaml")
	doc := `
departments: [{ deptno: 10, dname: ACCOUNTING, loc: NEW YORK }]
employees: [{ empno: 1, ename: SOLO, job: CLERK, hiredate: "1990-05-01", sal: "950", deptno: 10 }]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	ds, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, ds.Emps(), 1)
	assert.Equal(t, "NEW YORK", ds.Depts()[0].Loc)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "open fixture file")
}

func TestValidate_EmployeeNumberRange(t *testing.T) {
	depts := []domain.Department{{DeptNo: 10, DName: "A", Loc: "X"}}
	emps := []domain.Employee{{EmpNo: math.MaxInt32 + 1, EName: "A", Sal: decimal.NewFromInt(1), DeptNo: 10}}

	err := Validate(emps, depts, nil)
	assert.ErrorIs(t, err, ErrInvalidDataset)
	assert.ErrorContains(t, err, "number out of range")

	emps[0].EmpNo = math.MaxInt32
	assert.NoError(t, Validate(emps, depts, nil))
}
