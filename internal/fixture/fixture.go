// Package fixture provides the canonical emp/dept/salgrade dataset and a
// parser for alternative datasets in the same YAML layout.
package fixture

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/locvowork/empdept/internal/domain"
)

//go:embed scott.yaml
var scottYAML []byte

const hireDateLayout = "2006-01-02"

var (
	defaultOnce sync.Once
	defaultSet  *domain.Dataset
	defaultErr  error
)

// Default returns the canonical dataset. It is parsed once and shared; the
// dataset itself is immutable.
func Default() *domain.Dataset {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = Parse(bytes.NewReader(scottYAML))
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("fixture: embedded dataset is invalid: %v", defaultErr))
	}
	return defaultSet
}

// LoadFile parses a dataset document from disk.
func LoadFile(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a dataset document.
func Parse(r io.Reader) (*domain.Dataset, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode fixture yaml: %w", err)
	}

	depts := make([]domain.Department, len(doc.Departments))
	for i, d := range doc.Departments {
		depts[i] = domain.Department{DeptNo: d.DeptNo, DName: d.DName, Loc: d.Loc}
	}

	emps := make([]domain.Employee, len(doc.Employees))
	for i, e := range doc.Employees {
		emp, err := e.toDomain()
		if err != nil {
			return nil, fmt.Errorf("employee %d (%s): %w", e.EmpNo, e.EName, err)
		}
		emps[i] = emp
	}

	grades := make([]domain.SalaryGrade, len(doc.SalGrades))
	for i, g := range doc.SalGrades {
		grade, err := g.toDomain()
		if err != nil {
			return nil, fmt.Errorf("salary grade %d: %w", g.Grade, err)
		}
		grades[i] = grade
	}

	if err := Validate(emps, depts, grades); err != nil {
		return nil, err
	}
	return domain.NewDataset(emps, depts, grades), nil
}

type document struct {
	Departments []departmentRow `yaml:"departments"`
	Employees   []employeeRow   `yaml:"employees"`
	SalGrades   []gradeRow      `yaml:"salgrades"`
}

type departmentRow struct {
	DeptNo int    `yaml:"deptno"`
	DName  string `yaml:"dname"`
	Loc    string `yaml:"loc"`
}

type employeeRow struct {
	EmpNo    int     `yaml:"empno"`
	EName    string  `yaml:"ename"`
	Job      string  `yaml:"job"`
	Mgr      *int    `yaml:"mgr"`
	HireDate string  `yaml:"hiredate"`
	Sal      string  `yaml:"sal"`
	Comm     *string `yaml:"comm"`
	DeptNo   int     `yaml:"deptno"`
}

func (r employeeRow) toDomain() (domain.Employee, error) {
	if !validEmpNo(r.EmpNo) {
		return domain.Employee{}, fmt.Errorf("empno %d out of range", r.EmpNo)
	}
	if r.Mgr != nil && !validEmpNo(*r.Mgr) {
		return domain.Employee{}, fmt.Errorf("employee %d: mgr %d out of range", r.EmpNo, *r.Mgr)
	}
	sal, err := decimal.NewFromString(r.Sal)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("parse sal %q: %w", r.Sal, err)
	}
	hired, err := time.Parse(hireDateLayout, r.HireDate)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("parse hiredate %q: %w", r.HireDate, err)
	}

	emp := domain.Employee{
		EmpNo:    r.EmpNo,
		EName:    r.EName,
		Job:      r.Job,
		Sal:      sal,
		DeptNo:   r.DeptNo,
		HireDate: hired,
	}
	if r.Mgr != nil {
		emp.Mgr = domain.SomeEmpNo(*r.Mgr)
	}
	if r.Comm != nil {
		comm, err := decimal.NewFromString(*r.Comm)
		if err != nil {
			return domain.Employee{}, fmt.Errorf("parse comm %q: %w", *r.Comm, err)
		}
		emp.Comm = decimal.NewNullDecimal(comm)
	}
	return emp, nil
}

// validEmpNo reports whether n fits the nullable integer column employee
// references are stored in.
func validEmpNo(n int) bool {
	return n >= math.MinInt32 && n <= math.MaxInt32
}

type gradeRow struct {
	Grade int    `yaml:"grade"`
	LoSal string `yaml:"losal"`
	HiSal string `yaml:"hisal"`
}

func (r gradeRow) toDomain() (domain.SalaryGrade, error) {
	lo, err := decimal.NewFromString(r.LoSal)
	if err != nil {
		return domain.SalaryGrade{}, fmt.Errorf("parse losal %q: %w", r.LoSal, err)
	}
	hi, err := decimal.NewFromString(r.HiSal)
	if err != nil {
		return domain.SalaryGrade{}, fmt.Errorf("parse hisal %q: %w", r.HiSal, err)
	}
	return domain.SalaryGrade{Grade: r.Grade, LoSal: lo, HiSal: hi}, nil
}
