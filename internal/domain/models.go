package domain

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Employee represents a row of the emp table.
type Employee struct {
	EmpNo    int                 `json:"emp_no" db:"empno"`
	EName    string              `json:"ename" db:"ename"`
	Job      string              `json:"job" db:"job"`
	Mgr      NullEmpNo           `json:"mgr" db:"mgr"`
	Sal      decimal.Decimal     `json:"sal" db:"sal"`
	Comm     decimal.NullDecimal `json:"comm" db:"comm"`
	DeptNo   int                 `json:"dept_no" db:"deptno"`
	HireDate time.Time           `json:"hire_date" db:"hiredate"`
}

// HasManager reports whether the employee reports to someone.
func (e Employee) HasManager() bool {
	return e.Mgr.Valid
}

// HasCommission reports whether a commission is recorded, including an explicit zero.
func (e Employee) HasCommission() bool {
	return e.Comm.Valid
}

// CommissionOrZero treats a missing commission as zero.
func (e Employee) CommissionOrZero() decimal.Decimal {
	if !e.Comm.Valid {
		return decimal.Zero
	}
	return e.Comm.Decimal
}

// TotalIncome is salary plus commission.
func (e Employee) TotalIncome() decimal.Decimal {
	return e.Sal.Add(e.CommissionOrZero())
}

// ManagerKey returns the join key of the employee's manager. An employee
// without a manager yields an invalid key that never equals EmployeeKey.
func (e Employee) ManagerKey() NullEmpNo {
	return e.Mgr
}

// EmployeeKey returns the employee number in the form ManagerKey uses.
func (e Employee) EmployeeKey() NullEmpNo {
	return SomeEmpNo(e.EmpNo)
}

// NullEmpNo is an optional reference to an employee number. It scans from and
// writes to nullable integer columns and marshals to a number or null.
type NullEmpNo struct {
	sql.NullInt32
}

// SomeEmpNo returns a valid reference to empNo.
func SomeEmpNo(empNo int) NullEmpNo {
	return NullEmpNo{sql.NullInt32{Int32: int32(empNo), Valid: true}}
}

func (n NullEmpNo) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Int32)
}

func (n *NullEmpNo) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullEmpNo{}
		return nil
	}
	if err := json.Unmarshal(data, &n.Int32); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Department represents a row of the dept table.
type Department struct {
	DeptNo int    `json:"dept_no" db:"deptno"`
	DName  string `json:"dname" db:"dname"`
	Loc    string `json:"loc" db:"loc"`
}

// SalaryGrade represents a row of the salgrade table. Bounds are inclusive.
type SalaryGrade struct {
	Grade int             `json:"grade" db:"grade"`
	LoSal decimal.Decimal `json:"losal" db:"losal"`
	HiSal decimal.Decimal `json:"hisal" db:"hisal"`
}

// Covers reports whether sal falls inside the grade's range.
func (g SalaryGrade) Covers(sal decimal.Decimal) bool {
	return sal.GreaterThanOrEqual(g.LoSal) && sal.LessThanOrEqual(g.HiSal)
}
