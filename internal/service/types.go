package service

import (
	"github.com/shopspring/decimal"
)

// NameSalary is a projection of an employee onto name and salary.
type NameSalary struct {
	EName string          `json:"ename"`
	Sal   decimal.Decimal `json:"sal"`
}

// EmployeeDepartment pairs an employee with the name of their department.
type EmployeeDepartment struct {
	EName string `json:"ename"`
	DName string `json:"dname"`
}

// DepartmentCount is the head count of one department.
type DepartmentCount struct {
	DeptNo int `json:"dept_no"`
	Count  int `json:"count"`
}

// NameCommission lists an employee with a recorded commission.
type NameCommission struct {
	EName string          `json:"ename"`
	Comm  decimal.Decimal `json:"comm"`
}

// EmployeeGrade pairs an employee with the salary grade covering their salary.
type EmployeeGrade struct {
	EName string `json:"ename"`
	Grade int    `json:"grade"`
}

// DepartmentAverage is the mean salary of one department.
type DepartmentAverage struct {
	DeptNo int             `json:"dept_no"`
	AvgSal decimal.Decimal `json:"avg_sal"`
}

// EmployeeManager pairs an employee with their manager.
type EmployeeManager struct {
	Employee string `json:"employee"`
	Manager  string `json:"manager"`
}

// EmployeeIncome is salary plus commission, missing commission counted as zero.
type EmployeeIncome struct {
	EName string          `json:"ename"`
	Total decimal.Decimal `json:"total"`
}

// EmployeeDepartmentGrade is one row of the emp, dept and salgrade join.
type EmployeeDepartmentGrade struct {
	EName string `json:"ename"`
	DName string `json:"dname"`
	Grade int    `json:"grade"`
}

// NameRow holds a single employee name.
type NameRow struct {
	EName string `json:"ename"`
}

// JobRow holds a single job title.
type JobRow struct {
	Job string `json:"job"`
}

// Metric is a scalar report result rendered as a one-row table.
type Metric struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}
