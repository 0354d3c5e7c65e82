package employee

type Employee struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Name         string  `gorm:"not null"`
	Salary       float64 `gorm:"not null"`
	DepartmentID int64   `gorm:"column:department_id;not null"`
	ProjectID    int64   `gorm:"column:project_id;not null"`
}

func (Employee) TableName() string { return "employee" }

// EmployeeDetail is an employee row with its department and project names
// resolved through inner joins.
type EmployeeDetail struct {
	Employee
	DepartmentName string `gorm:"column:department_name"`
	ProjectName    string `gorm:"column:project_name"`
}

// Department and Project are read-only join sources.
type Department struct {
	ID   int64
	Name string
}

func (Department) TableName() string { return "department" }

type Project struct {
	ID   int64
	Name string
}

func (Project) TableName() string { return "project" }

type SearchCriteria struct {
	Search    string
	SortBy    string
	SortOrder string
	Offset    int
	Limit     int
}
