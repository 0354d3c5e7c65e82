package employee

// Pointer fields let "required" tell a missing value apart from zero.
type CreateEmployeeRequest struct {
	Name         string   `json:"name" binding:"required,notblank"`
	Salary       *float64 `json:"salary" binding:"required"`
	DepartmentID *int64   `json:"departmentId" binding:"required"`
	ProjectID    *int64   `json:"projectId" binding:"required"`
}

type UpdateEmployeeRequest CreateEmployeeRequest

type SearchEmployeesQuery struct {
	Search    string `form:"search"`
	SortBy    string `form:"sortBy,default=id" binding:"oneof=id name salary departmentName projectName"`
	SortOrder string `form:"sortOrder,default=asc"`
	Page      int    `form:"page,default=1"`
	Size      int    `form:"size,default=10"`
}

type EmployeeResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Salary         float64 `json:"salary"`
	DepartmentName string  `json:"departmentName"`
	ProjectName    string  `json:"projectName"`
}
