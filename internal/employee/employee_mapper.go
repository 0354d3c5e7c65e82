package employee

import employeeerrors "employee-api/internal/employee/errors"

func toEntity(req CreateEmployeeRequest) Employee {
	e := Employee{Name: req.Name}
	if req.Salary != nil {
		e.Salary = *req.Salary
	}
	if req.DepartmentID != nil {
		e.DepartmentID = *req.DepartmentID
	}
	if req.ProjectID != nil {
		e.ProjectID = *req.ProjectID
	}
	return e
}

func mapToResponse(d EmployeeDetail) EmployeeResponse {
	return EmployeeResponse{
		ID:             d.ID,
		Name:           d.Name,
		Salary:         d.Salary,
		DepartmentName: d.DepartmentName,
		ProjectName:    d.ProjectName,
	}
}

func mapDetailToResponse(d *EmployeeDetail) (EmployeeResponse, error) {
	if d == nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	return mapToResponse(*d), nil
}

func mapToListResponse(rows []EmployeeDetail) []EmployeeResponse {
	res := make([]EmployeeResponse, len(rows))
	for i, d := range rows {
		res[i] = mapToResponse(d)
	}
	return res
}
