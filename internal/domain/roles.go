package domain

// Account roles. These are fixed for the campus deployment; RBAC policies
// and approver routing are keyed by them.
const (
	RoleAdmin   = "ADMIN"
	RoleHOD     = "HOD"
	RoleStaff   = "STAFF"
	RoleStudent = "STUDENT"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHOD, RoleStaff, RoleStudent:
		return true
	}
	return false
}

// Departments a user can belong to.
const (
	DepartmentCSE   = "CSE"
	DepartmentECE   = "ECE"
	DepartmentMech  = "MECH"
	DepartmentCivil = "CIVIL"
	DepartmentEEE   = "EEE"
)

func IsValidDepartment(department string) bool {
	switch department {
	case DepartmentCSE, DepartmentECE, DepartmentMech, DepartmentCivil, DepartmentEEE:
		return true
	}
	return false
}
