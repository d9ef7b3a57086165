package models

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleHR        Role = "HR"
	RoleEmployee  Role = "EMPLOYEE"
	RoleCandidate Role = "CANDIDATE"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee, RoleCandidate:
		return true
	}
	return false
}
