package model

// Role is the coarse-grained authorization dimension. Every user carries
// exactly one role and it never changes after registration.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
