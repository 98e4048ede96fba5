package auth

import "github.com/HimanshuAlien/college-management-system/internal/model"

// Identity is the per-request authenticated principal handed to handlers. It
// is an explicit projection of the stored user record: every field is copied
// deliberately and the password hash never appears here. It lives for one
// request and is never persisted.
type Identity struct {
	ID           uint       `json:"id"`
	Role         model.Role `json:"role"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	ProfileImage string     `json:"profileImage,omitempty"`
	RollNumber   string     `json:"rollNumber,omitempty"`
	Branch       string     `json:"branch,omitempty"`
	Year         int        `json:"year,omitempty"`
	ClassID      *uint      `json:"classId,omitempty"`
	Department   string     `json:"department,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Address      string     `json:"address,omitempty"`
	IsActive     bool       `json:"isActive"`
}

// NewIdentity projects a stored user record into a request identity. The role
// comes from the record, not from whatever the token claimed.
func NewIdentity(u *model.User) *Identity {
	return &Identity{
		ID:           u.ID,
		Role:         u.Role,
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
		RollNumber:   u.RollNumber,
		Branch:       u.Branch,
		Year:         u.Year,
		ClassID:      u.ClassID,
		Department:   u.Department,
		Phone:        u.Phone,
		Address:      u.Address,
		IsActive:     u.IsActive,
	}
}
