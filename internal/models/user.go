package models

// Role is the closed set of user roles.
type Role int

const (
	RoleAdmin    Role = 1
	RoleState    Role = 2
	RoleDistrict Role = 3
)

// String returns the role name used in logs and tokens.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleState:
		return "state"
	case RoleDistrict:
		return "district"
	default:
		return "unknown"
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleState || r == RoleDistrict
}

// User is an account of the dashboard.
// DistrictCode is only meaningful for district users.
type User struct {
	DistrictCode *int   `json:"districtCode,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	Email        string `json:"email,omitempty"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Designation  string `json:"designation"`
	PasswordHash []byte `json:"-"`
	ID           int    `json:"id"`
	Role         Role   `json:"roleId"`
}

// District returns the user's district code, or 0 when the user has none.
func (u User) District() int {
	if u.DistrictCode == nil {
		return 0
	}
	return *u.DistrictCode
}
