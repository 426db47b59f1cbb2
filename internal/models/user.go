package models

// Roles carried in the access token's role claim.
const (
	RolePatient       = "patient"
	RoleReceptionist  = "receptionist"
	RoleHospitalAdmin = "hospital_admin"
	RoleAdmin         = "admin"
	RoleSuperAdmin    = "super_admin"
)

// Patient is the profile shown on the patient profile screen.
type Patient struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Address string `json:"address"`
}

// StaffSignup registers hospital staff with the upstream identity service.
type StaffSignup struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	HospitalID string `json:"hospitalId"`
	Phone      string `json:"phone,omitempty"`
}

// Staff is the upstream's view of a registered staff member.
type Staff struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	HospitalID ID     `json:"hospitalId"`
}

// Session is what a successful login hands back to the device.
type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Home  string `json:"home"`
}
