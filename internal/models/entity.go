package models

// Entity types used in cache keys and logs.
const (
	EntityHospital    = "hospital"
	EntityDepartment  = "department"
	EntityDoctor      = "doctor"
	EntityAppointment = "appointment"
)

