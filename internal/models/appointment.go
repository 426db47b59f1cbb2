package models

// Appointment is display-only. Status is free-form ("booked", "Pending", ...).
type Appointment struct {
	ID          ID     `json:"id"`
	PatientName string `json:"patientName,omitempty"`
	DoctorName  string `json:"doctorName,omitempty"`
	DoctorID    ID     `json:"doctorId,omitempty"`
	HospitalID  ID     `json:"hospitalId,omitempty"`
	Date        string `json:"date"`
	TimeSlot    string `json:"timeSlot"`
	Issue       string `json:"issue"`
	Status      string `json:"status"`
}

func (a Appointment) RecordID() string { return string(a.ID) }

func (a Appointment) SearchFields() []string {
	return []string{a.PatientName, a.DoctorName, a.Issue, a.Status}
}

// AppointmentFilter scopes an appointment list fetch.
type AppointmentFilter struct {
	DoctorID   string
	HospitalID string
}
