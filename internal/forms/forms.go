// Package forms holds the raw input of the add/edit screens. Validation runs
// before any network call; numeric fields are coerced, never rejected.
package forms

import (
	"strings"

	"choosecare-bff/internal/models"
)

type HospitalForm struct {
	Name            string `json:"name" validate:"notblank"`
	Address         string `json:"address" validate:"notblank"`
	City            string `json:"city" validate:"notblank"`
	NumberOfDoctors Text   `json:"numberOfDoctors"`
	NumberOfBeds    Text   `json:"numberOfBeds"`
	AgeOfHospital   Text   `json:"ageOfHospital"`
	Rating          Text   `json:"rating"`
	About           string `json:"about"`
	ContactNumber   string `json:"contactNumber" validate:"notblank"`
	// Picture is an image URL the form already holds, if any.
	Picture string `json:"picture"`
}

func (f HospitalForm) Validate() error { return check(f) }

// Hospital builds the payload sent upstream. id is empty on create.
func (f HospitalForm) Hospital(id string) models.Hospital {
	return models.Hospital{
		ID:              models.ID(id),
		Name:            strings.TrimSpace(f.Name),
		Address:         strings.TrimSpace(f.Address),
		City:            strings.TrimSpace(f.City),
		NumberOfDoctors: Int(string(f.NumberOfDoctors)),
		NumberOfBeds:    Int(string(f.NumberOfBeds)),
		AgeOfHospital:   Int(string(f.AgeOfHospital)),
		Rating:          Float(string(f.Rating)),
		About:           strings.TrimSpace(f.About),
		ContactNumber:   strings.TrimSpace(f.ContactNumber),
		Picture:         optional(f.Picture),
	}
}

type DepartmentForm struct {
	Name        string `json:"name" validate:"notblank"`
	Description string `json:"description"`
	HospitalID  string `json:"hospitalId" validate:"notblank"`
}

func (f DepartmentForm) Validate() error { return check(f) }

func (f DepartmentForm) Department(id string) models.Department {
	return models.Department{
		ID:          models.ID(id),
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		HospitalID:  models.ID(strings.TrimSpace(f.HospitalID)),
	}
}

type DoctorForm struct {
	Name           string `json:"name" validate:"notblank"`
	Phone          string `json:"phone" validate:"notblank"`
	Mail           string `json:"mail" validate:"notblank"`
	Specialization string `json:"specialization" validate:"notblank"`
	Experience     Text   `json:"experience"`
	Fee            Text   `json:"fee"`
	Education      string `json:"education"`
	DepartmentID   string `json:"departmentId" validate:"notblank"`
	CabinNumber    string `json:"cabinNumber"`
	Picture        string `json:"picture"`
}

func (f DoctorForm) Validate() error { return check(f) }

func (f DoctorForm) Doctor(id string) models.Doctor {
	return models.Doctor{
		ID:             models.ID(id),
		Name:           strings.TrimSpace(f.Name),
		Phone:          strings.TrimSpace(f.Phone),
		Mail:           strings.TrimSpace(f.Mail),
		Specialization: strings.TrimSpace(f.Specialization),
		Experience:     Int(string(f.Experience)),
		Fee:            Float(string(f.Fee)),
		Education:      strings.TrimSpace(f.Education),
		DepartmentID:   models.ID(strings.TrimSpace(f.DepartmentID)),
		CabinNumber:    strings.TrimSpace(f.CabinNumber),
		Picture:        optional(f.Picture),
	}
}

type StaffSignupForm struct {
	Name       string `json:"name" validate:"notblank"`
	Email      string `json:"email" validate:"notblank"`
	Password   string `json:"password" validate:"notblank"`
	Role       string `json:"role" validate:"notblank"`
	HospitalID string `json:"hospitalId" validate:"notblank"`
	Phone      string `json:"phone"`
}

func (f StaffSignupForm) Validate() error { return check(f) }

func (f StaffSignupForm) Signup() models.StaffSignup {
	return models.StaffSignup{
		Name:       strings.TrimSpace(f.Name),
		Email:      strings.TrimSpace(f.Email),
		Password:   f.Password,
		Role:       strings.TrimSpace(f.Role),
		HospitalID: strings.TrimSpace(f.HospitalID),
		Phone:      strings.TrimSpace(f.Phone),
	}
}

type BookingForm struct {
	PatientName string `json:"patientName" validate:"notblank"`
	Date        string `json:"date" validate:"notblank"`
	TimeSlot    string `json:"timeSlot" validate:"notblank"`
	Issue       string `json:"issue"`
}

func (f BookingForm) Validate() error { return check(f) }

// Appointment builds a booking request for a doctor. New bookings start as "booked".
func (f BookingForm) Appointment(doctorID string) models.Appointment {
	return models.Appointment{
		PatientName: strings.TrimSpace(f.PatientName),
		DoctorID:    models.ID(doctorID),
		Date:        strings.TrimSpace(f.Date),
		TimeSlot:    strings.TrimSpace(f.TimeSlot),
		Issue:       strings.TrimSpace(f.Issue),
		Status:      "booked",
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
