package service

import (
	"context"
	"fmt"

	"choosecare-bff/internal/action"
	"choosecare-bff/internal/forms"
	"choosecare-bff/internal/models"
	"choosecare-bff/internal/screen"

	"github.com/rs/zerolog"
)

type AppointmentAPI interface {
	ListAppointments(ctx context.Context, token string, filter models.AppointmentFilter) ([]models.Appointment, error)
	BookAppointment(ctx context.Context, token string, a models.Appointment) (models.Appointment, error)
	GetPatient(ctx context.Context, token, id string) (models.Patient, error)
}

// AppointmentService backs the receptionist appointment list, patient
// bookings, the patient profile and the doctor card actions.
type AppointmentService struct {
	api       AppointmentAPI
	directory *DirectoryService
	auth      *AuthService
	logger    zerolog.Logger
}

func NewAppointmentService(api AppointmentAPI, directory *DirectoryService, auth *AuthService, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{
		api:       api,
		directory: directory,
		auth:      auth,
		logger:    logger.With().Str("component", "appointments").Logger(),
	}
}

// Appointments fetches the appointment list for a scope and filters it by search.
func (s *AppointmentService) Appointments(ctx context.Context, deviceID, token string, filter models.AppointmentFilter, search string) ([]models.Appointment, error) {
	appointments, err := s.api.ListAppointments(ctx, token, filter)
	if err != nil {
		s.logger.Warn().Err(err).Str("device", deviceID).Msg("appointment fetch failed")
		return []models.Appointment{}, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
	}
	return screen.Filter(appointments, search), nil
}

// Book validates a booking form and books it with the doctor.
func (s *AppointmentService) Book(ctx context.Context, token, doctorID string, form forms.BookingForm) (models.Appointment, error) {
	if err := form.Validate(); err != nil {
		return models.Appointment{}, err
	}
	booked, err := s.api.BookAppointment(ctx, token, form.Appointment(doctorID))
	if err != nil {
		return models.Appointment{}, err
	}
	s.logger.Info().Str("doctor_id", doctorID).Str("appointment_id", string(booked.ID)).Msg("appointment booked")
	return booked, nil
}

// Patient fetches a patient's profile.
func (s *AppointmentService) Patient(ctx context.Context, deviceID, token, id string) (models.Patient, error) {
	patient, err := s.api.GetPatient(ctx, token, id)
	if err != nil {
		return models.Patient{}, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
	}
	return patient, nil
}

// DoctorAction carries out a doctor card press: a profile view returns the
// doctor, a booking returns the new appointment.
func (s *AppointmentService) DoctorAction(ctx context.Context, token string, a action.DoctorCardAction) (any, error) {
	switch a := a.(type) {
	case action.ViewProfile:
		return s.directory.Doctor(ctx, token, a.DoctorID)
	case action.BookAppointment:
		return s.Book(ctx, token, a.DoctorID, a.Booking)
	default:
		return nil, fmt.Errorf("unhandled doctor card action %T", a)
	}
}
