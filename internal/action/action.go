// Package action defines what a press on a doctor card can mean.
package action

import (
	"fmt"
	"strings"

	"choosecare-bff/internal/forms"
)

// DoctorCardAction is either ViewProfile or BookAppointment.
type DoctorCardAction interface {
	doctorCardAction()
	Doctor() string
}

type ViewProfile struct {
	DoctorID string
}

type BookAppointment struct {
	DoctorID string
	Booking  forms.BookingForm
}

func (ViewProfile) doctorCardAction()     {}
func (BookAppointment) doctorCardAction() {}

func (a ViewProfile) Doctor() string     { return a.DoctorID }
func (a BookAppointment) Doctor() string { return a.DoctorID }

// UnknownActionError is returned for an action name Parse does not know.
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown doctor card action %q", e.Name)
}

// Parse maps the wire name of an action to its variant. Booking is ignored
// for profile views.
func Parse(name, doctorID string, booking forms.BookingForm) (DoctorCardAction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "profile", "view_profile":
		return ViewProfile{DoctorID: doctorID}, nil
	case "book", "appointment", "book_appointment":
		return BookAppointment{DoctorID: doctorID, Booking: booking}, nil
	default:
		return nil, &UnknownActionError{Name: name}
	}
}
