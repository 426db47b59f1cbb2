package upstream

import (
	"context"
	"net/http"
	"net/url"

	"choosecare-bff/internal/models"
)

func (c *Client) ListAppointments(ctx context.Context, token string, filter models.AppointmentFilter) ([]models.Appointment, error) {
	q := url.Values{}
	if filter.DoctorID != "" {
		q.Set("doctorId", filter.DoctorID)
	}
	if filter.HospitalID != "" {
		q.Set("hospitalId", filter.HospitalID)
	}
	return list[models.Appointment](ctx, c, "appointments", "/appointments", token, q)
}

func (c *Client) BookAppointment(ctx context.Context, token string, a models.Appointment) (models.Appointment, error) {
	body, ct, err := jsonBody(a)
	if err != nil {
		return models.Appointment{}, mutationFailure("book appointment", err)
	}
	return send[models.Appointment](ctx, c, "book appointment", http.MethodPost, "/appointments", token, body, ct)
}

func (c *Client) GetPatient(ctx context.Context, token, id string) (models.Patient, error) {
	return get[models.Patient](ctx, c, "patient", "/patients/"+escape(id), token)
}
