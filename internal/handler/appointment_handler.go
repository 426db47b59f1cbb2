package handler

import (
	"net/http"

	"choosecare-bff/internal/action"
	"choosecare-bff/internal/forms"
	"choosecare-bff/internal/middleware"
	"choosecare-bff/internal/models"
	"choosecare-bff/internal/service"
	"choosecare-bff/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointments *service.AppointmentService
}

func NewAppointmentHandler(appointments *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// GetAppointments lists appointments scoped by ?doctorId= / ?hospitalId= and filtered by ?search=
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	filter := models.AppointmentFilter{
		DoctorID:   c.Query("doctorId"),
		HospitalID: c.Query("hospitalId"),
	}
	list, err := h.appointments.Appointments(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"), filter, c.Query("search"))
	if err != nil {
		respondError(c, err, list)
		return
	}
	utils.SuccessResponse(c, list)
}

func (h *AppointmentHandler) GetPatient(c *gin.Context) {
	patient, err := h.appointments.Patient(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"), c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	utils.SuccessResponse(c, patient)
}

type DoctorActionRequest struct {
	Action  string            `json:"action" binding:"required"`
	Booking forms.BookingForm `json:"booking"`
}

// DoctorAction handles a press on a doctor card
func (h *AppointmentHandler) DoctorAction(c *gin.Context) {
	var req DoctorActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	a, err := action.Parse(req.Action, c.Param("id"), req.Booking)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	result, err := h.appointments.DoctorAction(c.Request.Context(), c.GetString("token"), a)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	utils.SuccessResponse(c, result)
}
