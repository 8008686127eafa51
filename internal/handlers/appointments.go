package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-appointment-server/internal/middleware"
	"clinic-appointment-server/internal/models"
	"clinic-appointment-server/internal/scheduling"
	"clinic-appointment-server/internal/utils"
)

// AppointmentHandler handles booking and the appointment lifecycle.
type AppointmentHandler struct {
	Svc *scheduling.Service
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(svc *scheduling.Service) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc}
}

// BookAppointmentRequest represents the request body for booking an
// appointment against a shift. All demographic fields are checked here,
// before anything is persisted.
type BookAppointmentRequest struct {
	ShiftID       string `json:"shiftId" binding:"required"`
	FirstName     string `json:"firstName" binding:"required" validate:"min=3"`
	LastName      string `json:"lastName" binding:"required" validate:"min=3"`
	Email         string `json:"email" binding:"required" validate:"email"`
	Phone         string `json:"phone" binding:"required" validate:"phone10"`
	NIC           string `json:"nic" binding:"required" validate:"nic"`
	DOB           string `json:"dob" binding:"required"`
	PatientGender string `json:"patientGender" binding:"required,oneof=Male Female Other"`
	Address       string `json:"address" binding:"required"`
	Reason        string `json:"reason" binding:"required"`
}

// BookAppointment handles a patient booking an available shift.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Patient is not authenticated")
		return
	}

	appointment, err := h.Svc.Book(c.Request.Context(), patientID, scheduling.BookingRequest{
		ShiftID:       req.ShiftID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		NIC:           req.NIC,
		DOB:           req.DOB,
		PatientGender: models.Gender(req.PatientGender),
		Address:       req.Address,
		Reason:        req.Reason,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Created(c, "Appointment booked successfully", gin.H{"appointment": appointment})
}

// GetPatientAppointments handles fetching the authenticated patient's
// appointments, any status.
func (h *AppointmentHandler) GetPatientAppointments(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Patient is not authenticated")
		return
	}

	appointments, err := h.Svc.ListPatientAppointments(c.Request.Context(), patientID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	utils.Success(c, "", gin.H{"appointments": appointments})
}

// CancelAppointment handles a patient cancelling their own appointment.
// The underlying shift becomes bookable again.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	patientID, _ := middleware.GetUserIDFromContext(c)

	if err := h.Svc.Cancel(c.Request.Context(), c.Param("id"), patientID); err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointment cancelled successfully", nil)
}

// RescheduleAppointmentRequest represents the request body for moving an
// appointment onto a different shift.
type RescheduleAppointmentRequest struct {
	NewShiftID string `json:"newShiftId" binding:"required"`
}

// RescheduleAppointment handles a patient moving their appointment to a new
// available shift; date and time are taken from the new shift.
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, _ := middleware.GetUserIDFromContext(c)

	appointment, err := h.Svc.Reschedule(c.Request.Context(), c.Param("id"), patientID, req.NewShiftID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointment rescheduled successfully", gin.H{"appointment": appointment})
}

// GetDoctorAppointments handles fetching all appointments booked against
// the authenticated doctor's shifts.
func (h *AppointmentHandler) GetDoctorAppointments(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Doctor is not authenticated")
		return
	}

	appointments, err := h.Svc.ListDoctorAppointments(c.Request.Context(), doctorID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	utils.Success(c, "", gin.H{"appointments": appointments})
}

// UpdateAppointmentStatusRequest represents the request body for a doctor
// setting an appointment's status directly.
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Booked Cancelled Rescheduled"`
}

// UpdateAppointmentStatus handles the doctor-side status update. Setting
// Cancelled also releases the shift so the slot can be rebooked.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, _ := middleware.GetUserIDFromContext(c)

	appointment, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), doctorID, models.AppointmentStatus(req.Status))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointment status updated successfully", gin.H{"appointment": appointment})
}

// DeleteAppointment handles a doctor removing an appointment record from
// one of their shifts; the shift is freed first.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	doctorID, _ := middleware.GetUserIDFromContext(c)

	if err := h.Svc.DeleteAppointment(c.Request.Context(), c.Param("id"), doctorID); err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointment deleted successfully", nil)
}
