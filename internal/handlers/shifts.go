package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-appointment-server/internal/middleware"
	"clinic-appointment-server/internal/models"
	"clinic-appointment-server/internal/scheduling"
	"clinic-appointment-server/internal/utils"
)

// ShiftHandler handles doctor shift management and availability queries.
type ShiftHandler struct {
	Svc *scheduling.Service
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(svc *scheduling.Service) *ShiftHandler {
	return &ShiftHandler{Svc: svc}
}

// CreateShiftRequest represents the request body for adding a shift.
type CreateShiftRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// CreateShift handles a doctor adding a new bookable shift.
func (h *ShiftHandler) CreateShift(c *gin.Context) {
	var req CreateShiftRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Doctor is not authenticated")
		return
	}

	shift, err := h.Svc.CreateShift(c.Request.Context(), doctorID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Created(c, "Shift added successfully", gin.H{"shift": shift})
}

// GetDoctorShifts handles fetching the authenticated doctor's shifts.
func (h *ShiftHandler) GetDoctorShifts(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Doctor is not authenticated")
		return
	}

	shifts, err := h.Svc.ListDoctorShifts(c.Request.Context(), doctorID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	if shifts == nil {
		shifts = []models.Shift{}
	}

	utils.Success(c, "", gin.H{"shifts": shifts})
}

// UpdateShiftRequest represents the request body for updating a shift.
// Absent fields are left unchanged.
type UpdateShiftRequest struct {
	Date      *string `json:"date"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
}

// UpdateShift handles a doctor editing one of their own shifts.
func (h *ShiftHandler) UpdateShift(c *gin.Context) {
	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	doctorID, _ := middleware.GetUserIDFromContext(c)

	shift, err := h.Svc.UpdateShift(c.Request.Context(), c.Param("id"), doctorID, scheduling.ShiftUpdate{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Shift updated successfully", gin.H{"shift": shift})
}

// DeleteShift handles a doctor deleting one of their own unbooked shifts.
// A booked shift is rejected; its appointment must be cancelled first.
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	doctorID, _ := middleware.GetUserIDFromContext(c)

	if err := h.Svc.DeleteShift(c.Request.Context(), c.Param("id"), doctorID); err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Shift deleted successfully", nil)
}

// GetAvailableShifts handles the public availability query by department
// and date. Both query parameters are required.
func (h *ShiftHandler) GetAvailableShifts(c *gin.Context) {
	department := c.Query("department")
	date := c.Query("date")
	if department == "" || date == "" {
		utils.BadRequest(c, "Date and department are required")
		return
	}

	shifts, err := h.Svc.ListAvailableShifts(c.Request.Context(), department, date)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	if shifts == nil {
		shifts = []models.ShiftWithDoctor{}
	}

	utils.Success(c, "", gin.H{"shifts": shifts})
}

// GetDepartments handles listing departments that currently have shifts.
func (h *ShiftHandler) GetDepartments(c *gin.Context) {
	departments, err := h.Svc.ListDepartments(c.Request.Context())
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	if departments == nil {
		departments = []string{}
	}

	utils.Success(c, "", gin.H{"departments": departments})
}
