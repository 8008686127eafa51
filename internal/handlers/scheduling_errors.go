package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"clinic-appointment-server/internal/scheduling"
	"clinic-appointment-server/internal/utils"
)

// respondSchedulingError maps a domain error from the scheduling service
// onto the HTTP error taxonomy. Every domain error ends up as a structured
// {success:false, message} body.
func respondSchedulingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scheduling.ErrShiftNotFound),
		errors.Is(err, scheduling.ErrAppointmentNotFound),
		errors.Is(err, scheduling.ErrDoctorNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, scheduling.ErrNotShiftOwner),
		errors.Is(err, scheduling.ErrNotAppointmentOwner):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, scheduling.ErrShiftBooked):
		utils.Conflict(c, err.Error())
	case errors.Is(err, scheduling.ErrShiftUnavailable),
		errors.Is(err, scheduling.ErrAlreadyCancelled),
		errors.Is(err, scheduling.ErrInvalidDate),
		errors.Is(err, scheduling.ErrDateInPast):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalServerError(c, "Unexpected error: "+err.Error())
	}
}
