package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-appointment-server/internal/models"
	"clinic-appointment-server/internal/utils"
)

// UserHandler handles admin-side user management.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// AddDoctorRequest represents the request body for an admin creating a
// doctor account.
type AddDoctorRequest struct {
	FirstName  string `json:"firstName" binding:"required" validate:"min=3"`
	LastName   string `json:"lastName" binding:"required" validate:"min=3"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Phone      string `json:"phone" binding:"required" validate:"phone10"`
	NIC        string `json:"nic" binding:"required" validate:"nic"`
	DOB        string `json:"dob" binding:"required"`
	Gender     string `json:"gender" binding:"required,oneof=Male Female Other"`
	Department string `json:"department" binding:"required"`
}

// AddDoctor handles creating a new doctor (admin only).
func (h *UserHandler) AddDoctor(c *gin.Context) {
	var req AddDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	doctor := models.User{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Role:       models.RoleDoctor,
		Gender:     models.Gender(req.Gender),
		Phone:      req.Phone,
		NIC:        req.NIC,
		DOB:        req.DOB,
		Department: req.Department,
	}
	if err := doctor.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.DB.Create(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	utils.Created(c, "Doctor added successfully", gin.H{"doctor": doctor.Sanitize()})
}

// AddAdminRequest represents the request body for creating an admin account.
type AddAdminRequest struct {
	FirstName string `json:"firstName" binding:"required" validate:"min=3"`
	LastName  string `json:"lastName" binding:"required" validate:"min=3"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// AddAdmin handles creating a new admin (admin only).
func (h *UserHandler) AddAdmin(c *gin.Context) {
	var req AddAdminRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	admin := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      models.RoleAdmin,
	}
	if err := admin.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.DB.Create(&admin).Error; err != nil {
		utils.InternalServerError(c, "Failed to create admin: "+err.Error())
		return
	}

	utils.Created(c, "Admin added successfully", gin.H{"admin": admin.Sanitize()})
}

// GetDoctors handles listing all doctors, for the booking UI.
func (h *UserHandler) GetDoctors(c *gin.Context) {
	var doctors []models.User
	if err := h.DB.Where("role = ?", models.RoleDoctor).Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(doctors))
	for i, doctor := range doctors {
		sanitized[i] = doctor.Sanitize()
	}

	utils.Success(c, "", gin.H{"doctors": sanitized})
}
