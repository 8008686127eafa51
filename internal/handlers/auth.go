package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-appointment-server/internal/config"
	"clinic-appointment-server/internal/middleware"
	"clinic-appointment-server/internal/models"
	"clinic-appointment-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// sendToken signs a JWT for the user and delivers it in the role-specific
// HTTP-only cookie, alongside the standard success body.
func (h *AuthHandler) sendToken(c *gin.Context, status int, message string, user *models.User) {
	token, err := utils.GenerateToken(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	c.SetCookie(
		utils.CookieNameForRole(user.Role),
		token,
		h.Cfg.JWTExpirationDays*24*60*60,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)

	body := gin.H{
		"success": true,
		"message": message,
		"user":    user.Sanitize(),
		"token":   token,
	}
	c.JSON(status, body)
}

// RegisterPatientRequest represents the request body for patient
// self-registration.
type RegisterPatientRequest struct {
	FirstName string `json:"firstName" binding:"required" validate:"min=3"`
	LastName  string `json:"lastName" binding:"required" validate:"min=3"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Phone     string `json:"phone" binding:"required" validate:"phone10"`
	NIC       string `json:"nic" binding:"required" validate:"nic"`
	DOB       string `json:"dob" binding:"required"`
	Gender    string `json:"gender" binding:"required,oneof=Male Female Other"`
}

// RegisterPatient handles patient registration and logs the patient in.
func (h *AuthHandler) RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
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

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      models.RolePatient,
		Gender:    models.Gender(req.Gender),
		Phone:     req.Phone,
		NIC:       req.NIC,
		DOB:       req.DOB,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.DB.Create(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	h.sendToken(c, 201, "Patient registered successfully", &user)
}

// LoginRequest represents the request body for user login. The role must
// match the account's role so each portal only signs in its own users.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin doctor patient"`
}

// Login handles user login for all roles.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if user.Role != models.Role(req.Role) {
		utils.Forbidden(c, "User with this role is not found")
		return
	}

	h.sendToken(c, 200, "Login successful", &user)
}

// Logout clears the role cookie for the authenticated user.
func (h *AuthHandler) Logout(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(
			utils.CookieNameForRole(role),
			"",
			-1,
			"/",
			"",
			h.Cfg.Environment != "development",
			true,
		)
		utils.Success(c, string(role)+" logged out successfully", nil)
	}
}

// GetProfile handles fetching the currently authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "", gin.H{"user": user.Sanitize()})
}
