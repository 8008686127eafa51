package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-appointment-server/internal/models"
	"clinic-appointment-server/internal/utils"
)

// MessageHandler handles contact-form messages.
type MessageHandler struct {
	DB *gorm.DB
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{DB: db}
}

// SendMessageRequest represents the public contact-form body.
type SendMessageRequest struct {
	FirstName string `json:"firstName" binding:"required" validate:"min=3"`
	LastName  string `json:"lastName" binding:"required" validate:"min=3"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required" validate:"phone10"`
	Message   string `json:"message" binding:"required" validate:"min=10"`
}

// SendMessage handles submitting a contact message.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	message := models.Message{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
	}
	if err := h.DB.Create(&message).Error; err != nil {
		utils.InternalServerError(c, "Failed to send message: "+err.Error())
		return
	}

	utils.Success(c, "Message sent successfully", nil)
}

// GetAllMessages handles listing all contact messages (admin only).
func (h *MessageHandler) GetAllMessages(c *gin.Context) {
	var messages []models.Message
	if err := h.DB.Order("created_at desc").Find(&messages).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch messages: "+err.Error())
		return
	}

	utils.Success(c, "", gin.H{"messages": messages})
}

// DeleteMessage handles removing a contact message (admin only).
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	var message models.Message
	if err := h.DB.First(&message, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Message not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&message).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete message: "+err.Error())
		return
	}

	utils.Success(c, "Message deleted successfully", nil)
}
