// internal/api/handlers/inquiry_handler.go
package handlers

import (
	"net/http"
	"time"

	"prestige-motors-api-server/internal/database"
	"prestige-motors-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InquiryHandler struct {
	// Store is nil when the structured store is unavailable; inquiries are
	// then acknowledged but not persisted.
	Store database.InquiryStore
	Log   *zap.SugaredLogger
}

type CreateInquiryPayload struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Message   string `json:"message" binding:"required,min=10"`
	VehicleID string `json:"vehicleId"`
}

// CreateInquiry records a contact form submission from the storefront.
func (h *InquiryHandler) CreateInquiry(c *gin.Context) {
	var payload CreateInquiryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inquiry := models.Inquiry{
		ID:        uuid.NewString(),
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Message:   payload.Message,
		VehicleID: payload.VehicleID,
		CreatedAt: time.Now().UnixMilli(),
	}

	if h.Store == nil {
		h.Log.Warnw("Inquiry received while catalog store is down, not persisted", "id", inquiry.ID, "email", inquiry.Email)
		c.JSON(http.StatusAccepted, gin.H{"message": "Inquiry received"})
		return
	}

	if err := h.Store.InsertInquiry(c.Request.Context(), inquiry); err != nil {
		h.Log.Warnw("Failed to persist inquiry", "id", inquiry.ID, "error", err)
		c.JSON(http.StatusAccepted, gin.H{"message": "Inquiry received"})
		return
	}

	c.JSON(http.StatusCreated, inquiry)
}
