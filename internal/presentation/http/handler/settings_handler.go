package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pharmacare/pharmacare-api/internal/application/service"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings retrieves user settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings updates user settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Language           string  `json:"language"`
		Timezone           string  `json:"timezone"`
		Currency           string  `json:"currency"`
		DateFormat         string  `json:"date_format"`
		DefaultTaxRate     float64 `json:"default_tax_rate"`
		ReceiptAutoPrint   bool    `json:"receipt_auto_print"`
		EmailNotifications bool    `json:"email_notifications"`
		LowStockAlerts     bool    `json:"low_stock_alerts"`
		ExpiryAlerts       bool    `json:"expiry_alerts"`
		SessionTimeout     string  `json:"session_timeout"`
		LoginAlerts        bool    `json:"login_alerts"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		UserID:             *userID,
		Language:           req.Language,
		Timezone:           req.Timezone,
		Currency:           req.Currency,
		DateFormat:         req.DateFormat,
		DefaultTaxRate:     req.DefaultTaxRate,
		ReceiptAutoPrint:   req.ReceiptAutoPrint,
		EmailNotifications: req.EmailNotifications,
		LowStockAlerts:     req.LowStockAlerts,
		ExpiryAlerts:       req.ExpiryAlerts,
		SessionTimeout:     req.SessionTimeout,
		LoginAlerts:        req.LoginAlerts,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}

// ResetSettings restores the user's settings to defaults
func (h *SettingsHandler) ResetSettings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.settingsService.ResetSettings(c.Request.Context(), *userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings reset to defaults", nil)
}
