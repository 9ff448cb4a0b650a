package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/application/service"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/dto/response"
)

// POSHandler handles point-of-sale cart and checkout HTTP requests
type POSHandler struct {
	cartService     *service.CartService
	checkoutService *service.CheckoutService
}

// NewPOSHandler creates a new POS handler
func NewPOSHandler(cartService *service.CartService, checkoutService *service.CheckoutService) *POSHandler {
	return &POSHandler{cartService: cartService, checkoutService: checkoutService}
}

// GetCart handles fetching the operator's current cart
func (h *POSHandler) GetCart(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved successfully", cart)
}

// AddItem handles adding a medicine to the operator's cart
func (h *POSHandler) AddItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		MedicineID uuid.UUID `json:"medicine_id" binding:"required"`
		Quantity   int       `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cart, err := h.cartService.AddMedicine(c.Request.Context(), *userID, req.MedicineID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medicine added to cart", cart)
}

// UpdateItemQuantity handles changing a cart line's quantity by a delta
func (h *POSHandler) UpdateItemQuantity(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	medicineID, err := uuid.Parse(c.Param("medicine_id"))
	if err != nil {
		response.BadRequest(c, "Invalid medicine ID")
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), *userID, medicineID, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart updated successfully", cart)
}

// RemoveItem handles removing a medicine line from the cart
func (h *POSHandler) RemoveItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	medicineID, err := uuid.Parse(c.Param("medicine_id"))
	if err != nil {
		response.BadRequest(c, "Invalid medicine ID")
		return
	}

	cart, err := h.cartService.RemoveMedicine(c.Request.Context(), *userID, medicineID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medicine removed from cart", cart)
}

// ClearCart handles emptying the operator's cart
func (h *POSHandler) ClearCart(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	cart, err := h.cartService.ClearCart(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart cleared successfully", cart)
}

// SetDiscount handles applying a sale-level discount (percent or fixed amount)
func (h *POSHandler) SetDiscount(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Percent *float64 `json:"percent"`
		Amount  *float64 `json:"amount"` // decimal, converted to cents
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var (
		cart *service.CartView
		err  error
	)
	switch {
	case req.Percent != nil:
		cart, err = h.cartService.SetDiscountPercent(c.Request.Context(), *userID, *req.Percent)
	case req.Amount != nil:
		cart, err = h.cartService.SetDiscountAmount(c.Request.Context(), *userID, int64(*req.Amount*100))
	default:
		response.BadRequest(c, "Either percent or amount is required")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount applied successfully", cart)
}

// SetLineDiscount handles applying a discount to a single cart line
func (h *POSHandler) SetLineDiscount(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	medicineID, err := uuid.Parse(c.Param("medicine_id"))
	if err != nil {
		response.BadRequest(c, "Invalid medicine ID")
		return
	}

	var req struct {
		Percent *float64 `json:"percent"`
		Amount  *float64 `json:"amount"` // decimal, converted to cents
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var cart *service.CartView
	switch {
	case req.Percent != nil:
		cart, err = h.cartService.SetLineDiscountPercent(c.Request.Context(), *userID, medicineID, *req.Percent)
	case req.Amount != nil:
		cart, err = h.cartService.SetLineDiscountAmount(c.Request.Context(), *userID, medicineID, int64(*req.Amount*100))
	default:
		response.BadRequest(c, "Either percent or amount is required")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line discount applied successfully", cart)
}

// Checkout handles submitting the operator's cart as a sale. A checkout
// blocked by drug interaction warnings returns 200 with the warnings so the
// client can prompt the operator to acknowledge and retry.
func (h *POSHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		PatientID               *uuid.UUID `json:"patient_id"`
		PaymentMethod           string     `json:"payment_method"`
		TaxPercent              *float64   `json:"tax_percent"`
		Paid                    float64    `json:"paid"`
		AcknowledgeInteractions bool       `json:"acknowledge_interactions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), &service.CheckoutInput{
		UserID:                  *userID,
		PatientID:               req.PatientID,
		PaymentMethod:           req.PaymentMethod,
		TaxPercent:              req.TaxPercent,
		Paid:                    req.Paid,
		AcknowledgeInteractions: req.AcknowledgeInteractions,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.State == service.CheckoutStateBlocked {
		response.OK(c, "Checkout blocked by interaction warnings", result)
		return
	}

	response.Success(c, http.StatusCreated, "Sale completed successfully", result)
}

// GetCheckoutState handles fetching the operator's current checkout state
func (h *POSHandler) GetCheckoutState(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	response.OK(c, "Checkout state retrieved successfully", h.checkoutService.GetState(*userID))
}

// GetRecentSales handles fetching the operator's completed sales from this
// session, most recent first
func (h *POSHandler) GetRecentSales(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	response.OK(c, "Recent sales retrieved successfully", h.checkoutService.RecentSales(*userID))
}
