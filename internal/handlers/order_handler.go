package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/incogni100x/jltstones/internal/models"
	"github.com/incogni100x/jltstones/internal/services"
)

const orderNotFoundMessage = "No order found with this partner code. Please check and try again."

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder handles POST /functions/v1/create-order. The route sits behind
// RequireAuth; this is the only path that writes orders.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		log.Printf("Failed to create order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"order":   order,
		"message": "Order created successfully",
	})
}

// GetOrder handles GET /functions/v1/get-order?partner_code=X and the POST
// variant with {"partner_code": "X"}. Public: partners track orders with
// nothing but their code.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	partnerCode := c.Query("partner_code")
	if partnerCode == "" && c.Request.Method == http.MethodPost {
		var body struct {
			PartnerCode string `json:"partner_code"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			partnerCode = body.PartnerCode
		}
	}

	if partnerCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Partner code is required"})
		return
	}

	order, err := h.orderService.GetOrderByPartnerCode(c.Request.Context(), partnerCode)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Order not found",
				"message": orderNotFoundMessage,
			})
			return
		}
		log.Printf("Failed to look up order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}

// ListOrders handles GET /api/orders for the admin dashboard, newest first.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.orderService.GetOrders(c.Request.Context(), limit, offset)
	if err != nil {
		log.Printf("Failed to list orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

// GetOrderByNumber handles GET /api/orders/:order_number.
func (h *OrderHandler) GetOrderByNumber(c *gin.Context) {
	orderNumber := c.Param("order_number")

	order, err := h.orderService.GetOrderByNumber(c.Request.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("Failed to get order %s: %v", orderNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}
