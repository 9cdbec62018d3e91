package controllers

import (
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/cart"
	"storefront/models"
	"storefront/repositories"
	"storefront/services"
)

type OrderController struct {
	orderRepo       *repositories.OrderRepository
	checkoutService *services.CheckoutService
}

func NewOrderController(storage cart.Storage) *OrderController {
	orderRepo := repositories.NewOrderRepository()
	productRepo := repositories.NewProductRepository()
	userRepo := repositories.NewUserRepository()

	var mailer services.Mailer
	if emailService, err := models.NewEmailService(); err != nil {
		log.Println("Email disabled:", err)
	} else {
		mailer = emailService
	}

	return &OrderController{
		orderRepo:       orderRepo,
		checkoutService: services.NewCheckoutService(orderRepo, productRepo, userRepo, storage, mailer),
	}
}

func (ctrl *OrderController) getPaginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// @Summary Place order
// @Description Create an order from the customer's cart and clear it
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CheckoutRequest false "Checkout payload"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	userID := c.GetInt("user_id")

	// Body is optional; an absent body just means no notes.
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	order, err := ctrl.checkoutService.PlaceOrder(userID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
		case errors.Is(err, repositories.ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Insufficient stock"})
		case errors.Is(err, repositories.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A cart item is no longer available"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order created successfully", "data": order})
}

// @Summary Get order history
// @Description Get the authenticated customer's orders, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginationResponse
// @Router /orders/history [get]
func (ctrl *OrderController) GetHistory(c *gin.Context) {
	userID := c.GetInt("user_id")
	page, limit := ctrl.getPaginationParams(c, 10)

	orders, total, err := ctrl.orderRepo.GetByUser(userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get orders"})
		return
	}

	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved",
		Data:    orders,
		Meta: models.PaginationMeta{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// @Summary Get all orders
// @Description Get all orders with pagination (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status"
// @Success 200 {object} models.PaginationResponse
// @Router /admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, limit := ctrl.getPaginationParams(c, 10)
	status := c.Query("status")

	orders, total, err := ctrl.orderRepo.GetAll(page, limit, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get orders"})
		return
	}

	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved",
		Data:    orders,
		Meta: models.PaginationMeta{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// @Summary Get order by ID
// @Description Get order details with items (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	order, err := ctrl.orderRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order retrieved", "data": order})
}

// @Summary Update order status
// @Description Update order status; cancelling restores stock (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param body body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if err := ctrl.orderRepo.UpdateStatus(id, req.Status); err != nil {
		switch {
		case errors.Is(err, repositories.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		case errors.Is(err, repositories.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Invalid status transition", "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated"})
}

// @Summary Get dashboard
// @Description Get admin dashboard statistics (Admin)
// @Tags Admin - Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/dashboard [get]
func (ctrl *OrderController) GetDashboard(c *gin.Context) {
	stats, err := ctrl.orderRepo.GetDashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Dashboard retrieved", "data": stats})
}
