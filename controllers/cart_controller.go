package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/cart"
	"storefront/config"
	"storefront/models"
	"storefront/repositories"
	"storefront/services"
	"storefront/utils"
)

type CartController struct {
	products services.ProductFinder
	storage  cart.Storage
}

func NewCartController(products services.ProductFinder, storage cart.Storage) *CartController {
	return &CartController{products: products, storage: storage}
}

func (ctrl *CartController) openCart(c *gin.Context) *cart.Store {
	return cart.Open(ctrl.storage, repositories.CartKey(c.GetInt("user_id")))
}

func cartPayload(store *cart.Store) gin.H {
	subtotal := store.Subtotal()
	return gin.H{
		"lines":              store.Lines(),
		"count":              store.Count(),
		"subtotal":           subtotal,
		"formatted_subtotal": utils.FormatMoney(subtotal, config.AppConfig.Currency),
	}
}

// @Summary Get cart
// @Description Get the authenticated customer's cart with derived totals
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	store := ctrl.openCart(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart retrieved", "data": cartPayload(store)})
}

// @Summary Add cart item
// @Description Add a product to the cart; quantities clamp to 1..99
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.AddCartItemRequest true "Product and quantity"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	product, err := ctrl.products.GetByID(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if !product.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product is not available"})
		return
	}

	price := product.Price
	if product.SalePrice > 0 && product.SalePrice < product.Price {
		price = product.SalePrice
	}

	store := ctrl.openCart(c)
	store.Add(cart.Product{
		ID:    product.ID,
		Slug:  product.Slug,
		Name:  product.Name,
		Price: price,
		Image: product.ImageURL,
	}, req.Quantity)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item added to cart", "data": cartPayload(store)})
}

// @Summary Set cart item quantity
// @Description Replace a cart line's quantity; clamps to 1..99, no-op when absent
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param productId path int true "Product ID"
// @Param body body models.SetCartQuantityRequest true "New quantity"
// @Success 200 {object} models.Response
// @Router /cart/items/{productId} [patch]
func (ctrl *CartController) SetQuantity(c *gin.Context) {
	productID, _ := strconv.Atoi(c.Param("productId"))

	var req models.SetCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	store := ctrl.openCart(c)
	store.SetQuantity(productID, req.Quantity)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart updated", "data": cartPayload(store)})
}

// @Summary Remove cart item
// @Description Remove a product from the cart; no error when absent
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{productId} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	productID, _ := strconv.Atoi(c.Param("productId"))

	store := ctrl.openCart(c)
	store.Remove(productID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed", "data": cartPayload(store)})
}

// @Summary Clear cart
// @Description Remove every line from the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	store := ctrl.openCart(c)
	store.Clear()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared", "data": cartPayload(store)})
}
