package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/config"
	"storefront/libs"
	"storefront/models"
	"storefront/repositories"
	"storefront/services"
	"storefront/utils"
)

type ProductController struct {
	productRepo    *repositories.ProductRepository
	productService *services.ProductService
}

func NewProductController() *ProductController {
	repo := repositories.NewProductRepository()
	return &ProductController{
		productRepo:    repo,
		productService: services.NewProductService(repo),
	}
}

func getProductCacheKey(page, limit int) string {
	return fmt.Sprintf("products_list_p%d_l%d", page, limit)
}

func invalidateProductCache() {
	if config.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := config.RedisClient.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		config.RedisClient.Del(ctx, iter.Val())
	}
}

// @Summary Get all products
// @Description Get paginated list of active products
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	cacheKey := getProductCacheKey(page, limit)
	ctx := context.Background()

	if config.RedisClient != nil {
		cached, err := config.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	products, total, err := ctrl.productRepo.GetAllProducts(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get products"})
		return
	}

	response := models.PaginationResponse{
		Success: true,
		Message: "Products retrieved",
		Data:    products,
		Meta: models.PaginationMeta{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}

	if config.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		config.RedisClient.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Filter products
// @Description Filter products by search, category slug, price range and sort order
// @Tags Products
// @Produce json
// @Param search query string false "Search by product name"
// @Param category query string false "Filter by category slug"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param sort query string false "Sort order" Enums(name_asc, name_desc, price_asc, price_desc)
// @Success 200 {object} models.Response
// @Router /products/filter [get]
func (ctrl *ProductController) FilterProducts(c *gin.Context) {
	minPrice, _ := strconv.ParseFloat(c.Query("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)

	products, err := ctrl.productRepo.FilterProducts(repositories.ProductFilters{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Sort:     strings.TrimSpace(c.Query("sort")),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to filter products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Products filtered",
		"data":    products,
		"total":   len(products),
	})
}

// @Summary Get product by slug
// @Description Get product details with variants and computed discount
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{slug} [get]
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	product, err := ctrl.productRepo.GetBySlug(slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	selling := product.Price
	if product.SalePrice > 0 && product.SalePrice < product.Price {
		selling = product.SalePrice
	}
	discount := utils.ComputeDiscount(product.Price, selling)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product retrieved",
		"data": gin.H{
			"product":         product,
			"discount":        discount,
			"formatted_price": utils.FormatMoney(product.Price, config.AppConfig.Currency),
			"formatted_sale":  utils.FormatMoney(selling, config.AppConfig.Currency),
			"seo_score":       product.SeoScore,
		},
	})
}

// @Summary Create product
// @Description Create new product with attribute sets and generated variants (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.ProductRequest true "Product payload"
// @Success 201 {object} models.Response
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if req.Price < 0 || req.SalePrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid price"})
		return
	}

	product, err := ctrl.productService.CreateProduct(req)
	if err != nil {
		if errors.Is(err, services.ErrCategoryMissing) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	invalidateProductCache()

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product created successfully", "data": product})
}

// @Summary Update product
// @Description Update product; variants are regenerated and overrides carried forward (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param body body models.ProductRequest true "Product payload"
// @Success 200 {object} models.Response
// @Router /admin/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		case errors.Is(err, services.ErrCategoryMissing):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product"})
		}
		return
	}

	invalidateProductCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated successfully", "data": product})
}

// @Summary Delete product
// @Description Delete product permanently (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product"})
		return
	}

	invalidateProductCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted permanently"})
}

// @Summary Preview variants
// @Description Generate the variant list for a draft product form without saving (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.VariantPreviewRequest true "Attribute sets and current overrides"
// @Success 200 {object} models.Response
// @Router /admin/products/variants/preview [post]
func (ctrl *ProductController) PreviewVariants(c *gin.Context) {
	var req models.VariantPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	variants := ctrl.productService.PreviewVariants(req)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Variants generated",
		"data":    variants,
		"total":   len(variants),
	})
}

// @Summary Upload product image
// @Description Upload a product image; stored on cloudinary with local fallback (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param image formData file true "Product image"
// @Success 200 {object} models.Response
// @Router /admin/products/{id}/image [post]
func (ctrl *ProductController) UploadProductImage(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	product, err := ctrl.productRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image file is required"})
		return
	}

	localPath, err := utils.UploadFile(c, file, "products")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	imageURL := "/uploads/" + filepath.ToSlash(localPath)
	if url, err := libs.UploadToCloudinary(filepath.Join(config.AppConfig.UploadDir, localPath)); err == nil {
		imageURL = url
		utils.DeleteFile(localPath)
	}

	product.ImageURL = imageURL
	if err := ctrl.productRepo.Update(product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save image"})
		return
	}

	invalidateProductCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image uploaded", "data": gin.H{"image_url": imageURL}})
}
