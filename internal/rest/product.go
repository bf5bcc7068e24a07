package rest

import (
	"context"
	"encoding/json"
	"errors"
	"myStyleCrate/domain"
	"myStyleCrate/pkg/logger"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type ProductService interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProducts(ctx context.Context, filter domain.ProductFilter, limit int) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id uint64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

// SizeList accepts both wire shapes for product sizes: a bare list of
// labels ("sizes": ["M", "L"]) and the full object form
// ("sizes": [{"label": "M", "quantity": 3}]). Bare labels get quantity 1.
type SizeList []domain.SizeOption

func (s *SizeList) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err == nil {
		out := make([]domain.SizeOption, 0, len(labels))
		for _, label := range labels {
			out = append(out, domain.SizeOption{Label: label, Quantity: 1})
		}
		*s = out
		return nil
	}

	var options []domain.SizeOption
	if err := json.Unmarshal(data, &options); err != nil {
		return errors.New("sizes must be a list of labels or size objects")
	}
	*s = options
	return nil
}

type CreateProductRequest struct {
	Name         string   `json:"name" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	Condition    string   `json:"condition"`
	Colors       []string `json:"colors"`
	Tags         []string `json:"tags"`
	Sizes        SizeList `json:"sizes" validate:"required"`
	Images       []string `json:"images"`
	ModelURL     string   `json:"model_url"`
	IsSecondHand bool     `json:"is_second_hand"`
	RewardPoints int      `json:"reward_points" validate:"gte=0"`
	SKU          string   `json:"sku"`
}

type UpdateProductRequest struct {
	Name         string   `json:"name" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	Condition    string   `json:"condition"`
	Colors       []string `json:"colors"`
	Tags         []string `json:"tags"`
	Sizes        SizeList `json:"sizes" validate:"required"`
	Images       []string `json:"images"`
	ModelURL     string   `json:"model_url"`
	IsSecondHand bool     `json:"is_second_hand"`
	RewardPoints int      `json:"reward_points" validate:"gte=0"`
	Status       string   `json:"status"`
	SKU          string   `json:"sku"`
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	filter := domain.ProductFilter{Status: domain.ProductStatusActive}

	if raw := c.QueryParam("category"); raw != "" {
		filter.Categories = strings.Split(raw, ",")
	}
	if raw := c.QueryParam("price_min"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid price_min"})
		}
		filter.PriceMin = &v
	}
	if raw := c.QueryParam("price_max"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid price_max"})
		}
		filter.PriceMax = &v
	}
	if raw := c.QueryParam("second_hand"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid second_hand"})
		}
		filter.IsSecondHand = &v
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetProducts(ctx, filter, limit)
	if err != nil {
		logger.Error("Failed to find products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get products",
		"products": products,
	})
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productIdStr := c.Param("id")

	productId, err := strconv.ParseUint(productIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProductByID(ctx, productId)
	if err != nil {
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find product by id",
		"product": product,
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := &domain.Product{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		Price:        req.Price,
		Condition:    req.Condition,
		Colors:       datatypes.NewJSONSlice(req.Colors),
		Tags:         datatypes.NewJSONSlice(req.Tags),
		Sizes:        datatypes.NewJSONSlice([]domain.SizeOption(req.Sizes)),
		Images:       datatypes.NewJSONSlice(req.Images),
		ModelURL:     req.ModelURL,
		IsSecondHand: req.IsSecondHand,
		RewardPoints: req.RewardPoints,
		SKU:          req.SKU,
	}

	newProduct, err := h.productService.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to create Product", err)
		if domain.IsConfigError(err) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		if strings.Contains(err.Error(), "required") ||
			strings.Contains(err.Error(), "must be greater than") {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product successfully created",
		"product": newProduct,
	})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productIdStr := c.Param("id")

	productId, err := strconv.ParseUint(productIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid Product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := &domain.Product{
		ID:           productId,
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		Price:        req.Price,
		Condition:    req.Condition,
		Colors:       datatypes.NewJSONSlice(req.Colors),
		Tags:         datatypes.NewJSONSlice(req.Tags),
		Sizes:        datatypes.NewJSONSlice([]domain.SizeOption(req.Sizes)),
		Images:       datatypes.NewJSONSlice(req.Images),
		ModelURL:     req.ModelURL,
		IsSecondHand: req.IsSecondHand,
		RewardPoints: req.RewardPoints,
		Status:       req.Status,
		SKU:          req.SKU,
	}

	updateProduct, err := h.productService.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to update Product", err)
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if domain.IsConfigError(err) ||
			strings.Contains(err.Error(), "required") ||
			strings.Contains(err.Error(), "must be greater than") {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update product",
		"product": updateProduct,
	})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productIdStr := c.Param("id")

	productId, err := strconv.ParseUint(productIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid Product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.productService.DeleteProduct(ctx, productId)
	if err != nil {
		logger.Error("Failed to delete Product", err)
		if err.Error() == "product not found" || err.Error() == "invalid product id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "product successfully deleted",
		"product_id": productId,
	})
}
