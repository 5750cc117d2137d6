package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storekeep/pos-api/internal/application/service"
	"github.com/storekeep/pos-api/internal/domain/repository"
	"github.com/storekeep/pos-api/internal/presentation/http/dto/request"
	"github.com/storekeep/pos-api/internal/presentation/http/dto/response"
	"github.com/storekeep/pos-api/pkg/pagination"
)

// StoreItemHandler handles inventory HTTP requests
type StoreItemHandler struct {
	storeItemService *service.StoreItemService
}

// NewStoreItemHandler creates a new store item handler
func NewStoreItemHandler(storeItemService *service.StoreItemService) *StoreItemHandler {
	return &StoreItemHandler{storeItemService: storeItemService}
}

// List handles listing store items
func (h *StoreItemHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.StoreItemFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64); err == nil {
			id := uint(categoryID)
			params.CategoryID = &id
		}
	}

	if promotionalStr := c.Query("promotional"); promotionalStr != "" {
		if promotional, err := strconv.ParseBool(promotionalStr); err == nil {
			params.Promotional = &promotional
		}
	}

	result, err := h.storeItemService.ListStoreItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Store items retrieved successfully", result)
}

// Create handles registering a store item
func (h *StoreItemHandler) Create(c *gin.Context) {
	var req request.CreateStoreItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.storeItemService.CreateStoreItem(c.Request.Context(), &service.CreateStoreItemInput{
		UPC:           req.UPC,
		ProductID:     req.ProductID,
		SalePrice:     req.SalePrice,
		Quantity:      req.Quantity,
		IsPromotional: req.IsPromotional,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Store item created successfully", item)
}

// Get handles getting a single store item by UPC
func (h *StoreItemHandler) Get(c *gin.Context) {
	item, err := h.storeItemService.GetStoreItem(c.Request.Context(), c.Param("upc"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store item retrieved successfully", item)
}

// Update handles updating a store item
func (h *StoreItemHandler) Update(c *gin.Context) {
	var req request.UpdateStoreItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.storeItemService.UpdateStoreItem(c.Request.Context(), c.Param("upc"), &service.UpdateStoreItemInput{
		ProductID:     req.ProductID,
		SalePrice:     req.SalePrice,
		Quantity:      req.Quantity,
		IsPromotional: req.IsPromotional,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store item updated successfully", item)
}

// Delete handles deleting a store item
func (h *StoreItemHandler) Delete(c *gin.Context) {
	if err := h.storeItemService.DeleteStoreItem(c.Request.Context(), c.Param("upc")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store item deleted successfully", nil)
}
