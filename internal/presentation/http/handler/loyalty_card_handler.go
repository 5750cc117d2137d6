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

// LoyaltyCardHandler handles loyalty card HTTP requests
type LoyaltyCardHandler struct {
	cardService *service.LoyaltyCardService
}

// NewLoyaltyCardHandler creates a new loyalty card handler
func NewLoyaltyCardHandler(cardService *service.LoyaltyCardService) *LoyaltyCardHandler {
	return &LoyaltyCardHandler{cardService: cardService}
}

// List handles listing loyalty cards
func (h *LoyaltyCardHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.LoyaltyCardFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		SortOrder: c.DefaultQuery("sort_order", "asc"),
	}

	result, err := h.cardService.ListCards(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Loyalty cards retrieved successfully", result)
}

// Create handles registering a loyalty card
func (h *LoyaltyCardHandler) Create(c *gin.Context) {
	var req request.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), &service.CreateCardInput{
		CardNumber: req.CardNumber,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Address:    req.Address,
		Discount:   req.Discount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Loyalty card created successfully", card)
}

// Get handles getting a single loyalty card
func (h *LoyaltyCardHandler) Get(c *gin.Context) {
	card, err := h.cardService.GetCard(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Loyalty card retrieved successfully", card)
}

// Update handles updating a loyalty card
func (h *LoyaltyCardHandler) Update(c *gin.Context) {
	var req request.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.cardService.UpdateCard(c.Request.Context(), c.Param("number"), &service.UpdateCardInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
		Discount: req.Discount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Loyalty card updated successfully", card)
}

// Delete handles deleting a loyalty card
func (h *LoyaltyCardHandler) Delete(c *gin.Context) {
	if err := h.cardService.DeleteCard(c.Request.Context(), c.Param("number")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Loyalty card deleted successfully", nil)
}
