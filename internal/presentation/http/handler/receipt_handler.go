package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storekeep/pos-api/internal/application/service"
	"github.com/storekeep/pos-api/internal/domain/repository"
	"github.com/storekeep/pos-api/internal/presentation/http/dto/request"
	"github.com/storekeep/pos-api/internal/presentation/http/dto/response"
	"github.com/storekeep/pos-api/pkg/pagination"
)

// ReceiptHandler handles sale and receipt HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Create handles checking out a sale
func (h *ReceiptHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.SaleItemInput, len(req.Items))
	for i, line := range req.Items {
		items[i] = service.SaleItemInput{
			UPC:      line.UPC,
			Quantity: line.Quantity,
		}
	}

	receipt, err := h.receiptService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		CashierID:  *userID,
		CardNumber: req.CardNumber,
		Items:      items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", receipt)
}

// Get handles getting a single receipt. Cashiers may only read their own.
func (h *ReceiptHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), uint(id), *userID, IsManager(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// List handles listing receipts newest first. Cashiers see only their own
// receipts; managers may filter by any cashier.
func (h *ReceiptHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ReceiptFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if IsManager(c) {
		if cashierIDStr := c.Query("cashier_id"); cashierIDStr != "" {
			if cashierID, err := strconv.ParseUint(cashierIDStr, 10, 64); err == nil {
				id := uint(cashierID)
				params.CashierID = &id
			}
		}
	} else {
		params.CashierID = userID
	}

	applyDateRange(c, &params.StartDate, &params.EndDate)

	result, err := h.receiptService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}

// Delete handles deleting a receipt. Sold stock is not restored.
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt deleted successfully", nil)
}

// TotalSales handles the sales sum analytics query. Cashiers are scoped to
// their own receipts.
func (h *ReceiptHandler) TotalSales(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := &repository.SalesFilterParams{}

	if IsManager(c) {
		if cashierIDStr := c.Query("cashier_id"); cashierIDStr != "" {
			if cashierID, err := strconv.ParseUint(cashierIDStr, 10, 64); err == nil {
				id := uint(cashierID)
				params.CashierID = &id
			}
		}
	} else {
		params.CashierID = userID
	}

	applyDateRange(c, &params.StartDate, &params.EndDate)

	sum, err := h.receiptService.TotalSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales total retrieved successfully", gin.H{
		"total_sum": float64(sum) / 100,
	})
}

// QuantitySold handles the units-sold analytics query for one store item
func (h *ReceiptHandler) QuantitySold(c *gin.Context) {
	params := &repository.SalesFilterParams{
		UPC: c.Query("upc"),
	}

	if cashierIDStr := c.Query("cashier_id"); cashierIDStr != "" {
		if cashierID, err := strconv.ParseUint(cashierIDStr, 10, 64); err == nil {
			id := uint(cashierID)
			params.CashierID = &id
		}
	}

	applyDateRange(c, &params.StartDate, &params.EndDate)

	sum, err := h.receiptService.QuantitySold(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quantity sold retrieved successfully", gin.H{
		"upc":      params.UPC,
		"quantity": sum,
	})
}

// applyDateRange parses optional start_date/end_date query parameters. The
// end date is inclusive of the whole day.
func applyDateRange(c *gin.Context, startDate, endDate **time.Time) {
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if parsed, err := time.Parse("2006-01-02", startDateStr); err == nil {
			*startDate = &parsed
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if parsed, err := time.Parse("2006-01-02", endDateStr); err == nil {
			end := parsed.Add(24*time.Hour - time.Nanosecond)
			*endDate = &end
		}
	}
}
