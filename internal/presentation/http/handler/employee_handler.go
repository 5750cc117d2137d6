package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storekeep/pos-api/internal/application/service"
	"github.com/storekeep/pos-api/internal/domain/enum"
	"github.com/storekeep/pos-api/internal/presentation/http/dto/request"
	"github.com/storekeep/pos-api/internal/presentation/http/dto/response"
	"github.com/storekeep/pos-api/pkg/pagination"
)

// EmployeeHandler handles staff management HTTP requests
type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// List handles listing employees
func (h *EmployeeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.employeeService.ListEmployees(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Employees retrieved successfully", result)
}

// Create handles creating an employee
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req request.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		response.BadRequest(c, "Invalid birth_date, expected YYYY-MM-DD")
		return
	}

	user, err := h.employeeService.CreateEmployee(c.Request.Context(), &service.CreateEmployeeInput{
		Username:  req.Username,
		Password:  req.Password,
		FullName:  req.FullName,
		Role:      enum.Role(req.Role),
		Salary:    req.Salary,
		StartDate: startDate,
		BirthDate: birthDate,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Employee created successfully", user)
}

// Get handles getting a single employee
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	user, err := h.employeeService.GetEmployee(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee retrieved successfully", user)
}

// Update handles updating an employee
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	var req request.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateEmployeeInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Salary:   req.Salary,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	if req.Role != nil {
		role := enum.Role(*req.Role)
		input.Role = &role
	}
	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		input.StartDate = &startDate
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			response.BadRequest(c, "Invalid birth_date, expected YYYY-MM-DD")
			return
		}
		input.BirthDate = &birthDate
	}

	user, err := h.employeeService.UpdateEmployee(c.Request.Context(), uint(id), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee updated successfully", user)
}

// Delete handles deleting an employee
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee deleted successfully", nil)
}
