package request

// CreateEmployeeRequest represents an employee creation request
type CreateEmployeeRequest struct {
	Username  string  `json:"username" binding:"required,min=3,max=100"`
	Password  string  `json:"password" binding:"required,min=8"`
	FullName  string  `json:"full_name" binding:"required,min=2,max=255"`
	Role      string  `json:"role" binding:"required"`
	Salary    float64 `json:"salary" binding:"min=0"`
	StartDate string  `json:"start_date" binding:"required"`
	BirthDate string  `json:"birth_date" binding:"required"`
	Phone     string  `json:"phone" binding:"omitempty,max=50"`
	Address   string  `json:"address"`
}

// UpdateEmployeeRequest represents an employee update request
type UpdateEmployeeRequest struct {
	Username  *string  `json:"username" binding:"omitempty,min=3,max=100"`
	Password  *string  `json:"password" binding:"omitempty,min=8"`
	FullName  *string  `json:"full_name" binding:"omitempty,min=2,max=255"`
	Role      *string  `json:"role"`
	Salary    *float64 `json:"salary" binding:"omitempty,min=0"`
	StartDate *string  `json:"start_date"`
	BirthDate *string  `json:"birth_date"`
	Phone     *string  `json:"phone" binding:"omitempty,max=50"`
	Address   *string  `json:"address"`
}
