package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/storekeep/pos-api/internal/domain/enum"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uint {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uint)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.Role {
	roleVal, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	role, ok := roleVal.(enum.Role)
	if !ok {
		return ""
	}
	return role
}

// IsManager checks if the requesting user has the manager role
func IsManager(c *gin.Context) bool {
	return GetUserRole(c) == enum.RoleManager
}
