package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

// GetUserID returns the authenticated user's ID from the Gin context, or nil
// when the request carries no valid identity.
func GetUserID(c *gin.Context) *uuid.UUID {
	val, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRoles returns the role names attached by the auth middleware.
func GetUserRoles(c *gin.Context) []string {
	val, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	roles, ok := val.([]string)
	if !ok {
		return nil
	}
	return roles
}

// IsSuperAdmin reports whether the authenticated user holds the super-admin
// role, which bypasses branch scoping.
func IsSuperAdmin(c *gin.Context) bool {
	for _, role := range GetUserRoles(c) {
		if role == "super-admin" {
			return true
		}
	}
	return false
}

// queryPagination reads page/per_page query parameters, leaving range
// clamping to PaginationParams.Validate.
func queryPagination(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}
