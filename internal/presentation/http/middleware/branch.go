package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	infraRepo "github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/dto/response"
)

// ExtractBranchFromHost extracts the branch slug from a subdomain
// e.g., "downtown.pharmacare.com" -> "downtown"
func ExtractBranchFromHost(host string) (string, error) {
	// Remove port if present
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return "", errors.New("invalid subdomain")
	}
	return parts[0], nil
}

// BranchMiddleware resolves the active branch from the subdomain or the
// X-Branch-ID header, validates membership and adds it to the context
func BranchMiddleware(branchRepo repository.BranchRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		branchID, ok := resolveBranch(c, branchRepo)
		if !ok {
			return
		}
		if branchID == uuid.Nil {
			// Allow requests without a branch; RequireBranch guards the
			// routes that need one
			c.Set("branch_id", uuid.Nil)
			c.Next()
			return
		}

		// Validate user has access to this branch (if authenticated)
		userIDVal, exists := c.Get("user_id")
		if exists {
			userID, ok := userIDVal.(uuid.UUID)
			if ok && userID != uuid.Nil && !IsSuperAdminContext(c) {
				membership, _ := branchRepo.GetMembership(c.Request.Context(), branchID, userID)
				if membership == nil {
					response.Forbidden(c, "Access denied to this branch")
					c.Abort()
					return
				}
			}
		}

		// Set branch ID in Gin context (for middleware/handlers)
		c.Set("branch_id", branchID)

		// Also set branch ID in request context (for services/repositories)
		ctx := infraRepo.WithBranch(c.Request.Context(), branchID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// resolveBranch finds the branch from the subdomain or X-Branch-ID header.
// Returns (uuid.Nil, true) when neither is present.
func resolveBranch(c *gin.Context, branchRepo repository.BranchRepository) (uuid.UUID, bool) {
	if slug, err := ExtractBranchFromHost(c.Request.Host); err == nil {
		branch, err := branchRepo.GetBySlug(c.Request.Context(), slug)
		if err != nil || branch == nil {
			response.NotFound(c, "Branch not found")
			c.Abort()
			return uuid.Nil, false
		}
		return branch.ID, true
	}

	if header := c.GetHeader("X-Branch-ID"); header != "" {
		branchID, err := uuid.Parse(header)
		if err != nil {
			response.BadRequest(c, "Invalid X-Branch-ID header")
			c.Abort()
			return uuid.Nil, false
		}
		branch, err := branchRepo.GetByID(c.Request.Context(), branchID)
		if err != nil || branch == nil {
			response.NotFound(c, "Branch not found")
			c.Abort()
			return uuid.Nil, false
		}
		return branch.ID, true
	}

	return uuid.Nil, true
}

// IsSuperAdminContext reports whether the authenticated user carries the
// super-admin role
func IsSuperAdminContext(c *gin.Context) bool {
	rolesVal, exists := c.Get("user_roles")
	if !exists {
		return false
	}
	roles, ok := rolesVal.([]string)
	if !ok {
		return false
	}
	for _, role := range roles {
		if role == "super-admin" {
			return true
		}
	}
	return false
}

// RequireBranch ensures a valid branch context exists
func RequireBranch() gin.HandlerFunc {
	return func(c *gin.Context) {
		branchID, exists := c.Get("branch_id")
		if !exists {
			response.BadRequest(c, "Branch context required")
			c.Abort()
			return
		}

		id, ok := branchID.(uuid.UUID)
		if !ok || id == uuid.Nil {
			response.BadRequest(c, "Invalid branch context")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetBranchID retrieves the branch ID from gin context
func GetBranchID(c *gin.Context) uuid.UUID {
	branchID, exists := c.Get("branch_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := branchID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
