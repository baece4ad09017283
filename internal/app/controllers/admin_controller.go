package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/app/services"
	"github.com/selin/campushub/internal/middleware"
)

// AdminController handles the admin dashboard and user management endpoints
type AdminController struct {
	adminService services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// GetStats handles GET /admin/stats
func (c *AdminController) GetStats(ctx *gin.Context) {
	resp, err := c.adminService.GetStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// GetAllUsers handles GET /admin/users
func (c *AdminController) GetAllUsers(ctx *gin.Context) {
	var filter dto.AdminUserFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.adminService.GetAllUsers(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// setUserActiveRequest toggles a user's active flag.
type setUserActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetUserActive handles PATCH /admin/users/:id/active
func (c *AdminController) SetUserActive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req setUserActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.adminService.SetUserActive(ctx.Request.Context(), id, *req.Active)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "User activated"
	if !*req.Active {
		message = "User deactivated"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, message))
}

// DeleteUser handles DELETE /admin/users/:id
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteUser(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "User deleted"))
}

// GetAllNotes handles GET /admin/notes
func (c *AdminController) GetAllNotes(ctx *gin.Context) {
	var filter dto.AdminNoteFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.adminService.GetAllNotes(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
