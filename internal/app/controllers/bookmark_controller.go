package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/app/services"
	"github.com/selin/campushub/internal/middleware"
)

// BookmarkController handles bookmark endpoints
type BookmarkController struct {
	bookmarkService services.BookmarkService
}

// NewBookmarkController creates a new BookmarkController
func NewBookmarkController(bookmarkService services.BookmarkService) *BookmarkController {
	return &BookmarkController{bookmarkService: bookmarkService}
}

// AddBookmark handles POST /bookmarks/:noteId
func (c *BookmarkController) AddBookmark(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	noteID, ok := parseIDParam(ctx, "noteId")
	if !ok {
		return
	}

	resp, err := c.bookmarkService.AddBookmark(ctx.Request.Context(), userID, noteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Note bookmarked"))
}

// RemoveBookmark handles DELETE /bookmarks/:noteId
func (c *BookmarkController) RemoveBookmark(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	noteID, ok := parseIDParam(ctx, "noteId")
	if !ok {
		return
	}

	if err := c.bookmarkService.RemoveBookmark(ctx.Request.Context(), userID, noteID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Bookmark removed"))
}

// GetMyBookmarks handles GET /bookmarks
func (c *BookmarkController) GetMyBookmarks(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.bookmarkService.GetMyBookmarks(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// CheckBookmark handles GET /bookmarks/:noteId/check
func (c *BookmarkController) CheckBookmark(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	noteID, ok := parseIDParam(ctx, "noteId")
	if !ok {
		return
	}

	resp, err := c.bookmarkService.IsBookmarked(ctx.Request.Context(), userID, noteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
