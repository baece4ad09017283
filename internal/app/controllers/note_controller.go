package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/app/services"
	"github.com/selin/campushub/internal/middleware"
	"github.com/selin/campushub/internal/pkg/apperrors"
	"github.com/selin/campushub/internal/pkg/filestorage"
)

// NoteController handles note endpoints
type NoteController struct {
	noteService    services.NoteService
	maxUploadBytes int64
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService, maxUploadBytes int64) *NoteController {
	return &NoteController{
		noteService:    noteService,
		maxUploadBytes: maxUploadBytes,
	}
}

// GetAllNotes handles GET /notes
func (c *NoteController) GetAllNotes(ctx *gin.Context) {
	var filter dto.NoteFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.noteService.GetAllNotes(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// GetNoteByID handles GET /notes/:id
func (c *NoteController) GetNoteByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.noteService.GetNoteByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// GetMyNotes handles GET /notes/mine
func (c *NoteController) GetMyNotes(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	notes, err := c.noteService.GetMyNotes(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notes, ""))
}

// CreateNote handles POST /notes. The file rides in the "file" multipart
// field; type and size are checked before anything touches the media store.
func (c *NoteController) CreateNote(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrFileMissing)
		return
	}
	if file.Size > c.maxUploadBytes {
		middleware.HandleAPIError(ctx, apperrors.ErrFileTooLarge)
		return
	}
	if !filestorage.IsAllowedType(file.Header.Get("Content-Type")) {
		middleware.HandleAPIError(ctx, apperrors.ErrFileType)
		return
	}

	resp, err := c.noteService.CreateNote(ctx.Request.Context(), userID, &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Note uploaded"))
}

// UpdateNote handles PUT /notes/:id
func (c *NoteController) UpdateNote(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.noteService.UpdateNote(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Note updated"))
}

// DeleteNote handles DELETE /notes/:id
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.noteService.DeleteNote(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Note deleted"))
}

// Download handles POST /notes/:id/download
func (c *NoteController) Download(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.noteService.RecordDownload(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
