package dto

import "time"

// NoteFilterRequest holds query parameters for listing notes.
type NoteFilterRequest struct {
	Semester int    `form:"semester" binding:"omitempty,gte=1,lte=8"`
	Branch   string `form:"branch"`
	Subject  string `form:"subject"`
	Search   string `form:"search"`
	SortBy   string `form:"sortBy" binding:"omitempty,oneof=recent views downloads title"`
	Page     int    `form:"page" binding:"omitempty,gte=1"`
	Limit    int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

// CreateNoteRequest is the multipart form alongside the uploaded file.
type CreateNoteRequest struct {
	Title       string   `form:"title" binding:"required,min=3,max=200"`
	Description string   `form:"description" binding:"max=2000"`
	Subject     string   `form:"subject" binding:"required,max=100"`
	Semester    int      `form:"semester" binding:"required,gte=1,lte=8"`
	Branch      string   `form:"branch" binding:"required,max=20"`
	Tags        []string `form:"tags" binding:"omitempty,max=10"`
}

// UpdateNoteRequest is a partial note update. Nil fields are unchanged.
type UpdateNoteRequest struct {
	Title       *string   `json:"title,omitempty" binding:"omitempty,min=3,max=200"`
	Description *string   `json:"description,omitempty" binding:"omitempty,max=2000"`
	Subject     *string   `json:"subject,omitempty" binding:"omitempty,max=100"`
	Semester    *int      `json:"semester,omitempty" binding:"omitempty,gte=1,lte=8"`
	Branch      *string   `json:"branch,omitempty" binding:"omitempty,max=20"`
	Status      *string   `json:"status,omitempty" binding:"omitempty,oneof=pending approved rejected"`
	Tags        *[]string `json:"tags,omitempty"`
}

// NoteOwner is the owner profile joined onto a note.
type NoteOwner struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Branch    *string `json:"branch,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// NoteResponse is a note with its owner profile.
type NoteResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Subject      string    `json:"subject"`
	Semester     int       `json:"semester"`
	Branch       string    `json:"branch"`
	FileURL      string    `json:"fileUrl"`
	FileType     string    `json:"fileType"`
	FileSize     int64     `json:"fileSize"`
	ResourceType string    `json:"resourceType"`
	Status       string    `json:"status"`
	Views        int64     `json:"views"`
	Downloads    int64     `json:"downloads"`
	Tags         []string  `json:"tags"`
	Rating       float64   `json:"rating"`
	RatingCount  int       `json:"ratingCount"`
	Owner        NoteOwner `json:"owner"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NoteListResponse is a page of notes.
type NoteListResponse struct {
	Notes      []NoteResponse `json:"notes"`
	Pagination PaginationInfo `json:"pagination"`
}

// DownloadResponse returns the file URL after recording a download.
type DownloadResponse struct {
	FileURL   string `json:"fileUrl"`
	Downloads int64  `json:"downloads"`
}
