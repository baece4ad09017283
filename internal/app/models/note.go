package models

import "time"

// Note represents the structure for a study note in the database.
type Note struct {
	ID           int64        `db:"id" json:"id"`
	Title        string       `db:"title" json:"title"`
	Description  string       `db:"description" json:"description"`
	Subject      string       `db:"subject" json:"subject"`
	Semester     int          `db:"semester" json:"semester"` // 1-8
	Branch       string       `db:"branch" json:"branch"`
	FileURL      string       `db:"file_url" json:"fileUrl"`
	FileType     string       `db:"file_type" json:"fileType"` // MIME type
	FileSize     int64        `db:"file_size" json:"fileSize"`
	StorageKey   string       `db:"storage_key" json:"-"` // opaque media-store identifier
	ResourceType ResourceType `db:"resource_type" json:"resourceType"`
	UserID       int64        `db:"user_id" json:"userId"`
	Status       NoteStatus   `db:"status" json:"status"`
	Views        int64        `db:"views" json:"views"`
	Downloads    int64        `db:"downloads" json:"downloads"`
	Tags         []string     `db:"tags" json:"tags"`
	Rating       float64      `db:"rating" json:"rating"`
	RatingCount  int          `db:"rating_count" json:"ratingCount"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`
}
