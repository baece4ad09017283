package dto

import "time"

// BookmarkedNote is a bookmark joined with its target note and owner.
type BookmarkedNote struct {
	BookmarkID   int64        `json:"bookmarkId"`
	BookmarkedAt time.Time    `json:"bookmarkedAt"`
	Note         NoteResponse `json:"note"`
}

// BookmarkListResponse is the caller's bookmarks.
type BookmarkListResponse struct {
	Bookmarks []BookmarkedNote `json:"bookmarks"`
	Total     int              `json:"total"`
}

// BookmarkCheckResponse is the boolean existence check.
type BookmarkCheckResponse struct {
	Bookmarked bool `json:"bookmarked"`
}
