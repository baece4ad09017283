package dto

// BranchCount is a per-branch note count.
type BranchCount struct {
	Branch string `json:"branch"`
	Count  int64  `json:"count"`
}

// SemesterCount is a per-semester note count.
type SemesterCount struct {
	Semester int   `json:"semester"`
	Count    int64 `json:"count"`
}

// Contributor is a user ranked by owned note count.
type Contributor struct {
	UserID    int64  `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	NoteCount int64  `json:"noteCount"`
}

// StatsResponse aggregates platform-wide numbers for the admin dashboard.
type StatsResponse struct {
	TotalUsers      int64           `json:"totalUsers"`
	TotalNotes      int64           `json:"totalNotes"`
	TotalViews      int64           `json:"totalViews"`
	TotalDownloads  int64           `json:"totalDownloads"`
	NotesByBranch   []BranchCount   `json:"notesByBranch"`
	NotesBySemester []SemesterCount `json:"notesBySemester"`
	TopContributors []Contributor   `json:"topContributors"`
	RecentNotes     []NoteResponse  `json:"recentNotes"`
}

// AdminUserFilterRequest holds query parameters for the admin user listing.
type AdminUserFilterRequest struct {
	Search string `form:"search"`
	Role   string `form:"role" binding:"omitempty,oneof=student admin"`
	Page   int    `form:"page" binding:"omitempty,gte=1"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

// AdminUserListResponse is a page of users.
type AdminUserListResponse struct {
	Users      []UserProfile  `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// AdminNoteFilterRequest holds query parameters for the admin note listing.
type AdminNoteFilterRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Search string `form:"search"`
	Page   int    `form:"page" binding:"omitempty,gte=1"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
}
