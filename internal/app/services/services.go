package services

// Services defined in this package:
// - AuthService: registration, login and profile management
// - NoteService: note uploads, listing and moderation
// - JobService: job postings and applications
// - BookmarkService: per-user note bookmarks
// - AdminService: platform stats and user administration
