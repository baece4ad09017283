package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/pkg/apperrors"
)

type fakeBookmarkService struct {
	addResp   *dto.BookmarkedNote
	addErr    error
	removeErr error
	listResp  *dto.BookmarkListResponse
	listErr   error
	checkResp *dto.BookmarkCheckResponse
	checkErr  error
}

func (f *fakeBookmarkService) AddBookmark(_ context.Context, _, _ int64) (*dto.BookmarkedNote, error) {
	return f.addResp, f.addErr
}

func (f *fakeBookmarkService) RemoveBookmark(_ context.Context, _, _ int64) error {
	return f.removeErr
}

func (f *fakeBookmarkService) GetMyBookmarks(_ context.Context, _ int64) (*dto.BookmarkListResponse, error) {
	return f.listResp, f.listErr
}

func (f *fakeBookmarkService) IsBookmarked(_ context.Context, _, _ int64) (*dto.BookmarkCheckResponse, error) {
	return f.checkResp, f.checkErr
}

func newBookmarkRouter(svc *fakeBookmarkService) *gin.Engine {
	controller := NewBookmarkController(svc)
	router := gin.New()
	router.GET("/bookmarks", asAuthenticated(1), controller.GetMyBookmarks)
	router.POST("/bookmarks/:noteId", asAuthenticated(1), controller.AddBookmark)
	router.DELETE("/bookmarks/:noteId", asAuthenticated(1), controller.RemoveBookmark)
	router.GET("/bookmarks/check/:noteId", asAuthenticated(1), controller.CheckBookmark)
	return router
}

func TestAddBookmarkCreated(t *testing.T) {
	svc := &fakeBookmarkService{
		addResp: &dto.BookmarkedNote{BookmarkID: 9, Note: dto.NoteResponse{ID: 3, Title: "Algoritma Notlari"}},
	}
	router := newBookmarkRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bookmarks/3", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Algoritma Notlari")
}

func TestAddBookmarkDuplicate(t *testing.T) {
	router := newBookmarkRouter(&fakeBookmarkService{addErr: apperrors.ErrAlreadyBookmarked})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bookmarks/3", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddBookmarkNoteMissing(t *testing.T) {
	router := newBookmarkRouter(&fakeBookmarkService{addErr: apperrors.ErrNoteNotFound})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bookmarks/99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveBookmarkMissing(t *testing.T) {
	router := newBookmarkRouter(&fakeBookmarkService{removeErr: apperrors.ErrBookmarkNotFound})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/bookmarks/3", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMyBookmarksEmpty(t *testing.T) {
	router := newBookmarkRouter(&fakeBookmarkService{
		listResp: &dto.BookmarkListResponse{Bookmarks: []dto.BookmarkedNote{}, Total: 0},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookmarks", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)
}

func TestCheckBookmark(t *testing.T) {
	router := newBookmarkRouter(&fakeBookmarkService{
		checkResp: &dto.BookmarkCheckResponse{Bookmarked: true},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookmarks/check/3", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bookmarked":true`)
}

func TestBookmarkInvalidNoteID(t *testing.T) {
	router := newBookmarkRouter(&fakeBookmarkService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bookmarks/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
