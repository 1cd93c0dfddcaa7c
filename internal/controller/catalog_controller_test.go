package controller

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"cosmic_quiz_backend/internal/config"
	"cosmic_quiz_backend/internal/repository"
	"cosmic_quiz_backend/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	storageCfg := &config.Config{}
	storageCfg.Storage.Type = "local"
	storageCfg.Storage.LocalPath = t.TempDir()

	ctrl := NewCatalogController(
		service.NewCategoryService(repository.NewCategoryRepository(db)),
		service.NewBadgeService(repository.NewBadgeRepository(db)),
		service.NewStorageService(storageCfg),
	)

	router := gin.New()
	router.GET("/api/badges", ctrl.ListBadges)
	router.POST("/api/admin/badges", ctrl.CreateBadge)
	router.POST("/api/admin/badges/:id/icon", ctrl.UploadBadgeIcon)
	return router, mock
}

func multipartIcon(t *testing.T, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="icon"; filename="icon.png"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestListBadgesEndpoint(t *testing.T) {
	router, mock := newCatalogRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM `badges`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "required_points"}).
			AddRow("b-10", "Rising Star", 10))

	req := httptest.NewRequest(http.MethodGet, "/api/badges", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rising Star")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBadgeEndpoint(t *testing.T) {
	router, mock := newCatalogRouter(t)

	mock.ExpectExec("INSERT INTO `badges`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := postJSON(router, "/api/admin/badges",
		`{"name":"Moonwalker","requiredPoints":75,"color":"#ddd"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Moonwalker")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBadgeEndpointRejectsMissingName(t *testing.T) {
	router, _ := newCatalogRouter(t)

	rec := postJSON(router, "/api/admin/badges", `{"requiredPoints":75}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadBadgeIconRejectsNonImage(t *testing.T) {
	router, _ := newCatalogRouter(t)

	body, contentType := multipartIcon(t, "text/plain")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/badges/b1/icon", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadBadgeIconUnknownBadge(t *testing.T) {
	router, mock := newCatalogRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM `badges`").
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	body, contentType := multipartIcon(t, "image/png")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/badges/missing/icon", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
