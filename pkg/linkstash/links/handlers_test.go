package links

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"linkstash/pkg/linkstash/auth"
	"linkstash/pkg/linkstash/models"
)

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	api := r.Group("/api")
	api.Use(auth.AuthMiddleware())
	handler.RegisterRoutes(api)

	return r
}

func getAuthHeader(user models.User) string {
	token, _ := auth.GenerateToken(user.ID, user.Email)
	return "Bearer " + token
}

func doJSON(r *gin.Engine, method, path string, body interface{}, user models.User) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateLink(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	tag := createTestTag(t, db, user.ID, "reading")

	deadline := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	resp := doJSON(router, "POST", "/api/links", CreateLinkRequest{
		URL:      "https://example.com/article",
		Title:    "An Article",
		Deadline: &deadline,
		Priority: "High",
		TagIDs:   []uint{tag.ID},
	}, user)

	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created LinkResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, "An Article", created.Title)
	assert.Equal(t, "High", created.Priority)
	assert.Equal(t, "Pending", created.Status)
	assert.Equal(t, []string{"reading"}, created.Tags)

	var count int64
	db.Model(&models.LinkTag{}).Where("link_id = ?", created.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateLinkValidation(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")

	// Missing title
	resp := doJSON(router, "POST", "/api/links", map[string]string{
		"url": "https://example.com",
	}, user)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// Title over 150 characters
	long := make([]byte, 151)
	for i := range long {
		long[i] = 'x'
	}
	resp = doJSON(router, "POST", "/api/links", map[string]string{
		"url":   "https://example.com",
		"title": string(long),
	}, user)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// Malformed URL
	resp = doJSON(router, "POST", "/api/links", map[string]string{
		"url":   "not a url",
		"title": "T",
	}, user)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateLinkRejectsForeignCategoryAndTags(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	other := createTestUser(t, db, "other@example.com")

	otherCategory := models.Category{UserID: other.ID, Name: "Theirs"}
	require.NoError(t, db.Create(&otherCategory).Error)
	otherTag := createTestTag(t, db, other.ID, "theirs")

	resp := doJSON(router, "POST", "/api/links", CreateLinkRequest{
		URL:        "https://example.com",
		Title:      "T",
		CategoryID: &otherCategory.ID,
	}, user)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = doJSON(router, "POST", "/api/links", CreateLinkRequest{
		URL:    "https://example.com",
		Title:  "T",
		TagIDs: []uint{otherTag.ID},
	}, user)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetLinkOwnership(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	link := createTestLink(t, db, models.Link{UserID: bob.ID, Title: "Bob's"})

	// Alice probing Bob's link learns nothing beyond "not found"
	resp := doJSON(router, "GET", fmt.Sprintf("/api/links/%d", link.ID), nil, alice)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = doJSON(router, "GET", fmt.Sprintf("/api/links/%d", link.ID), nil, bob)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestUpdateLinkReplacesTags(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")

	oldTag := createTestTag(t, db, user.ID, "old")
	newTag := createTestTag(t, db, user.ID, "new")
	link := createTestLink(t, db, models.Link{UserID: user.ID, Title: "T"})
	tagLink(t, db, link.ID, oldTag.ID)

	tagIDs := []uint{newTag.ID}
	resp := doJSON(router, "PUT", fmt.Sprintf("/api/links/%d", link.ID), UpdateLinkRequest{
		Status: "Completed",
		TagIDs: &tagIDs,
	}, user)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated LinkResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, "Completed", updated.Status)
	assert.Equal(t, []string{"new"}, updated.Tags)

	var rows []models.LinkTag
	db.Where("link_id = ?", link.ID).Find(&rows)
	require.Len(t, rows, 1)
	assert.Equal(t, newTag.ID, rows[0].TagID)
}

func TestUpdateLinkWithoutTagsKeepsTags(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")

	tag := createTestTag(t, db, user.ID, "keep")
	link := createTestLink(t, db, models.Link{UserID: user.ID, Title: "T"})
	tagLink(t, db, link.ID, tag.ID)

	resp := doJSON(router, "PUT", fmt.Sprintf("/api/links/%d", link.ID), UpdateLinkRequest{
		Title: "Renamed",
	}, user)
	require.Equal(t, http.StatusOK, resp.Code)

	var count int64
	db.Model(&models.LinkTag{}).Where("link_id = ?", link.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteLinkCascades(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")

	tag := createTestTag(t, db, user.ID, "doomed")
	link := createTestLink(t, db, models.Link{UserID: user.ID, Title: "T"})
	tagLink(t, db, link.ID, tag.ID)
	reminder := models.Reminder{UserID: user.ID, LinkID: link.ID, ReminderDate: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(&reminder).Error)

	resp := doJSON(router, "DELETE", fmt.Sprintf("/api/links/%d", link.ID), nil, user)
	require.Equal(t, http.StatusNoContent, resp.Code)

	var linkCount, linkTagCount, reminderCount int64
	db.Model(&models.Link{}).Where("id = ?", link.ID).Count(&linkCount)
	db.Model(&models.LinkTag{}).Where("link_id = ?", link.ID).Count(&linkTagCount)
	db.Model(&models.Reminder{}).Where("link_id = ?", link.ID).Count(&reminderCount)
	assert.Zero(t, linkCount)
	assert.Zero(t, linkTagCount)
	assert.Zero(t, reminderCount)

	// The tag itself survives
	var tagCount int64
	db.Model(&models.Tag{}).Where("id = ?", tag.ID).Count(&tagCount)
	assert.Equal(t, int64(1), tagCount)
}

func TestListLinksHTTP(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")

	tag := createTestTag(t, db, user.ID, "work")
	tagged := createTestLink(t, db, models.Link{UserID: user.ID, Title: "Tagged", Status: models.StatusApplied})
	createTestLink(t, db, models.Link{UserID: user.ID, Title: "Plain"})
	tagLink(t, db, tagged.ID, tag.ID)

	resp := doJSON(router, "GET", "/api/links?status=Applied&tags=work", nil, user)
	require.Equal(t, http.StatusOK, resp.Code)

	var page []LinkResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	require.Len(t, page, 1)
	assert.Equal(t, tagged.ID, page[0].ID)

	// Invalid enum surfaces as a field-level validation error
	resp = doJSON(router, "GET", "/api/links?sort=clicks", nil, user)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "sort")
}

func TestListLinksRequiresAuth(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/api/links", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
