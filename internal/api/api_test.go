package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honestspace/server/internal/activity"
	"honestspace/server/internal/auth"
	"honestspace/server/internal/database"
	"honestspace/server/internal/models"
)

type testServer struct {
	router *gin.Engine
	db     *database.Database
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewTestDB()
	require.NoError(t, err)
	require.NoError(t, db.MigrateSchema())
	require.NoError(t, db.SeedCatalogs())

	logger := logrus.New()
	jwtService := auth.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	queue := activity.NewQueue(16, logger)
	queue.Subscribe(db.InsertActivities)
	queue.Start()
	t.Cleanup(func() { queue.Close() })

	handler := NewHandler(db, logger, jwtService, auth.NewMemoryBlacklist(), queue)

	router := gin.New()
	SetupRoutes(router, handler)
	return &testServer{router: router, db: db}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

var emailSeq int

func (ts *testServer) registerAndLogin(t *testing.T, role string) (string, uint) {
	t.Helper()
	emailSeq++
	email := fmt.Sprintf("api%d@example.com", emailSeq)

	w := ts.do(t, http.MethodPost, "/api/accounts/register", "", gin.H{
		"email":            email,
		"username":         fmt.Sprintf("api%d", emailSeq),
		"first_name":       "Api",
		"last_name":        "Tester",
		"password":         "strong-password",
		"password_confirm": "strong-password",
		"user_type_name":   role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = ts.do(t, http.MethodPost, "/api/auth/jwt/create", "", gin.H{
		"email":    email,
		"password": "strong-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	return pair.Access, created.ID
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/accounts/register", "", gin.H{
		"email":            "mismatch@example.com",
		"username":         "mismatch",
		"first_name":       "A",
		"last_name":        "B",
		"password":         "strong-password",
		"password_confirm": "different-password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Admin accounts cannot be self-assigned
	w = ts.do(t, http.MethodPost, "/api/accounts/register", "", gin.H{
		"email":            "admin@example.com",
		"username":         "admin",
		"first_name":       "A",
		"last_name":        "B",
		"password":         "strong-password",
		"password_confirm": "strong-password",
		"user_type_name":   "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)

	body := gin.H{
		"email":            "dup@example.com",
		"username":         "dup1",
		"first_name":       "A",
		"last_name":        "B",
		"password":         "strong-password",
		"password_confirm": "strong-password",
	}
	w := ts.do(t, http.MethodPost, "/api/accounts/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	body["username"] = "dup2"
	w = ts.do(t, http.MethodPost, "/api/accounts/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/accounts/register", "", gin.H{
		"email":            "login@example.com",
		"username":         "login",
		"first_name":       "A",
		"last_name":        "B",
		"password":         "strong-password",
		"password_confirm": "strong-password",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPost, "/api/auth/jwt/create", "", gin.H{
		"email":    "login@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown accounts fail the same way
	w = ts.do(t, http.MethodPost, "/api/auth/jwt/create", "", gin.H{
		"email":    "ghost@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.registerAndLogin(t, "tenant")

	w := ts.do(t, http.MethodGet, "/api/accounts/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, models.RoleTenant, user.Role)

	w = ts.do(t, http.MethodPut, "/api/accounts/profile", token, gin.H{
		"bio":  "Looking for a two bedroom",
		"city": "Nairobi",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "Looking for a two bedroom", user.Bio)

	// No token, no profile
	w = ts.do(t, http.MethodGet, "/api/accounts/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshAndBlacklist(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/accounts/register", "", gin.H{
		"email":            "refresh@example.com",
		"username":         "refresh",
		"first_name":       "A",
		"last_name":        "B",
		"password":         "strong-password",
		"password_confirm": "strong-password",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPost, "/api/auth/jwt/create", "", gin.H{
		"email":    "refresh@example.com",
		"password": "strong-password",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))

	w = ts.do(t, http.MethodPost, "/api/auth/jwt/refresh", "", gin.H{"refresh": pair.Refresh})
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/auth/jwt/blacklist", "", gin.H{"refresh": pair.Refresh})
	require.Equal(t, http.StatusOK, w.Code)

	// The blacklisted refresh token no longer refreshes
	w = ts.do(t, http.MethodPost, "/api/auth/jwt/refresh", "", gin.H{"refresh": pair.Refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// An access token is never accepted as a refresh token
	w = ts.do(t, http.MethodPost, "/api/auth/jwt/refresh", "", gin.H{"refresh": pair.Access})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateListingRequiresLandlord(t *testing.T) {
	ts := newTestServer(t)
	tenantToken, _ := ts.registerAndLogin(t, "tenant")

	w := ts.do(t, http.MethodPost, "/api/properties", tenantToken, gin.H{
		"title":             "Tenant listing",
		"description":       "should fail",
		"property_type_id":  1,
		"rent_amount":       10000,
		"availability_date": time.Now().Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPost, "/api/properties", "", gin.H{"title": "anon"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListingLifecycleOverAPI(t *testing.T) {
	ts := newTestServer(t)
	landlordToken, landlordID := ts.registerAndLogin(t, "landlord")

	w := ts.do(t, http.MethodPost, "/api/properties", landlordToken, gin.H{
		"title":             "Two bedroom in Kilimani",
		"description":       "Bright and airy",
		"property_type_id":  1,
		"rent_amount":       45000,
		"availability_date": time.Now().Add(-time.Hour).Format(time.RFC3339),
		"google_maps_link":  "https://maps.google.com/@-1.286389,36.817223,15z",
		"amenity_ids":       []uint{99999},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Property          models.Property `json:"property"`
		SkippedAmenityIDs []uint          `json:"skipped_amenities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, landlordID, created.Property.LandlordID)
	assert.Equal(t, []uint{99999}, created.SkippedAmenityIDs)
	propertyID := created.Property.ID

	// Public detail works without a token, by id or by slug
	w = ts.do(t, http.MethodGet, "/api/properties/"+propertyID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodGet, "/api/properties/"+created.Property.Slug, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Another landlord cannot edit it
	otherToken, _ := ts.registerAndLogin(t, "landlord")
	w = ts.do(t, http.MethodPut, "/api/properties/"+propertyID, otherToken, gin.H{
		"title":             "Hijacked",
		"description":       "x",
		"property_type_id":  1,
		"rent_amount":       1,
		"availability_date": time.Now().Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A landlord cannot verify their own listing
	w = ts.do(t, http.MethodPost, "/api/properties/"+propertyID+"/status", landlordToken,
		gin.H{"status": "verified"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Pending listings are not in the public search
	w = ts.do(t, http.MethodGet, "/api/properties?min_price=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var search database.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &search))
	assert.Equal(t, int64(0), search.Total)

	// Owner deletes the listing
	w = ts.do(t, http.MethodDelete, "/api/properties/"+propertyID, landlordToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/properties/"+propertyID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchRejectsBadParams(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/properties?min_price=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/properties?ordering=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/properties?page=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/properties?property_type=studio", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoritesOverAPI(t *testing.T) {
	ts := newTestServer(t)
	landlordToken, _ := ts.registerAndLogin(t, "landlord")
	tenantToken, _ := ts.registerAndLogin(t, "tenant")

	w := ts.do(t, http.MethodPost, "/api/properties", landlordToken, gin.H{
		"title":             "Lovable studio",
		"description":       "d",
		"property_type_id":  1,
		"rent_amount":       15000,
		"availability_date": time.Now().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Property models.Property `json:"property"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = ts.do(t, http.MethodPost, "/api/properties/"+created.Property.ID+"/love", tenantToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Second love conflicts
	w = ts.do(t, http.MethodPost, "/api/properties/"+created.Property.ID+"/love", tenantToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodGet, "/api/me/favorites", tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var loves []models.LovedProperty
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loves))
	assert.Len(t, loves, 1)

	w = ts.do(t, http.MethodDelete, "/api/properties/"+created.Property.ID+"/love", tenantToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/core/property-types", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var types []models.PropertyType
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &types))
	assert.Len(t, types, 13)

	w = ts.do(t, http.MethodGet, "/api/core/rating-categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []models.RatingCategory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Len(t, categories, 5)

	w = ts.do(t, http.MethodGet, "/api/core/amenity-categories", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/core/landmark-types", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Geo administration is gated to admins
	tenantToken, _ := ts.registerAndLogin(t, "tenant")
	w = ts.do(t, http.MethodPost, "/api/core/neighborhoods", tenantToken,
		gin.H{"name": "Lavington", "city_id": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
