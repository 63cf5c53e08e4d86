package e2e

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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"museumguide/internal/database"
	"museumguide/internal/domain"
	"museumguide/internal/middleware"
	"museumguide/internal/modules/admin"
	"museumguide/internal/modules/auth"
	"museumguide/internal/modules/catalog"
	"museumguide/internal/modules/guide"
	"museumguide/internal/modules/ticket"
	jwtsvc "museumguide/internal/pkg/jwt"
	"museumguide/internal/repository"
)

const ticketValidity = 24 * time.Hour

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	museumRepo := repository.NewMuseumRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	objectRepo := repository.NewObjectRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	catalogHandler := catalog.NewHandler(catalog.NewService(museumRepo, roomRepo, objectRepo))
	adminHandler := admin.NewHandler(admin.NewService(userRepo, museumRepo))

	ticketService := ticket.NewService(ticketRepo, museumRepo, ticketValidity)
	ticketHandler := ticket.NewHandler(ticketService)

	guideHandler := guide.NewHandler(guide.NewService(ticketService, roomRepo, objectRepo))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterPublicRoutes(v1)
	ticketHandler.RegisterPublicRoutes(v1)
	guideHandler.RegisterRoutes(v1)

	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)

		staff := protected.Group("/")
		staff.Use(middleware.StaffOnly())
		{
			ticketHandler.RegisterRoutes(staff)
			catalogHandler.RegisterStaffRoutes(staff)
		}

		superadmin := protected.Group("/")
		superadmin.Use(middleware.SuperadminOnly())
		{
			catalogHandler.RegisterSuperadminRoutes(superadmin)
			adminHandler.RegisterRoutes(superadmin)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("super123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	superadmin := &domain.User{
		Name:         "Superadmin",
		Email:        "super@test.com",
		PasswordHash: string(hash),
		Role:         domain.RoleSuperadmin,
	}
	require.NoError(t, db.Create(superadmin).Error, "Failed to create superadmin")

	return &E2ETestSuite{router: r, db: db, jwtService: jwtService}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

func (s *E2ETestSuite) login(t *testing.T, email, password string) string {
	w := s.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// =============================================================================
// Flow 1: museum registration, login, scoped catalog management
// =============================================================================

func TestFlow_RegistrationAndCatalog(t *testing.T) {
	suite := setupTestSuite(t)

	var adminToken string
	var museumID float64

	t.Run("POST /auth/register", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"name":         "Aruzhan",
			"email":        "aruzhan@test.com",
			"password":     "Password123!",
			"museum_title": "City History Museum",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		adminToken, _ = resp.Data["token"].(string)
		require.NotEmpty(t, adminToken)

		user, _ := resp.Data["user"].(map[string]interface{})
		require.NotNil(t, user)
		assert.Equal(t, "admin", user["role"])
		museumID, _ = user["museum_id"].(float64)
		require.NotZero(t, museumID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"name":         "Aruzhan",
			"email":        "aruzhan@test.com",
			"password":     "Password123!",
			"museum_title": "Another Museum",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	var roomID float64
	t.Run("POST /rooms", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/rooms", map[string]interface{}{
			"museum_id":   museumID,
			"title":       "Antiquity",
			"description": "Greek and Roman",
		}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		room, _ := resp.Data["room"].(map[string]interface{})
		require.NotNil(t, room)
		roomID, _ = room["id"].(float64)
		require.NotZero(t, roomID)
	})

	t.Run("POST /objects", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/objects", map[string]interface{}{
			"room_id":     roomID,
			"title":       "STATUE",
			"description": "Marble, II century",
		}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("admin cannot create a room in another museum", func(t *testing.T) {
		superToken := suite.login(t, "super@test.com", "super123")

		w := suite.makeRequest("POST", "/api/v1/museums", map[string]interface{}{
			"title": "Foreign Museum",
		}, superToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := parseResponse(t, w)
		foreign, _ := resp.Data["museum"].(map[string]interface{})
		foreignID, _ := foreign["id"].(float64)

		w = suite.makeRequest("POST", "/api/v1/rooms", map[string]interface{}{
			"museum_id":   foreignID,
			"title":       "Intrusion",
			"description": "should not exist",
		}, adminToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin cannot manage museums", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/museums", map[string]interface{}{
			"title": "Rogue Museum",
		}, adminToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

// =============================================================================
// Flow 2: ticket issuance, verification and the visitor guide
// =============================================================================

func TestFlow_TicketsAndGuide(t *testing.T) {
	suite := setupTestSuite(t)

	w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"name":         "Aruzhan",
		"email":        "aruzhan@test.com",
		"password":     "Password123!",
		"museum_title": "City History Museum",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	adminToken, _ := resp.Data["token"].(string)
	user, _ := resp.Data["user"].(map[string]interface{})
	museumID, _ := user["museum_id"].(float64)

	// room + object the visitor will browse
	w = suite.makeRequest("POST", "/api/v1/rooms", map[string]interface{}{
		"museum_id":   museumID,
		"title":       "Antiquity",
		"description": "Greek and Roman",
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp = parseResponse(t, w)
	room, _ := resp.Data["room"].(map[string]interface{})
	roomID, _ := room["id"].(float64)

	w = suite.makeRequest("POST", "/api/v1/objects", map[string]interface{}{
		"room_id":     roomID,
		"title":       "STATUE",
		"description": "Marble, II century",
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var code string
	t.Run("POST /tickets", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/tickets", map[string]interface{}{
			"museum_id": museumID,
		}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		tk, _ := resp.Data["ticket"].(map[string]interface{})
		require.NotNil(t, tk)
		code, _ = tk["code"].(string)
		assert.Len(t, code, 10)
		assert.Equal(t, "active", tk["status"])
	})

	t.Run("GET /tickets/verify/:code", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/tickets/verify/"+code, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, true, resp.Data["valid"])
	})

	t.Run("unknown code is 404", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/tickets/verify/0000000000", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GET /guide/rooms/:code", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/guide/rooms/"+code, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		rooms, _ := resp.Data["rooms"].([]interface{})
		require.Len(t, rooms, 1)
	})

	t.Run("GET /guide/objects/:code/:roomTitle", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/guide/objects/"+code+"/Antiquity", nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		objects, _ := resp.Data["objects"].([]interface{})
		require.Len(t, objects, 1)
	})

	t.Run("GET /guide/object/:code/:objectTitle is case-insensitive", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/guide/object/"+code+"/statue", nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		object, _ := resp.Data["object"].(map[string]interface{})
		require.NotNil(t, object)
		assert.Equal(t, "STATUE", object["title"])
	})

	t.Run("expired ticket gets 403 on guide access", func(t *testing.T) {
		now := time.Now()
		expired := &domain.Ticket{
			MuseumID:       int64(museumID),
			Code:           "0000000001",
			PurchaseTime:   now.Add(-48 * time.Hour),
			ExpirationTime: now.Add(-24 * time.Hour),
			Status:         domain.TicketActive,
		}
		require.NoError(t, suite.db.Create(expired).Error)

		w := suite.makeRequest("GET", "/api/v1/guide/rooms/0000000001", nil, "")
		assert.Equal(t, http.StatusForbidden, w.Code)

		// verification reports expired too, with the ticket attached
		w = suite.makeRequest("GET", "/api/v1/tickets/verify/0000000001", nil, "")
		assert.Equal(t, http.StatusForbidden, w.Code)

		// and the lazy evaluation persisted the transition
		var tk domain.Ticket
		require.NoError(t, suite.db.Where("code = ?", "0000000001").First(&tk).Error)
		assert.Equal(t, domain.TicketExpired, tk.Status)
	})

	t.Run("admin ticket list is scoped", func(t *testing.T) {
		superToken := suite.login(t, "super@test.com", "super123")

		// a second museum with its own ticket
		w := suite.makeRequest("POST", "/api/v1/museums", map[string]interface{}{
			"title": "Other Museum",
		}, superToken)
		require.Equal(t, http.StatusCreated, w.Code)
		resp := parseResponse(t, w)
		other, _ := resp.Data["museum"].(map[string]interface{})
		otherID, _ := other["id"].(float64)

		w = suite.makeRequest("POST", "/api/v1/tickets", map[string]interface{}{
			"museum_id": otherID,
		}, superToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// the admin sees only their museum's tickets
		w = suite.makeRequest("GET", "/api/v1/tickets", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		resp = parseResponse(t, w)
		tickets, _ := resp.Data["tickets"].([]interface{})
		for _, raw := range tickets {
			tk, _ := raw.(map[string]interface{})
			assert.Equal(t, museumID, tk["museum_id"])
		}

		// the admin cannot issue for the other museum
		w = suite.makeRequest("POST", "/api/v1/tickets", map[string]interface{}{
			"museum_id": otherID,
		}, adminToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

// =============================================================================
// Flow 3: superadmin user management
// =============================================================================

func TestFlow_UserManagement(t *testing.T) {
	suite := setupTestSuite(t)
	superToken := suite.login(t, "super@test.com", "super123")

	w := suite.makeRequest("POST", "/api/v1/museums", map[string]interface{}{
		"title": "City History Museum",
	}, superToken)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	museum, _ := resp.Data["museum"].(map[string]interface{})
	museumID, _ := museum["id"].(float64)

	t.Run("POST /users creates a museum admin", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/users", map[string]interface{}{
			"name":      "Dana",
			"email":     "dana@test.com",
			"password":  "Password123!",
			"role":      "admin",
			"museum_id": museumID,
		}, superToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// the new admin can log in
		suite.login(t, "dana@test.com", "Password123!")
	})

	t.Run("admin without museum is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/users", map[string]interface{}{
			"name":     "Nomad",
			"email":    "nomad@test.com",
			"password": "Password123!",
			"role":     "admin",
		}, superToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("admins cannot reach user management", func(t *testing.T) {
		adminToken := suite.login(t, "dana@test.com", "Password123!")
		w := suite.makeRequest("GET", "/api/v1/users", nil, adminToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("GET /users lists everyone", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/users", nil, superToken)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		users, _ := resp.Data["users"].([]interface{})
		emails := make([]string, 0, len(users))
		for _, raw := range users {
			u, _ := raw.(map[string]interface{})
			emails = append(emails, fmt.Sprint(u["email"]))
		}
		assert.Contains(t, emails, "super@test.com")
		assert.Contains(t, emails, "dana@test.com")
	})
}
