package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"stadiumbooking/internal/database"
	"stadiumbooking/internal/domain"
	jwtsvc "stadiumbooking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type suite struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwtsvc.Service
}

func setupSuite(t *testing.T) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	j := jwtsvc.New("test-secret", time.Hour)
	r := New(Deps{DB: db, JWT: j})
	return &suite{t: t, router: r, db: db, jwt: j}
}

func (s *suite) do(method, path, token string, body any) (int, testResponse) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp testResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func (s *suite) register(email, role string) string {
	s.t.Helper()
	code, resp := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": email, "password": "secret123", "first_name": "Test", "role": role,
	})
	require.Equal(s.t, http.StatusCreated, code, "%+v", resp.Error)

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(s.t, json.Unmarshal(resp.Data, &data))
	return data.AccessToken
}

func (s *suite) createStadium(token, name string, lat, lon float64) int64 {
	s.t.Helper()
	code, resp := s.do(http.MethodPost, "/api/v1/stadiums", token, gin.H{
		"name": name, "address": name + " street", "price_per_hour": 12000,
		"latitude": lat, "longitude": lon, "images": []string{name + ".jpg"},
	})
	require.Equal(s.t, http.StatusCreated, code, "%+v", resp.Error)

	var data struct {
		Stadium struct {
			ID int64 `json:"id"`
		} `json:"stadium"`
	}
	require.NoError(s.t, json.Unmarshal(resp.Data, &data))
	return data.Stadium.ID
}

func (s *suite) searchNames(date string) []string {
	s.t.Helper()
	path := fmt.Sprintf("/api/v1/stadiums?date=%s&start_time=13:00&end_time=14:00&latitude=43.238&longitude=76.945", date)
	code, resp := s.do(http.MethodGet, path, "", nil)
	require.Equal(s.t, http.StatusOK, code, "%+v", resp.Error)

	var data struct {
		Stadiums []struct {
			Name       string  `json:"name"`
			DistanceKm float64 `json:"distance_km"`
		} `json:"stadiums"`
	}
	require.NoError(s.t, json.Unmarshal(resp.Data, &data))
	names := make([]string, 0, len(data.Stadiums))
	for _, st := range data.Stadiums {
		names = append(names, st.Name)
	}
	return names
}

func bookingID(t *testing.T, resp testResponse) int64 {
	t.Helper()
	var data struct {
		Booking struct {
			ID int64 `json:"id"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data.Booking.ID
}

func TestBookingFlow(t *testing.T) {
	s := setupSuite(t)
	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	ownerTok := s.register("owner@mail.kz", "owner")
	playerTok := s.register("player@mail.kz", "")

	a := s.createStadium(ownerTok, "A", 43.2567, 76.9286)
	b := s.createStadium(ownerTok, "B", 43.2380, 76.9450)
	s.createStadium(ownerTok, "C", 43.3200, 76.9000)

	assert.Equal(t, []string{"B", "A", "C"}, s.searchNames(date))

	code, resp := s.do(http.MethodPost, fmt.Sprintf("/api/v1/stadiums/%d/bookings", b), playerTok, gin.H{
		"date_at": date, "start_time": "13:00", "end_time": "14:00",
	})
	require.Equal(t, http.StatusCreated, code, "%+v", resp.Error)
	booked := bookingID(t, resp)

	code, resp = s.do(http.MethodPost, fmt.Sprintf("/api/v1/stadiums/%d/bookings", b), playerTok, gin.H{
		"date_at": date, "start_time": "13:30", "end_time": "14:30",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "BOOKING_CONFLICT", resp.Error.Code)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/stadiums/%d/bookings", b), playerTok, gin.H{
		"date_at": date, "start_time": "14:00", "end_time": "15:00",
	})
	assert.Equal(t, http.StatusCreated, code)

	assert.Equal(t, []string{"A", "C"}, s.searchNames(date))

	code, resp = s.do(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/payments", booked), playerTok, gin.H{
		"payment_method": "cash",
	})
	require.Equal(t, http.StatusCreated, code, "%+v", resp.Error)
	assert.Contains(t, string(resp.Data), `"amount":12000`)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/payments", booked), ownerTok, gin.H{
		"payment_method": "cash",
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = s.do(http.MethodGet, "/api/v1/users/me/bookings", playerTok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(resp.Data), `"stadium_name":"B"`)

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/v1/stadiums/%d/bookings", b), playerTok, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = s.do(http.MethodGet, fmt.Sprintf("/api/v1/stadiums/%d/bookings?booking_id=%d", b, booked), ownerTok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(resp.Data), fmt.Sprintf(`"id":%d`, booked))

	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/stadiums/%d/bookings/%d", a, booked), ownerTok, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/stadiums/%d/bookings/%d", b, booked), ownerTok, nil)
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, []string{"B", "A", "C"}, s.searchNames(date))
}

func TestStadiumManagement(t *testing.T) {
	s := setupSuite(t)
	ownerTok := s.register("owner@mail.kz", "owner")
	otherTok := s.register("other@mail.kz", "owner")
	playerTok := s.register("player@mail.kz", "user")

	id := s.createStadium(ownerTok, "Central", 43.25, 76.93)

	code, resp := s.do(http.MethodPost, "/api/v1/stadiums", otherTok, gin.H{"name": "Central", "address": "x"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "STADIUM_EXISTS", resp.Error.Code)

	code, _ = s.do(http.MethodPost, "/api/v1/stadiums", playerTok, gin.H{"name": "Mine", "address": "x"})
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = s.do(http.MethodPost, "/api/v1/stadiums", ownerTok, gin.H{"name": "", "address": "x", "latitude": 100})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	code, _ = s.do(http.MethodPut, fmt.Sprintf("/api/v1/stadiums/%d", id), otherTok, gin.H{"name": "Hijack", "address": "x"})
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = s.do(http.MethodPut, fmt.Sprintf("/api/v1/stadiums/%d", id), ownerTok, gin.H{
		"name": "Central Park", "address": "Abay 1", "price_per_hour": 9000, "latitude": 43.25, "longitude": 76.93,
	})
	require.Equal(t, http.StatusOK, code, "%+v", resp.Error)
	assert.Contains(t, string(resp.Data), `"name":"Central Park"`)

	code, resp = s.do(http.MethodGet, "/api/v1/stadiums/my", ownerTok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(resp.Data), "Central Park")

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/v1/stadiums/%d", id), "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/stadiums/%d", id), ownerTok, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/v1/stadiums/%d", id), "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSearchAndBookingValidation(t *testing.T) {
	s := setupSuite(t)
	playerTok := s.register("player@mail.kz", "")
	ownerTok := s.register("owner@mail.kz", "owner")
	id := s.createStadium(ownerTok, "A", 43.25, 76.93)
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	code, resp := s.do(http.MethodGet, "/api/v1/stadiums?date="+yesterday+"&start_time=13:00&end_time=14:00&latitude=0&longitude=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	code, _ = s.do(http.MethodGet, "/api/v1/stadiums?date=tomorrow", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/stadiums/%d/bookings", id), playerTok, gin.H{
		"date_at": yesterday, "start_time": "13:00", "end_time": "14:00",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/api/v1/stadiums/999/bookings", playerTok, gin.H{
		"date_at": time.Now().AddDate(0, 0, 3).Format("2006-01-02"), "start_time": "13:00", "end_time": "14:00",
	})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/stadiums/%d/bookings", id), "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestConcurrentAdmissionOverHTTP(t *testing.T) {
	s := setupSuite(t)
	ownerTok := s.register("owner@mail.kz", "owner")
	playerTok := s.register("player@mail.kz", "")
	id := s.createStadium(ownerTok, "A", 43.25, 76.93)
	date := time.Now().AddDate(0, 0, 5).Format("2006-01-02")

	windows := [][2]string{{"13:00", "14:00"}, {"13:30", "14:30"}}
	codes := make([]int, len(windows))
	var wg sync.WaitGroup
	for i, w := range windows {
		wg.Add(1)
		go func(i int, start, end string) {
			defer wg.Done()
			body, _ := json.Marshal(gin.H{"date_at": date, "start_time": start, "end_time": end})
			req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/stadiums/%d/bookings", id), bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+playerTok)
			rec := httptest.NewRecorder()
			s.router.ServeHTTP(rec, req)
			codes[i] = rec.Code
		}(i, w[0], w[1])
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, codes)
}

func TestAdminBanBlocksBooking(t *testing.T) {
	s := setupSuite(t)
	ownerTok := s.register("owner@mail.kz", "owner")
	playerTok := s.register("player@mail.kz", "")
	id := s.createStadium(ownerTok, "A", 43.25, 76.93)

	adminUser := &domain.User{Email: "root@stadium.kz", PasswordHash: "x", Role: domain.RoleAdmin}
	require.NoError(t, s.db.Create(adminUser).Error)
	adminTok, err := s.jwt.GenerateToken(adminUser.ID, string(domain.RoleAdmin))
	require.NoError(t, err)

	code, _ := s.do(http.MethodGet, "/api/v1/admin/users", ownerTok, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, resp := s.do(http.MethodGet, "/api/v1/admin/users?q=player", adminTok, nil)
	require.Equal(t, http.StatusOK, code, "%+v", resp.Error)
	var list struct {
		Users []struct {
			ID int64 `json:"id"`
		} `json:"users"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	require.Equal(t, int64(1), list.Total)
	playerID := list.Users[0].ID

	code, _ = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/admin/users/%d/ban", adminUser.ID), adminTok, gin.H{"reason": "x"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/admin/users/%d/ban", playerID), adminTok, gin.H{"reason": "no-shows"})
	require.Equal(t, http.StatusOK, code)

	booking := gin.H{"date_at": time.Now().AddDate(0, 0, 2).Format("2006-01-02"), "start_time": "10:00", "end_time": "11:00"}
	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/stadiums/%d/bookings", id), playerTok, booking)
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = s.do(http.MethodGet, "/api/v1/admin/stats", adminTok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(resp.Data), `"banned_users":1`)

	code, _ = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/admin/users/%d/unban", playerID), adminTok, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/stadiums/%d/bookings", id), playerTok, booking)
	assert.Equal(t, http.StatusCreated, code)
}

func TestHealth(t *testing.T) {
	s := setupSuite(t)
	code, resp := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
}
