package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/shift-scheduling-api/internal/database"
	"github.com/yukikurage/shift-scheduling-api/internal/dto"
	"github.com/yukikurage/shift-scheduling-api/internal/models"
	"github.com/yukikurage/shift-scheduling-api/internal/repository"
	"github.com/yukikurage/shift-scheduling-api/internal/services"
)

type periodTestEnv struct {
	db      *gorm.DB
	handler *PeriodHandler
}

func setupPeriodTestEnv(t *testing.T) periodTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.ShiftPeriod{},
		&models.ShiftAssignment{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	periodService := services.NewPeriodService(repository.NewPeriodRepository(db))
	handler := NewPeriodHandler(periodService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return periodTestEnv{db: db, handler: handler}
}

func TestPeriodHandler_Create(t *testing.T) {
	env := setupPeriodTestEnv(t)

	r := gin.New()
	r.POST("/api/periods", env.handler.Create)

	payload := map[string]string{
		"start_date": "2024-04-16",
		"end_date":   "2024-05-15",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/periods", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.PeriodDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.PeriodStatusCollecting, response.Status)
	require.Equal(t, "2024年4月16日〜2024年5月15日", response.DisplayName)
}

func TestPeriodHandler_Create_InvalidRange(t *testing.T) {
	env := setupPeriodTestEnv(t)

	r := gin.New()
	r.POST("/api/periods", env.handler.Create)

	payload := map[string]string{
		"start_date": "2024-05-15",
		"end_date":   "2024-04-16",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/periods", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPeriodHandler_Publish(t *testing.T) {
	env := setupPeriodTestEnv(t)

	period := &models.ShiftPeriod{
		StartDate: "2024-04-16",
		EndDate:   "2024-05-15",
		Status:    models.PeriodStatusCollecting,
	}
	require.NoError(t, env.db.Create(period).Error)

	r := gin.New()
	r.POST("/api/periods/publish", env.handler.Publish)

	req := httptest.NewRequest(http.MethodPost, "/api/periods/publish", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.CurrentPeriodsDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Confirmed)
	require.Equal(t, period.ID, response.Confirmed.ID)
	require.NotNil(t, response.Collecting)
	require.Equal(t, "2024-05-16", response.Collecting.StartDate)
	require.Equal(t, "2024-06-15", response.Collecting.EndDate)
}

func TestPeriodHandler_Publish_NoCollecting(t *testing.T) {
	env := setupPeriodTestEnv(t)

	r := gin.New()
	r.POST("/api/periods/publish", env.handler.Publish)

	req := httptest.NewRequest(http.MethodPost, "/api/periods/publish", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestPeriodHandler_Revert(t *testing.T) {
	env := setupPeriodTestEnv(t)

	confirmed := &models.ShiftPeriod{
		StartDate: "2024-04-16",
		EndDate:   "2024-05-15",
		Status:    models.PeriodStatusConfirmed,
	}
	require.NoError(t, env.db.Create(confirmed).Error)
	collecting := &models.ShiftPeriod{
		StartDate: "2024-05-16",
		EndDate:   "2024-06-15",
		Status:    models.PeriodStatusCollecting,
	}
	require.NoError(t, env.db.Create(collecting).Error)

	r := gin.New()
	r.POST("/api/periods/revert", env.handler.Revert)

	req := httptest.NewRequest(http.MethodPost, "/api/periods/revert", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.CurrentPeriodsDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Collecting)
	require.Equal(t, confirmed.ID, response.Collecting.ID)
	require.Nil(t, response.Confirmed)
}

func TestPeriodHandler_Revert_NotPossible(t *testing.T) {
	env := setupPeriodTestEnv(t)

	r := gin.New()
	r.POST("/api/periods/revert", env.handler.Revert)

	req := httptest.NewRequest(http.MethodPost, "/api/periods/revert", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestPeriodHandler_Current(t *testing.T) {
	env := setupPeriodTestEnv(t)

	collecting := &models.ShiftPeriod{
		StartDate: "2024-04-16",
		EndDate:   "2024-05-15",
		Status:    models.PeriodStatusCollecting,
	}
	require.NoError(t, env.db.Create(collecting).Error)

	r := gin.New()
	r.GET("/api/periods/current", env.handler.Current)

	req := httptest.NewRequest(http.MethodGet, "/api/periods/current", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.CurrentPeriodsDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Collecting)
	require.Equal(t, collecting.ID, response.Collecting.ID)
	require.Nil(t, response.Confirmed)
}
