package api

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cashColumns = []string{
	"id", "month", "account_name", "category", "institution", "balance",
	"created_at", "updated_at",
}

func cashRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCashHandler()
	r.GET("/cash", h.Get)
	r.POST("/cash", h.Create)
	r.PUT("/cash", h.Replace)
	r.DELETE("/cash", h.Delete)
	return r
}

func TestCashHandler_ListAccounts(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `cash_accounts` ORDER BY created_at ASC").
		WillReturnRows(sqlmock.NewRows(cashColumns).
			AddRow("1", "2024-03", "Checking", "Bank", "Chase", 1500.75, now, now).
			AddRow("2", "2024-03", "Savings", "Bank", "Ally", nil, now, now))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/cash", nil)
	cashRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	resp := decodeEnvelope(t, w.Body.Bytes())
	data := resp["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "Checking", data[0].(map[string]interface{})["accountName"])
	assert.Equal(t, 1500.75, data[0].(map[string]interface{})["balance"])
	assert.Equal(t, float64(0), data[1].(map[string]interface{})["balance"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCashHandler_Movement_EmptyDefault(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `cash_movement` WHERE id = ?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "data", "updated_at"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/cash?type=movement", nil)
	cashRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	resp := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, true, resp["success"])
	// Nothing saved yet reads back as an empty object, not null.
	assert.Equal(t, map[string]interface{}{}, resp["data"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCashHandler_Movement_Overwrite(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `cash_movement` .*ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	body := `{"2024-03":{"in":100,"out":40}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/cash?type=movement", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	cashRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	resp := decodeEnvelope(t, w.Body.Bytes())
	data := resp["data"].(map[string]interface{})
	month := data["2024-03"].(map[string]interface{})
	assert.Equal(t, float64(100), month["in"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCashHandler_Movement_InvalidJSON(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cash?type=movement", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	cashRouter().ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCashHandler_Movement_DeleteNotAllowed(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/cash?type=movement&id=1", nil)
	cashRouter().ServeHTTP(w, req)

	assert.Equal(t, 405, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCashHandler_ReplaceAll(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT `id` FROM `cash_accounts`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("1").AddRow("2"))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `cash_accounts`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `cash_accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := `[{"id":"3","month":"2024-04","account_name":"Checking","balance":"200"}]`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/cash", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	cashRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	resp := decodeEnvelope(t, w.Body.Bytes())
	data := resp["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "3", data[0].(map[string]interface{})["id"])

	require.NoError(t, mock.ExpectationsWereMet())
}
