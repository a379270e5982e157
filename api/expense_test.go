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

var expenseColumns = []string{
	"id", "date", "vendor", "category", "type", "service",
	"amount", "payment", "status", "recurring", "notes",
	"created_at", "updated_at",
}

func expenseRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewExpenseHandler()
	r.GET("/expenses", h.List)
	r.POST("/expenses", h.Create)
	r.PUT("/expenses", h.Replace)
	r.DELETE("/expenses", h.Delete)
	return r
}

func TestExpenseHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `expense_records` ORDER BY created_at ASC").
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow("1", "2024-03-01", "AWS", "Hosting", "Recurring", "EC2",
				42.10, "Card", "Paid", "Yes", "", now, now).
			AddRow("2", nil, "Cafe", "Meals", "", "",
				nil, "", "Pending", "No", "", now, now))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/expenses", nil)
	expenseRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	resp := decodeEnvelope(t, w.Body.Bytes())
	data := resp["data"].([]interface{})
	require.Len(t, data, 2)

	first := data[0].(map[string]interface{})
	assert.Equal(t, "AWS", first["vendor"])
	assert.Equal(t, 42.10, first["amount"])

	second := data[1].(map[string]interface{})
	assert.Equal(t, float64(0), second["amount"])
	assert.Nil(t, second["date"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Create_RecurringDefault(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expense_records`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := `{"vendor":"AWS","amount":"10.5"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	expenseRouter().ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	resp := decodeEnvelope(t, w.Body.Bytes())
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, 10.5, data["amount"])
	// Recurring falls back to "No" when the caller omits it.
	assert.Equal(t, "No", data["recurring"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_ReplaceAll(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT `id` FROM `expense_records`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("1"))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `expense_records`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expense_records`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := `[{"id":"9","vendor":"AWS","amount":99}]`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	expenseRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	resp := decodeEnvelope(t, w.Body.Bytes())
	data := resp["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "9", data[0].(map[string]interface{})["id"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Delete_MissingID(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/expenses", nil)
	expenseRouter().ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
