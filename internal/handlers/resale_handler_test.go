package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ticketchain/ticketchain/internal/middleware"
)

func authedTestContext(t *testing.T, method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserID, uuid.New())
	return c, w
}

func TestResellTicketWithoutEngineConfigured(t *testing.T) {
	body := `{"ticket_id":"` + uuid.NewString() + `","price":"150"}`
	c, w := authedTestContext(t, http.MethodPost, "/v1/buyer/resell", body)

	ResellTicket(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestVerifyTicketWithoutEngineConfigured(t *testing.T) {
	body := `{"ticket_id":"` + uuid.NewString() + `"}`
	c, w := authedTestContext(t, http.MethodPost, "/v1/inspector/verify", body)

	VerifyTicket(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
