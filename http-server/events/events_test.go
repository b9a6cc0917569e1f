package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockDispatcher реализует интерфейс Dispatcher для тестов
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) HandleText(ctx context.Context, userID int64, text string) error {
	args := m.Called(ctx, userID, text)
	return args.Error(0)
}

func (m *MockDispatcher) HandleButton(ctx context.Context, userID int64, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Тест: текстовое событие уходит в движок
func TestText_Success(t *testing.T) {
	d := new(MockDispatcher)
	d.On("HandleText", mock.Anything, int64(42), "/start").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/events/text",
		strings.NewReader(`{"user_id": 42, "text": "/start"}`))
	rr := httptest.NewRecorder()

	Text(testLogger(), d)(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"ok"`)
	d.AssertExpectations(t)
}

func TestText_BadJSON(t *testing.T) {
	d := new(MockDispatcher)

	req := httptest.NewRequest(http.MethodPost, "/api/events/text", strings.NewReader(`{broken`))
	rr := httptest.NewRecorder()

	Text(testLogger(), d)(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	d.AssertNotCalled(t, "HandleText")
}

func TestText_MissingUserID(t *testing.T) {
	d := new(MockDispatcher)

	req := httptest.NewRequest(http.MethodPost, "/api/events/text", strings.NewReader(`{"text": "hi"}`))
	rr := httptest.NewRecorder()

	Text(testLogger(), d)(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	d.AssertNotCalled(t, "HandleText")
}

func TestText_EngineError(t *testing.T) {
	d := new(MockDispatcher)
	d.On("HandleText", mock.Anything, int64(42), "hi").Return(errors.New("boom"))

	req := httptest.NewRequest(http.MethodPost, "/api/events/text",
		strings.NewReader(`{"user_id": 42, "text": "hi"}`))
	rr := httptest.NewRecorder()

	Text(testLogger(), d)(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// Тест: нажатие кнопки уходит в движок
func TestButton_Success(t *testing.T) {
	d := new(MockDispatcher)
	d.On("HandleButton", mock.Anything, int64(42), "tok-1").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/events/button",
		strings.NewReader(`{"user_id": 42, "token": "tok-1"}`))
	rr := httptest.NewRecorder()

	Button(testLogger(), d)(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	d.AssertExpectations(t)
}

func TestButton_MissingToken(t *testing.T) {
	d := new(MockDispatcher)

	req := httptest.NewRequest(http.MethodPost, "/api/events/button",
		strings.NewReader(`{"user_id": 42}`))
	rr := httptest.NewRecorder()

	Button(testLogger(), d)(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	d.AssertNotCalled(t, "HandleButton")
}
