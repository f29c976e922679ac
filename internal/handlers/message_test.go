package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"social-media-service/internal/mocks"
	"social-media-service/internal/models"
	"social-media-service/internal/repositories"
	"social-media-service/internal/services"
	"social-media-service/internal/ws"
)

func setupMessageRouter(handler *MessageHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/messages", handler.Post)
	r.GET("/messages", handler.List)
	r.GET("/messages/:message_id", handler.GetByID)
	r.DELETE("/messages/:message_id", handler.Delete)
	r.PATCH("/messages/:message_id", handler.Update)
	r.GET("/accounts/:account_id/messages", handler.ListByAccount)
	return r
}

func newMessageHandler(repo *mocks.MessageRepositoryMock) *MessageHandler {
	return NewMessageHandler(services.NewMessageService(repo), ws.NewHub(), nil)
}

func TestPostMessageRejectsEmptyText(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewBufferString(`{"posted_by":1,"message_text":"","time_posted_epoch":1669947792}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestPostMessageRejectsOverlongText(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	body := `{"posted_by":1,"message_text":"` + strings.Repeat("a", 256) + `","time_posted_epoch":1669947792}`
	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestPostMessageUnknownAccount(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	repo.On("CreateMessage", mock.Anything, mock.Anything).
		Return(models.Message{}, repositories.ErrAccountNotFound).Once()

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewBufferString(`{"posted_by":99,"message_text":"hello","time_posted_epoch":1669947792}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Body.String())
	repo.AssertExpectations(t)
}

func TestPostMessageSuccess(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	candidate := models.Message{PostedBy: 1, MessageText: "hello", TimePostedEpoch: 1669947792}
	repo.On("CreateMessage", mock.Anything, candidate).
		Return(models.Message{MessageID: 5, PostedBy: 1, MessageText: "hello", TimePostedEpoch: 1669947792}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewBufferString(`{"posted_by":1,"message_text":"hello","time_posted_epoch":1669947792}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var created models.Message
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, 5, created.MessageID)
	assert.Equal(t, 1, created.PostedBy)
	assert.Equal(t, "hello", created.MessageText)
	repo.AssertExpectations(t)
}

func TestListMessagesEmptyIsArray(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	repo.On("ListMessages", mock.Anything).Return(([]models.Message)(nil), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
	repo.AssertExpectations(t)
}

func TestListMessagesPersistenceErrorIsEmptyArray(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	repo.On("ListMessages", mock.Anything).Return(([]models.Message)(nil), assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
	repo.AssertExpectations(t)
}

func TestGetMessageFound(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	repo.On("GetMessage", mock.Anything, 5).
		Return(models.Message{MessageID: 5, PostedBy: 1, MessageText: "hello", TimePostedEpoch: 1669947792}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/messages/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var msg models.Message
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	assert.Equal(t, "hello", msg.MessageText)
	repo.AssertExpectations(t)
}

func TestGetMessageNotFoundIsOKWithEmptyBody(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	repo.On("GetMessage", mock.Anything, 5).
		Return(models.Message{}, repositories.ErrMessageNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/messages/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	repo.AssertExpectations(t)
}

func TestGetMessageInvalidID(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/messages/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "GetMessage", mock.Anything, mock.Anything)
}

func TestDeleteMessageTwice(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	deleted := models.Message{MessageID: 5, PostedBy: 1, MessageText: "hello", TimePostedEpoch: 1669947792}
	repo.On("DeleteMessage", mock.Anything, 5).Return(deleted, nil).Once()
	repo.On("DeleteMessage", mock.Anything, 5).Return(models.Message{}, repositories.ErrMessageNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/messages/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var msg models.Message
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	assert.Equal(t, 5, msg.MessageID)

	req = httptest.NewRequest(http.MethodDelete, "/messages/5", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	repo.AssertExpectations(t)
}

func TestUpdateMessageSuccess(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	repo.On("UpdateMessageText", mock.Anything, 5, "updated").
		Return(models.Message{MessageID: 5, PostedBy: 1, MessageText: "updated", TimePostedEpoch: 1669947792}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/messages/5", bytes.NewBufferString(`{"message_text":"updated"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var msg models.Message
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	assert.Equal(t, "updated", msg.MessageText)
	assert.Equal(t, 1, msg.PostedBy)
	assert.Equal(t, int64(1669947792), msg.TimePostedEpoch)
	repo.AssertExpectations(t)
}

func TestUpdateMessageNotFoundIsBadRequest(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	repo.On("UpdateMessageText", mock.Anything, 5, "updated").
		Return(models.Message{}, repositories.ErrMessageNotFound).Once()

	req := httptest.NewRequest(http.MethodPatch, "/messages/5", bytes.NewBufferString(`{"message_text":"updated"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Body.String())
	repo.AssertExpectations(t)
}

func TestUpdateMessageRejectsInvalidText(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	for _, body := range []string{
		`{"message_text":""}`,
		`{}`,
		`{"message_text":"` + strings.Repeat("a", 256) + `"}`,
	} {
		req := httptest.NewRequest(http.MethodPatch, "/messages/5", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	}
	repo.AssertNotCalled(t, "UpdateMessageText", mock.Anything, mock.Anything, mock.Anything)
}

func TestListMessagesByAccount(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	repo.On("ListMessagesByAccount", mock.Anything, 1).
		Return([]models.Message{{MessageID: 5, PostedBy: 1, MessageText: "hello", TimePostedEpoch: 1669947792}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/accounts/1/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var msgs []models.Message
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, 5, msgs[0].MessageID)
	repo.AssertExpectations(t)
}

func TestListMessagesByAccountEmptyIsArray(t *testing.T) {
	repo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(newMessageHandler(repo))

	repo.On("ListMessagesByAccount", mock.Anything, 42).Return(([]models.Message)(nil), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/accounts/42/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
	repo.AssertExpectations(t)
}
