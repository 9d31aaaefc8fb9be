package genre

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"libraryapi/internal/logging"
	"libraryapi/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestHTTPHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo, logging.Nop()), logging.Nop())

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().NameExists(gomock.Any(), "Poetry").Return(false, nil)
		mockRepo.EXPECT().Create(gomock.Any(), &Genre{Name: "Poetry"}).DoAndReturn(func(_ context.Context, g *Genre) error {
			g.ID = 1
			return nil
		})

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/genres", map[string]string{"name": "Poetry"}))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.EqualValues(t, 1, resp.Data()["id"])
	})

	t.Run("duplicate", func(t *testing.T) {
		mockRepo.EXPECT().NameExists(gomock.Any(), "Poetry").Return(true, nil)

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/genres", map[string]string{"name": "Poetry"}))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "ALREADY_EXISTS", resp.ErrorCode())
	})

	t.Run("race lost on insert", func(t *testing.T) {
		mockRepo.EXPECT().NameExists(gomock.Any(), "Drama").Return(false, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ErrNameTaken)

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/genres", map[string]string{"name": "Drama"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/genres", map[string]string{}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("blank name", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/genres", map[string]string{"name": "  "}))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "VALIDATION_ERROR", resp.ErrorCode())
	})
}

func TestHTTPHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo, logging.Nop()), logging.Nop())

	mockRepo.EXPECT().List(gomock.Any(), 2, 3).Return([]Genre{{ID: 3, Name: "Drama"}}, nil)

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/genres?skip=2&limit=3", nil))

	resp := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, resp.List(), 1)
}
