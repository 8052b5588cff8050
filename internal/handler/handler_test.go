package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bookcopy-server/internal/ai"
	"bookcopy-server/internal/handler"
	"bookcopy-server/internal/model"
	"bookcopy-server/internal/service"
	"bookcopy-server/internal/service/mocks"
)

const testBasePath = "/api"

type apiFixture struct {
	userRepo       *mocks.MockUserRepository
	tokenRepo      *mocks.MockTokenRepository
	manuscriptRepo *mocks.MockManuscriptRepository
	generationRepo *mocks.MockGenerationRepository
	actionLog      *mocks.MockActionLogRepository
	generator      *mocks.MockTextGenerator
	truncator      *mocks.MockTextTruncator
	analyzer       *mocks.MockTextAnalyzer
	authSvc        *service.AuthService
	router         *gin.Engine
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &apiFixture{
		userRepo:       &mocks.MockUserRepository{},
		tokenRepo:      &mocks.MockTokenRepository{},
		manuscriptRepo: &mocks.MockManuscriptRepository{},
		generationRepo: &mocks.MockGenerationRepository{},
		actionLog:      &mocks.MockActionLogRepository{},
		generator:      &mocks.MockTextGenerator{},
		truncator:      &mocks.MockTextTruncator{},
		analyzer:       &mocks.MockTextAnalyzer{},
	}

	log := zap.NewNop()
	f.authSvc = service.NewAuthService(f.userRepo, f.tokenRepo, service.AuthConfig{
		JWTSecret:       "handler-test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}, log)
	manuscriptSvc := service.NewManuscriptService(f.manuscriptRepo, f.actionLog, f.analyzer, log)
	generationSvc := service.NewGenerationService(f.generationRepo, f.manuscriptRepo, f.actionLog, f.generator, f.truncator, 8000, log)

	h := handler.NewHandler(f.authSvc, manuscriptSvc, generationSvc, 1<<20, log)

	f.router = gin.New()
	h.RegisterRoutes(f.router, testBasePath)
	return f
}

// authorize логинит тестового пользователя через мок репозитория и возвращает
// его ID и заголовок Authorization с валидным access токеном.
func (f *apiFixture) authorize(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	userID := uuid.New()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	f.userRepo.On("GetByUsername", mock.Anything, "reader").
		Return(model.User{ID: userID, Username: "reader", PasswordHash: string(hash)}, nil).Once()
	f.tokenRepo.On("SetToken", mock.Anything, userID, mock.Anything).Return(nil).Once()

	td, _, err := f.authSvc.Login(t.Context(), "reader", "password123")
	require.NoError(t, err)

	f.tokenRepo.On("GetUserIDByAccessUUID", mock.Anything, td.AccessUUID).Return(userID, nil)
	return userID, "Bearer " + td.AccessToken
}

func (f *apiFixture) do(method, path, authHeader string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// doUpload отправляет multipart запрос загрузки рукописи.
func (f *apiFixture) doUpload(t *testing.T, authHeader, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, testBasePath+"/manuscripts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", authHeader)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRegister_Validation(t *testing.T) {
	f := newAPIFixture(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"short username", map[string]string{"username": "ab", "email": "a@b.com", "password": "password123"}},
		{"bad username chars", map[string]string{"username": "re ader!", "email": "a@b.com", "password": "password123"}},
		{"short password", map[string]string{"username": "reader", "email": "a@b.com", "password": "pass1"}},
		{"password without digits", map[string]string{"username": "reader", "email": "a@b.com", "password": "passwordonly"}},
		{"missing email", map[string]string{"username": "reader", "password": "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(http.MethodPost, testBasePath+"/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	// Валидация отсекает запрос до сервиса
	f.userRepo.AssertNotCalled(t, "Create")
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(http.MethodGet, testBasePath+"/manuscripts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodGet, testBasePath+"/manuscripts", "Basic abc", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodGet, testBasePath+"/manuscripts", "Bearer garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListManuscripts_Success(t *testing.T) {
	f := newAPIFixture(t)
	userID, authHeader := f.authorize(t)

	summaries := []model.ManuscriptSummary{
		{ID: uuid.New(), Filename: "roman.docx", Format: model.FormatDOCX, SizeBytes: 1024},
	}
	f.manuscriptRepo.On("ListByUser", mock.Anything, userID, 20, 0).Return(summaries, nil).Once()

	w := f.do(http.MethodGet, testBasePath+"/manuscripts", authHeader, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []model.ManuscriptSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "roman.docx", got[0].Filename)
}

func TestGetManuscript_NotFoundForForeign(t *testing.T) {
	f := newAPIFixture(t)
	_, authHeader := f.authorize(t)

	manuscriptID := uuid.New()
	foreign := model.Manuscript{ID: manuscriptID, UserID: uuid.New()}
	f.manuscriptRepo.On("GetByID", mock.Anything, manuscriptID).Return(foreign, nil).Once()

	w := f.do(http.MethodGet, testBasePath+"/manuscripts/"+manuscriptID.String(), authHeader, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateGeneration_InvalidType(t *testing.T) {
	f := newAPIFixture(t)
	_, authHeader := f.authorize(t)

	w := f.do(http.MethodPost, testBasePath+"/manuscripts/"+uuid.NewString()+"/generate", authHeader,
		map[string]string{"type": "poster"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Unknown generation type", resp.Error)
}

func TestCreateGeneration_Success(t *testing.T) {
	f := newAPIFixture(t)
	userID, authHeader := f.authorize(t)

	m := model.Manuscript{ID: uuid.New(), UserID: userID, ExtractedText: "Текст рукописи."}
	f.manuscriptRepo.On("GetByID", mock.Anything, m.ID).Return(m, nil).Once()
	f.truncator.On("Truncate", m.ExtractedText, 8000).Return(m.ExtractedText)
	f.generator.On("Generate", mock.Anything, ai.TypeBlurb, m.ExtractedText).Return("Аннотация.", nil).Once()
	f.generationRepo.On("Create", mock.Anything, mock.Anything).Return(model.Generation{
		ID:           uuid.New(),
		ManuscriptID: m.ID,
		UserID:       userID,
		Type:         "blurb",
		Status:       model.GenerationStatusCompleted,
		ResultText:   "Аннотация.",
	}, nil).Once()
	f.actionLog.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

	w := f.do(http.MethodPost, testBasePath+"/manuscripts/"+m.ID.String()+"/generate", authHeader,
		map[string]string{"type": "blurb"})
	require.Equal(t, http.StatusCreated, w.Code)

	var got model.Generation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, model.GenerationStatusCompleted, got.Status)
	assert.Equal(t, "Аннотация.", got.ResultText)
}

func TestCreateGeneration_FailedGenerationReturnsRecord(t *testing.T) {
	f := newAPIFixture(t)
	userID, authHeader := f.authorize(t)

	m := model.Manuscript{ID: uuid.New(), UserID: userID, ExtractedText: "Текст рукописи."}
	f.manuscriptRepo.On("GetByID", mock.Anything, m.ID).Return(m, nil).Once()
	f.truncator.On("Truncate", m.ExtractedText, 8000).Return(m.ExtractedText)
	f.generator.On("Generate", mock.Anything, ai.TypeBlurb, m.ExtractedText).
		Return("", ai.ErrGenerationFailed).Once()
	f.generationRepo.On("Create", mock.Anything, mock.Anything).Return(model.Generation{
		ID:     uuid.New(),
		Status: model.GenerationStatusFailed,
		Error:  ai.ErrGenerationFailed.Error(),
	}, nil).Once()
	f.actionLog.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

	w := f.do(http.MethodPost, testBasePath+"/manuscripts/"+m.ID.String()+"/generate", authHeader,
		map[string]string{"type": "blurb"})
	require.Equal(t, http.StatusBadGateway, w.Code)

	var got model.Generation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, model.GenerationStatusFailed, got.Status)
}

func TestGetMe_Success(t *testing.T) {
	f := newAPIFixture(t)
	userID, authHeader := f.authorize(t)

	f.userRepo.On("GetByID", mock.Anything, userID).
		Return(model.User{ID: userID, Username: "reader", Email: "reader@example.com"}, nil).Once()

	w := f.do(http.MethodGet, testBasePath+"/auth/me", authHeader, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, userID.String(), got["id"])
	assert.Equal(t, "reader", got["username"])
}

func TestUploadManuscript_CorruptFile(t *testing.T) {
	f := newAPIFixture(t)
	_, authHeader := f.authorize(t)

	// Валидная zip сигнатура, но битый архив: парсер падает, клиенту уходит 422.
	w := f.doUpload(t, authHeader, "roman.docx", []byte("PK\x03\x04 broken archive"))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Could not extract text from the file", resp.Error)
	f.manuscriptRepo.AssertNotCalled(t, "Create")
}

func TestUploadManuscript_MismatchedContent(t *testing.T) {
	f := newAPIFixture(t)
	_, authHeader := f.authorize(t)

	// PDF содержимое под именем .docx отклоняется по сигнатуре.
	w := f.doUpload(t, authHeader, "roman.docx", []byte("%PDF-1.7 fake manuscript"))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Unsupported file format, expected .docx or .pdf", resp.Error)
	f.manuscriptRepo.AssertNotCalled(t, "Create")
}
