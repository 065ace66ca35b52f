package images

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// imagesRouter builds a router with real token verification and the given
// images service, returning a valid bearer token.
func imagesRouter(t *testing.T, svc *Service) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	token, err := issuer.Mint(uuid.New())
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	authSvc := auth.NewService(stubUserRepo{}, issuer, 0)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r, auth.Middleware(authSvc))
	return r, token
}

// stubUserRepo satisfies auth.Repository; token verification is offline so
// none of these are reached in handler tests.
type stubUserRepo struct{}

func (stubUserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return nil, auth.ErrUserNotFound
}
func (stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return nil, auth.ErrUserNotFound
}
func (stubUserRepo) Create(ctx context.Context, user *auth.User) error { return nil }

func authedRequest(method, path, body, token string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUploadURLHandler_Success(t *testing.T) {
	r, token := imagesRouter(t, NewService(&mockStorage{}))

	body := `{"filename":"rice.jpg","content_type":"image/jpeg"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/images/upload-url", body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp UploadURLResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.UploadURL == "" || !strings.HasPrefix(resp.ImageKey, "products/") {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestUploadURLHandler_MissingFields(t *testing.T) {
	r, token := imagesRouter(t, NewService(&mockStorage{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/images/upload-url", `{"filename":"rice.jpg"}`, token))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestUploadURLHandler_InvalidContentType(t *testing.T) {
	r, token := imagesRouter(t, NewService(&mockStorage{}))

	body := `{"filename":"doc.pdf","content_type":"application/pdf"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/images/upload-url", body, token))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUploadURLHandler_RequiresAuth(t *testing.T) {
	r, _ := imagesRouter(t, NewService(&mockStorage{}))

	body := `{"filename":"rice.jpg","content_type":"image/jpeg"}`
	req := httptest.NewRequest(http.MethodPost, "/images/upload-url", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestImagesHandler_StorageNotConfigured(t *testing.T) {
	r, token := imagesRouter(t, nil)

	body := `{"filename":"rice.jpg","content_type":"image/jpeg"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/images/upload-url", body, token))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}

func TestDownloadURLHandler_Success(t *testing.T) {
	r, token := imagesRouter(t, NewService(&mockStorage{}))

	body := `{"image_key":"products/abc-rice.jpg"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/images/download-url", body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp DownloadURLResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.DownloadURL == "" {
		t.Error("expected a download URL")
	}
}

func TestDeleteHandler_Success(t *testing.T) {
	var deleted string
	store := &mockStorage{
		deleteFunc: func(ctx context.Context, key string) error {
			deleted = key
			return nil
		},
	}
	r, token := imagesRouter(t, NewService(store))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodDelete, "/images/products/abc-rice.jpg", "", token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if deleted != "products/abc-rice.jpg" {
		t.Errorf("expected delete of products/abc-rice.jpg, got %q", deleted)
	}
}
