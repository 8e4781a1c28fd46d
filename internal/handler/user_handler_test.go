package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/identity"
	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
)

type mockUserService struct {
	authenticateFn func(ctx context.Context, userName, password string) (*identity.AuthResult, error)
	createFn       func(ctx context.Context, in identity.CreateInput) (*model.User, error)
	updateFn       func(ctx context.Context, routeID string, in identity.UpdateInput) error
	deleteFn       func(ctx context.Context, id string) error
	getByIDFn      func(ctx context.Context, id string) (*model.User, error)
	listFn         func(ctx context.Context) ([]*model.User, error)
}

func (m *mockUserService) Authenticate(ctx context.Context, userName, password string) (*identity.AuthResult, error) {
	return m.authenticateFn(ctx, userName, password)
}

func (m *mockUserService) Create(ctx context.Context, in identity.CreateInput) (*model.User, error) {
	return m.createFn(ctx, in)
}

func (m *mockUserService) Update(ctx context.Context, routeID string, in identity.UpdateInput) error {
	return m.updateFn(ctx, routeID, in)
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserService) List(ctx context.Context) ([]*model.User, error) {
	return m.listFn(ctx)
}

// newUserRouter はユーザーハンドラーのみをマウントしたテスト用ルーターを返す。
func newUserRouter(svc UserServiceInterface) http.Handler {
	r := chi.NewRouter()
	h := NewUserHandler(svc)

	r.Post("/api/users/authenticate", h.Authenticate)
	r.Post("/api/users", h.Create)
	r.Get("/api/users", h.List)
	r.Get("/api/users/{id}", h.Get)
	r.Put("/api/users/{id}", h.Update)
	r.Delete("/api/users/{id}", h.Delete)

	return r
}

// TestAuthenticate_ReturnsToken はログイン成功時のレスポンスを検証する。
func TestAuthenticate_ReturnsToken(t *testing.T) {
	svc := &mockUserService{
		authenticateFn: func(ctx context.Context, userName, password string) (*identity.AuthResult, error) {
			return &identity.AuthResult{
				ID:       "user-1",
				UserName: userName,
				Role:     model.RoleStudent,
				Token:    "signed-token",
			}, nil
		},
	}
	router := newUserRouter(svc)

	body := bytes.NewBufferString(`{"user_name": "ana", "password": "pw"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/authenticate", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}

	var resp authenticateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "signed-token" || resp.UserName != "ana" {
		t.Errorf("response = %+v", resp)
	}
}

// TestAuthenticate_BadCredentials はパスワード不一致が401になることを検証する。
func TestAuthenticate_BadCredentials(t *testing.T) {
	svc := &mockUserService{
		authenticateFn: func(ctx context.Context, userName, password string) (*identity.AuthResult, error) {
			return nil, model.NewBadCredentialsError()
		},
	}
	router := newUserRouter(svc)

	body := bytes.NewBufferString(`{"user_name": "ana", "password": "wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/authenticate", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	var resp apiErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != model.ErrCodeBadCredentials {
		t.Errorf("code = %q, want %q", resp.Code, model.ErrCodeBadCredentials)
	}
}

// TestAuthenticate_MissingFields は空の資格情報が400になることを検証する。
func TestAuthenticate_MissingFields(t *testing.T) {
	svc := &mockUserService{
		authenticateFn: func(ctx context.Context, userName, password string) (*identity.AuthResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	router := newUserRouter(svc)

	body := bytes.NewBufferString(`{"user_name": "", "password": ""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/authenticate", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestCreateUser_Success はユーザー登録の成功経路を検証する。
func TestCreateUser_Success(t *testing.T) {
	var gotInput identity.CreateInput
	svc := &mockUserService{
		createFn: func(ctx context.Context, in identity.CreateInput) (*model.User, error) {
			gotInput = in
			return &model.User{
				ID:       "user-1",
				UserName: in.UserName,
				Role:     in.Role,
			}, nil
		},
	}
	router := newUserRouter(svc)

	body := bytes.NewBufferString(`{
		"first_name": "Ana",
		"user_name": "ana",
		"password": "pw",
		"confirm_password": "pw",
		"role": "student",
		"course_ids": ["c1", "c2"]
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body = %s", rec.Code, rec.Body.String())
	}
	if gotInput.Role != model.RoleStudent || len(gotInput.CourseIDs) != 2 {
		t.Errorf("input = %+v", gotInput)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response must not contain password fields")
	}
}

// TestCreateUser_Conflict はユーザー名重複が409になることを検証する。
func TestCreateUser_Conflict(t *testing.T) {
	svc := &mockUserService{
		createFn: func(ctx context.Context, in identity.CreateInput) (*model.User, error) {
			return nil, model.NewUserNameTakenError(in.UserName)
		},
	}
	router := newUserRouter(svc)

	body := bytes.NewBufferString(`{"user_name": "ana", "password": "pw", "confirm_password": "pw", "role": "student"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

// TestCreateUser_InvalidJSON は不正なJSONボディが400になることを検証する。
func TestCreateUser_InvalidJSON(t *testing.T) {
	svc := &mockUserService{
		createFn: func(ctx context.Context, in identity.CreateInput) (*model.User, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	router := newUserRouter(svc)

	body := bytes.NewBufferString(`{not json`)
	req := httptest.NewRequest(http.MethodPost, "/api/users", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestGetUser_NotFound は存在しないユーザーの取得が404になることを検証する。
func TestGetUser_NotFound(t *testing.T) {
	svc := &mockUserService{
		getByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return nil, model.NewUserNotFoundError(id)
		},
	}
	router := newUserRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/users/ghost", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// TestGetUser_IncludesEnrollments は受講・担当コースがレスポンスに含まれることを検証する。
func TestGetUser_IncludesEnrollments(t *testing.T) {
	svc := &mockUserService{
		getByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{
				ID:       id,
				UserName: "ana",
				Role:     model.RoleBoth,
				CoursesStudying: []*model.Course{
					{ID: "c1", Name: "Go Fundamentals"},
				},
				CoursesTeaching: []*model.Course{
					{ID: "c2", Name: "Advanced Go"},
				},
			}, nil
		},
	}
	router := newUserRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/users/user-1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp userResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.CoursesStudying) != 1 || resp.CoursesStudying[0].ID != "c1" {
		t.Errorf("courses_studying = %+v", resp.CoursesStudying)
	}
	if len(resp.CoursesTeaching) != 1 || resp.CoursesTeaching[0].ID != "c2" {
		t.Errorf("courses_teaching = %+v", resp.CoursesTeaching)
	}
}

// TestUpdateUser_RouteIDPassedToService はルートIDがサービスに渡されることを検証する。
func TestUpdateUser_RouteIDPassedToService(t *testing.T) {
	var gotRouteID string
	svc := &mockUserService{
		updateFn: func(ctx context.Context, routeID string, in identity.UpdateInput) error {
			gotRouteID = routeID
			return nil
		},
	}
	router := newUserRouter(svc)

	body := bytes.NewBufferString(`{"id": "user-1", "role": "student"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/users/user-1", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204; body = %s", rec.Code, rec.Body.String())
	}
	if gotRouteID != "user-1" {
		t.Errorf("route ID = %q, want user-1", gotRouteID)
	}
}

// TestDeleteUser_Success はユーザー削除が204になることを検証する。
func TestDeleteUser_Success(t *testing.T) {
	svc := &mockUserService{
		deleteFn: func(ctx context.Context, id string) error {
			return nil
		},
	}
	router := newUserRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/user-1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
