// Package handler はHTTP APIのハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/identity"
	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// Authenticate は資格情報を検証し、署名付きトークンを発行する。
	Authenticate(ctx context.Context, userName, password string) (*identity.AuthResult, error)
	// Create はユーザーを登録する。
	Create(ctx context.Context, in identity.CreateInput) (*model.User, error)
	// Update はユーザーを更新する。
	Update(ctx context.Context, routeID string, in identity.UpdateInput) error
	// Delete はユーザーを削除する。
	Delete(ctx context.Context, id string) error
	// GetByID は指定IDのユーザーを受講・担当コース付きで返す。
	GetByID(ctx context.Context, id string) (*model.User, error)
	// List は全ユーザーを返す。
	List(ctx context.Context) ([]*model.User, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// authenticateRequest は認証リクエストのボディ。
type authenticateRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// authenticateResponse は認証成功時のレスポンス。
type authenticateResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserName  string `json:"user_name"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

// createUserRequest はユーザー登録リクエストのボディ。
type createUserRequest struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Age             int      `json:"age"`
	UserName        string   `json:"user_name"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	Role            string   `json:"role"`
	CourseIDs       []string `json:"course_ids"`
}

// updateUserRequest はユーザー更新リクエストのボディ。
type updateUserRequest struct {
	ID              string   `json:"id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Age             int      `json:"age"`
	UserName        string   `json:"user_name"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	CurrentPassword string   `json:"current_password"`
	Role            string   `json:"role"`
	CourseIDs       []string `json:"course_ids"`
}

// userResponse はユーザー情報のAPIレスポンス。パスワードハッシュは含めない。
type userResponse struct {
	ID              string           `json:"id"`
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	Age             int              `json:"age"`
	UserName        string           `json:"user_name"`
	Role            string           `json:"role"`
	CoursesStudying []courseResponse `json:"courses_studying,omitempty"`
	CoursesTeaching []courseResponse `json:"courses_teaching,omitempty"`
}

// Authenticate はログインを処理する。
// POST /api/users/authenticate
func (h *UserHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req authenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if req.UserName == "" || req.Password == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("ユーザー名とパスワードは必須です"))
		return
	}

	result, err := h.service.Authenticate(r.Context(), req.UserName, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(authenticateResponse{
		ID:        result.ID,
		FirstName: result.FirstName,
		LastName:  result.LastName,
		UserName:  result.UserName,
		Role:      string(result.Role),
		Token:     result.Token,
	})
}

// Create はユーザー登録を処理する。
// POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	user, err := h.service.Create(r.Context(), identity.CreateInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Age:             req.Age,
		UserName:        req.UserName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            model.Role(req.Role),
		CourseIDs:       req.CourseIDs,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toUserResponse(user))
}

// Get はユーザー詳細を取得する。
// GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toUserResponse(user))
}

// List はユーザー一覧を取得する。
// GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]userResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// Update はユーザー更新を処理する。
// PUT /api/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	err := h.service.Update(r.Context(), userID, identity.UpdateInput{
		ID:              req.ID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Age:             req.Age,
		UserName:        req.UserName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		CurrentPassword: req.CurrentPassword,
		Role:            model.Role(req.Role),
		CourseIDs:       req.CourseIDs,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete はユーザー削除を処理する。
// DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toUserResponse はmodel.UserからAPIレスポンスに変換する。
func toUserResponse(user *model.User) userResponse {
	resp := userResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Age:       user.Age,
		UserName:  user.UserName,
		Role:      string(user.Role),
	}
	for _, c := range user.CoursesStudying {
		resp.CoursesStudying = append(resp.CoursesStudying, toCourseResponse(c))
	}
	for _, c := range user.CoursesTeaching {
		resp.CoursesTeaching = append(resp.CoursesTeaching, toCourseResponse(c))
	}
	return resp
}
