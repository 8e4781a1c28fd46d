package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/course"
	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
)

// CourseServiceInterface はコースハンドラーが必要とするサービスインターフェース。
type CourseServiceInterface interface {
	Create(ctx context.Context, in course.CreateInput) (*model.Course, error)
	Update(ctx context.Context, routeID string, in course.UpdateInput) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context) ([]*model.Course, error)
}

// CourseHandler はコース管理のHTTPハンドラー。
type CourseHandler struct {
	service CourseServiceInterface
}

// NewCourseHandler はCourseHandlerを生成する。
func NewCourseHandler(service CourseServiceInterface) *CourseHandler {
	return &CourseHandler{service: service}
}

// createCourseRequest はコース作成リクエストのボディ。
type createCourseRequest struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	TeacherID string  `json:"teacher_id"`
}

// updateCourseRequest はコース更新リクエストのボディ。
type updateCourseRequest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	TeacherID string  `json:"teacher_id"`
}

// courseResponse はコース情報のAPIレスポンス。
type courseResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Price      float64  `json:"price"`
	TeacherID  string   `json:"teacher_id,omitempty"`
	StudentIDs []string `json:"student_ids,omitempty"`
}

// Create はコース作成を処理する。
// POST /api/courses
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	created, err := h.service.Create(r.Context(), course.CreateInput{
		Name:      req.Name,
		Price:     req.Price,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toCourseResponse(created))
}

// Get はコース詳細を取得する。
// GET /api/courses/{id}
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")

	found, err := h.service.GetByID(r.Context(), courseID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toCourseResponse(found))
}

// List はコース一覧を取得する。
// GET /api/courses
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]courseResponse, 0, len(courses))
	for _, c := range courses {
		responses = append(responses, toCourseResponse(c))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// Update はコース更新を処理する。
// PUT /api/courses/{id}
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")

	var req updateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	err := h.service.Update(r.Context(), courseID, course.UpdateInput{
		ID:        req.ID,
		Name:      req.Name,
		Price:     req.Price,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete はコース削除を処理する。
// DELETE /api/courses/{id}
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), courseID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toCourseResponse はmodel.CourseからAPIレスポンスに変換する。
func toCourseResponse(c *model.Course) courseResponse {
	return courseResponse{
		ID:         c.ID,
		Name:       c.Name,
		Price:      c.Price,
		TeacherID:  c.TeacherID,
		StudentIDs: c.StudentIDs,
	}
}
