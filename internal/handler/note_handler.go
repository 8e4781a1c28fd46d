package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/note"
)

// NoteServiceInterface は成績ハンドラーが必要とするサービスインターフェース。
type NoteServiceInterface interface {
	Create(ctx context.Context, in note.CreateInput) (*model.Note, error)
	Update(ctx context.Context, routeID string, in note.UpdateInput) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Note, error)
	List(ctx context.Context) ([]*model.Note, error)
}

// NoteHandler は成績管理のHTTPハンドラー。
type NoteHandler struct {
	service NoteServiceInterface
}

// NewNoteHandler はNoteHandlerを生成する。
func NewNoteHandler(service NoteServiceInterface) *NoteHandler {
	return &NoteHandler{service: service}
}

// createNoteRequest は成績作成リクエストのボディ。
type createNoteRequest struct {
	Value     float64 `json:"value"`
	StudentID string  `json:"student_id"`
	CourseID  string  `json:"course_id"`
}

// updateNoteRequest は成績更新リクエストのボディ。
type updateNoteRequest struct {
	ID        string  `json:"id"`
	Value     float64 `json:"value"`
	StudentID string  `json:"student_id"`
	CourseID  string  `json:"course_id"`
}

// noteResponse は成績情報のAPIレスポンス。
type noteResponse struct {
	ID        string  `json:"id"`
	Value     float64 `json:"value"`
	StudentID string  `json:"student_id"`
	CourseID  string  `json:"course_id"`
}

// Create は成績作成を処理する。
// POST /api/notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	created, err := h.service.Create(r.Context(), note.CreateInput{
		Value:     req.Value,
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toNoteResponse(created))
}

// Get は成績詳細を取得する。
// GET /api/notes/{id}
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "id")

	found, err := h.service.GetByID(r.Context(), noteID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toNoteResponse(found))
}

// List は成績一覧を取得する。
// GET /api/notes
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		responses = append(responses, toNoteResponse(n))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// Update は成績更新を処理する。
// PUT /api/notes/{id}
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "id")

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	err := h.service.Update(r.Context(), noteID, note.UpdateInput{
		ID:        req.ID,
		Value:     req.Value,
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete は成績削除を処理する。
// DELETE /api/notes/{id}
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), noteID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toNoteResponse はmodel.NoteからAPIレスポンスに変換する。
func toNoteResponse(n *model.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Value:     n.Value,
		StudentID: n.StudentID,
		CourseID:  n.CourseID,
	}
}
