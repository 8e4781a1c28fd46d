// Package note は成績管理のドメインロジックを提供する。
package note

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/repository"
)

// CreateInput は成績作成の入力。
type CreateInput struct {
	Value     float64
	StudentID string
	CourseID  string
}

// UpdateInput は成績更新の入力。
type UpdateInput struct {
	ID        string
	Value     float64
	StudentID string
	CourseID  string
}

// Service は成績管理のサービス層。
type Service struct {
	notes repository.NoteRepository
}

// NewService はServiceを生成する。
func NewService(notes repository.NoteRepository) *Service {
	return &Service{notes: notes}
}

// validate は成績入力の共通検証を行う。
func validate(value float64, studentID, courseID string) error {
	if studentID == "" {
		return model.NewValidationError("学生IDが空です")
	}
	if courseID == "" {
		return model.NewValidationError("コースIDが空です")
	}
	if value < 0 {
		return model.NewValidationError("成績は0以上である必要があります")
	}
	return nil
}

// Create は成績を作成する。
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.Note, error) {
	if err := validate(in.Value, in.StudentID, in.CourseID); err != nil {
		return nil, err
	}

	now := time.Now()
	note := &model.Note{
		ID:        uuid.New().String(),
		Value:     in.Value,
		StudentID: in.StudentID,
		CourseID:  in.CourseID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("成績の作成に失敗しました: %w", err)
	}

	slog.Info("note created",
		slog.String("note_id", note.ID),
		slog.String("student_id", note.StudentID),
		slog.String("course_id", note.CourseID),
	)
	return note, nil
}

// Update は成績を更新する。
func (s *Service) Update(ctx context.Context, routeID string, in UpdateInput) error {
	if in.ID != routeID {
		return model.NewValidationError("ルートのIDとボディのIDが一致しません")
	}
	if err := validate(in.Value, in.StudentID, in.CourseID); err != nil {
		return err
	}

	note, err := s.notes.FindByID(ctx, routeID)
	if err != nil {
		return fmt.Errorf("成績の取得に失敗しました: %w", err)
	}
	if note == nil {
		return model.NewNoteNotFoundError(routeID)
	}

	note.Value = in.Value
	note.StudentID = in.StudentID
	note.CourseID = in.CourseID

	if err := s.notes.Update(ctx, note); err != nil {
		return fmt.Errorf("成績の保存に失敗しました: %w", err)
	}

	slog.Info("note updated", slog.String("note_id", note.ID))
	return nil
}

// Delete は成績を削除する。
func (s *Service) Delete(ctx context.Context, id string) error {
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("成績の取得に失敗しました: %w", err)
	}
	if note == nil {
		return model.NewNoteNotFoundError(id)
	}

	if err := s.notes.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("成績の削除に失敗しました: %w", err)
	}

	slog.Info("note deleted", slog.String("note_id", id))
	return nil
}

// GetByID は指定IDの成績を返す。
func (s *Service) GetByID(ctx context.Context, id string) (*model.Note, error) {
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("成績の取得に失敗しました: %w", err)
	}
	if note == nil {
		return nil, model.NewNoteNotFoundError(id)
	}
	return note, nil
}

// List は全成績を返す。
func (s *Service) List(ctx context.Context) ([]*model.Note, error) {
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("成績一覧の取得に失敗しました: %w", err)
	}
	return notes, nil
}
