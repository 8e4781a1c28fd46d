// Package course はコース管理のドメインロジックを提供する。
package course

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/repository"
)

// CreateInput はコース作成の入力。
type CreateInput struct {
	Name      string
	Price     float64
	TeacherID string
}

// UpdateInput はコース更新の入力。
type UpdateInput struct {
	ID        string
	Name      string
	Price     float64
	TeacherID string
}

// Service はコース管理のサービス層。
type Service struct {
	courses repository.CourseRepository
}

// NewService はServiceを生成する。
func NewService(courses repository.CourseRepository) *Service {
	return &Service{courses: courses}
}

// Create はコースを作成する。
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.Course, error) {
	if in.Name == "" {
		return nil, model.NewValidationError("コース名が空です")
	}
	if in.Price < 0 {
		return nil, model.NewValidationError("価格は0以上である必要があります")
	}

	now := time.Now()
	course := &model.Course{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Price:     in.Price,
		TeacherID: in.TeacherID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("コースの作成に失敗しました: %w", err)
	}

	slog.Info("course created",
		slog.String("course_id", course.ID),
		slog.String("name", course.Name),
	)
	return course, nil
}

// Update はコースを更新する。名簿（受講学生）はここでは変更しない。
// 検証順序は固定: ルートIDとボディIDの一致 → 入力の検証 → コースの存在。
func (s *Service) Update(ctx context.Context, routeID string, in UpdateInput) error {
	if in.ID != routeID {
		return model.NewValidationError("ルートのIDとボディのIDが一致しません")
	}
	if in.Name == "" {
		return model.NewValidationError("コース名が空です")
	}
	if in.Price < 0 {
		return model.NewValidationError("価格は0以上である必要があります")
	}

	course, err := s.courses.FindByID(ctx, routeID)
	if err != nil {
		return fmt.Errorf("コースの取得に失敗しました: %w", err)
	}
	if course == nil {
		return model.NewCourseNotFoundError(routeID)
	}

	course.Name = in.Name
	course.Price = in.Price
	course.TeacherID = in.TeacherID

	if err := s.courses.Update(ctx, course); err != nil {
		return fmt.Errorf("コースの保存に失敗しました: %w", err)
	}

	slog.Info("course updated", slog.String("course_id", course.ID))
	return nil
}

// Delete はコースを削除する。受講関係の行も同時に取り除かれる。
func (s *Service) Delete(ctx context.Context, id string) error {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("コースの取得に失敗しました: %w", err)
	}
	if course == nil {
		return model.NewCourseNotFoundError(id)
	}

	if err := s.courses.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("コースの削除に失敗しました: %w", err)
	}

	slog.Info("course deleted", slog.String("course_id", id))
	return nil
}

// GetByID は指定IDのコースを名簿付きで返す。
func (s *Service) GetByID(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("コースの取得に失敗しました: %w", err)
	}
	if course == nil {
		return nil, model.NewCourseNotFoundError(id)
	}
	return course, nil
}

// List は全コースを返す。
func (s *Service) List(ctx context.Context) ([]*model.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("コース一覧の取得に失敗しました: %w", err)
	}
	return courses, nil
}
