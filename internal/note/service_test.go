package note

import (
	"context"
	"errors"
	"testing"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
)

type mockNoteRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.Note, error)
	createFn   func(ctx context.Context, note *model.Note) error
	updateFn   func(ctx context.Context, note *model.Note) error
	deleteFn   func(ctx context.Context, id string) error

	lookupCalls int
}

func (m *mockNoteRepo) FindByID(ctx context.Context, id string) (*model.Note, error) {
	m.lookupCalls++
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockNoteRepo) List(ctx context.Context) ([]*model.Note, error) { return nil, nil }

func (m *mockNoteRepo) Create(ctx context.Context, note *model.Note) error {
	if m.createFn != nil {
		return m.createFn(ctx, note)
	}
	return nil
}

func (m *mockNoteRepo) Update(ctx context.Context, note *model.Note) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, note)
	}
	return nil
}

func (m *mockNoteRepo) DeleteByID(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func apiErrorCode(t *testing.T, err error) string {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T: %v", err, err)
	}
	return apiErr.Code
}

// TestCreate_Success は成績作成の成功経路を検証する。
func TestCreate_Success(t *testing.T) {
	var stored *model.Note
	repo := &mockNoteRepo{
		createFn: func(ctx context.Context, note *model.Note) error {
			stored = note
			return nil
		},
	}
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{
		Value:     8.5,
		StudentID: "student-1",
		CourseID:  "course-1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if stored == nil {
		t.Fatal("expected repository Create to be called")
	}
	if created.ID == "" {
		t.Error("expected generated note ID")
	}
	if created.Value != 8.5 || created.StudentID != "student-1" || created.CourseID != "course-1" {
		t.Errorf("created = %+v", created)
	}
}

// TestCreate_Validation は不正な入力で永続化が行われないことを検証する。
func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   CreateInput
	}{
		{"empty student id", CreateInput{Value: 5, StudentID: "", CourseID: "c1"}},
		{"empty course id", CreateInput{Value: 5, StudentID: "s1", CourseID: ""}},
		{"negative value", CreateInput{Value: -1, StudentID: "s1", CourseID: "c1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			createCalled := false
			repo := &mockNoteRepo{
				createFn: func(ctx context.Context, note *model.Note) error {
					createCalled = true
					return nil
				},
			}
			svc := NewService(repo)

			_, err := svc.Create(context.Background(), tt.in)
			if code := apiErrorCode(t, err); code != model.ErrCodeValidation {
				t.Errorf("code = %q, want %q", code, model.ErrCodeValidation)
			}
			if createCalled {
				t.Error("expected no persistence write on validation failure")
			}
		})
	}
}

// TestUpdate_RouteIDMismatch はルートIDとボディIDの不一致が参照前に失敗することを検証する。
func TestUpdate_RouteIDMismatch(t *testing.T) {
	repo := &mockNoteRepo{}
	svc := NewService(repo)

	err := svc.Update(context.Background(), "route-id", UpdateInput{
		ID:        "body-id",
		Value:     5,
		StudentID: "s1",
		CourseID:  "c1",
	})
	if code := apiErrorCode(t, err); code != model.ErrCodeValidation {
		t.Errorf("code = %q, want %q", code, model.ErrCodeValidation)
	}
	if repo.lookupCalls != 0 {
		t.Errorf("lookup calls = %d, want 0", repo.lookupCalls)
	}
}

// TestUpdate_NotFound は存在しない成績の更新がNOTE_NOT_FOUNDになることを検証する。
func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(&mockNoteRepo{})

	err := svc.Update(context.Background(), "ghost", UpdateInput{
		ID:        "ghost",
		Value:     5,
		StudentID: "s1",
		CourseID:  "c1",
	})
	if code := apiErrorCode(t, err); code != model.ErrCodeNoteNotFound {
		t.Errorf("code = %q, want %q", code, model.ErrCodeNoteNotFound)
	}
}

// TestUpdate_Success は更新の成功経路を検証する。
func TestUpdate_Success(t *testing.T) {
	var saved *model.Note
	repo := &mockNoteRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Note, error) {
			return &model.Note{ID: id, Value: 4, StudentID: "s1", CourseID: "c1"}, nil
		},
		updateFn: func(ctx context.Context, note *model.Note) error {
			saved = note
			return nil
		},
	}
	svc := NewService(repo)

	err := svc.Update(context.Background(), "n1", UpdateInput{
		ID:        "n1",
		Value:     9,
		StudentID: "s1",
		CourseID:  "c1",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if saved == nil {
		t.Fatal("expected repository Update to be called")
	}
	if saved.Value != 9 {
		t.Errorf("saved.Value = %v, want 9", saved.Value)
	}
}

// TestDelete_NotFound は存在しない成績の削除がNOTE_NOT_FOUNDになることを検証する。
func TestDelete_NotFound(t *testing.T) {
	svc := NewService(&mockNoteRepo{})

	err := svc.Delete(context.Background(), "ghost")
	if code := apiErrorCode(t, err); code != model.ErrCodeNoteNotFound {
		t.Errorf("code = %q, want %q", code, model.ErrCodeNoteNotFound)
	}
}

// TestGetByID_NotFound は存在しない成績の取得がNOTE_NOT_FOUNDになることを検証する。
func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&mockNoteRepo{})

	_, err := svc.GetByID(context.Background(), "ghost")
	if code := apiErrorCode(t, err); code != model.ErrCodeNoteNotFound {
		t.Errorf("code = %q, want %q", code, model.ErrCodeNoteNotFound)
	}
}
