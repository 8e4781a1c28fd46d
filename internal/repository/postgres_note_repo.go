package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
)

// PostgresNoteRepo はPostgreSQLを使用した成績リポジトリ。
type PostgresNoteRepo struct {
	db *sql.DB
}

// NewPostgresNoteRepo はPostgresNoteRepoを生成する。
func NewPostgresNoteRepo(db *sql.DB) *PostgresNoteRepo {
	return &PostgresNoteRepo{db: db}
}

// FindByID は指定IDの成績を取得する。見つからない場合はnilを返す。
// 整形式でないIDも見つからない扱いにする。
func (r *PostgresNoteRepo) FindByID(ctx context.Context, id string) (*model.Note, error) {
	if !isUUID(id) {
		return nil, nil
	}
	note := &model.Note{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, value, student_id, course_id, created_at, updated_at FROM notes WHERE id = $1`,
		id,
	).Scan(&note.ID, &note.Value, &note.StudentID, &note.CourseID, &note.CreatedAt, &note.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("成績の取得に失敗しました: %w", err)
	}

	return note, nil
}

// List は全成績を作成日時順で返す。
func (r *PostgresNoteRepo) List(ctx context.Context) ([]*model.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, value, student_id, course_id, created_at, updated_at
		 FROM notes ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("成績一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var notes []*model.Note
	for rows.Next() {
		note := &model.Note{}
		if err := rows.Scan(&note.ID, &note.Value, &note.StudentID, &note.CourseID, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("成績行の読み取りに失敗しました: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("成績一覧の走査に失敗しました: %w", err)
	}
	return notes, nil
}

// Create は成績を作成する。
func (r *PostgresNoteRepo) Create(ctx context.Context, note *model.Note) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (id, value, student_id, course_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		note.ID, note.Value, note.StudentID, note.CourseID, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("成績の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は成績を更新する。
func (r *PostgresNoteRepo) Update(ctx context.Context, note *model.Note) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notes SET value = $2, student_id = $3, course_id = $4, updated_at = NOW() WHERE id = $1`,
		note.ID, note.Value, note.StudentID, note.CourseID,
	)
	if err != nil {
		return fmt.Errorf("成績の更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("成績が見つかりません: %s", note.ID)
	}
	return nil
}

// DeleteByID は指定IDの成績を削除する。
func (r *PostgresNoteRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("成績の削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("成績が見つかりません: %s", id)
	}
	return nil
}

// compile-time interface check
var _ NoteRepository = (*PostgresNoteRepo)(nil)
