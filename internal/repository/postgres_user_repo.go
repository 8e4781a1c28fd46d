package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/enrollment"
	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

const userColumns = `id, first_name, last_name, age, user_name, password_hash, role, created_at, updated_at`

// scanUser は1行分のユーザーを読み取る。
func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Age,
		&user.UserName, &user.PasswordHash, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
// 整形式でないIDも見つからない扱いにする。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if !isUUID(id) {
		return nil, nil
	}
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindByUserName はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByUserName(ctx context.Context, userName string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_name = $1`,
		userName,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by user name: %w", err)
	}
	return user, nil
}

// FindByIDWithEnrollments は指定IDのユーザーを受講・担当コース付きで取得する。
// コースはナビゲーションプロパティではなく明示的なクエリで読み込む。
func (r *PostgresUserRepo) FindByIDWithEnrollments(ctx context.Context, id string) (*model.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil || user == nil {
		return user, err
	}

	user.CoursesStudying, err = r.queryCourses(ctx,
		`SELECT c.id, c.name, c.price, c.teacher_id, c.created_at, c.updated_at
		 FROM courses c
		 JOIN course_students cs ON cs.course_id = c.id
		 WHERE cs.user_id = $1
		 ORDER BY c.created_at ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("受講コースの取得に失敗しました: %w", err)
	}

	user.CoursesTeaching, err = r.queryCourses(ctx,
		`SELECT c.id, c.name, c.price, c.teacher_id, c.created_at, c.updated_at
		 FROM courses c
		 WHERE c.teacher_id = $1
		 ORDER BY c.created_at ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("担当コースの取得に失敗しました: %w", err)
	}

	return user, nil
}

// queryCourses はコース行を読み取る共通ヘルパー。
func (r *PostgresUserRepo) queryCourses(ctx context.Context, query string, args ...any) ([]*model.Course, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		course := &model.Course{}
		var teacherID sql.NullString
		if err := rows.Scan(&course.ID, &course.Name, &course.Price, &teacherID, &course.CreatedAt, &course.UpdatedAt); err != nil {
			return nil, err
		}
		course.TeacherID = teacherID.String
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// List は全ユーザーを作成日時順で返す。
func (r *PostgresUserRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ユーザー行の読み取りに失敗しました: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ユーザー一覧の走査に失敗しました: %w", err)
	}
	return users, nil
}

// CreateWithEnrollments はユーザーと初期受講関係を同一トランザクションで作成する。
func (r *PostgresUserRepo) CreateWithEnrollments(ctx context.Context, user *model.User, courseIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, age, user_name, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.FirstName, user.LastName, user.Age,
		user.UserName, user.PasswordHash, user.Role,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	for _, courseID := range courseIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO course_students (course_id, user_id)
			 VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			courseID, user.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert enrollment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SaveWithRoster はプロフィール更新と名簿変更を単一トランザクションでコミットする。
// すべて成功するか、すべてロールバックされるかのいずれかになる。
func (r *PostgresUserRepo) SaveWithRoster(ctx context.Context, user *model.User, delta enrollment.Delta) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE users
		 SET first_name = $2, last_name = $3, age = $4, user_name = $5,
		     password_hash = $6, role = $7, updated_at = NOW()
		 WHERE id = $1`,
		user.ID, user.FirstName, user.LastName, user.Age,
		user.UserName, user.PasswordHash, user.Role,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %s", user.ID)
	}

	if len(delta.ToRemove) > 0 {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM course_students WHERE user_id = $1 AND course_id = ANY($2)`,
			user.ID, pq.Array(delta.ToRemove),
		)
		if err != nil {
			return fmt.Errorf("failed to remove enrollments: %w", err)
		}
	}

	for _, courseID := range delta.ToAdd {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO course_students (course_id, user_id)
			 VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			courseID, user.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to add enrollment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteByID は指定IDのユーザーを削除する。
// course_studentsはCASCADE削除され、担当コースのteacher_idはNULLになる。
func (r *PostgresUserRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
