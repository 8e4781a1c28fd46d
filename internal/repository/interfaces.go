// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"database/sql"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/enrollment"
	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	// 受講・担当コースは読み込まない。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByIDWithEnrollments は指定IDのユーザーを受講・担当コース付きで取得する。
	// 見つからない場合はnilを返す。
	FindByIDWithEnrollments(ctx context.Context, id string) (*model.User, error)

	// FindByUserName はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
	FindByUserName(ctx context.Context, userName string) (*model.User, error)

	// List は全ユーザーを作成日時順で返す。
	List(ctx context.Context) ([]*model.User, error)

	// CreateWithEnrollments はユーザーと初期受講関係を同一トランザクションで作成する。
	CreateWithEnrollments(ctx context.Context, user *model.User, courseIDs []string) error

	// SaveWithRoster はプロフィール更新と名簿の追加・削除を単一トランザクションで
	// コミットする。deltaが空の場合はプロフィール更新のみを行う。
	SaveWithRoster(ctx context.Context, user *model.User, delta enrollment.Delta) error

	// DeleteByID は指定IDのユーザーを削除する。
	// 受講関係（course_students）はCASCADE削除され、担当コースの
	// teacher_idはNULLに戻る（コース自体は削除されない）。
	DeleteByID(ctx context.Context, id string) error
}

// CourseRepository はコースデータの永続化インターフェース。
type CourseRepository interface {
	// FindByID は指定IDのコースを名簿付きで取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Course, error)

	// FindByIDs は指定ID集合に一致するコースを1回のクエリで取得する。
	// 存在しないIDは結果から単に欠落する。名簿は読み込まない。
	FindByIDs(ctx context.Context, ids []string) ([]*model.Course, error)

	// List は全コースを作成日時順で返す。
	List(ctx context.Context) ([]*model.Course, error)

	// Create はコースを作成する。
	Create(ctx context.Context, course *model.Course) error

	// Update はコース情報を更新する。名簿は変更しない。
	Update(ctx context.Context, course *model.Course) error

	// DeleteByID は指定IDのコースを削除する。受講関係はCASCADE削除される。
	DeleteByID(ctx context.Context, id string) error
}

// NoteRepository は成績データの永続化インターフェース。
type NoteRepository interface {
	// FindByID は指定IDの成績を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Note, error)

	// List は全成績を作成日時順で返す。
	List(ctx context.Context) ([]*model.Note, error)

	// Create は成績を作成する。
	Create(ctx context.Context, note *model.Note) error

	// Update は成績を更新する。
	Update(ctx context.Context, note *model.Note) error

	// DeleteByID は指定IDの成績を削除する。
	DeleteByID(ctx context.Context, id string) error
}

// TxBeginner はトランザクション開始用のインターフェース。
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
