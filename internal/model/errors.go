package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// 呼び出し側はCodeで分岐し、「入力を直す」と「後で再試行する」を区別できる。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, conflict, records, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation     = "VALIDATION_FAILED"
	ErrCodeBadCredentials = "BAD_CREDENTIALS"
	ErrCodeUserNotFound   = "USER_NOT_FOUND"
	ErrCodeCourseNotFound = "COURSE_NOT_FOUND"
	ErrCodeNoteNotFound   = "NOTE_NOT_FOUND"
	ErrCodeUserNameTaken  = "USERNAME_TAKEN"
	ErrCodeForbidden      = "FORBIDDEN"
)

// NewValidationError は入力検証エラーを生成する。
func NewValidationError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  fmt.Sprintf("リクエスト内容が不正です: %s", reason),
		Category: "validation",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewBadCredentialsError はパスワード検証失敗エラーを生成する。
func NewBadCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeBadCredentials,
		Message:  "パスワードが正しくありません。",
		Category: "auth",
		Action:   "パスワードを確認して再度お試しください。",
	}
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError(key string) *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  fmt.Sprintf("指定されたユーザーが見つかりません: %s", key),
		Category: "records",
		Action:   "ユーザーIDまたはユーザー名を確認してください。",
	}
}

// NewCourseNotFoundError はコース未検出エラーを生成する。
func NewCourseNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeCourseNotFound,
		Message:  fmt.Sprintf("指定されたコースが見つかりません: %s", id),
		Category: "records",
		Action:   "コースIDを確認してください。",
	}
}

// NewNoteNotFoundError は成績未検出エラーを生成する。
func NewNoteNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeNoteNotFound,
		Message:  fmt.Sprintf("指定された成績が見つかりません: %s", id),
		Category: "records",
		Action:   "成績IDを確認してください。",
	}
}

// NewUserNameTakenError はユーザー名重複エラーを生成する。
func NewUserNameTakenError(userName string) *APIError {
	return &APIError{
		Code:     ErrCodeUserNameTaken,
		Message:  fmt.Sprintf("ユーザー名は既に使用されています: %s", userName),
		Category: "conflict",
		Action:   "別のユーザー名を指定してください。",
	}
}

// NewForbiddenError は権限不足エラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "この操作を行う権限がありません。",
		Category: "auth",
		Action:   "必要な役割を持つアカウントでログインしてください。",
	}
}
