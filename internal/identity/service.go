// Package identity は認証とユーザー管理のドメインロジックを提供する。
package identity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/enrollment"
	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/repository"
)

// PasswordHasher はパスワードのハッシュ化・検証インターフェース。
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, storedHash string) bool
}

// TokenIssuer は署名付きトークンの発行インターフェース。
type TokenIssuer interface {
	Issue(userID string, role model.Role) (string, error)
}

// EnrollmentReconciler は受講関係の差分計算・適用インターフェース。
type EnrollmentReconciler interface {
	Reconcile(ctx context.Context, user *model.User, requestedIDs []string) (enrollment.Delta, error)
}

// MetricsCollector は認証メトリクスの記録インターフェース。
type MetricsCollector interface {
	RecordLoginSuccess()
	RecordLoginFailure(reason string)
}

// AuthResult は認証成功時に呼び出し側へ返す情報。
type AuthResult struct {
	ID        string
	FirstName string
	LastName  string
	UserName  string
	Role      model.Role
	Token     string
}

// CreateInput はユーザー登録の入力。
type CreateInput struct {
	FirstName       string
	LastName        string
	Age             int
	UserName        string
	Password        string
	ConfirmPassword string
	Role            model.Role
	CourseIDs       []string
}

// UpdateInput はユーザー更新の入力。
// Passwordは新しいパスワード、CurrentPasswordは再認証用の現在のパスワード。
type UpdateInput struct {
	ID              string
	FirstName       string
	LastName        string
	Age             int
	UserName        string
	Password        string
	ConfirmPassword string
	CurrentPassword string
	Role            model.Role
	CourseIDs       []string
}

// Service は認証とユーザー管理のサービス層。
// 呼び出し間で可変状態を持たない。副作用はハッシュ化・トークン発行・
// 受講差分適用・永続化コラボレータに限定される。
type Service struct {
	users      repository.UserRepository
	courses    repository.CourseRepository
	hasher     PasswordHasher
	issuer     TokenIssuer
	reconciler EnrollmentReconciler
	metrics    MetricsCollector
}

// NewService はServiceを生成する。metricsはnilでもよい。
func NewService(
	users repository.UserRepository,
	courses repository.CourseRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	reconciler EnrollmentReconciler,
	metrics MetricsCollector,
) *Service {
	return &Service{
		users:      users,
		courses:    courses,
		hasher:     hasher,
		issuer:     issuer,
		reconciler: reconciler,
		metrics:    metrics,
	}
}

// Authenticate は資格情報を検証し、署名付きトークンを発行する。
//
// USER_NOT_FOUNDとBAD_CREDENTIALSは区別して返す。ユーザー名の存在が
// 漏れるが、このシステムではユーザー名は秘密ではないため許容している。
func (s *Service) Authenticate(ctx context.Context, userName, plaintext string) (*AuthResult, error) {
	user, err := s.users.FindByUserName(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		s.recordLoginFailure("user_not_found")
		return nil, model.NewUserNotFoundError(userName)
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		s.recordLoginFailure("bad_password")
		slog.Warn("authentication failed",
			slog.String("user_name", userName),
		)
		return nil, model.NewBadCredentialsError()
	}

	tokenStr, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordLoginSuccess()
	}
	slog.Info("user authenticated",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return &AuthResult{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		UserName:  user.UserName,
		Role:      user.Role,
		Token:     tokenStr,
	}, nil
}

// Create はユーザーを登録する。
// パスワード確認の不一致、ユーザー名の重複を検証し、
// 受講可能な役割の場合のみ要求されたコースIDを実在するコースに解決して
// 初期受講集合を作る（未解決IDは黙って除外する）。
// パスワードはハッシュのみを保存する。
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.User, error) {
	if in.Password != in.ConfirmPassword {
		return nil, model.NewValidationError("パスワードと確認用パスワードが一致しません")
	}
	if !in.Role.Valid() {
		return nil, model.NewValidationError(fmt.Sprintf("不明な役割です: %s", in.Role))
	}
	if in.UserName == "" {
		return nil, model.NewValidationError("ユーザー名が空です")
	}

	existing, err := s.users.FindByUserName(ctx, in.UserName)
	if err != nil {
		return nil, fmt.Errorf("ユーザー名の重複確認に失敗しました: %w", err)
	}
	if existing != nil {
		return nil, model.NewUserNameTakenError(in.UserName)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Age:          in.Age,
		UserName:     in.UserName,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var courseIDs []string
	if user.Role.CanStudy() && len(in.CourseIDs) > 0 {
		requested := dedupe(in.CourseIDs)
		resolved, err := s.courses.FindByIDs(ctx, requested)
		if err != nil {
			return nil, fmt.Errorf("コースの解決に失敗しました: %w", err)
		}
		for _, c := range resolved {
			courseIDs = append(courseIDs, c.ID)
			user.CoursesStudying = append(user.CoursesStudying, c)
		}
		if len(resolved) < len(requested) {
			slog.Warn("要求されたコースの一部が存在しないため無視します",
				slog.String("user_name", in.UserName),
			)
		}
	}

	if err := s.users.CreateWithEnrollments(ctx, user, courseIDs); err != nil {
		return nil, fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}

	slog.Info("user created",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.Int("initial_enrollments", len(courseIDs)),
	)

	return user, nil
}

// Update はユーザーを更新する。
//
// 検証順序は固定: ルートIDとボディIDの一致 → パスワード確認の一致 →
// ユーザーの存在（受講付きで取得） → 現在パスワードの再認証 →
// 受講差分の適用 → 新パスワードの再ハッシュ → 単一トランザクションでの永続化。
func (s *Service) Update(ctx context.Context, routeID string, in UpdateInput) error {
	if in.ID != routeID {
		return model.NewValidationError("ルートのIDとボディのIDが一致しません")
	}
	if in.Password != in.ConfirmPassword {
		return model.NewValidationError("パスワードと確認用パスワードが一致しません")
	}
	if !in.Role.Valid() {
		return model.NewValidationError(fmt.Sprintf("不明な役割です: %s", in.Role))
	}

	user, err := s.users.FindByIDWithEnrollments(ctx, routeID)
	if err != nil {
		return fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError(routeID)
	}

	if !s.hasher.Verify(in.CurrentPassword, user.PasswordHash) {
		return model.NewBadCredentialsError()
	}

	delta, err := s.reconciler.Reconcile(ctx, user, in.CourseIDs)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Age = in.Age
	if in.UserName != "" {
		user.UserName = in.UserName
	}
	user.Role = in.Role
	user.PasswordHash = hash

	if err := s.users.SaveWithRoster(ctx, user, delta); err != nil {
		return fmt.Errorf("ユーザーの保存に失敗しました: %w", err)
	}

	slog.Info("user updated",
		slog.String("user_id", user.ID),
		slog.Int("enrollments_added", len(delta.ToAdd)),
		slog.Int("enrollments_removed", len(delta.ToRemove)),
	)

	return nil
}

// Delete はユーザーを削除する。
// 受講関係は名簿から取り除かれ、担当コースは教師が外れるだけで削除されない。
func (s *Service) Delete(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError(id)
	}

	if err := s.users.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}

	slog.Info("user deleted", slog.String("user_id", id))
	return nil
}

// GetByID は指定IDのユーザーを受講・担当コース付きで返す。
func (s *Service) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByIDWithEnrollments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(id)
	}
	return user, nil
}

// List は全ユーザーを返す。
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗しました: %w", err)
	}
	return users, nil
}

// recordLoginFailure は失敗理由付きでメトリクスを記録する。
func (s *Service) recordLoginFailure(reason string) {
	if s.metrics != nil {
		s.metrics.RecordLoginFailure(reason)
	}
}

// dedupe は順序を保ちながら重複と空文字列を取り除く。
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
