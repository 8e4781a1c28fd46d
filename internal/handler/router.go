package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/metrics"
	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/middleware"
	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBがそのまま満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	HTTPMetrics       middleware.HTTPMetricsCollector

	// ヘルスチェック・メトリクス
	HealthChecker HealthChecker
	Gatherer      prometheus.Gatherer

	// ドメインサービス
	UserService   UserServiceInterface
	CourseService CourseServiceInterface
	NoteService   NoteServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → (認証ルートのみ) Auth → RateLimit(General)
//
// 公開ルート（認証・登録・ヘルスチェック・メトリクス）は認証ミドルウェアの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r.Use(middleware.NewLoggingMiddleware(logger, deps.HTTPMetrics))

	userHandler := NewUserHandler(deps.UserService)
	courseHandler := NewCourseHandler(deps.CourseService)
	noteHandler := NewNoteHandler(deps.NoteService)

	// --- 認証不要のルート ---

	// ログイン（専用レート制限を適用）とユーザー登録
	if deps.RateLimiter != nil {
		r.With(deps.RateLimiter.LoginMiddleware()).Post("/api/users/authenticate", userHandler.Authenticate)
	} else {
		r.Post("/api/users/authenticate", userHandler.Authenticate)
	}
	r.Post("/api/users", userHandler.Create)

	// ヘルスチェック
	r.Get("/healthz", newHealthHandler(deps.HealthChecker))

	// Prometheusメトリクス
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}

		// ユーザー管理
		r.Route("/api/users", func(r chi.Router) {
			r.Get("/", userHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", userHandler.Get)
				r.Put("/", userHandler.Update)
				r.Delete("/", userHandler.Delete)
			})
		})

		// コース管理（変更系は教師能力が必要）
		requireTeacher := middleware.NewRequireRoleMiddleware(model.RoleTeacher)
		r.Route("/api/courses", func(r chi.Router) {
			r.Get("/", courseHandler.List)
			r.With(requireTeacher).Post("/", courseHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", courseHandler.Get)
				r.With(requireTeacher).Put("/", courseHandler.Update)
				r.With(requireTeacher).Delete("/", courseHandler.Delete)
			})
		})

		// 成績管理（変更系は教師能力が必要）
		r.Route("/api/notes", func(r chi.Router) {
			r.Get("/", noteHandler.List)
			r.With(requireTeacher).Post("/", noteHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", noteHandler.Get)
				r.With(requireTeacher).Put("/", noteHandler.Update)
				r.With(requireTeacher).Delete("/", noteHandler.Delete)
			})
		})
	})

	return r
}

// newHealthHandler はDB接続を確認するヘルスチェックハンドラーを返す。
// GET /healthz
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
