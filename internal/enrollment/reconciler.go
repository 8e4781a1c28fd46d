// Package enrollment は学生とコースの受講関係の差分計算と適用を提供する。
package enrollment

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
)

// Delta は受講関係に適用すべき最小の追加・削除集合を表す。
// 派生値であり永続化はしない。
type Delta struct {
	ToAdd    []string
	ToRemove []string
}

// Empty は適用すべき変更が存在しないかを返す。
func (d Delta) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// CourseFinder はコースの一括取得に必要なインターフェース。
// repository.CourseRepositoryの部分集合として定義する。
type CourseFinder interface {
	// FindByIDs は指定ID集合に一致するコースを1回のクエリで取得する。
	FindByIDs(ctx context.Context, ids []string) ([]*model.Course, error)
}

// MetricsCollector は受講変更のメトリクス記録インターフェース。
type MetricsCollector interface {
	RecordEnrollmentChange(added, removed int)
}

// Reconciler は現在の受講集合と要求された受講集合の差分を計算し、
// ユーザーの受講コースを適用後の状態へ更新する。
type Reconciler struct {
	courses CourseFinder
	metrics MetricsCollector
}

// NewReconciler はReconcilerを生成する。metricsはnilでもよい。
func NewReconciler(courses CourseFinder, metrics MetricsCollector) *Reconciler {
	return &Reconciler{
		courses: courses,
		metrics: metrics,
	}
}

// Reconcile はuserの現在の受講集合と要求されたコースID集合の最小差分を算出し、
// user.CoursesStudyingを適用後の状態へ更新して差分を返す。
//
//   - 入力の重複IDは無視し、順序は意味を持たない。
//   - 差分が空の場合は何にも触れず即座に返る（冪等の早期経路）。
//   - 追加側の未解決IDは操作全体を失敗させず黙って除外する（WARNログのみ）。
//   - 差分対象のコースは追加・削除あわせて1回のバッチ取得で解決する。
//   - CoursesTeachingには一切触れない。
//
// 永続化は行わない。呼び出し側がUserRepositoryのSaveWithRosterで
// プロフィール更新と名簿変更を単一トランザクションとしてコミットする。
func (r *Reconciler) Reconcile(ctx context.Context, user *model.User, requestedIDs []string) (Delta, error) {
	current := make(map[string]*model.Course, len(user.CoursesStudying))
	for _, c := range user.CoursesStudying {
		current[c.ID] = c
	}

	requested := make(map[string]struct{}, len(requestedIDs))
	for _, id := range requestedIDs {
		if id != "" {
			requested[id] = struct{}{}
		}
	}

	var toRemove, toAdd []string
	for id := range current {
		if _, ok := requested[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	for id := range requested {
		if _, ok := current[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}

	// 冪等の早期経路: 差分がなければ何にも触れない
	if len(toRemove) == 0 && len(toAdd) == 0 {
		return Delta{}, nil
	}

	// 追加・削除対象の和集合を1回のバッチ取得で解決する（N+1回避）
	union := make([]string, 0, len(toRemove)+len(toAdd))
	union = append(union, toRemove...)
	union = append(union, toAdd...)

	resolved, err := r.courses.FindByIDs(ctx, union)
	if err != nil {
		return Delta{}, fmt.Errorf("コースの一括取得に失敗しました: %w", err)
	}

	byID := make(map[string]*model.Course, len(resolved))
	for _, c := range resolved {
		byID[c.ID] = c
	}

	delta := Delta{}
	for _, id := range toRemove {
		if _, ok := byID[id]; ok {
			delta.ToRemove = append(delta.ToRemove, id)
		}
	}

	var dropped []string
	for _, id := range toAdd {
		if _, ok := byID[id]; ok {
			delta.ToAdd = append(delta.ToAdd, id)
		} else {
			dropped = append(dropped, id)
		}
	}
	if len(dropped) > 0 {
		slog.Warn("要求されたコースが存在しないため無視します",
			slog.String("user_id", user.ID),
			slog.Any("course_ids", dropped),
		)
	}

	sort.Strings(delta.ToAdd)
	sort.Strings(delta.ToRemove)

	if delta.Empty() {
		return delta, nil
	}

	// 受講集合を適用後の状態に組み直す
	removeSet := make(map[string]struct{}, len(delta.ToRemove))
	for _, id := range delta.ToRemove {
		removeSet[id] = struct{}{}
	}

	next := make([]*model.Course, 0, len(user.CoursesStudying)+len(delta.ToAdd))
	for _, c := range user.CoursesStudying {
		if _, ok := removeSet[c.ID]; !ok {
			next = append(next, c)
		}
	}
	for _, id := range delta.ToAdd {
		next = append(next, byID[id])
	}
	user.CoursesStudying = next

	if r.metrics != nil {
		r.metrics.RecordEnrollmentChange(len(delta.ToAdd), len(delta.ToRemove))
	}

	return delta, nil
}
