package repository

import "github.com/google/uuid"

// isUUID はIDが整形式のUUIDかを判定する。
// 主キー列はUUID型のため、整形式でないIDをクエリに渡すと
// 行の照合前に型エラーで失敗する。存在しないIDとして扱う。
func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}

// filterUUIDs は整形式のUUIDだけを順序を保って返す。
func filterUUIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if isUUID(id) {
			out = append(out, id)
		}
	}
	return out
}
