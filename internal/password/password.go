// Package password はパスワードのハッシュ化と検証を提供する。
package password

import "golang.org/x/crypto/bcrypt"

// Hasher はbcryptによるパスワードハッシュ化を行う。
// コストは起動時に1回設定し、以後変更しない。
type Hasher struct {
	cost int
}

// NewHasher は指定コストのHasherを生成する。
// bcryptの有効範囲外のコストはDefaultCostに丸める。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash は平文パスワードのbcryptハッシュを返す。
// ソルトは呼び出しごとに新しく生成されるため、同じ平文でも出力は毎回異なる。
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify は平文パスワードが保存済みハッシュと一致するかを返す。
// 不一致・ハッシュ不正のいずれもfalseを返し、エラーは返さない。
func (h *Hasher) Verify(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}
