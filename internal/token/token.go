// Package token は署名付きアイデンティティトークンの発行と検証を提供する。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/RodrigoGoisOficial/SchoolOfDevs/internal/model"
)

// Claims はトークンに埋め込むクレームを表す。
type Claims struct {
	UserID string     `json:"user_id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issuer はHS256署名のJWTを発行・検証する。
// 署名鍵と有効期間はプロセス起動時に1回読み込み、以後変更しない。
// 失効操作は存在しない。トークンは有効期限までステートレスに有効。
type Issuer struct {
	secret []byte
	expiry time.Duration
}

// NewIssuer はIssuerを生成する。
func NewIssuer(secret string, expiry time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Issue はユーザーIDと役割を埋め込んだ署名付きトークンを発行する。
func (i *Issuer) Issue(userID string, role model.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify はトークンの署名と有効期限を検証し、クレームを返す。
// HMAC以外の署名方式は拒否する。
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
