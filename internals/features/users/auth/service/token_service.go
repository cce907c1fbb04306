package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	userModel "tahfidz_backend/internals/features/users/user/model"
)

// AccessClaims: isi access token (HS256).
type AccessClaims struct {
	Role string `json:"role"`
	Nama string `json:"nama"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: func() time.Time { return time.Now().UTC() }}
}

func (t *TokenIssuer) Issue(u userModel.UserModel) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	claims := AccessClaims{
		Role: u.Role,
		Nama: u.Nama,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

var errBadToken = errors.New("token tidak valid")

// Parse memverifikasi tanda tangan HS256 dan exp.
func (t *TokenIssuer) Parse(raw string) (*AccessClaims, uuid.UUID, error) {
	claims := &AccessClaims{}
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	tok, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, uuid.Nil, fmt.Errorf("%w: %v", errBadToken, err)
	}
	if claims.ExpiresAt == nil {
		return nil, uuid.Nil, fmt.Errorf("%w: exp kosong", errBadToken)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: sub bukan uuid", errBadToken)
	}
	return claims, userID, nil
}

// Fingerprint: HMAC(token) hex, yang disimpan di token_blacklist (bukan token mentah).
func (t *TokenIssuer) Fingerprint(raw string) string {
	m := hmac.New(sha256.New, t.secret)
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}
