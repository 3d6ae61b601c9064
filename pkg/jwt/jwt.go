package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken token malformado, assinatura inválida ou claims ausentes.
	ErrInvalidToken = errors.New("token inválido")
	// ErrExpiredToken token com exp no passado.
	ErrExpiredToken = errors.New("token expirado")
)

// Claims são as claims de acesso emitidas no login.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// Manager emite e valida tokens HS256.
type Manager struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewManager cria um Manager. expirationMinutes controla o exp dos tokens emitidos.
func NewManager(secret string, expirationMinutes int, issuer string) *Manager {
	return &Manager{
		secret:     []byte(secret),
		expiration: time.Duration(expirationMinutes) * time.Minute,
		issuer:     issuer,
	}
}

// Generate emite um token assinado para o usuário com a role embutida.
func (m *Manager) Generate(userID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("assinando token: %w", err)
	}
	return signed, nil
}

// Parse valida o token e devolve userID e role.
func (m *Manager) Parse(tokenString string) (uuid.UUID, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, "", ErrExpiredToken
		}
		return uuid.Nil, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, "", ErrInvalidToken
	}
	if claims.UserID == uuid.Nil || claims.Role == "" {
		return uuid.Nil, "", ErrInvalidToken
	}

	return claims.UserID, claims.Role, nil
}
