package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Claims утверждения токена Booking API
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTValidator проверяет HS256-токены общим секретом
type JWTValidator struct {
	secret []byte
	now    func() time.Time
}

func NewJWTValidator(secret string) *JWTValidator {
	return &JWTValidator{secret: []byte(strings.TrimSpace(secret)), now: time.Now}
}

// Validate проверяет подпись и срок действия и возвращает контекст сессии
func (v *JWTValidator) Validate(token string) (domain.AuthContext, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.AuthContext{}, ErrMissingToken
	}
	if len(v.secret) == 0 {
		return domain.AuthContext{}, fmt.Errorf("%w: jwt secret not configured", ErrInvalidToken)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithLeeway(5*time.Second), jwt.WithTimeFunc(v.now))
	if err != nil {
		return domain.AuthContext{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return domain.AuthContext{}, ErrInvalidToken
	}

	if claims.Subject == "" {
		return domain.AuthContext{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	auth := domain.AuthContext{
		UserID: claims.Subject,
		Role:   domain.RoleUser,
		Token:  token,
	}
	if strings.EqualFold(claims.Role, string(domain.RoleAdmin)) {
		auth.Role = domain.RoleAdmin
	}
	if claims.ExpiresAt != nil {
		auth.ExpiresAt = claims.ExpiresAt.Time
	}

	return auth, nil
}

// Issue подписывает токен. Используется флагом courtapi --issue-token для выдачи тестовых сессий
func (v *JWTValidator) Issue(userID string, role domain.Role, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(v.now()),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(v.now().Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
