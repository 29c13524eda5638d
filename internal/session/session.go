package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// TokenEnv переменная окружения с токеном; перекрывает файл
const TokenEnv = "COURT_TOKEN"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Claims утверждения токена, которые нужны клиенту
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Parse разбирает токен без проверки подписи: ее проверяет сервер.
// Клиенту нужны только sub, role и exp
func Parse(token string) (domain.AuthContext, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.AuthContext{}, ErrNoToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return domain.AuthContext{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
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

// Store источник сессии: переменная окружения или файл с токеном
type Store struct {
	path   string
	now    func() time.Time
	logger Logger
}

func NewStore(path string, logger Logger) *Store {
	return &Store{path: path, now: time.Now, logger: logger}
}

// Load читает и разбирает токен. Истекший токен дает ErrExpired
func (s *Store) Load() (domain.AuthContext, error) {
	token, err := s.read()
	if err != nil {
		return domain.AuthContext{}, err
	}

	auth, err := Parse(token)
	if err != nil {
		return domain.AuthContext{}, err
	}

	if !auth.IsValid(s.now()) {
		return domain.AuthContext{}, fmt.Errorf("%w: at %s", ErrExpired, auth.ExpiresAt.Format(time.RFC3339))
	}

	return auth, nil
}

// Current возвращает действующую сессию или нулевой AuthContext
func (s *Store) Current() domain.AuthContext {
	auth, err := s.Load()
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			s.logger.Warn("Session: %v", err)
		}
		return domain.AuthContext{}
	}
	return auth
}

// Save проверяет токен и записывает его в файл с правами 0600
func (s *Store) Save(token string) (domain.AuthContext, error) {
	auth, err := Parse(token)
	if err != nil {
		return domain.AuthContext{}, err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return domain.AuthContext{}, fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(auth.Token+"\n"), 0o600); err != nil {
		return domain.AuthContext{}, fmt.Errorf("write token file: %w", err)
	}

	return auth, nil
}

// Clear удаляет файл с токеном
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

func (s *Store) read() (string, error) {
	if token := strings.TrimSpace(os.Getenv(TokenEnv)); token != "" {
		return token, nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
