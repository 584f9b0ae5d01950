package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/voblako/voblako/internal/model"
	"github.com/voblako/voblako/internal/repository"
	"github.com/voblako/voblako/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidSession     = errors.New("invalid session token")
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session_id"

type AuthService struct {
	userRepository repository.UserRepository
	sessionSecret  string
	sessionMaxAge  time.Duration
	isProduction   bool
}

func NewAuthService(userRepository repository.UserRepository, sessionSecret string, sessionMaxAge time.Duration, isProduction bool) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		sessionSecret:  sessionSecret,
		sessionMaxAge:  sessionMaxAge,
		isProduction:   isProduction,
	}
}

func (s *AuthService) Login(email, password string) (*model.User, error) {
	user, err := s.userRepository.ByEmail(validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Signup creates an account. Password length and email shape are validated
// at the endpoint layer; this only guards against duplicates.
func (s *AuthService) Signup(email, password string) (*model.User, error) {
	normalized := validation.NormalizeEmail(email)

	_, err := s.userRepository.ByEmail(normalized)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepository.Create(normalized, string(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GenerateSession mints a signed, expiring token carrying the public
// identity. The legacy mock used an unsigned base64 envelope; the cookie
// contract is the same, the trust model is not.
func (s *AuthService) GenerateSession(user *model.PublicUser) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.sessionMaxAge).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.sessionSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifySession decodes and validates a session token. Malformed, expired
// or foreign-signed tokens yield ErrInvalidSession, never a panic.
func (s *AuthService) VerifySession(tokenString string) (*model.PublicUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.sessionSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrInvalidSession
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, ErrInvalidSession
	}

	return &model.PublicUser{ID: int64(userID), Email: email}, nil
}

func (s *AuthService) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie invalidates the client-held session. There is no
// server-side revocation; the token dies with the cookie.
func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1, // serialized as Max-Age=0
	})
}
