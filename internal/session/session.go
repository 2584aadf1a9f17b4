package session

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/techcare/core/pkg/models"
	"github.com/techcare/core/pkg/repository"
)

// Durable key-value keys, one namespace for the single ambient session.
const (
	keyUserID     = "user_id"
	keyUserEmail  = "user_email"
	keyUserName   = "user_name"
	keyUserPhone  = "user_phone"
	keyUserType   = "user_type"
	keyIsLoggedIn = "is_logged_in"
	keyToken      = "session_token"
)

// Manager holds the single ambient session in durable key-value storage, so
// it survives process restarts until an explicit End. The session fields are
// additionally carried in a signed token; a persisted session whose token
// fails verification reads back as logged out.
type Manager struct {
	kv     repository.KVStore
	secret []byte
	logger *slog.Logger
}

func NewManager(kv repository.KVStore, secret string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{kv: kv, secret: []byte(secret), logger: logger}
}

// Start overwrites the ambient session with the given identity. Any prior
// session is silently replaced.
func (m *Manager) Start(ctx context.Context, userID int64, email, name, phone string, role models.Role) error {
	if err := m.kv.Clear(ctx); err != nil {
		return fmt.Errorf("clear prior session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti":       uuid.NewString(),
		"user_id":   userID,
		"email":     email,
		"name":      name,
		"phone":     phone,
		"user_type": string(role),
	})
	tokenStr, err := token.SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	pairs := map[string]string{
		keyUserID:     strconv.FormatInt(userID, 10),
		keyUserEmail:  email,
		keyUserName:   name,
		keyUserPhone:  phone,
		keyUserType:   string(role),
		keyIsLoggedIn: "true",
		keyToken:      tokenStr,
	}
	for k, v := range pairs {
		if err := m.kv.Set(ctx, k, v); err != nil {
			return fmt.Errorf("persist session key %s: %w", k, err)
		}
	}

	m.logger.Info("session started", slog.Int64("user_id", userID), slog.String("role", string(role)))
	return nil
}

// Current returns the ambient session, or the anonymous defaults when no
// session exists or the persisted token does not verify.
func (m *Manager) Current(ctx context.Context) models.Session {
	tokenStr, ok, err := m.kv.Get(ctx, keyToken)
	if err != nil {
		m.logger.Error("session read failed", slog.Any("err", err))
		return models.Anonymous()
	}
	if !ok {
		return models.Anonymous()
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return m.secret, nil
	})
	if err != nil || !token.Valid {
		m.logger.Warn("persisted session token failed verification", slog.Any("err", err))
		return models.Anonymous()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Anonymous()
	}

	sess := models.Anonymous()
	if v, found := claims["user_id"]; found {
		switch id := v.(type) {
		case float64:
			sess.UserID = int64(id)
		case int64:
			sess.UserID = id
		}
	}
	sess.Email, _ = claims["email"].(string)
	sess.Name, _ = claims["name"].(string)
	sess.Phone, _ = claims["phone"].(string)
	if role, found := claims["user_type"].(string); found {
		sess.Role = models.ParseRole(role)
	}
	sess.Authenticated = true
	return sess
}

// IsAdmin reports whether the ambient session belongs to an administrator.
func (m *Manager) IsAdmin(ctx context.Context) bool {
	return m.Current(ctx).IsAdmin()
}

// End clears every session key; Current returns defaults afterwards.
func (m *Manager) End(ctx context.Context) error {
	if err := m.kv.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	m.logger.Info("session ended")
	return nil
}
