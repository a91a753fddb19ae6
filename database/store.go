package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ymurata/kaiyaku-form/log"
	"github.com/ymurata/kaiyaku-form/model"
)

// settingsKey is the fixed key the settings mirror lives under.
const settingsKey = "cancellation-form-settings"

// Store is the local fallback state: a last-known-good settings mirror and
// the admin session table.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

func NewStore(db *sql.DB, sessionTTL time.Duration) *Store {
	return &Store{db: db, ttl: sessionTTL}
}

// LoadSettings returns the mirrored settings record, if one was ever saved.
func (s *Store) LoadSettings(ctx context.Context) (model.Settings, bool) {
	var blob string
	err := s.db.
		QueryRowContext(ctx, "SELECT value FROM setting WHERE key = ?", settingsKey).
		Scan(&blob)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Errorf("store.load_settings: %s", err)
		}
		return model.Settings{}, false
	}

	var settings model.Settings
	if err := json.Unmarshal([]byte(blob), &settings); err != nil {
		log.Errorf("store.load_settings.parse: %s", err)
		return model.Settings{}, false
	}
	return settings, true
}

// SaveSettings overwrites the mirrored settings record.
func (s *Store) SaveSettings(ctx context.Context, settings model.Settings) error {
	blob, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO setting (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		settingsKey,
		string(blob),
	)
	return err
}

// CreateSession issues a new admin session token. The plaintext password is
// cached with it because every subsequent gateway call re-authenticates with
// the credential itself.
func (s *Store) CreateSession(ctx context.Context, password string) (string, error) {
	token := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (token, password, expiration) VALUES (?, ?, ?)`,
		token,
		password,
		time.Now().Add(s.ttl),
	)
	if err != nil {
		return "", err
	}
	return token, nil
}

// SessionPassword resolves a session token to its cached credential. Expired
// sessions are discarded on sight.
func (s *Store) SessionPassword(ctx context.Context, token string) (string, bool) {
	var password string
	var expiration time.Time
	err := s.db.
		QueryRowContext(ctx, "SELECT password, expiration FROM session WHERE token = ?", token).
		Scan(&password, &expiration)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Errorf("store.session: %s", err)
		}
		return "", false
	}

	if expiration.Before(time.Now()) {
		if err := s.DeleteSession(ctx, token); err != nil {
			log.Errorf("store.session.expire: %s", err)
		}
		return "", false
	}
	return password, true
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE token = ?", token)
	return err
}
