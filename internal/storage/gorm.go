package storage

import (
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"time"

	"hoteldesk/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	// ScopeLocal survives restarts. ScopeSession lives as long as one
	// browsing session, i.e. one run of the process that opened the store.
	ScopeLocal   = "local"
	ScopeSession = "session"
)

const (
	keyToken    = "token"
	keyID       = "id"
	keyUserID   = "userId"
	keyName     = "name"
	keyEmail    = "email"
	keyRole     = "role"
	keyRedirect = "redirectAfterLogin"
)

// KeyBrowserToken holds the credential of the one browser the active
// session is bound to. Saving or clearing a session drops it.
const KeyBrowserToken = "browserToken"

var identityKeys = []string{keyToken, keyID, keyUserID, keyName, keyEmail, keyRole}

type Setting struct {
	Key       string `gorm:"primaryKey"`
	Scope     string `gorm:"index"`
	Value     string
	UpdatedAt time.Time
}

type GormStore struct {
	db *gorm.DB
}

var _ domain.SessionRepository = (*GormStore)(nil)

func NewGormStore(path string) (*GormStore, error) {
	newLogger := gormlogger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		gormlogger.Config{
			IgnoreRecordNotFoundError: true,
			LogLevel:                  gormlogger.Error,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Setting{}); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	store := &GormStore{db: db}

	if err := store.resetSessionScope(); err != nil {
		return nil, fmt.Errorf("error resetting session scope: %w", err)
	}

	return store, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) resetSessionScope() error {
	return s.db.Where("scope = ?", ScopeSession).Delete(&Setting{}).Error
}

func (s *GormStore) GetSetting(key string) (string, bool, error) {
	var setting Setting
	result := s.db.First(&setting, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("error querying setting %s: %w", key, result.Error)
	}
	return setting.Value, true, nil
}

func (s *GormStore) SetSetting(scope, key, value string) error {
	return s.db.Save(&Setting{Key: key, Scope: scope, Value: value}).Error
}

func (s *GormStore) DeleteSetting(key string) error {
	return s.db.Delete(&Setting{}, "key = ?", key).Error
}

func (s *GormStore) SaveSession(sess domain.Session) error {
	values := map[string]string{
		keyToken:  sess.AuthToken,
		keyID:     sess.SubjectID,
		keyUserID: sess.SubjectID,
		keyName:   sess.DisplayName,
		keyEmail:  sess.Email,
		keyRole:   string(sess.Role),
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range identityKeys {
			if err := tx.Save(&Setting{Key: key, Scope: ScopeLocal, Value: values[key]}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&Setting{}, "key = ?", KeyBrowserToken).Error
	})
}

// LoadSession returns nil when no complete session is persisted.
func (s *GormStore) LoadSession() (*domain.Session, error) {
	var settings []Setting
	if err := s.db.Where("key IN ?", identityKeys).Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("error loading session: %w", err)
	}

	values := make(map[string]string, len(settings))
	for _, st := range settings {
		values[st.Key] = st.Value
	}

	if values[keyToken] == "" {
		return nil, nil
	}
	role, ok := domain.ParseRole(values[keyRole])
	if !ok {
		return nil, nil
	}

	return &domain.Session{
		SubjectID:   values[keyID],
		DisplayName: values[keyName],
		Email:       values[keyEmail],
		Role:        role,
		AuthToken:   values[keyToken],
	}, nil
}

func (s *GormStore) ClearSession() error {
	return s.db.Where("key IN ?", append(slices.Clone(identityKeys), keyRedirect, KeyBrowserToken)).Delete(&Setting{}).Error
}

func (s *GormStore) SetPendingRedirect(path string) error {
	return s.SetSetting(ScopeSession, keyRedirect, path)
}

// TakePendingRedirect returns the stored redirect and removes it, so a value
// is handed out at most once.
func (s *GormStore) TakePendingRedirect() (string, error) {
	var path string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var setting Setting
		result := tx.First(&setting, "key = ?", keyRedirect)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}
			return result.Error
		}
		path = setting.Value
		return tx.Delete(&Setting{}, "key = ?", keyRedirect).Error
	})
	if err != nil {
		return "", fmt.Errorf("error taking pending redirect: %w", err)
	}
	return path, nil
}
