package service

import (
	"database/sql"
	"fmt"

	"github.com/mrivero/dividend-hunter-backend/internal/database"
	"github.com/mrivero/dividend-hunter-backend/internal/model"
	"github.com/mrivero/dividend-hunter-backend/internal/repository"
	"github.com/mrivero/dividend-hunter-backend/internal/secrets"
	"github.com/mrivero/dividend-hunter-backend/internal/version"
)

const providerTokenKey = "provider_token"

// SystemService handles system-related operations: health, version and
// system settings, including the encrypted market data provider token.
type SystemService struct {
	db          *sql.DB
	settingRepo *repository.SettingRepository
	cipher      *secrets.Cipher
}

// NewSystemService creates a new SystemService. cipher may be nil when no
// secret key is configured; provider token operations then report ErrNoKey.
func NewSystemService(db *sql.DB, settingRepo *repository.SettingRepository, cipher *secrets.Cipher) *SystemService {
	return &SystemService{
		db:          db,
		settingRepo: settingRepo,
		cipher:      cipher,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// Version reports the application version and the applied schema version.
func (s *SystemService) Version() (model.VersionInfo, error) {
	dbVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}
	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  fmt.Sprintf("%d", dbVersion),
	}, nil
}

// SetProviderToken encrypts and stores the market data provider token.
func (s *SystemService) SetProviderToken(token string) error {
	if s.cipher == nil {
		return secrets.ErrNoKey
	}
	encrypted, err := s.cipher.Encrypt(token)
	if err != nil {
		return err
	}
	return s.settingRepo.Set(providerTokenKey, encrypted)
}

// ProviderToken retrieves and decrypts the stored provider token.
func (s *SystemService) ProviderToken() (string, error) {
	if s.cipher == nil {
		return "", secrets.ErrNoKey
	}
	encrypted, err := s.settingRepo.Get(providerTokenKey)
	if err != nil {
		return "", err
	}
	return s.cipher.Decrypt(encrypted)
}
