package service_test

import (
	"errors"
	"testing"

	"github.com/fernet/fernet-go"

	"github.com/mrivero/dividend-hunter-backend/internal/repository"
	"github.com/mrivero/dividend-hunter-backend/internal/secrets"
	"github.com/mrivero/dividend-hunter-backend/internal/service"
	"github.com/mrivero/dividend-hunter-backend/internal/testutil"
)

// TestSystemService_ProviderToken tests storing and retrieving the
// encrypted provider token.
//
// WHY: The token is a credential; it must round-trip through encryption
// and the feature must degrade to an explicit ErrNoKey (not a panic or a
// plaintext write) when no secret key is configured.
func TestSystemService_ProviderToken(t *testing.T) {
	t.Run("round-trips through encryption", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		settingRepo := repository.NewSettingRepository(db)

		var key fernet.Key
		if err := key.Generate(); err != nil {
			t.Fatalf("Failed to generate key: %v", err)
		}
		cipher, err := secrets.NewCipher(key.Encode())
		if err != nil {
			t.Fatalf("NewCipher() returned unexpected error: %v", err)
		}
		svc := service.NewSystemService(db, settingRepo, cipher)

		// Execute
		if err := svc.SetProviderToken("api-token-12345"); err != nil {
			t.Fatalf("SetProviderToken() returned unexpected error: %v", err)
		}

		// Assert: stored ciphertext, retrieved plaintext
		stored, err := settingRepo.Get("provider_token")
		if err != nil {
			t.Fatalf("Get() returned unexpected error: %v", err)
		}
		if stored == "api-token-12345" {
			t.Error("Expected token to be stored encrypted, found plaintext")
		}

		token, err := svc.ProviderToken()
		if err != nil {
			t.Fatalf("ProviderToken() returned unexpected error: %v", err)
		}
		if token != "api-token-12345" {
			t.Errorf("Expected round-tripped token, got '%s'", token)
		}
	})

	t.Run("nil cipher reports ErrNoKey", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)

		if err := svc.SetProviderToken("tok"); !errors.Is(err, secrets.ErrNoKey) {
			t.Errorf("Expected ErrNoKey from SetProviderToken, got %v", err)
		}
		if _, err := svc.ProviderToken(); !errors.Is(err, secrets.ErrNoKey) {
			t.Errorf("Expected ErrNoKey from ProviderToken, got %v", err)
		}
	})

	t.Run("health check passes on an open database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)

		if err := svc.CheckHealth(); err != nil {
			t.Errorf("CheckHealth() returned unexpected error: %v", err)
		}
	})
}
