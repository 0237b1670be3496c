// Package vault is the local credential cache: a sqlite file holding secrets
// sealed with a key derived from a per-user key file and a stored salt.
package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/lapsctl/internal/client/auth"
	"github.com/dmitrijs2005/lapsctl/internal/common"
	"github.com/dmitrijs2005/lapsctl/internal/cryptox"
	"github.com/dmitrijs2005/lapsctl/internal/dbx"
	"github.com/dmitrijs2005/lapsctl/internal/filex"
)

const (
	saltKey       = "kdf_salt"
	saltSize      = 16
	keyFileSize   = 32
	keyFileSuffix = ".key"
)

// ErrCorrupted means a stored secret could not be opened with the current key.
var ErrCorrupted = errors.New("vault entry cannot be decrypted")

// Store implements auth.CredentialStore.
type Store struct {
	db  *sql.DB
	key []byte
}

var _ auth.CredentialStore = (*Store)(nil)

// Open opens the vault at path, creating the database, its key file and the
// salt on first use.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := openDatabase(ctx, path)
	if err != nil {
		return nil, err
	}

	material, err := loadOrCreateKeyFile(path + keyFileSuffix)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	defer common.WipeByteArray(material)

	var salt []byte
	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := newRepository(tx)
		s, err := repo.getMetadata(ctx, saltKey)
		if err != nil {
			return err
		}
		if s == nil {
			s = common.GenerateRandByteArray(saltSize)
			if err := repo.setMetadata(ctx, saltKey, s); err != nil {
				return err
			}
		}
		salt = s
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init vault salt: %w", err)
	}

	return &Store{db: db, key: cryptox.DeriveKey(material, salt)}, nil
}

func (s *Store) Get(ctx context.Context, key auth.CredentialKey) (string, bool, error) {
	sealed, err := newRepository(s.db).getSecret(ctx, key.String())
	if err != nil {
		return "", false, err
	}
	if sealed == nil {
		return "", false, nil
	}

	plain, err := cryptox.Open(sealed.Ciphertext, sealed.Nonce, s.key, []byte(key.String()))
	if err != nil {
		return "", false, fmt.Errorf("%w: %s", ErrCorrupted, key.String())
	}
	defer common.WipeByteArray(plain)
	return string(plain), true, nil
}

func (s *Store) Set(ctx context.Context, key auth.CredentialKey, secret string) error {
	ct, nonce, err := cryptox.Seal([]byte(secret), s.key, []byte(key.String()))
	if err != nil {
		return fmt.Errorf("seal credential: %w", err)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return newRepository(tx).putSecret(ctx, key.String(), sealedSecret{Nonce: nonce, Ciphertext: ct})
	})
}

func (s *Store) Delete(ctx context.Context, key auth.CredentialKey) error {
	return newRepository(s.db).deleteSecret(ctx, key.String())
}

// Keys lists the cached credential keys.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	return newRepository(s.db).listKeys(ctx)
}

func (s *Store) Close() error {
	common.WipeByteArray(s.key)
	return s.db.Close()
}

func loadOrCreateKeyFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) < keyFileSize {
			return nil, fmt.Errorf("key file %s is truncated", path)
		}
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	data = common.GenerateRandByteArray(keyFileSize)
	if err := filex.WritePrivate(path, data); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return data, nil
}
