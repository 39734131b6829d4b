package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// PrefixEncrypted marks a value produced by EncryptionService.Encrypt
	PrefixEncrypted = "enc:"
	// PrefixKeyring marks a value stored in the OS keyring under the named account
	PrefixKeyring = "keyring:"
	// KeyringService is the keyring namespace used for stored passwords
	KeyringService = "odbcprobe"
)

// SecretResolver turns configured password values into plaintext.
// Values without a known prefix are returned unchanged.
type SecretResolver struct {
	crypto *EncryptionService
}

// NewSecretResolver accepts a nil crypto service; enc: values then fail to resolve.
func NewSecretResolver(crypto *EncryptionService) *SecretResolver {
	return &SecretResolver{crypto: crypto}
}

func (r *SecretResolver) Resolve(value string) (string, error) {
	switch {
	case strings.HasPrefix(value, PrefixEncrypted):
		if r == nil || r.crypto == nil {
			return "", errors.New("encrypted value but no secret key configured")
		}
		plain, err := r.crypto.Decrypt(strings.TrimPrefix(value, PrefixEncrypted))
		if err != nil {
			return "", fmt.Errorf("failed to decrypt: %w", err)
		}
		return plain, nil

	case strings.HasPrefix(value, PrefixKeyring):
		account := strings.TrimPrefix(value, PrefixKeyring)
		if account == "" {
			return "", errors.New("keyring reference has no account")
		}
		secret, err := keyring.Get(KeyringService, account)
		if err != nil {
			return "", fmt.Errorf("keyring lookup for %q: %w", account, err)
		}
		return secret, nil

	default:
		return value, nil
	}
}

// StoreInKeyring saves secret for account and returns the value to put in ODBC_PWD.
func StoreInKeyring(account, secret string) (string, error) {
	if err := keyring.Set(KeyringService, account, secret); err != nil {
		return "", err
	}
	return PrefixKeyring + account, nil
}

// EncryptSecret returns the enc: value to put in ODBC_PWD.
func EncryptSecret(crypto *EncryptionService, secret string) (string, error) {
	enc, err := crypto.Encrypt(secret)
	if err != nil {
		return "", err
	}
	return PrefixEncrypted + enc, nil
}
