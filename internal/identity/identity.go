package identity

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"steward/cmd/steward/config"
	"steward/internal/logger"

	"golang.org/x/crypto/ssh"
)

// KeyPair is the on-disk key pair used for passwordless access after
// bootstrap. The public key always lives next to the private key as a
// sibling .pub file and the two are treated as a single unit.
type KeyPair struct {
	PrivateKeyPath string
	PublicKeyPath  string
}

type Manager struct {
	PrivateKeyPath string
	Bits           int
}

func NewManager() *Manager {
	return &Manager{
		PrivateKeyPath: config.Config.PrivateKeyPath,
		Bits:           config.Config.KeyBits,
	}
}

// EnsureKeyPair returns the existing key pair, generating one with an
// empty passphrase when the private key file is absent. An existing
// private key is never touched, so repeated calls are safe.
func (m *Manager) EnsureKeyPair() (*KeyPair, error) {
	pair := &KeyPair{
		PrivateKeyPath: m.PrivateKeyPath,
		PublicKeyPath:  m.PrivateKeyPath + ".pub",
	}

	if _, err := os.Stat(m.PrivateKeyPath); err == nil {
		return pair, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %v", ErrKeyGenFailed, err)
	}

	logger.Info("no key pair at %s, generating a new one", m.PrivateKeyPath)

	if err := m.generate(pair); err != nil {
		return nil, err
	}

	return pair, nil
}

func (m *Manager) generate(pair *KeyPair) error {
	privateKey, err := rsa.GenerateKey(rand.Reader, m.Bits)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyGenFailed, err)
	}

	if err := os.MkdirAll(filepath.Dir(pair.PrivateKeyPath), 0700); err != nil {
		return fmt.Errorf("%w: %v", ErrKeyGenFailed, err)
	}

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	if err := os.WriteFile(pair.PrivateKeyPath, privatePEM, 0600); err != nil {
		return fmt.Errorf("%w: %v", ErrKeyGenFailed, err)
	}

	sshPublicKey, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyGenFailed, err)
	}

	if err := os.WriteFile(pair.PublicKeyPath, ssh.MarshalAuthorizedKey(sshPublicKey), 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrKeyGenFailed, err)
	}

	return nil
}

// Fingerprint returns the SHA256 fingerprint of the public key, as
// recorded in the host inventory.
func (p *KeyPair) Fingerprint() (string, error) {
	data, err := os.ReadFile(p.PublicKeyPath)
	if err != nil {
		return "", fmt.Errorf("failed to read public key: %w", err)
	}

	publicKey, _, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return "", fmt.Errorf("failed to parse public key: %w", err)
	}

	return ssh.FingerprintSHA256(publicKey), nil
}
