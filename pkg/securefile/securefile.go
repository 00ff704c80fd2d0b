package securefile

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"os"

	"golang.org/x/crypto/scrypt"
)

var (
	// ErrNullPlainText ...
	ErrNullPlainText = errors.New("plaintext must not be null")
	// ErrNullCypherText ...
	ErrNullCypherText = errors.New("cyphertext must not be null")
	// ErrInvalidCypherText ...
	ErrInvalidCypherText = errors.New("cyphertext must be in base64 format")
	// ErrNullPassphrase ...
	ErrNullPassphrase = errors.New("passphrase must not be null")
	// ErrShortCypherText ...
	ErrShortCypherText = errors.New("cyphertext is too short to carry salt and nonce")
)

const saltSize = 32

// filePerm keeps sealed and unsealed artifacts owner-readable only.
const filePerm = 0600

// EncryptOpts is the struct given to Encrypt method
type EncryptOpts struct {
	PlainText  []byte
	Passphrase string
}

func (o EncryptOpts) validate() error {
	if len(o.PlainText) <= 0 {
		return ErrNullPlainText
	}
	if len(o.Passphrase) <= 0 {
		return ErrNullPassphrase
	}
	return nil
}

// Encrypt seals a plaintext with AES-GCM under a scrypt-stretched passphrase
// and returns nonce||cyphertext||salt in base64.
func Encrypt(opts EncryptOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	key, salt, err := DeriveKey([]byte(opts.Passphrase), nil)
	if err != nil {
		return "", err
	}

	blockCipher, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(blockCipher)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, opts.PlainText, nil)
	ciphertext = append(ciphertext, salt...)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptOpts is the struct given to Decrypt method
type DecryptOpts struct {
	CypherText string
	Passphrase string
}

func (o DecryptOpts) validate() error {
	if len(o.CypherText) <= 0 {
		return ErrNullCypherText
	}
	if _, err := base64.StdEncoding.DecodeString(o.CypherText); err != nil {
		return ErrInvalidCypherText
	}
	if len(o.Passphrase) <= 0 {
		return ErrNullPassphrase
	}
	return nil
}

// Decrypt opens a cyphertext produced by Encrypt with the same passphrase.
func Decrypt(opts DecryptOpts) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	data, _ := base64.StdEncoding.DecodeString(opts.CypherText)
	if len(data) <= saltSize {
		return nil, ErrShortCypherText
	}
	salt, data := data[len(data)-saltSize:], data[:len(data)-saltSize]

	key, _, err := DeriveKey([]byte(opts.Passphrase), salt)
	if err != nil {
		return nil, err
	}

	blockCipher, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(blockCipher)
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, ErrShortCypherText
	}
	nonce, text := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	return gcm.Open(nil, nonce, text, nil)
}

// EncryptFileOpts is the struct given to the EncryptFile method
type EncryptFileOpts struct {
	SourcePath string
	TargetPath string
	Passphrase string
}

func (o EncryptFileOpts) validate() error {
	if len(o.SourcePath) <= 0 || len(o.TargetPath) <= 0 {
		return ErrNullPlainText
	}
	if len(o.Passphrase) <= 0 {
		return ErrNullPassphrase
	}
	return nil
}

// EncryptFile seals the source file into the target path. The target is
// written owner-readable only.
func EncryptFile(opts EncryptFileOpts) error {
	if err := opts.validate(); err != nil {
		return err
	}

	plain, err := os.ReadFile(opts.SourcePath)
	if err != nil {
		return err
	}
	sealed, err := Encrypt(EncryptOpts{
		PlainText:  plain,
		Passphrase: opts.Passphrase,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(opts.TargetPath, []byte(sealed), filePerm)
}

// DecryptFileOpts is the struct given to the DecryptFile method
type DecryptFileOpts struct {
	SourcePath string
	TargetPath string
	Passphrase string
}

func (o DecryptFileOpts) validate() error {
	if len(o.SourcePath) <= 0 || len(o.TargetPath) <= 0 {
		return ErrNullCypherText
	}
	if len(o.Passphrase) <= 0 {
		return ErrNullPassphrase
	}
	return nil
}

// DecryptFile opens a sealed file into the target path, owner-readable only.
func DecryptFile(opts DecryptFileOpts) error {
	if err := opts.validate(); err != nil {
		return err
	}

	sealed, err := os.ReadFile(opts.SourcePath)
	if err != nil {
		return err
	}
	plain, err := Decrypt(DecryptOpts{
		CypherText: string(sealed),
		Passphrase: opts.Passphrase,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(opts.TargetPath, plain, filePerm)
}

// DecryptToMemory opens a sealed file and returns the plaintext without
// touching the filesystem, for view-only access to sealed material.
func DecryptToMemory(sourcePath, passphrase string) ([]byte, error) {
	sealed, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, err
	}
	return Decrypt(DecryptOpts{
		CypherText: string(sealed),
		Passphrase: passphrase,
	})
}

// DeriveKey derives a 32 byte array key from a custom passhprase
func DeriveKey(passphrase, salt []byte) ([]byte, []byte, error) {
	if salt == nil {
		salt = make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, nil, err
		}
	}
	// 2^20 = 1048576 recommended length for key-stretching
	// check the doc for other recommended values:
	// https://godoc.org/golang.org/x/crypto/scrypt
	key, err := scrypt.Key(passphrase, salt, 1048576, 8, 1, 32)
	if err != nil {
		return nil, nil, err
	}
	return key, salt, nil
}
