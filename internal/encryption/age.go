// Package encryption protects content exports with an age passphrase.
package encryption

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"filippo.io/age"
)

// ageHeader is the first line of every age-encrypted file.
const ageHeader = "age-encryption.org/v1"

// DefaultWorkFactor is the scrypt work factor (log2 N) used for new exports.
const DefaultWorkFactor = 18

// ErrEmptyPassphrase is returned when an empty passphrase is supplied.
var ErrEmptyPassphrase = errors.New("passphrase must not be empty")

// PassphraseEncryptor encrypts and decrypts streams with age's scrypt-based
// passphrase encryption.
type PassphraseEncryptor struct {
	workFactor int
}

// NewPassphraseEncryptor creates an encryptor using workFactor for new
// ciphertexts. Values below 1 select DefaultWorkFactor.
func NewPassphraseEncryptor(workFactor int) *PassphraseEncryptor {
	if workFactor < 1 {
		workFactor = DefaultWorkFactor
	}
	return &PassphraseEncryptor{workFactor: workFactor}
}

// Encrypt reads plaintext from r and writes age ciphertext to w.
func (e *PassphraseEncryptor) Encrypt(r io.Reader, w io.Writer, passphrase string) error {
	if passphrase == "" {
		return ErrEmptyPassphrase
	}
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt recipient: %w", err)
	}
	recipient.SetWorkFactor(e.workFactor)

	encWriter, err := age.Encrypt(w, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.Copy(encWriter, r); err != nil {
		return fmt.Errorf("encrypting data: %w", err)
	}
	if err := encWriter.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	return nil
}

// Decrypt reads age ciphertext from r and writes the plaintext to w.
func (e *PassphraseEncryptor) Decrypt(r io.Reader, w io.Writer, passphrase string) error {
	if passphrase == "" {
		return ErrEmptyPassphrase
	}
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt identity: %w", err)
	}
	identity.SetMaxWorkFactor(max(e.workFactor, DefaultWorkFactor))

	decReader, err := age.Decrypt(r, identity)
	if err != nil {
		return fmt.Errorf("decrypting: %w", err)
	}
	if _, err := io.Copy(w, decReader); err != nil {
		return fmt.Errorf("reading decrypted data: %w", err)
	}
	return nil
}

// IsEncrypted reports whether data starts with an age header.
func IsEncrypted(data []byte) bool {
	line, _, _ := bufio.NewReader(bytes.NewReader(data)).ReadLine()
	return string(line) == ageHeader
}
