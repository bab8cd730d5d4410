package encryption

import (
	"bytes"
	"errors"
	"testing"
)

// testWorkFactor keeps scrypt fast in tests.
const testWorkFactor = 10

func TestPassphraseEncryptor_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "json snapshot", input: []byte(`{"version":1,"skills":[]}`)},
		{name: "empty", input: []byte{}},
		{name: "binary data", input: []byte{0x00, 0xff, 0x01, 0xfe}},
		{name: "large data", input: bytes.Repeat([]byte("abcdef"), 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := NewPassphraseEncryptor(testWorkFactor)

			var ciphertext bytes.Buffer
			if err := e.Encrypt(bytes.NewReader(tt.input), &ciphertext, "correct horse"); err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}
			if len(tt.input) > 0 && bytes.Contains(ciphertext.Bytes(), tt.input) {
				t.Error("ciphertext contains plaintext")
			}

			var plaintext bytes.Buffer
			if err := e.Decrypt(&ciphertext, &plaintext, "correct horse"); err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if !bytes.Equal(plaintext.Bytes(), tt.input) {
				t.Errorf("round trip mismatch: got %d bytes, want %d", plaintext.Len(), len(tt.input))
			}
		})
	}
}

func TestPassphraseEncryptor_WrongPassphrase(t *testing.T) {
	t.Parallel()
	e := NewPassphraseEncryptor(testWorkFactor)

	var ciphertext bytes.Buffer
	if err := e.Encrypt(bytes.NewReader([]byte("secret")), &ciphertext, "right"); err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if err := e.Decrypt(&ciphertext, &bytes.Buffer{}, "wrong"); err == nil {
		t.Error("Decrypt() with wrong passphrase expected error")
	}
}

func TestPassphraseEncryptor_EmptyPassphrase(t *testing.T) {
	t.Parallel()
	e := NewPassphraseEncryptor(testWorkFactor)

	if err := e.Encrypt(bytes.NewReader(nil), &bytes.Buffer{}, ""); !errors.Is(err, ErrEmptyPassphrase) {
		t.Errorf("Encrypt() error = %v, want ErrEmptyPassphrase", err)
	}
	if err := e.Decrypt(bytes.NewReader(nil), &bytes.Buffer{}, ""); !errors.Is(err, ErrEmptyPassphrase) {
		t.Errorf("Decrypt() error = %v, want ErrEmptyPassphrase", err)
	}
}

func TestIsEncrypted(t *testing.T) {
	t.Parallel()
	e := NewPassphraseEncryptor(testWorkFactor)

	var ciphertext bytes.Buffer
	if err := e.Encrypt(bytes.NewReader([]byte("x")), &ciphertext, "pw"); err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if !IsEncrypted(ciphertext.Bytes()) {
		t.Error("IsEncrypted(ciphertext) = false, want true")
	}
	if IsEncrypted([]byte(`{"version":1}`)) {
		t.Error("IsEncrypted(json) = true, want false")
	}
	if IsEncrypted(nil) {
		t.Error("IsEncrypted(nil) = true, want false")
	}
}
