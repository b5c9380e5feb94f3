// Package payload encrypts JSON bodies shared with the browser client.
//
// The wire format is hex(iv) + ":" + hex(ciphertext). In GCM mode the
// ciphertext carries the authentication tag; CBC mode with PKCS7 padding is
// kept for clients that cannot speak GCM yet.
package payload

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/noah-isme/school-admin-api/pkg/config"
)

const ivSize = 16

var (
	// ErrInvalidKey is returned when the configured key is not a valid AES key.
	ErrInvalidKey = errors.New("payload key must be 16, 24 or 32 bytes")
	// ErrDecrypt covers every malformed, truncated or tampered ciphertext.
	ErrDecrypt = errors.New("unable to decrypt payload")
)

// Cipher encrypts and decrypts payload strings under one static key.
type Cipher struct {
	block cipher.Block
	aead  cipher.AEAD
	mode  string
}

// New builds a Cipher from configuration.
func New(cfg config.PayloadConfig) (*Cipher, error) {
	key := []byte(cfg.Key)
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, ErrInvalidKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init aes: %w", err)
	}

	c := &Cipher{block: block, mode: cfg.Mode}
	switch cfg.Mode {
	case "", config.CipherModeGCM:
		c.mode = config.CipherModeGCM
		c.aead, err = cipher.NewGCMWithNonceSize(block, ivSize)
		if err != nil {
			return nil, fmt.Errorf("init gcm: %w", err)
		}
	case config.CipherModeCBC:
	default:
		return nil, fmt.Errorf("unsupported cipher mode %q", cfg.Mode)
	}

	return c, nil
}

// Mode returns the active cipher mode.
func (c *Cipher) Mode() string {
	return c.mode
}

// Encrypt returns the encoded ciphertext for plaintext.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	var sealed []byte
	if c.aead != nil {
		sealed = c.aead.Seal(nil, iv, []byte(plaintext), nil)
	} else {
		padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
		sealed = make([]byte, len(padded))
		cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(sealed, padded)
	}

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	ivHex, ctHex, found := strings.Cut(encoded, ":")
	if !found {
		return "", ErrDecrypt
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != ivSize {
		return "", ErrDecrypt
	}
	ct, err := hex.DecodeString(ctHex)
	if err != nil {
		return "", ErrDecrypt
	}

	if c.aead != nil {
		plain, err := c.aead.Open(nil, iv, ct, nil)
		if err != nil {
			return "", ErrDecrypt
		}
		return string(plain), nil
	}

	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "", ErrDecrypt
	}
	plain := make([]byte, len(ct))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(plain, ct)

	unpadded, err := pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return "", ErrDecrypt
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrDecrypt
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, ErrDecrypt
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrDecrypt
		}
	}
	return data[:len(data)-n], nil
}
