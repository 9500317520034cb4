// Package cryptox implements the content cipher: symmetric encryption of
// sensitive record fields before they touch the local store.
//
// Tokens are self-describing strings of the form
//
//	<32 lowercase hex chars>:<base64 ciphertext>
//
// where the first segment is a fresh random 16-byte IV and the second is the
// AES-256-CBC ciphertext with PKCS#7 padding. A fresh IV per call means two
// encryptions of the same plaintext never produce the same token.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/stillwater-app/stillwater/internal/common"
)

// KeyProvider supplies the active content-encryption key.
// GetKey returns (nil, nil) when no key exists.
type KeyProvider interface {
	GetKey() ([]byte, error)
}

// Cipher encrypts and decrypts record fields using the installation key.
// It is safe for concurrent use; the key is read-only shared state.
type Cipher struct {
	keys KeyProvider
}

func New(keys KeyProvider) *Cipher {
	return &Cipher{keys: keys}
}

func (c *Cipher) activeKey() ([]byte, error) {
	key, err := c.keys.GetKey()
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, common.ErrKeyNotFound
	}
	return key, nil
}

// Encrypt produces a token for the given plaintext. Empty plaintext is a
// valid input and yields a full padding block of ciphertext.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	key, err := c.activeKey()
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("initializing cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generating iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. It fails with common.ErrInvalidFormat when the
// token is missing the separator or either segment, and with
// common.ErrDecryptionFailed when the ciphertext does not decode, the padding
// does not verify, or the plaintext comes back empty (legitimate content is
// never intentionally empty, so an empty result signals a wrong key).
func (c *Cipher) Decrypt(token string) (string, error) {
	key, err := c.activeKey()
	if err != nil {
		return "", err
	}

	ivPart, dataPart, found := strings.Cut(token, ":")
	if !found || ivPart == "" || dataPart == "" {
		return "", common.ErrInvalidFormat
	}

	iv, err := hex.DecodeString(ivPart)
	if err != nil || len(iv) != aes.BlockSize {
		return "", common.ErrInvalidFormat
	}

	ciphertext, err := base64.StdEncoding.DecodeString(dataPart)
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", common.ErrDecryptionFailed
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("initializing cipher: %w", err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, ok := pkcs7Unpad(padded, aes.BlockSize)
	if !ok || len(plaintext) == 0 {
		return "", common.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return data[:len(data)-n], true
}
