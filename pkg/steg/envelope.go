package steg

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"
)

// Envelope layout, fixed offsets:
//
//	[0]      compression flag, 0 or 1
//	[1:17]   PBKDF2 salt
//	[17:29]  GCM nonce
//	[29:]    ciphertext plus authentication tag
const (
	envSaltSize   = 16
	envNonceSize  = 12
	envHeaderSize = 1 + envSaltSize + envNonceSize

	kdfIterations = 100000
	kdfKeySize    = 32
)

func deriveKey(passphrase string, salt []byte) []byte {
	// 100k iterations of PBKDF2-SHA256, deliberately slow to resist
	// offline guessing. 32 bytes for AES-256.
	return pbkdf2.Key([]byte(passphrase), salt, kdfIterations, kdfKeySize, sha256.New)
}

// Seal derives a key from passphrase with a fresh random salt, encrypts the
// (optionally compressed) payload with AES-256-GCM under a fresh random
// nonce, and packs everything into a self-describing envelope.
func Seal(payload []byte, passphrase string, compress bool) ([]byte, error) {
	flag := byte(0)
	if compress {
		payload = Compress(payload)
		flag = 1
	}

	salt := make([]byte, envSaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	nonce := make([]byte, envNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encryption error: failed to create GCM")
	}

	sealed := gcm.Seal(nil, nonce, payload, nil)

	envelope := make([]byte, 0, envHeaderSize+len(sealed))
	envelope = append(envelope, flag)
	envelope = append(envelope, salt...)
	envelope = append(envelope, nonce...)
	envelope = append(envelope, sealed...)
	return envelope, nil
}

// Open unpacks an envelope produced by Seal, re-derives the key, and opens
// the cipher. A failed authentication tag aborts with ErrAuthFailed and no
// partial plaintext. The boolean reports whether the recovered bytes decode
// as strict UTF-8 text; it is a heuristic, not a format marker.
func Open(envelope []byte, passphrase string) ([]byte, bool, error) {
	if len(envelope) < envHeaderSize {
		return nil, false, fmt.Errorf("%w: envelope too short", ErrAuthFailed)
	}

	flag := envelope[0]
	salt := envelope[1 : 1+envSaltSize]
	nonce := envelope[1+envSaltSize : envHeaderSize]
	sealed := envelope[envHeaderSize:]

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, false, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, false, err
	}

	payload, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, false, ErrAuthFailed
	}

	if flag == 1 {
		payload = Decompress(payload)
	}
	return payload, utf8.Valid(payload), nil
}
