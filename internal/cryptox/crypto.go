// Package cryptox holds the key derivation and authenticated encryption used
// by the local credential vault.
package cryptox

import (
	"errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the length of keys returned by DeriveKey.
const KeySize = chacha20poly1305.KeySize

var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// DeriveKey stretches secret material and a salt into a 32-byte key using
// argon2id.
func DeriveKey(material []byte, salt []byte) []byte {
	return argon2.IDKey(material, salt, 1, 64*1024, 4, KeySize)
}

// Seal encrypts plaintext with XChaCha20-Poly1305 under key. A fresh random
// 24-byte nonce is generated per call and returned alongside the ciphertext.
// additional is authenticated but not encrypted; Open must be given the same
// value.
func Seal(plaintext, key, additional []byte) (ciphertext, nonce []byte, err error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, aead.NonceSize())
	if _, err := randRead(nonce); err != nil {
		return nil, nil, err
	}

	return aead.Seal(nil, nonce, plaintext, additional), nonce, nil
}

// Open reverses Seal. It fails if the key, nonce or additional data differ
// from the ones used to seal.
func Open(ciphertext, nonce, key, additional []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, ErrMalformedCiphertext
	}
	return aead.Open(nil, nonce, ciphertext, additional)
}
