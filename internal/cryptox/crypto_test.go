package cryptox

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	expectedHex := "9290403300158e19f27e48e7087f7383b03065bf5b25ef23ebc40229616cd8b3"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("material"), []byte("salt"))
	ad := []byte("admin@example.jamfcloud.com:443")

	ct, nonce, err := Seal([]byte("hunter2"), key, ad)
	require.NoError(t, err)
	assert.Len(t, nonce, 24)
	assert.NotContains(t, string(ct), "hunter2")

	pt, err := Open(ct, nonce, key, ad)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(pt))
}

func TestOpen_RejectsWrongAdditionalData(t *testing.T) {
	key := DeriveKey([]byte("material"), []byte("salt"))

	ct, nonce, err := Seal([]byte("hunter2"), key, []byte("a"))
	require.NoError(t, err)

	_, err = Open(ct, nonce, key, []byte("b"))
	assert.Error(t, err)
}

func TestOpen_ShortNonce(t *testing.T) {
	key := DeriveKey([]byte("material"), []byte("salt"))

	_, err := Open([]byte("x"), []byte("short"), key, nil)
	assert.ErrorIs(t, err, ErrMalformedCiphertext)
}

func TestSeal_RandomFailure(t *testing.T) {
	orig := randRead
	t.Cleanup(func() { randRead = orig })
	randRead = func([]byte) (int, error) { return 0, errors.New("no entropy") }

	_, _, err := Seal([]byte("x"), make([]byte, KeySize), nil)
	assert.EqualError(t, err, "no entropy")
}
