// Package passphrase generates memorable passwords and spells them out.
package passphrase

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const (
	MinLength = 14
	MaxLength = 29

	maxAttempts = 64
)

var ErrExhausted = errors.New("could not generate a phrase within length bounds")

// randIndex returns a uniform index in [0, n). Tests replace it.
var randIndex = func(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// Generate returns a phrase of the form <adverb>-<verb>-<noun> whose length
// is between MinLength and MaxLength.
func Generate() (string, error) {
	for range maxAttempts {
		adverb, err := pick(adverbs)
		if err != nil {
			return "", err
		}
		verb, err := pick(verbs)
		if err != nil {
			return "", err
		}
		noun, err := pick(nouns)
		if err != nil {
			return "", err
		}

		phrase := adverb + "-" + verb + "-" + noun
		if len(phrase) >= MinLength && len(phrase) <= MaxLength {
			return phrase, nil
		}
	}
	return "", ErrExhausted
}

func pick(words []string) (string, error) {
	i, err := randIndex(len(words))
	if err != nil {
		return "", fmt.Errorf("random source: %w", err)
	}
	return words[i], nil
}
