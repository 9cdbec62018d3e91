package utils

import (
	"github.com/matthewhartstonge/argon2"
)

// HashPassword encodes the plaintext with argon2id using the library defaults.
func HashPassword(plain string) (string, error) {
	cfg := argon2.DefaultConfig()
	encoded, err := cfg.HashEncoded([]byte(plain))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// VerifyPassword reports whether plain matches the stored encoded hash.
func VerifyPassword(encoded, plain string) (bool, error) {
	return argon2.VerifyEncoded([]byte(plain), []byte(encoded))
}
