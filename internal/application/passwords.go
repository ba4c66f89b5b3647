package application

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/oksasatya/car-collection/config"
	"github.com/oksasatya/car-collection/pkg/helpers"
)

// PasswordEncoder turns a submitted password into the value that is stored.
type PasswordEncoder interface {
	Encode(plain string) (string, error)
}

// PlainPasswords stores passwords exactly as submitted.
// Known weakness: use PASSWORD_HASHING=bcrypt outside of local setups.
type PlainPasswords struct{}

func (PlainPasswords) Encode(plain string) (string, error) { return plain, nil }

// BcryptPasswords stores bcrypt hashes. Zero Cost uses bcrypt.DefaultCost.
// The password is reduced to a base64 SHA-256 digest first so inputs of any
// length fit under bcrypt's 72 byte limit.
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Encode(plain string) (string, error) {
	return helpers.HashPasswordCost(prehash(plain), b.Cost)
}

// Matches reports whether plain is the password behind a hash produced by Encode.
func (b BcryptPasswords) Matches(hash, plain string) bool {
	return helpers.CompareHashAndPassword(hash, prehash(plain))
}

func prehash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// NewPasswordEncoder picks the encoder for a PASSWORD_HASHING mode.
func NewPasswordEncoder(mode string) PasswordEncoder {
	if mode == config.PasswordHashingBcrypt {
		return BcryptPasswords{}
	}
	return PlainPasswords{}
}
