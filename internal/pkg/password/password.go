package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed    = errors.New("password hashing failed")
	ErrComparisonFailed = errors.New("password comparison failed")
	ErrInvalidPassword  = errors.New("invalid password")
)

const DefaultCost = bcrypt.DefaultCost

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidPassword
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}

	return string(hashedBytes), nil
}

func ComparePassword(hashedPassword, password string) error {
	if hashedPassword == "" || password == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrComparisonFailed
		}
		return err
	}

	return nil
}

// localSalt matches the digest scheme the legacy local-only auth used. It is not
// a security boundary; the local backend exists as a development fallback only.
const localSalt = "metromobiles_salt_2024"

func DigestLocal(password string) string {
	sum := sha256.Sum256([]byte(password + localSalt))
	return hex.EncodeToString(sum[:])
}

func CompareLocal(storedDigest, password string) error {
	if storedDigest == "" || password == "" {
		return ErrInvalidPassword
	}
	digest := DigestLocal(password)
	if subtle.ConstantTimeCompare([]byte(storedDigest), []byte(digest)) != 1 {
		return ErrComparisonFailed
	}
	return nil
}
