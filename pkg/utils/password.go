package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	SchemeSHA256   = "sha256"
	SchemeArgon2id = "argon2id"

	// TokenLength is the length of generated salts and bearer tokens.
	TokenLength = 16

	argon2Prefix = "$argon2id$"
	keyLength    = 32
	timeCost     = 3
	memoryCost   = 64 * 1024
	parallelism  = 2
)

var ErrUnknownScheme = errors.New("unknown password scheme")

// HashPassword digests password with salt under the given scheme.
//
// sha256 is the legacy format: base64(SHA-256(password + salt)). Every
// account created before argon2id support exists in this form.
// argon2id returns a self-describing $argon2id$... string; the salt is
// folded into the key derivation but also kept in the PHC string.
func HashPassword(scheme, password, salt string) (string, error) {
	switch scheme {
	case SchemeSHA256, "":
		return legacyDigest(password, salt), nil
	case SchemeArgon2id:
		return argon2Digest(password, salt), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}

// VerifyPassword recomputes the digest in whichever format the stored hash
// uses and compares in constant time.
func VerifyPassword(password, salt, storedHash string) (bool, error) {
	var computed string
	if strings.HasPrefix(storedHash, argon2Prefix) {
		parts := strings.Split(storedHash, "$")
		if len(parts) != 6 {
			return false, errors.New("invalid hash format")
		}
		computed = argon2Digest(password, salt)
	} else {
		computed = legacyDigest(password, salt)
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1, nil
}

func legacyDigest(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func argon2Digest(password, salt string) string {
	hash := argon2.IDKey([]byte(password), []byte(salt), timeCost, memoryCost, parallelism, keyLength)

	saltBase64 := base64.RawStdEncoding.EncodeToString([]byte(salt))
	hashBase64 := base64.RawStdEncoding.EncodeToString(hash)

	// Format: $argon2id$v=19$m=65536,t=3,p=2$salt$hash
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix, argon2.Version, memoryCost, timeCost, parallelism, saltBase64, hashBase64)
}

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomToken returns n random alphanumeric characters. Used for both salts
// and bearer tokens.
func RandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	// Reject bytes past the largest multiple of 62 to avoid modulo bias.
	const limit = 256 - 256%len(tokenAlphabet)
	out := make([]byte, 0, n)
	for len(out) < n {
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(out) == n {
				break
			}
		}
		if len(out) < n {
			if _, err := rand.Read(buf); err != nil {
				return "", err
			}
		}
	}
	return string(out), nil
}
