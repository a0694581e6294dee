package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/scrypt"

	"passvault/internal/domain"
)

// Scheme names a digest algorithm.
type Scheme string

const (
	SchemeSHA256 Scheme = "sha256"
	SchemeScrypt Scheme = "scrypt"
)

const (
	scryptPrefix  = "scrypt$"
	scryptSaltLen = 16
	scryptKeyLen  = 32

	// DefaultScryptN is the scrypt CPU/memory cost used when none is configured.
	DefaultScryptN = 1 << 15
	// MaxScryptN is the highest cost accepted when creating or verifying digests.
	MaxScryptN = 1 << 20

	maxScryptR      = 32
	maxScryptP      = 16
	maxScryptMemory = 1 << 30
	scryptR        = 8
	scryptP        = 1
)

// ErrUnknownDigest is returned by Verify for a stored digest in no known format.
var ErrUnknownDigest = errors.New("unrecognised password digest format")

// Hasher digests and verifies account passwords.
type Hasher struct {
	scheme  Scheme
	scryptN int
}

// Option customises a Hasher.
type Option func(*Hasher)

// WithScryptCost sets the scrypt N parameter. It must be a power of two above 1.
func WithScryptCost(n int) Option {
	return func(h *Hasher) { h.scryptN = n }
}

// NewHasher returns a Hasher that creates digests with scheme. An empty
// scheme selects SchemeSHA256.
func NewHasher(scheme Scheme, opts ...Option) (*Hasher, error) {
	h := &Hasher{scheme: scheme, scryptN: DefaultScryptN}
	if h.scheme == "" {
		h.scheme = SchemeSHA256
	}
	for _, opt := range opts {
		opt(h)
	}
	switch h.scheme {
	case SchemeSHA256:
	case SchemeScrypt:
		if err := checkScryptCost(h.scryptN, scryptR, scryptP); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Newf("unknown digest scheme %q", h.scheme)
	}
	return h, nil
}

// Scheme returns the scheme new digests are created with.
func (h *Hasher) Scheme() Scheme { return h.scheme }

// Digest returns the one-way digest of password.
func (h *Hasher) Digest(password string) (string, error) {
	if h.scheme == SchemeScrypt {
		return scryptDigest(password, h.scryptN)
	}
	return SHA256Hex(password), nil
}

// Verify reports whether password matches digest, whichever supported
// scheme produced it.
func (h *Hasher) Verify(password, digest string) (bool, error) {
	if strings.HasPrefix(digest, scryptPrefix) {
		return scryptVerify(password, digest)
	}
	if !WellFormed(digest) {
		return false, ErrUnknownDigest
	}
	want := strings.ToLower(digest)
	got := SHA256Hex(password)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1, nil
}

// SHA256Hex is the unsalted hex SHA-256 digest of password.
func SHA256Hex(password string) string {
	pw := []byte(password)
	defer Wipe(pw)
	sum := sha256.Sum256(pw)
	return hex.EncodeToString(sum[:])
}

func scryptDigest(password string, n int) (string, error) {
	salt := make([]byte, scryptSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "read salt")
	}
	key, err := scryptKey(password, salt, n, scryptR, scryptP)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d$%d$%d$%s$%s",
		scryptPrefix, n, scryptR, scryptP,
		hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

type scryptParams struct {
	n, r, p   int
	salt, key []byte
}

// parseScrypt decodes a "scrypt$N$r$p$salt$key" digest. Parameters beyond
// the cost limits are rejected so a stored digest cannot demand unbounded
// memory.
func parseScrypt(digest string) (scryptParams, error) {
	parts := strings.Split(strings.TrimPrefix(digest, scryptPrefix), "$")
	if len(parts) != 5 {
		return scryptParams{}, ErrUnknownDigest
	}
	var nums [3]int
	for i := range nums {
		v, err := strconv.Atoi(parts[i])
		if err != nil {
			return scryptParams{}, errors.Mark(errors.Wrap(err, "scrypt parameter"), ErrUnknownDigest)
		}
		nums[i] = v
	}
	sp := scryptParams{n: nums[0], r: nums[1], p: nums[2]}
	if err := checkScryptCost(sp.n, sp.r, sp.p); err != nil {
		return scryptParams{}, errors.Mark(err, ErrUnknownDigest)
	}
	var err error
	if sp.salt, err = hex.DecodeString(parts[3]); err != nil {
		return scryptParams{}, errors.Mark(errors.Wrap(err, "scrypt salt"), ErrUnknownDigest)
	}
	if sp.key, err = hex.DecodeString(parts[4]); err != nil || len(sp.key) == 0 {
		return scryptParams{}, errors.Mark(errors.Newf("scrypt key %q", parts[4]), ErrUnknownDigest)
	}
	return sp, nil
}

// checkScryptCost bounds N and the memory scrypt needs, 128*N*r bytes.
func checkScryptCost(n, r, p int) error {
	switch {
	case n <= 1 || n&(n-1) != 0:
		return errors.Newf("scrypt cost %d is not a power of two above 1", n)
	case n > MaxScryptN:
		return errors.Newf("scrypt cost %d exceeds %d", n, MaxScryptN)
	case r < 1 || p < 1 || r > maxScryptR || p > maxScryptP:
		return errors.Newf("scrypt r=%d p=%d out of range", r, p)
	case int64(128)*int64(n)*int64(r) > maxScryptMemory:
		return errors.Newf("scrypt N=%d r=%d needs more than %d bytes", n, r, maxScryptMemory)
	}
	return nil
}

func scryptVerify(password, digest string) (bool, error) {
	sp, err := parseScrypt(digest)
	if err != nil {
		return false, err
	}
	got, err := scryptKey(password, sp.salt, sp.n, sp.r, sp.p)
	if err != nil {
		return false, errors.Mark(err, ErrUnknownDigest)
	}
	return subtle.ConstantTimeCompare(got, sp.key) == 1, nil
}

// WellFormed reports whether digest is in a format Verify understands:
// 64 hex characters, or a scrypt digest within the cost limits.
func WellFormed(digest string) bool {
	if strings.HasPrefix(digest, scryptPrefix) {
		_, err := parseScrypt(digest)
		return err == nil
	}
	if len(digest) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(digest)
	return err == nil
}

func scryptKey(password string, salt []byte, n, r, p int) ([]byte, error) {
	pw := []byte(password)
	defer Wipe(pw)
	key, err := scrypt.Key(pw, salt, n, r, p, scryptKeyLen)
	if err != nil {
		return nil, errors.Wrap(err, "derive scrypt key")
	}
	return key, nil
}

// Compile-time assertion that Hasher implements domain.PasswordHasher.
var _ domain.PasswordHasher = (*Hasher)(nil)
