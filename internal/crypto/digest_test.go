package crypto_test

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passvault/internal/crypto"
)

// Low scrypt cost keeps the tests fast.
const testScryptN = 1 << 4

func TestSHA256Hex_KnownVector(t *testing.T) {
	assert.Equal(t,
		"a665a45920422f9d417e4867efdc4fb8a04a1f3fff1fa07e998e86f7f7a27ae3",
		crypto.SHA256Hex("123"))
}

func TestHasher_DefaultIsDeterministicSHA256(t *testing.T) {
	h, err := crypto.NewHasher("")
	require.NoError(t, err)
	assert.Equal(t, crypto.SchemeSHA256, h.Scheme())

	a, err := h.Digest("pw1")
	require.NoError(t, err)
	b, err := h.Digest("pw1")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	ok, err := h.Verify("pw1", a)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("pw2", a)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_VerifyAcceptsUppercaseHex(t *testing.T) {
	h, err := crypto.NewHasher(crypto.SchemeSHA256)
	require.NoError(t, err)

	ok, err := h.Verify("123", strings.ToUpper(crypto.SHA256Hex("123")))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasher_ScryptIsSaltedAndVerifies(t *testing.T) {
	h, err := crypto.NewHasher(crypto.SchemeScrypt, crypto.WithScryptCost(testScryptN))
	require.NoError(t, err)

	a, err := h.Digest("pw1")
	require.NoError(t, err)
	b, err := h.Digest("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "salt must differ between digests")
	assert.True(t, strings.HasPrefix(a, "scrypt$16$8$1$"))

	ok, err := h.Verify("pw1", a)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("nope", a)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_VerifiesAcrossSchemes(t *testing.T) {
	legacy, err := crypto.NewHasher(crypto.SchemeSHA256)
	require.NoError(t, err)
	modern, err := crypto.NewHasher(crypto.SchemeScrypt, crypto.WithScryptCost(testScryptN))
	require.NoError(t, err)

	old, err := legacy.Digest("pw1")
	require.NoError(t, err)
	ok, err := modern.Verify("pw1", old)
	require.NoError(t, err)
	assert.True(t, ok)

	fresh, err := modern.Digest("pw1")
	require.NoError(t, err)
	ok, err = legacy.Verify("pw1", fresh)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasher_RejectsUnknownDigest(t *testing.T) {
	h, err := crypto.NewHasher(crypto.SchemeSHA256)
	require.NoError(t, err)

	for _, digest := range []string{"", "abc", "scrypt$x$8$1$00$00", "scrypt$16$8$1$zz$00"} {
		_, err := h.Verify("pw", digest)
		assert.True(t, errors.Is(err, crypto.ErrUnknownDigest), digest)
	}
}

func TestHasher_RejectsExcessiveScryptCost(t *testing.T) {
	h, err := crypto.NewHasher(crypto.SchemeSHA256)
	require.NoError(t, err)

	// None of these may reach key derivation.
	for _, digest := range []string{
		"scrypt$1073741824$8$1$00$00",
		"scrypt$2097152$1$1$00$00",
		"scrypt$1048576$32$1$00$00",
		"scrypt$16$8$1024$00$00",
		"scrypt$16$0$1$00$00",
		"scrypt$16$8$1$00$",
	} {
		_, err := h.Verify("pw", digest)
		assert.True(t, errors.Is(err, crypto.ErrUnknownDigest), digest)
		assert.False(t, crypto.WellFormed(digest), digest)
	}
}

func TestWellFormed(t *testing.T) {
	h, err := crypto.NewHasher(crypto.SchemeScrypt, crypto.WithScryptCost(testScryptN))
	require.NoError(t, err)
	fresh, err := h.Digest("pw1")
	require.NoError(t, err)

	assert.True(t, crypto.WellFormed(fresh))
	assert.True(t, crypto.WellFormed(crypto.SHA256Hex("pw1")))
	assert.True(t, crypto.WellFormed(strings.ToUpper(crypto.SHA256Hex("pw1"))))

	assert.False(t, crypto.WellFormed(""))
	assert.False(t, crypto.WellFormed("deadbeef"))
	assert.False(t, crypto.WellFormed(strings.Repeat("g", 64)))
	assert.False(t, crypto.WellFormed("scrypt$16$8$1$00"))
}

func TestNewHasher_RejectsBadParameters(t *testing.T) {
	_, err := crypto.NewHasher("md5")
	assert.Error(t, err)

	_, err = crypto.NewHasher(crypto.SchemeScrypt, crypto.WithScryptCost(1000))
	assert.Error(t, err)

	_, err = crypto.NewHasher(crypto.SchemeScrypt, crypto.WithScryptCost(crypto.MaxScryptN*2))
	assert.Error(t, err)
}

func TestWipe(t *testing.T) {
	b := []byte("secret")
	crypto.Wipe(b)
	assert.Equal(t, make([]byte, 6), b)
}
