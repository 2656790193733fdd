package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	at := time.Date(2026, 10, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(at, "job-42")
	assert.NotEmpty(t, token, "Token should not be empty")

	gotAt, gotID, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.True(t, at.Equal(gotAt), "time should match after decode")
	assert.Equal(t, "job-42", gotID)
}

func TestEncodeToken_NormalizesZone(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)
	at := time.Date(2026, 10, 16, 9, 0, 0, 0, kst)

	gotAt, _, err := DecodeToken(EncodeToken(at, "x"))
	assert.NoError(t, err)
	assert.True(t, at.Equal(gotAt))
	assert.Equal(t, time.UTC, gotAt.Location())
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := DecodeToken("not base64!!")
	assert.Error(t, err)

	_, _, err = DecodeToken(EncodeToken(time.Now(), "")[:4])
	assert.Error(t, err)

	_, _, err = DecodeToken("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-5))
	assert.Equal(t, 10, ClampLimit(10))
	assert.Equal(t, MaxLimit, ClampLimit(1000))
}
