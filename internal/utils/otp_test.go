package utils

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureOTP_SixDigitsInRange(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 500; i++ {
		code, err := GenerateSecureOTP()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestGenerateSecureID(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	id := GenerateSecureID("otp", now)
	assert.True(t, strings.HasPrefix(id, "otp_1700000000123_"), id)
	assert.Len(t, strings.TrimPrefix(id, "otp_1700000000123_"), 9)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id := GenerateSecureID("voice", now)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
