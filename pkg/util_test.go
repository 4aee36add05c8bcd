package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString(0)
	require.Error(t, err)
	assert.Empty(t, s)

	s, err = GenerateRandomString(-4)
	require.Error(t, err)
	assert.Empty(t, s)

	for i := 1; i <= 8; i++ {
		s, err := GenerateRandomString(i * 5)
		require.NoError(t, err)
		assert.Len(t, s, i*5)
	}

	// session tokens are this long
	token1, err := GenerateRandomString(35)
	require.NoError(t, err)
	token2, err := GenerateRandomString(35)
	require.NoError(t, err)
	assert.NotEqual(t, token1, token2)
}

func TestBytesToString(t *testing.T) {
	want := "test"
	stringBytes := []byte(want)
	got := BytesToString(stringBytes)
	assert.Equal(t, want, got)

	assert.Equal(t, "", BytesToString(nil))
	assert.Equal(t, "🥦", BytesToString([]byte("🥦")))
}
