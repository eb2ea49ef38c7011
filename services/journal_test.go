package services

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJournalCipher_WarnsOnFallbackKey(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	t.Setenv("ENCRYPTION_KEY", "")

	cipher, err := newJournalCipher()
	require.NoError(t, err)
	require.NotNil(t, cipher)

	require.NotEmpty(t, hook.Entries)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "ENCRYPTION_KEY not set")
}

func TestNewJournalCipher_SilentWhenKeyConfigured(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	t.Setenv("ENCRYPTION_KEY", "configured-key")

	cipher, err := newJournalCipher()
	require.NoError(t, err)
	require.NotNil(t, cipher)

	assert.Empty(t, hook.Entries)
}
