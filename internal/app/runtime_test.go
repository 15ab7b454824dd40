package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTestModeFlag(t *testing.T) {
	t.Setenv("BOQWORKS_TEST_MODE", "1")
	RefreshTestMode()
	require.True(t, InTestMode())

	t.Setenv("BOQWORKS_TEST_MODE", "")
	RefreshTestMode()
	require.False(t, InTestMode())
}
