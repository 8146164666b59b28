package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_MatchesID(t *testing.T) {
	d := New()
	_, _ = d.Write([]byte("PNG"))
	_, _ = d.Write([]byte("DATA"))
	require.Equal(t, ID("PNGDATA"), d.Sum64())
	require.NotEqual(t, ID("a"), ID("b"))
}
