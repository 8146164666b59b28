package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilters(t *testing.T) {
	in := `<b>bold</b> <script>alert(1)</script><a href="http://x.test" onclick="evil()">link</a>`

	require.Equal(t, "bold link", Strict()(in))
	require.NotContains(t, UGC()(in), "script")
	require.NotContains(t, UGC()(in), "onclick")
	require.Contains(t, UGC()(in), "<b>bold</b>")
	require.Equal(t, "a &amp; b", Strict()("<i>a & b</i>"))
}
