package page

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticPage(t *testing.T) {
	p, err := FromHTML("https://www.linkedin.com/company/acme/", "<div class='feed-shared-update-v2'>hi</div>")
	require.NoError(t, err)
	assert.Equal(t, "https://www.linkedin.com/company/acme/", p.URL())

	root, err := p.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hi", strings.TrimSpace(root.Text()))
	assert.NoError(t, p.Scroll(context.Background(), 1000))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDisabledOpener(t *testing.T) {
	_, _, err := DisabledOpener{}.Open(context.Background(), "https://www.linkedin.com/company/acme/")
	assert.ErrorIs(t, err, ErrBrowserDisabled)
}
