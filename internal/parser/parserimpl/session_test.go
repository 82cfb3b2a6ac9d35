package parserimpl

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textPosts(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<div class="feed-shared-update-v2" data-id="urn:li:activity:%d">
		  <div class="feed-shared-text">Update number %d</div>
		</div>`, i, i)
	}
	return b.String()
}

func emptyPosts(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<div class="feed-shared-update-v2" data-id="urn:li:activity:e%d"></div>`, i)
	}
	return b.String()
}

func TestExtractPosts_StopsAtMaxPosts(t *testing.T) {
	p := newTestParser(t, clockwork.NewFakeClockAt(testNow), nil)
	pg := staticPage(t, wrapPage(textPosts(8)))

	out, err := p.ExtractPosts(context.Background(), pg, 3)
	require.NoError(t, err)

	require.Len(t, out.Posts, 3)
	for i, post := range out.Posts {
		assert.Equal(t, fmt.Sprintf("urn:li:activity:%d", i+1), post.ID)
	}
	assert.Equal(t, 8, out.Candidates)
	assert.Equal(t, 3, out.Considered)
	assert.False(t, out.TimedOut)
}

func TestExtractPosts_LookAheadBound(t *testing.T) {
	p := newTestParser(t, clockwork.NewFakeClockAt(testNow), nil)
	// Five rejected candidates ahead of the real posts exhaust the 2x window.
	pg := staticPage(t, wrapPage(emptyPosts(5)+textPosts(3)))

	out, err := p.ExtractPosts(context.Background(), pg, 3)
	require.NoError(t, err)

	assert.Equal(t, 6, out.Considered)
	require.Len(t, out.Posts, 1)
	assert.Equal(t, "urn:li:activity:1", out.Posts[0].ID)
}

func TestExtractPosts_Idempotent(t *testing.T) {
	p := newTestParser(t, clockwork.NewFakeClockAt(testNow), nil)
	pg := staticPage(t, wrapPage(imagePost+textPosts(2)))

	first, err := p.ExtractPosts(context.Background(), pg, 5)
	require.NoError(t, err)
	second, err := p.ExtractPosts(context.Background(), pg, 5)
	require.NoError(t, err)

	assert.Equal(t, first.Posts, second.Posts)
}

func TestExtractPosts_NonPositiveMax(t *testing.T) {
	p := newTestParser(t, nil, nil)
	pg := staticPage(t, wrapPage(textPosts(2)))

	out, err := p.ExtractPosts(context.Background(), pg, 0)
	require.NoError(t, err)
	assert.NotNil(t, out.Posts)
	assert.Empty(t, out.Posts)
}

func TestExtractPosts_NoContainersTimesOut(t *testing.T) {
	cfg := testConfig()
	cfg.Extractor.WaitTimeout = 30 * time.Millisecond
	cfg.Extractor.PollInterval = 5 * time.Millisecond
	p := newTestParser(t, clockwork.NewRealClock(), cfg)
	pg := staticPage(t, wrapPage(`<p>Sign in to see posts</p>`))

	out, err := p.ExtractPosts(context.Background(), pg, 5)
	require.NoError(t, err)

	assert.True(t, out.TimedOut)
	assert.Empty(t, out.Posts)
	assert.Zero(t, out.Candidates)
}

func TestExtractPosts_ScrollsForLazyContent(t *testing.T) {
	cfg := testConfig()
	cfg.Extractor.WaitTimeout = time.Second
	cfg.Extractor.PollInterval = time.Millisecond
	cfg.Extractor.ScrollSteps = 3
	cfg.Extractor.ScrollDistance = 800
	cfg.Extractor.ScrollInterval = time.Millisecond
	cfg.Extractor.SettleDelay = time.Millisecond
	p := newTestParser(t, clockwork.NewRealClock(), cfg)

	pg := newReplayPage(companyURL,
		wrapPage(`<p>loading</p>`),
		wrapPage(textPosts(1)),
		wrapPage(textPosts(4)),
	)

	out, err := p.ExtractPosts(context.Background(), pg, 5)
	require.NoError(t, err)

	assert.Equal(t, []int{800, 800, 800}, pg.scrolls)
	assert.Len(t, out.Posts, 4)
	assert.False(t, out.TimedOut)
}

func TestExtractPosts_ContextCanceled(t *testing.T) {
	p := newTestParser(t, nil, nil)
	pg := staticPage(t, wrapPage(textPosts(2)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ExtractPosts(ctx, pg, 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractPosts_NoPrimaryVideoInOutput(t *testing.T) {
	p := newTestParser(t, clockwork.NewFakeClockAt(testNow), nil)
	markup := `<div class="feed-shared-update-v2" data-id="urn:li:activity:v1">
	  <video src="https://cdn.example.com/only.mp4"></video>
	</div>` + imagePost + textPosts(1)
	pg := staticPage(t, wrapPage(markup))

	out, err := p.ExtractPosts(context.Background(), pg, 5)
	require.NoError(t, err)

	require.Len(t, out.Posts, 2)
	for _, post := range out.Posts {
		assert.NotEqual(t, "urn:li:activity:v1", post.ID)
		assert.Empty(t, post.Media.Videos)
		assert.True(t, post.Text != "" || len(post.Media.Images) > 0)
	}
}
