package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `<html><body>
<div class="feed-shared-update-v2" data-id="urn:li:activity:1">
  <span class="actor">Acme</span>
  <div class="cover" style="color: red; background-image: url(&quot;https://media.licdn.com/cover.jpg?a=1;b=2&quot;)"></div>
  <img src="https://media.licdn.com/a.jpg" width="640px" height="abc">
</div>
</body></html>`

func TestParseAndNavigate(t *testing.T) {
	root, err := Parse(fixture)
	require.NoError(t, err)
	assert.Equal(t, "", root.Tag())
	assert.Nil(t, root.Parent())

	all := Descendants(root)
	var post, img, cover Node
	for _, n := range all {
		switch {
		case ClassContains(n, "feed-shared-update"):
			post = n
		case n.Tag() == "img":
			img = n
		case ClassContains(n, "cover"):
			cover = n
		}
	}
	require.NotNil(t, post)
	require.NotNil(t, img)
	require.NotNil(t, cover)

	id, ok := post.Attr("DATA-ID")
	assert.True(t, ok)
	assert.Equal(t, "urn:li:activity:1", id)
	assert.Contains(t, post.Text(), "Acme")

	assert.Equal(t, 640, IntAttr(img, "width"))
	assert.Equal(t, 0, IntAttr(img, "height"))
	assert.Equal(t, post, Closest(img, func(n Node) bool { return ClassContains(n, "feed-shared") }))
	assert.Nil(t, Closest(img, func(n Node) bool { return ClassContains(n, "missing") }))

	assert.Equal(t, `url("https://media.licdn.com/cover.jpg?a=1;b=2")`, cover.Style("Background-Image"))
	assert.Equal(t, "red", cover.Style("color"))
	assert.Equal(t, "", cover.Style("width"))
}

func TestLoadTranscodesLatin1(t *testing.T) {
	latin1 := []byte("<html><body><p>Caf\xe9 cr\xe8me br\xfbl\xe9e</p></body></html>")

	root, err := Load(strings.NewReader(string(latin1)), "text/html; charset=iso-8859-1")
	require.NoError(t, err)
	assert.Contains(t, root.Text(), "Café crème brûlée")
}

func TestLoadKeepsUTF8(t *testing.T) {
	root, err := Load(strings.NewReader("<p>Watch now 🎥</p>"), "")
	require.NoError(t, err)
	assert.Equal(t, "Watch now 🎥", strings.TrimSpace(root.Text()))
}

func TestBuilder(t *testing.T) {
	root := Doc(
		El("div", Attrs{"class": "post"},
			T("Hello "),
			El("b", nil, T("world")),
		),
	)
	children := root.Children()
	require.Len(t, children, 1)
	assert.Equal(t, "div", children[0].Tag())
	assert.Equal(t, "Hello world", children[0].Text())
	assert.Equal(t, "b", children[0].Children()[0].Tag())
	assert.Equal(t, children[0], children[0].Children()[0].Parent())
}
