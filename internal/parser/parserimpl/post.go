package parserimpl

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/dom"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/locator"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/textnorm"
)

const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"

	reasonPrimaryVideo = "primary_video"
	reasonEmpty        = "empty"
	reasonFailure      = "failure"

	idTextPrefixUnits = 100
)

var videoKeywords = []string{"watch", "video", "📹", "🎥", "▶️", "play", "watch now", "view video"}

// ExtractPost turns one candidate node into a post. Rejected candidates,
// including ones whose extraction failed, report false.
func (p *ParserImpl) ExtractPost(candidate dom.Node) (post domain.Post, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.Logger.Warn("Candidate extraction failed", "error", fmt.Sprint(r))
			p.Metrics.Candidate(outcomeRejected, reasonFailure)
			post, ok = domain.Post{}, false
		}
	}()

	// Collected
	id := PostID(candidate)
	text := p.text(candidate, locator.RoleText)
	author := p.text(candidate, locator.RoleAuthors)
	publishedAt := p.Resolver.Resolve(p.Locator.FindOne(p.patterns(locator.RoleDates), candidate))
	media := p.ClassifyMedia(candidate)

	// Classified
	postType := domain.TypeOf(media)
	if postType == domain.PostTypeText && p.hasVideoIndicators(candidate, text) {
		postType = domain.PostTypeVideo
	}

	p.Logger.Debug("Post collected",
		"id", textnorm.Truncate(id, 20),
		"type", postType,
		"has_text", text != "",
		"images", len(media.Images),
		"videos", len(media.Videos),
	)

	// Decided
	if text == "" && len(media.Images) == 0 && postType == domain.PostTypeVideo {
		p.Logger.Debug("Skipping primary video post", "id", id)
		p.Metrics.Candidate(outcomeRejected, reasonPrimaryVideo)
		return domain.Post{}, false
	}
	if len(media.Videos) > 0 {
		media.Videos = nil
	}

	if text == "" && len(media.Images) == 0 {
		p.Metrics.Candidate(outcomeRejected, reasonEmpty)
		return domain.Post{}, false
	}

	p.Metrics.Candidate(outcomeAccepted, "")
	return domain.NewPost(id, text, author, publishedAt, media), true
}

func (p *ParserImpl) text(candidate dom.Node, role locator.Role) string {
	n := p.Locator.FindOne(p.patterns(role), candidate)
	if n == nil {
		return ""
	}
	return textnorm.CleanText(n.Text())
}

// hasVideoIndicators looks for structural or textual evidence of video content.
func (p *ParserImpl) hasVideoIndicators(candidate dom.Node, text string) bool {
	if p.Locator.Exists(p.patterns(locator.RoleVideoIndicators), candidate) {
		return true
	}

	lower := strings.ToLower(text)
	for _, kw := range videoKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	for _, frame := range p.Locator.FindAll(p.patterns(locator.RoleFrames), candidate) {
		src := firstAttr(frame, "src", "data-src")
		if strings.Contains(src, "youtube") || strings.Contains(src, "vimeo") || strings.Contains(src, "video") {
			return true
		}
	}
	return false
}

// PostID prefers the structural data-id and falls back to a hash of the
// leading text so repeated passes agree.
func PostID(candidate dom.Node) string {
	if id, ok := candidate.Attr("data-id"); ok && id != "" {
		return id
	}
	return "post_" + hashString(candidate.Text())
}

// hashString is the 31-multiplier string hash over the first UTF-16 units of s.
func hashString(s string) string {
	units := utf16.Encode([]rune(s))
	if len(units) > idTextPrefixUnits {
		units = units[:idTextPrefixUnits]
	}

	var h int32
	for _, u := range units {
		h = (h << 5) - h + int32(u)
	}

	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 10)
}
