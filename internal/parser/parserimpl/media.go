package parserimpl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/dom"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/locator"
)

const (
	posterAlt    = "Video poster"
	thumbnailAlt = "Video thumbnail"

	minThumbnailWidth  = 400
	minThumbnailHeight = 300
)

var (
	youtubeIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`youtube\.com/embed/([^?&]+)`),
		regexp.MustCompile(`youtu\.be/([^?&]+)`),
		regexp.MustCompile(`youtube\.com/watch\?v=([^&]+)`),
	}
	vimeoIDPattern = regexp.MustCompile(`vimeo\.com/video/(\d+)`)

	imageSourceAttrs = []string{"src", "data-src", "data-lazy-src"}
	videoSourceAttrs = []string{"data-video-url", "data-src", "data-video-src", "data-video", "href"}
	videoPosterAttrs = []string{"data-poster", "data-thumbnail"}
)

// ClassifyMedia collects the images and transient video entries of a post.
func (p *ParserImpl) ClassifyMedia(candidate dom.Node) domain.MediaBundle {
	m := &domain.MediaBundle{
		Images: []domain.Image{},
		Videos: []domain.Video{},
	}

	p.step("images", func() { p.collectImages(candidate, m) })
	p.step("frames", func() { p.collectFrames(candidate, m) })
	p.step("videos", func() { p.collectVideos(candidate, m) })
	p.step("placeholder", func() { p.markVideoIndicators(candidate, m) })

	return *m
}

// step runs one classification stage so that a failure only loses that stage.
func (p *ParserImpl) step(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.Logger.Warn("Media classification step failed", "step", name, "error", fmt.Sprint(r))
		}
	}()
	fn()
}

func (p *ParserImpl) collectImages(candidate dom.Node, m *domain.MediaBundle) {
	for _, img := range p.Locator.FindAll(p.patterns(locator.RoleImages), candidate) {
		src := firstAttr(img, imageSourceAttrs...)
		if src == "" || strings.Contains(src, "data:image") {
			continue
		}
		m.Images = append(m.Images, domain.Image{URL: src, AltText: dom.AttrOr(img, "alt", "")})
	}
}

func (p *ParserImpl) collectFrames(candidate dom.Node, m *domain.MediaBundle) {
	for _, frame := range p.Locator.FindAll(p.patterns(locator.RoleFrames), candidate) {
		src := firstAttr(frame, "src", "data-src")
		if src == "" {
			continue
		}

		switch {
		case strings.Contains(src, "youtube.com/embed/") || strings.Contains(src, "youtu.be/"):
			id := YouTubeID(src)
			if id == "" {
				continue
			}
			m.Videos = append(m.Videos, domain.Video{
				URL:       src,
				PosterURL: fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id),
				Kind:      domain.VideoKindYouTube,
			})
		case strings.Contains(src, "vimeo.com/video/"):
			if vimeoIDPattern.FindStringSubmatch(src) == nil {
				continue
			}
			// Vimeo posters need an API call.
			m.Videos = append(m.Videos, domain.Video{URL: src, Kind: domain.VideoKindVimeo})
		}
	}
}

func (p *ParserImpl) collectVideos(candidate dom.Node, m *domain.MediaBundle) {
	for _, v := range p.Locator.FindAll(p.patterns(locator.RoleVideos), candidate) {
		if v.Tag() == "video" {
			addNativeVideo(v, m)
			continue
		}

		if nested := firstDescendant(v, "video"); nested != nil {
			addNativeVideo(nested, m)
			continue
		}

		addThumbnails(v, m)

		if url := firstAttr(v, videoSourceAttrs...); strings.HasPrefix(url, "http") {
			m.Videos = append(m.Videos, domain.Video{
				URL:       url,
				PosterURL: firstAttr(v, videoPosterAttrs...),
				Kind:      domain.VideoKindEmbedded,
			})
		}
	}
}

// addNativeVideo keeps a playable source, or salvages the poster as an image.
func addNativeVideo(v dom.Node, m *domain.MediaBundle) {
	src := dom.AttrOr(v, "src", "")
	if src == "" {
		if source := firstDescendant(v, "source"); source != nil {
			src = dom.AttrOr(source, "src", "")
		}
	}
	poster := dom.AttrOr(v, "poster", "")

	if isPlayableSource(src) {
		m.Videos = append(m.Videos, domain.Video{URL: src, PosterURL: poster, Kind: domain.VideoKindNative})
		return
	}
	if poster != "" {
		m.Images = append(m.Images, domain.Image{URL: poster, AltText: posterAlt})
	}
}

func addThumbnails(container dom.Node, m *domain.MediaBundle) {
	for _, img := range dom.Descendants(container) {
		if img.Tag() != "img" {
			continue
		}
		src := dom.AttrOr(img, "src", "")
		if !strings.HasPrefix(src, "http") || !looksLikeThumbnail(img, src) || hasImage(m, src) {
			continue
		}
		m.Images = append(m.Images, domain.Image{URL: src, AltText: thumbnailAlt})
	}
}

func looksLikeThumbnail(img dom.Node, src string) bool {
	return dom.Closest(img, func(n dom.Node) bool { return dom.ClassContains(n, "video") }) != nil ||
		strings.Contains(strings.ToLower(dom.AttrOr(img, "alt", "")), "video") ||
		strings.Contains(src, "video") ||
		dom.IntAttr(img, "width") >= minThumbnailWidth ||
		dom.IntAttr(img, "height") >= minThumbnailHeight
}

// markVideoIndicators adds a placeholder entry when the post looks video-bearing
// but no playable entry was found.
func (p *ParserImpl) markVideoIndicators(candidate dom.Node, m *domain.MediaBundle) {
	if len(m.Videos) > 0 {
		return
	}

	text := strings.ToLower(candidate.Text())
	indicated := p.Locator.Exists(p.patterns(locator.RoleVideoPlayer), candidate) ||
		p.Locator.Exists(p.patterns(locator.RolePlayButton), candidate) ||
		strings.Contains(text, "video") ||
		strings.Contains(text, "watch")
	if !indicated {
		return
	}

	placeholder := domain.Video{Kind: domain.VideoKindPlaceholder}
	if len(m.Images) > 0 {
		placeholder.PosterURL = m.Images[0].URL
	}
	m.Videos = append(m.Videos, placeholder)
}

// YouTubeID extracts the video id from embed, short and watch URLs.
func YouTubeID(url string) string {
	for _, re := range youtubeIDPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

func isPlayableSource(src string) bool {
	return src != "" && !strings.Contains(src, "data:") && strings.HasPrefix(src, "http")
}

func hasImage(m *domain.MediaBundle, url string) bool {
	for _, img := range m.Images {
		if img.URL == url {
			return true
		}
	}
	return false
}

func firstAttr(n dom.Node, names ...string) string {
	for _, name := range names {
		if v, ok := n.Attr(name); ok && v != "" {
			return v
		}
	}
	return ""
}

func firstDescendant(n dom.Node, tag string) dom.Node {
	for _, d := range dom.Descendants(n) {
		if d.Tag() == tag {
			return d
		}
	}
	return nil
}
