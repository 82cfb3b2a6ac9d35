package parserimpl

import (
	"regexp"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/dom"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/locator"
)

var backgroundURL = regexp.MustCompile(`url\(['"]?([^'"]+)['"]?\)`)

// SourceInfo describes the company page behind url.
func (p *ParserImpl) SourceInfo(url string, root dom.Node) domain.SourceInfo {
	id, ok := domain.SourceIDFromURL(url)
	if !ok {
		return domain.SourceInfo{IsEligible: false, URL: url}
	}

	info := domain.SourceInfo{
		IsEligible:  true,
		SourceID:    id,
		DisplayName: id,
		URL:         url,
	}
	if root == nil {
		return info
	}

	if name := p.text(root, locator.RoleCompanyName); name != "" {
		info.DisplayName = name
	}
	info.LogoURL = p.companyLogo(root)
	info.CoverImageURL = p.coverImage(root)
	return info
}

// companyLogo takes the first pattern whose first match carries a src.
func (p *ParserImpl) companyLogo(root dom.Node) string {
	for _, pattern := range p.patterns(locator.RoleCompanyLogo) {
		n := p.Locator.FindOne([]locator.Pattern{pattern}, root)
		if n == nil {
			continue
		}
		if src := dom.AttrOr(n, "src", ""); src != "" {
			return src
		}
		p.Logger.Debug("Logo element without src", "pattern", pattern.String())
	}
	return ""
}

func (p *ParserImpl) coverImage(root dom.Node) string {
	n := p.Locator.FindOne(p.patterns(locator.RoleCoverImage), root)
	if n == nil {
		return ""
	}
	m := backgroundURL.FindStringSubmatch(n.Style("background-image"))
	if m == nil {
		return ""
	}
	return m[1]
}

