package domain

import (
	"regexp"
	"time"
)

var sourceIDRegex = regexp.MustCompile(`/company/([^/?]+)`)

// SourceIDFromURL extracts the company path segment of a page URL.
func SourceIDFromURL(url string) (string, bool) {
	m := sourceIDRegex.FindStringSubmatch(url)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}

type SourceInfo struct {
	IsEligible    bool   `json:"isEligible"`
	SourceID      string `json:"sourceId,omitempty"`
	DisplayName   string `json:"displayName,omitempty"`
	LogoURL       string `json:"logoUrl,omitempty"`
	CoverImageURL string `json:"coverImageUrl,omitempty"`
	URL           string `json:"url,omitempty"`
}

type ExtractionResult struct {
	Posts       []Post     `json:"posts"`
	Source      SourceInfo `json:"companyInfo"`
	ExtractedAt time.Time  `json:"extractedAt"`
	TotalFound  int        `json:"totalFound"`
	FromCache   bool       `json:"fromCache"`
}

// CachedPosts is the value stored under source_<id>.
type CachedPosts struct {
	Posts     []Post      `json:"posts"`
	CreatedAt time.Time   `json:"createdAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
	Source    *SourceInfo `json:"companyInfo,omitempty"`
}
