package server

import (
	"time"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/textnorm"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/formatter"
)

type extractRequest struct {
	URL         string `json:"url" binding:"required"`
	HTML        string `json:"html"`
	ContentType string `json:"contentType"`
	MaxPosts    int    `json:"maxPosts"`
	Refresh     bool   `json:"refresh"`
}

type checkSourceRequest struct {
	URL         string `json:"url" binding:"required"`
	HTML        string `json:"html"`
	ContentType string `json:"contentType"`
}

type prefetchRequest struct {
	URLs     []string `json:"urls" binding:"required,min=1,max=20"`
	MaxPosts int      `json:"maxPosts"`
}

type openOverlayRequest struct {
	Result   domain.ExtractionResult `json:"result"`
	Settings *domain.Settings        `json:"settings"`
}

// postView is a post as the display renders it. Text stays plain; TextHTML is
// the same text escaped for insertion into markup.
type postView struct {
	domain.Post
	PostedAgo string `json:"postedAgo"`
	TextHTML  string `json:"textHtml"`
}

type extractResponse struct {
	Success     bool              `json:"success"`
	Posts       []postView        `json:"posts"`
	Source      domain.SourceInfo `json:"companyInfo"`
	ExtractedAt time.Time         `json:"extractedAt"`
	TotalFound  int               `json:"totalFound"`
	FromCache   bool              `json:"fromCache"`
	Warning     string            `json:"warning,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func viewPosts(posts []domain.Post, now time.Time) []postView {
	out := make([]postView, 0, len(posts))
	for _, p := range posts {
		out = append(out, postView{
			Post:      p,
			PostedAgo: formatter.FormatRelative(p.PublishedAt, now),
			TextHTML:  textnorm.Sanitize(p.Text),
		})
	}
	return out
}

func newExtractResponse(res domain.ExtractionResult, now time.Time) extractResponse {
	return extractResponse{
		Success:     true,
		Posts:       viewPosts(res.Posts, now),
		Source:      res.Source,
		ExtractedAt: res.ExtractedAt,
		TotalFound:  res.TotalFound,
		FromCache:   res.FromCache,
	}
}
