package domain

import "time"

type PostType string

const (
	PostTypeText  PostType = "text"
	PostTypeImage PostType = "image"
	PostTypeVideo PostType = "video"
)

type VideoKind string

const (
	VideoKindNative      VideoKind = "native"
	VideoKindYouTube     VideoKind = "youtube"
	VideoKindVimeo       VideoKind = "vimeo"
	VideoKindEmbedded    VideoKind = "embedded"
	VideoKindPlaceholder VideoKind = "placeholder"
)

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"alt"`
}

type Video struct {
	URL       string    `json:"url"`
	PosterURL string    `json:"poster"`
	Kind      VideoKind `json:"type"`
}

type MediaBundle struct {
	Images []Image `json:"images"`
	Videos []Video `json:"videos"`
}

// HasPlayableVideo reports whether any video entry carries a resolvable source.
func (m MediaBundle) HasPlayableVideo() bool {
	for _, v := range m.Videos {
		if v.Kind != VideoKindPlaceholder && v.URL != "" {
			return true
		}
	}
	return false
}

// Post is an immutable value produced by the post extractor.
type Post struct {
	ID          string      `json:"id"`
	Text        string      `json:"text"`
	PublishedAt time.Time   `json:"date"`
	Author      string      `json:"author"`
	Media       MediaBundle `json:"media"`
	Type        PostType    `json:"type"`
}

// TypeOf derives the post type from media contents.
func TypeOf(m MediaBundle) PostType {
	switch {
	case len(m.Videos) > 0:
		return PostTypeVideo
	case len(m.Images) > 0:
		return PostTypeImage
	default:
		return PostTypeText
	}
}

// NewPost builds a post whose type follows its media.
func NewPost(id, text, author string, publishedAt time.Time, media MediaBundle) Post {
	if media.Images == nil {
		media.Images = []Image{}
	}
	if media.Videos == nil {
		media.Videos = []Video{}
	}
	return Post{
		ID:          id,
		Text:        text,
		PublishedAt: publishedAt,
		Author:      author,
		Media:       media,
		Type:        TypeOf(media),
	}
}
