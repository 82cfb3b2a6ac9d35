package domain

import (
	"fmt"
	"time"
)

type Settings struct {
	PostCount     int     `json:"postCount"`
	SlideDuration int     `json:"slideDuration"`
	AutoPlay      bool    `json:"autoPlay"`
	TextSize      float64 `json:"textSize"`
}

func DefaultSettings() Settings {
	return Settings{
		PostCount:     5,
		SlideDuration: 45,
		AutoPlay:      true,
		TextSize:      2,
	}
}

func (s Settings) Validate() error {
	if s.PostCount < 1 || s.PostCount > 20 {
		return fmt.Errorf("postCount must be between 1 and 20, got %d", s.PostCount)
	}
	if s.SlideDuration < 5 || s.SlideDuration > 300 {
		return fmt.Errorf("slideDuration must be between 5 and 300 seconds, got %d", s.SlideDuration)
	}
	if s.TextSize < 0.5 || s.TextSize > 5 {
		return fmt.Errorf("textSize must be between 0.5 and 5, got %g", s.TextSize)
	}
	return nil
}

type SessionMetadata struct {
	Source      SourceInfo `json:"companyInfo"`
	ExtractedAt time.Time  `json:"extractedAt"`
	TotalFound  int        `json:"totalFound"`
}

// Handoff is the short-lived record stored under session_<timestamp>.
type Handoff struct {
	Posts     []Post          `json:"posts"`
	Metadata  SessionMetadata `json:"metadata"`
	Settings  Settings        `json:"settings"`
	CreatedAt time.Time       `json:"createdAt"`
}

type StorageUsage struct {
	Used       int64  `json:"used"`
	Total      int64  `json:"total"`
	Percentage int    `json:"percentage"`
	UsedHuman  string `json:"usedHuman"`
	TotalHuman string `json:"totalHuman"`
}
