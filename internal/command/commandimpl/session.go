package commandimpl

import (
	"context"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/errors"
)

// OpenOverlay stores the posts and settings the display picks up, and returns the handoff key.
func (c *CommandImpl) OpenOverlay(ctx context.Context, result domain.ExtractionResult, settings domain.Settings) (string, error) {
	if err := settings.Validate(); err != nil {
		return "", errors.InvalidInput(err.Error())
	}
	if len(result.Posts) == 0 {
		return "", errors.InvalidInput("no posts to display")
	}

	posts := result.Posts
	if len(posts) > settings.PostCount {
		posts = posts[:settings.PostCount]
	}

	key, err := c.Handoffs.Save(ctx, domain.Handoff{
		Posts: posts,
		Metadata: domain.SessionMetadata{
			Source:      result.Source,
			ExtractedAt: result.ExtractedAt,
			TotalFound:  result.TotalFound,
		},
		Settings: settings,
	})
	if err != nil {
		return "", err
	}

	c.Logger.Info("Overlay session opened", "key", key, "source", result.Source.SourceID, "posts", len(posts))
	return key, nil
}

// ConsumeSession hands the stored session to the display exactly once.
func (c *CommandImpl) ConsumeSession(ctx context.Context, key string) (domain.Handoff, error) {
	return c.Handoffs.Consume(ctx, key)
}
