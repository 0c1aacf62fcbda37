package ports

import (
	"context"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

// ChannelRepository persists the discussion channels seeded on approval.
type ChannelRepository interface {
	ExistsByEvent(ctx context.Context, eventID string) (bool, error)
	Create(ctx context.Context, ch *domain.Channel) (*domain.Channel, error)
}

// PostRepository persists posts; the core only writes the welcome post.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
}
