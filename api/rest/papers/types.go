package papers

import (
	"context"

	"codeberg.org/papergen/server/internal/generation"
)

// forwards a raw JSON body to the generation service
type Relayer interface {
	Post(ctx context.Context, path string, body []byte) (*generation.Result, error)
}

// decides whether another call may go to the generation service right now
type Throttle interface {
	Allow() bool
}

// max accepted request body; documentation dumps can be large
const maxBodyBytes = 16 << 20
