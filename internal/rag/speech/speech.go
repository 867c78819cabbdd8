package speech

import (
	"context"
	"io"
)

// Synthesizer turns text into an MP3 stream. Callers close the stream.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (io.ReadCloser, error)
}
