/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package remoteagent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/storagemodels"
)

// BridgeChunks consumes chunks until the channel is closed and returns a
// reader over their concatenation in arrival order, along with the total
// size. Ownership of each chunk's Data passes to the receiver. A chunk
// carrying an error fails the bridge; the rest of the channel is drained in
// the background so the producer is never left blocked.
func BridgeChunks(ctx context.Context, chunks <-chan storagemodels.Chunk) (io.Reader, int64, error) {
	if chunks == nil {
		return strings.NewReader(""), 0, nil
	}

	var readers []io.Reader
	var total int64
	for {
		select {
		case <-ctx.Done():
			go DrainChunks(chunks)
			return nil, total, ctx.Err()
		case chunk, ok := <-chunks:
			if !ok {
				return io.MultiReader(readers...), total, nil
			}
			if chunk.Err != nil {
				go DrainChunks(chunks)
				return nil, total, fmt.Errorf("payload stream failed: %w", chunk.Err)
			}
			if len(chunk.Data) == 0 {
				continue
			}
			readers = append(readers, bytes.NewReader(chunk.Data))
			total += int64(len(chunk.Data))
		}
	}
}

// DrainChunks discards chunks until the channel is closed and returns the
// number of bytes discarded.
func DrainChunks(chunks <-chan storagemodels.Chunk) int64 {
	if chunks == nil {
		return 0
	}
	var n int64
	for chunk := range chunks {
		n += int64(len(chunk.Data))
	}
	return n
}
