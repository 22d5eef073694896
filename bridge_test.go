/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package remoteagent

import (
	"context"
	stderrors "errors"
	"io"
	"testing"
	"time"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/storagemodels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeChunks(t *testing.T) {
	ctx := context.Background()

	t.Run("ConcatenatesInOrder", func(t *testing.T) {
		r, n, err := BridgeChunks(ctx, chunksOf("one-", "", "two-", "three"))
		require.NoError(t, err)
		assert.Equal(t, int64(len("one-two-three")), n)

		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "one-two-three", string(data))
	})

	t.Run("Empty", func(t *testing.T) {
		r, n, err := BridgeChunks(ctx, chunksOf())
		require.NoError(t, err)
		assert.Zero(t, n)
		data, _ := io.ReadAll(r)
		assert.Empty(t, data)

		r, n, err = BridgeChunks(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, n)
		data, _ = io.ReadAll(r)
		assert.Empty(t, data)
	})

	t.Run("SourceError", func(t *testing.T) {
		srcErr := stderrors.New("broken pipe")
		chunks := make(chan storagemodels.Chunk)
		produced := make(chan struct{})
		go func() {
			defer close(produced)
			defer close(chunks)
			chunks <- storagemodels.Chunk{Data: []byte("a")}
			chunks <- storagemodels.Chunk{Err: srcErr}
			chunks <- storagemodels.Chunk{Data: []byte("b")}
		}()

		_, n, err := BridgeChunks(ctx, chunks)
		assert.ErrorIs(t, err, srcErr)
		assert.Equal(t, int64(1), n)

		select {
		case <-produced:
		case <-time.After(2 * time.Second):
			t.Fatal("producer left blocked")
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := BridgeChunks(cctx, make(chan storagemodels.Chunk))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDrainChunks(t *testing.T) {
	assert.Equal(t, int64(6), DrainChunks(chunksOf("abc", "def")))
	assert.Zero(t, DrainChunks(nil))
}
