package adv

import (
	"context"
	"sync"
	"testing"

	"github.com/srg/blad/internal/bleuuid"
	"github.com/srg/blad/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Decode(t *testing.T) {
	h := testutils.NewTestHelper(t)
	c := NewCache(0, h.Logger)

	payload := testutils.NewPayloadBuilder().WithServices16(0x180D).WithCompleteName("HRM").Build()

	first := c.Decode(payload)
	second := c.Decode(append([]byte(nil), payload...))

	assert.Same(t, first, second)
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1, Entries: 1}, c.Stats())
	assert.Contains(t, h.Logs.String(), "decoded new payload")
}

func TestCache_NilPayload(t *testing.T) {
	c := NewCache(0, nil)

	data := c.Decode(nil)
	require.NotNil(t, data)
	assert.Empty(t, data.ServiceUUIDs)
	assert.Equal(t, CacheStats{}, c.Stats())
}

func TestCache_Capacity(t *testing.T) {
	h := testutils.NewTestHelper(t)
	c := NewCache(1, h.Logger)

	a := testutils.NewPayloadBuilder().WithServices16(0x180D).Build()
	b := testutils.NewPayloadBuilder().WithServices16(0x180F).Build()

	c.Decode(a)
	data := c.Decode(b)
	assert.True(t, data.HasService(bleuuid.From16(0x180F)))

	c.Decode(b)
	assert.Equal(t, CacheStats{Hits: 0, Misses: 3, Entries: 1}, c.Stats())
	assert.Contains(t, h.Logs.String(), "decode cache full")
}

func TestCache_ConcurrentDecode(t *testing.T) {
	c := NewCache(0, nil)
	payload := testutils.NewPayloadBuilder().WithServices16(0x180D).Build()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.True(t, c.Decode(payload).HasService(bleuuid.From16(0x180D)))
			}
		}()
	}
	wg.Wait()

	stats := c.Stats()
	assert.Equal(t, int64(16*50), stats.Hits+stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestDecodeAll(t *testing.T) {
	payloads := make([][]byte, 0, 40)
	for i := 0; i < 40; i++ {
		payloads = append(payloads, testutils.NewPayloadBuilder().WithServices16(uint16(0x1800+i)).Build())
	}
	payloads = append(payloads, nil)

	for _, workers := range []int{0, 1, 4, 100} {
		results, err := DecodeAll(context.Background(), payloads, workers)
		require.NoError(t, err)
		require.Len(t, results, len(payloads))

		for i := 0; i < 40; i++ {
			assert.Equal(t, []bleuuid.UUID{bleuuid.From16(uint16(0x1800 + i))}, results[i].ServiceUUIDs)
		}
		assert.Empty(t, results[40].ServiceUUIDs)
	}
}

func TestDecodeAll_Empty(t *testing.T) {
	results, err := DecodeAll(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDecodeAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	payloads := [][]byte{testutils.NewPayloadBuilder().WithServices16(0x180D).Build()}
	results, err := NewCache(0, nil).DecodeAll(ctx, payloads, 2)

	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.Nil(t, results[0])
}

func TestCache_DecodeAllSharesResults(t *testing.T) {
	c := NewCache(0, nil)
	payload := testutils.NewPayloadBuilder().WithCompleteName("HRM").Build()

	results, err := c.DecodeAll(context.Background(), [][]byte{payload, payload, payload}, 1)
	require.NoError(t, err)

	assert.Same(t, results[0], results[1])
	assert.Same(t, results[1], results[2])
	assert.Equal(t, CacheStats{Hits: 2, Misses: 1, Entries: 1}, c.Stats())
}
