package api_test

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"

	"github.com/chinmay1088/voyager/api"
)

func TestCache(t *testing.T) {
	t.Run("entry expires after the ttl", func(t *testing.T) {
		clk := clock.NewMock()
		cache := api.NewCache[string](clk, 30*time.Second)

		cache.Put(api.NetworkEthereum, "a")

		got, ok := cache.Get(api.NetworkEthereum)
		assert.True(t, ok)
		assert.Equal(t, "a", got)

		clk.Add(29 * time.Second)
		_, ok = cache.Get(api.NetworkEthereum)
		assert.True(t, ok)

		clk.Add(time.Second)
		_, ok = cache.Get(api.NetworkEthereum)
		assert.False(t, ok)
	})

	t.Run("last write wins", func(t *testing.T) {
		clk := clock.NewMock()
		cache := api.NewCache[string](clk, time.Minute)

		cache.Put(api.NetworkSolana, "a")
		clk.Add(50 * time.Second)
		cache.Put(api.NetworkSolana, "b")
		clk.Add(50 * time.Second)

		got, ok := cache.Get(api.NetworkSolana)
		assert.True(t, ok)
		assert.Equal(t, "b", got)
	})

	t.Run("entries are per network", func(t *testing.T) {
		cache := api.NewCache[string](clock.NewMock(), time.Minute)

		cache.Put(api.NetworkEthereum, "a")

		_, ok := cache.Get(api.NetworkBSC)
		assert.False(t, ok)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		cache := api.NewCache[string](clock.NewMock(), time.Minute)

		cache.Put(api.NetworkBSC, "a")
		cache.Invalidate(api.NetworkBSC)

		_, ok := cache.Get(api.NetworkBSC)
		assert.False(t, ok)
	})
}
