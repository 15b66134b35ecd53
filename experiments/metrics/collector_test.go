package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts concurrent events", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 0)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddEpisode()
					c.AddNode()
				}
				c.AddFullPlayout()
			}()
		}
		wg.Wait()

		metric := c.Complete()
		require.Equal(t, 4, metric.Goroutines)
		require.Equal(t, 400, metric.Episodes)
		require.Equal(t, 400, metric.Nodes)
		require.Equal(t, 4, metric.FullPlayouts)
	})

	t.Run("start resets counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 3)
		c.AddNode()
		c.Start(1, 5)

		metric := c.Complete()
		require.Zero(t, metric.Nodes)
		require.Equal(t, 5, metric.Depth)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(8, 2)
		c.AddEpisode()
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}
