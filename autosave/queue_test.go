package autosave

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"snapkeep/value"
)

func TestQueueDrainOrder(t *testing.T) {
	sch := testSchema(t)
	q := newUpdateQueue()

	u1 := snapshot(t, sch, 1)
	u2 := snapshot(t, sch, 2)
	u3 := snapshot(t, sch, 3)

	q.push(u1)
	q.push(u2)
	q.push(u3)
	require.Equal(t, 3, q.size())

	batch := q.drain()
	require.Equal(t, []*value.Object{u1, u2, u3}, batch)
	require.Equal(t, 0, q.size())
	require.Empty(t, q.drain())
}

func TestQueueDrainSnapshotsTheInstant(t *testing.T) {
	sch := testSchema(t)
	q := newUpdateQueue()

	q.push(snapshot(t, sch, 1))
	batch := q.drain()
	require.Len(t, batch, 1)

	// Pushes after the drain wait for the next cycle.
	q.push(snapshot(t, sch, 2))
	require.Equal(t, 1, q.size())
}

func TestQueueConcurrentProducers(t *testing.T) {
	sch := testSchema(t)
	q := newUpdateQueue()

	const producers = 8
	const perProducer = 100
	obj := snapshot(t, sch, 1)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.push(obj)
			}
		}()
	}
	wg.Wait()

	require.Len(t, q.drain(), producers*perProducer)
}
