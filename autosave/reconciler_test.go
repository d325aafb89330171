package autosave

import (
	"testing"

	"github.com/stretchr/testify/require"

	"snapkeep/value"
)

func testSchema(t *testing.T) *value.Schema {
	t.Helper()
	return value.NewSchema().
		Bool("dark_mode", false).
		Int("font_size", 12).
		String("language", "en").
		MustBuild()
}

func snapshot(t *testing.T, sch *value.Schema, fontSize int64) *value.Object {
	t.Helper()
	c := value.NewCopy(sch)
	require.NoError(t, c.Set("font_size", value.Int(fontSize)))
	return c.Commit()
}

func TestReconcilerInitialize(t *testing.T) {
	sch := testSchema(t)

	t.Run("no snapshot keeps defaults", func(t *testing.T) {
		r := newReconciler(sch)
		obj := r.initialize("", false)
		require.True(t, obj.Equal(value.NewObject(sch)))
	})

	t.Run("valid snapshot layers over defaults", func(t *testing.T) {
		r := newReconciler(sch)
		obj := r.initialize(`{"font_size":20}`, true)
		v, _ := obj.Get("font_size")
		require.True(t, v.Equal(value.Int(20)))
		v, _ = obj.Get("language")
		require.True(t, v.Equal(value.String("en")))
	})

	t.Run("unparseable snapshot keeps defaults", func(t *testing.T) {
		r := newReconciler(sch)
		obj := r.initialize("not json at all", true)
		require.True(t, obj.Equal(value.NewObject(sch)))
	})

	t.Run("per-property errors do not abort", func(t *testing.T) {
		r := newReconciler(sch)
		obj := r.initialize(`{"font_size":"huge","language":"fr"}`, true)
		v, _ := obj.Get("font_size")
		require.True(t, v.Equal(value.Int(12)))
		v, _ = obj.Get("language")
		require.True(t, v.Equal(value.String("fr")))
	})
}

func TestReconcilerCoalescesBatch(t *testing.T) {
	sch := testSchema(t)
	r := newReconciler(sch)

	u1 := snapshot(t, sch, 13)
	u2 := snapshot(t, sch, 14)
	u3 := snapshot(t, sch, 15)

	// Only the final state of the burst is persisted.
	text, save := r.shouldSave([]*value.Object{u1, u2, u3})
	require.True(t, save)
	require.Equal(t, value.Encode(u3), text)

	// The same net state again is a skip.
	_, save = r.shouldSave([]*value.Object{snapshot(t, sch, 15)})
	require.False(t, save)

	// A burst that ends back at the remote state writes nothing.
	_, save = r.shouldSave([]*value.Object{snapshot(t, sch, 99), snapshot(t, sch, 15)})
	require.False(t, save)
}

func TestReconcilerEmptyBatch(t *testing.T) {
	r := newReconciler(testSchema(t))
	_, save := r.shouldSave(nil)
	require.False(t, save)
}
