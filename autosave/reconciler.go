package autosave

import (
	"snapkeep/log"
	"snapkeep/value"
)

// reconciler tracks the last value known to be durably stored (the remote
// state) and decides whether a drained batch warrants a disk write. It is
// owned by the persistence loop: initialize runs once before the loop starts
// and shouldSave only ever runs on the loop goroutine.
type reconciler struct {
	schema *value.Schema
	remote *value.Object
}

func newReconciler(sch *value.Schema) *reconciler {
	return &reconciler{schema: sch, remote: value.NewObject(sch)}
}

// initialize seeds the remote state from recovered snapshot text. Properties
// that fail to parse are logged individually and keep their defaults; the
// recovered object is returned so the engine can seed its visible settings
// from the same state.
func (r *reconciler) initialize(text string, ok bool) *value.Object {
	if !ok {
		return r.remote
	}
	obj, errs := value.Decode(r.schema, text)
	for _, err := range errs {
		log.WarningLog.Printf("recovered settings: %v", err)
	}
	r.remote = obj
	return obj
}

// shouldSave inspects a drained batch. Only the last snapshot matters:
// intermediate updates in a burst are coalesced away. If the last snapshot
// differs structurally from the remote state, the remote state advances to it
// and its encoding is returned for writing; otherwise the cycle is a no-op.
func (r *reconciler) shouldSave(batch []*value.Object) (text string, save bool) {
	if len(batch) == 0 {
		return "", false
	}
	last := batch[len(batch)-1]
	if last.Equal(r.remote) {
		return "", false
	}
	r.remote = last
	return value.Encode(last), true
}
