// Package autosave implements the crash-resilient auto-save engine: a single
// background goroutine drains queued settings snapshots and persists the most
// recent one through the alternating dual-file store, while an exclusive
// directory lock keeps concurrent process instances from interfering. Every
// runtime failure degrades to reduced durability instead of surfacing to the
// caller; the application keeps working against the in-memory settings.
package autosave

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"snapkeep/config"
	"snapkeep/log"
	"snapkeep/store"
	"snapkeep/value"
)

// DefaultSaveDelay is the minimum pause between save cycles.
const DefaultSaveDelay = 5 * time.Second

// Options configures an engine instance.
type Options struct {
	// Folder is the subfolder of the data root holding this instance's
	// files. Required; validated at construction.
	Folder string
	// BaseDir overrides the per-user data root. Empty means the platform
	// default; tests point this at a temp directory.
	BaseDir string
	// SaveDelay is the minimum pause between save cycles. Zero means
	// DefaultSaveDelay.
	SaveDelay time.Duration
	// AllowHiddenFolder permits folder names starting with a dot.
	AllowHiddenFolder bool
}

// DefaultOptions returns the standard configuration for the given folder.
func DefaultOptions(folder string) Options {
	return Options{
		Folder:    folder,
		SaveDelay: DefaultSaveDelay,
	}
}

// Engine is the auto-save subsystem for one settings schema. Persist &co can
// be called from any goroutine; disk is only ever touched by the engine's own
// background loop.
type Engine struct {
	opts   Options
	schema *value.Schema

	mu      sync.Mutex
	current *value.Object
	closed  bool

	queue *updateQueue
	rec   *reconciler
	files *store.DualFile
	lock  *flock.Flock

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// New builds an engine for sch and starts its persistence loop. Invalid
// configuration (nil schema, bad folder name) is a construction error; any
// lock or file-system trouble instead disables persistence for the session
// and the engine operates purely in memory.
func New(sch *value.Schema, opts Options) (*Engine, error) {
	if sch == nil {
		return nil, errors.New("autosave: nil schema")
	}
	if err := config.ValidateFolder(opts.Folder, opts.AllowHiddenFolder); err != nil {
		return nil, err
	}
	if opts.SaveDelay <= 0 {
		opts.SaveDelay = DefaultSaveDelay
	}

	e := &Engine{
		opts:    opts,
		schema:  sch,
		current: value.NewObject(sch),
		queue:   newUpdateQueue(),
		rec:     newReconciler(sch),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	e.attach()

	go e.run()
	return e, nil
}

// attach acquires the on-disk resources in order: directory, lock, file pair,
// recovered state. Any failure releases what was already acquired, in reverse
// order, and leaves the engine in the disabled (in-memory only) mode.
func (e *Engine) attach() {
	dir, err := config.DataDir(e.opts.BaseDir, e.opts.Folder)
	if err != nil {
		log.WarningLog.Printf("auto-save disabled: %v", err)
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.WarningLog.Printf("auto-save disabled: could not create %s: %v", dir, err)
		return
	}

	lock := acquireLock(dir)
	if lock == nil {
		return
	}

	files, err := store.Open(dir)
	if err != nil {
		log.WarningLog.Printf("auto-save disabled: %v", err)
		if uerr := lock.Unlock(); uerr != nil {
			log.WarningLog.Printf("failed to release %s: %v", lock.Path(), uerr)
		}
		return
	}

	text, ok := files.Load()
	e.current = e.rec.initialize(text, ok)
	e.lock = lock
	e.files = files
	log.InfoLog.Printf("auto-save enabled in %s", dir)
}

// Enabled reports whether this instance persists to disk. A false result
// means the directory lock or files could not be acquired and the engine
// holds settings in memory only.
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.files != nil
}

// Current returns the latest committed settings snapshot. It reflects every
// Persist immediately, ahead of any disk write.
func (e *Engine) Current() *value.Object {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Persist makes o the current settings and queues it for a background write.
// It never blocks on the writer and never reports write failures: the
// contract is eventually-persisted, best-effort. Persisting a value equal to
// the current settings is a no-op.
func (e *Engine) Persist(o *value.Object) error {
	if o == nil {
		return errors.New("autosave: nil settings object")
	}
	if o.Schema() != e.schema {
		return errors.New("autosave: settings object built against a different schema")
	}

	e.mu.Lock()
	e.commitLocked(o)
	e.mu.Unlock()
	return nil
}

// Set updates a single property through a working copy and persists the
// resulting snapshot.
func (e *Engine) Set(name string, v value.Value) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.current.Edit()
	if err := c.Set(name, v); err != nil {
		return fmt.Errorf("autosave: %w", err)
	}
	e.commitLocked(c.Commit())
	return nil
}

// Remove reverts a single property to its schema default and persists the
// resulting snapshot.
func (e *Engine) Remove(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.current.Edit()
	c.Remove(name)
	e.commitLocked(c.Commit())
	return nil
}

// commitLocked installs o as the current settings and enqueues it for the
// persistence loop. Equal snapshots, disabled persistence, and closed engines
// skip the queue; the in-memory update always happens. Enqueueing under the
// same lock as the commit keeps queue order identical to commit order, so the
// last queued snapshot is always the latest Current.
func (e *Engine) commitLocked(o *value.Object) {
	if o.Equal(e.current) {
		return
	}
	e.current = o
	if e.files != nil && !e.closed {
		e.queue.push(o)
	}
}

// Close shuts the engine down: it asks the loop to stop, waits for it to
// drain the queue and finish any in-flight write, then releases the file pair
// and the directory lock in reverse-acquisition order. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.stopOnce.Do(func() { close(e.stop) })
	<-e.done

	if log.DebugEnabled {
		log.Debug("%s", log.GetProfiler().GetStats())
	}

	e.mu.Lock()
	files, lock := e.files, e.lock
	e.files, e.lock = nil, nil
	e.mu.Unlock()

	var firstErr error
	if files != nil {
		if err := files.Close(); err != nil {
			firstErr = err
		}
	}
	if lock != nil {
		if err := lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// run is the persistence loop: wait out the inter-save delay, drain whatever
// is queued, and write if the reconciler says the net state changed. Once
// stop is requested the delay is skipped and the loop exits as soon as the
// queue is empty, so a final burst of updates still reaches disk.
func (e *Engine) run() {
	defer close(e.done)

	for {
		if !e.stopping() {
			select {
			case <-time.After(e.opts.SaveDelay):
			case <-e.stop:
			}
		}

		batch := e.queue.drain()
		if len(batch) == 0 {
			if e.stopping() {
				return
			}
			continue
		}
		e.save(batch)
	}
}

func (e *Engine) stopping() bool {
	select {
	case <-e.stop:
		return true
	default:
		return false
	}
}

// save runs one cycle over a non-empty batch. Write failures are logged and
// otherwise ignored; the next cycle retries with whatever is queued by then.
func (e *Engine) save(batch []*value.Object) {
	start := time.Now()
	defer func() { log.GetProfiler().RecordCycle(time.Since(start)) }()

	text, ok := e.rec.shouldSave(batch)
	if !ok {
		log.SaveTrace("%d update(s) coalesced to a no-op", len(batch))
		return
	}
	if e.files == nil {
		return
	}

	done := log.GetProfiler().StartPhase("write")
	err := e.files.Write(text)
	done()
	if err != nil {
		log.ErrorLog.Printf("auto-save write failed: %v", err)
		return
	}
	log.SaveTrace("wrote %d character snapshot from %d update(s)", len(text), len(batch))
}
