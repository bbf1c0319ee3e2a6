// Package konami recognises a secret key sequence in a stream of key-down
// events and raises a one-shot activation.
package konami

import (
	"log/slog"
	"strings"
	"sync"
)

// Code is the classic sequence, as DOM-style key names.
var Code = []string{
	"ArrowUp", "ArrowUp",
	"ArrowDown", "ArrowDown",
	"ArrowLeft", "ArrowRight",
	"ArrowLeft", "ArrowRight",
	"b", "a",
}

// Hint is emitted once per detector when it is first mounted.
const Hint = "Warning: Incoming transmission... Use the ancient code to activate planetary defense. ⬆️ ⬆️ ⬇️ ⬇️ ⬅️ ➡️ ⬅️ ➡️ 🅱️ 🅰️"

// Detector keeps a rolling buffer of the last len(code) keys. Once the
// buffer matches it becomes active and ignores every key until Deactivate.
//
// Hosts call KeyDown from their input goroutine; the mutex only guards
// against a frontend that deactivates from a different goroutine.
type Detector struct {
	mu       sync.Mutex
	code     []string
	buf      []string
	active   bool
	hinted   bool
	onActive func()
	hintSink func(string)
	logger   *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithCode replaces the target sequence. An empty code is ignored.
func WithCode(code ...string) Option {
	return func(d *Detector) {
		if len(code) > 0 {
			d.code = append([]string(nil), code...)
		}
	}
}

// WithOnActivate registers the activation callback. It runs synchronously
// inside the KeyDown call that completed the sequence.
func WithOnActivate(fn func()) Option {
	return func(d *Detector) { d.onActive = fn }
}

// WithHintSink sends the mount hint to fn as well as the logger.
func WithHintSink(fn func(string)) Option {
	return func(d *Detector) { d.hintSink = fn }
}

// WithLogger sets the logger. Nil means slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) { d.logger = l }
}

// New creates a dormant detector for Code unless overridden.
func New(opts ...Option) *Detector {
	d := &Detector{code: Code}
	for _, o := range opts {
		o(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	d.buf = make([]string, 0, len(d.code))
	return d
}

// Mount emits the hint the first time it is called.
func (d *Detector) Mount() {
	d.mu.Lock()
	if d.hinted {
		d.mu.Unlock()
		return
	}
	d.hinted = true
	sink := d.hintSink
	d.mu.Unlock()

	d.logger.Info(Hint, "component", "konami")
	if sink != nil {
		sink(Hint)
	}
}

// KeyDown feeds one key. It returns true only for the key that completed
// the sequence. Keys are ignored while active.
func (d *Detector) KeyDown(key string) bool {
	d.mu.Lock()
	if d.active {
		d.mu.Unlock()
		return false
	}

	n := len(d.code)
	d.buf = append(d.buf, key)
	if len(d.buf) > n {
		copy(d.buf, d.buf[len(d.buf)-n:])
		d.buf = d.buf[:n]
	}
	if !d.matches() {
		d.mu.Unlock()
		return false
	}

	d.buf = d.buf[:0]
	d.active = true
	cb := d.onActive
	d.mu.Unlock()

	d.logger.Debug("sequence matched", "component", "konami")
	if cb != nil {
		cb()
	}
	return true
}

func (d *Detector) matches() bool {
	if len(d.buf) != len(d.code) {
		return false
	}
	for i, k := range d.buf {
		if !strings.EqualFold(k, d.code[i]) {
			return false
		}
	}
	return true
}

// Active reports whether a session is running.
func (d *Detector) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Deactivate re-arms the detector after the session ends. The buffer
// starts empty.
func (d *Detector) Deactivate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = false
	d.buf = d.buf[:0]
}

// Buffered returns a copy of the pending keys.
func (d *Detector) Buffered() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.buf...)
}

// Len returns the length of the target sequence.
func (d *Detector) Len() int { return len(d.code) }
