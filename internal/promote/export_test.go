package promote

import "time"

// SetNow overrides the engine clock for deterministic tests.
func (e *Engine) SetNow(now func() time.Time) {
	e.now = now
}
