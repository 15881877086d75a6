package logger

import "sync"

// Per-component warn/error tallies. Cheap enough to keep always on; the
// pipeline surfaces them in its periodic stats line.
var (
	statsMu sync.Mutex
	warns   = map[string]int64{}
	errors  = map[string]int64{}
)

func recordWarn(component string) {
	statsMu.Lock()
	warns[component]++
	statsMu.Unlock()
}

func recordError(component string) {
	statsMu.Lock()
	errors[component]++
	statsMu.Unlock()
}

// Counts returns a copy of the per-component warn and error counters.
func Counts() (map[string]int64, map[string]int64) {
	statsMu.Lock()
	defer statsMu.Unlock()
	w := make(map[string]int64, len(warns))
	for k, v := range warns {
		w[k] = v
	}
	e := make(map[string]int64, len(errors))
	for k, v := range errors {
		e[k] = v
	}
	return w, e
}
