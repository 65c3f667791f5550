// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diag holds the process-scoped warning list flushed at program
// exit. Fatal conditions still go through gosl/chk.Panic; this package is
// only for non-fatal notices (solver non-convergence, dropped rays, and
// similar) that should be visible without aborting the run.
package diag

import (
	"fmt"
	"sync"

	"github.com/cpmech/gosl/io"
)

var (
	mu       sync.Mutex
	warnings []string
)

// Warnf records a formatted warning. Safe for concurrent use from sweep
// worker goroutines.
func Warnf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	warnings = append(warnings, fmt.Sprintf(format, args...))
}

// Warnings returns a copy of every warning recorded so far, in order.
func Warnings() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(warnings))
	copy(out, warnings)
	return out
}

// Reset clears the warning list; used between independent test runs.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	warnings = nil
}

// Flush prints every recorded warning to stderr, colored the way the
// teacher's fatal-error paths are, and clears the list.
func Flush() {
	mu.Lock()
	ws := warnings
	warnings = nil
	mu.Unlock()
	for _, w := range ws {
		io.Pfyel("WARNING: %s\n", w)
	}
}
