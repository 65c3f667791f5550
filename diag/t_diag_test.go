// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_diag01_warnings(tst *testing.T) {

	chk.PrintTitle("diag01_warnings")

	Reset()
	Warnf("cmfd did not converge after %d iterations", 1500)
	Warnf("fsr %d has zero rays", 7)

	ws := Warnings()
	if len(ws) != 2 {
		tst.Errorf("expected 2 warnings, got %d", len(ws))
	}
	if ws[0] != "cmfd did not converge after 1500 iterations" {
		tst.Errorf("unexpected warning text: %q", ws[0])
	}

	Flush()
	if len(Warnings()) != 0 {
		tst.Errorf("expected warnings cleared after Flush")
	}
}
