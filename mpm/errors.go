// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"errors"

	"github.com/cpmech/gosl/io"
)

// error kinds. Use errors.Is to check them
var (
	ErrMalformedMesh        = errors.New("malformed mesh")
	ErrOutOfDomain          = errors.New("particle is outside of the grid")
	ErrNonPositiveVolume    = errors.New("particle volume is not positive")
	ErrNumericalInstability = errors.New("numerical instability")
)

// StepError holds an error that happened during a time step
type StepError struct {
	Step  int     // step number (1-based)
	Time  float64 // time at the end of the step
	Phase Phase   // phase of the step when the error happened
	Pid   int     // particle id; -1 if not applicable
	Nid   int     // node id; -1 if not applicable
	Err   error   // cause
}

// Error implements the error interface
func (o *StepError) Error() string {
	l := io.Sf("step %d (t=%g) failed @ %v", o.Step, o.Time, o.Phase)
	if o.Pid >= 0 {
		l += io.Sf(" [particle %d]", o.Pid)
	}
	if o.Nid >= 0 {
		l += io.Sf(" [node %d]", o.Nid)
	}
	return l + ": " + o.Err.Error()
}

// Unwrap returns the cause
func (o *StepError) Unwrap() error { return o.Err }

