// Copyright 2020 ConsenSys AG
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package runner tracks the lifecycle of incremental computations.
//
// A Runner is embedded by types whose work may be done in several steps:
// started once any run has begun, finished once the computation is
// complete, and possibly stopped in between (killed, timed out, or halted
// by a predicate). Long running loops check Stopped at their resumption
// points; nothing here interrupts a computation preemptively.
package runner

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/consensys/semigroups/logger"
)

type state int32

const (
	stateNeverRun state = iota
	stateRunningToFinish
	stateRunningFor
	stateRunningUntil
	stateTimedOut
	stateStoppedByPredicate
	stateNotRunning
	stateDead
)

func (s state) String() string {
	switch s {
	case stateNeverRun:
		return "never run"
	case stateRunningToFinish:
		return "running to finish"
	case stateRunningFor:
		return "running for"
	case stateRunningUntil:
		return "running until"
	case stateTimedOut:
		return "timed out"
	case stateStoppedByPredicate:
		return "stopped by predicate"
	case stateNotRunning:
		return "not running"
	case stateDead:
		return "dead"
	}
	return "unknown"
}

// DefaultReportInterval is the minimum delay between two progress reports.
const DefaultReportInterval = time.Second

// Runner is the lifecycle state shared by incremental computations.
//
// The zero value is ready to use. A Runner must not be copied after first
// use. Kill is the only method safe to call concurrently with a run.
type Runner struct {
	state    atomic.Int32
	started  bool
	finished bool

	deadline time.Time
	until    func() bool

	reportInterval time.Duration
	lastReport     time.Time
	log            *zerolog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithReportInterval sets the minimum delay between two progress reports.
func WithReportInterval(d time.Duration) Option {
	return func(r *Runner) {
		r.reportInterval = d
	}
}

// WithLogger sets the logger progress reports are written to.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) {
		r.log = &l
	}
}

// Configure applies options to r.
func (r *Runner) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(r)
	}
}

func (r *Runner) current() state {
	return state(r.state.Load())
}

func (r *Runner) set(s state) {
	r.state.Store(int32(s))
}

// Started reports whether a run has ever begun. Once true it stays true.
func (r *Runner) Started() bool {
	return r.started
}

// Finished reports whether the computation is complete.
func (r *Runner) Finished() bool {
	return r.finished
}

// SetFinished is called by the computation when it completes, or by its
// owner to invalidate a previous result.
func (r *Runner) SetFinished(v bool) {
	r.finished = v
}

// Running reports whether a run is in progress.
func (r *Runner) Running() bool {
	switch r.current() {
	case stateRunningToFinish, stateRunningFor, stateRunningUntil:
		return true
	}
	return false
}

// Kill stops the current run, if any, at its next resumption point.
// It is safe to call from another goroutine.
func (r *Runner) Kill() {
	r.set(stateDead)
}

// Dead reports whether the runner was killed since the last ClearStoppage.
func (r *Runner) Dead() bool {
	return r.current() == stateDead
}

// TimedOut reports whether the deadline of RunFor has passed.
func (r *Runner) TimedOut() bool {
	switch r.current() {
	case stateTimedOut:
		return true
	case stateRunningFor:
		if !time.Now().Before(r.deadline) {
			r.set(stateTimedOut)
			return true
		}
	}
	return false
}

// Stopped reports whether the run in progress should give up: the runner
// is dead, its deadline has passed, or its predicate holds.
func (r *Runner) Stopped() bool {
	switch r.current() {
	case stateDead, stateTimedOut, stateStoppedByPredicate:
		return true
	case stateRunningFor:
		return r.TimedOut()
	case stateRunningUntil:
		if r.until != nil && r.until() {
			r.set(stateStoppedByPredicate)
			return true
		}
	}
	return false
}

// ClearStoppage forgets why the last run stopped, so a new one can begin.
func (r *Runner) ClearStoppage() {
	if !r.Running() {
		r.set(stateNotRunning)
	}
}

// Run calls run unless the computation already finished. A previous
// stoppage is cleared first. The runner is left not running when run
// returns, unless it was stopped meanwhile.
func (r *Runner) Run(run func() error) error {
	if r.finished {
		return nil
	}
	switch r.current() {
	case stateDead, stateTimedOut, stateStoppedByPredicate:
		r.set(stateNotRunning)
	}
	if !r.Running() {
		r.set(stateRunningToFinish)
	}
	r.started = true
	r.lastReport = time.Now()
	err := run()
	if r.Running() {
		r.set(stateNotRunning)
	}
	return err
}

// RunFor calls run, asking it to stop once d has elapsed.
func (r *Runner) RunFor(d time.Duration, run func() error) error {
	if r.finished {
		return nil
	}
	r.deadline = time.Now().Add(d)
	r.set(stateRunningFor)
	return r.Run(run)
}

// RunUntil calls run, asking it to stop as soon as pred holds.
func (r *Runner) RunUntil(pred func() bool, run func() error) error {
	if r.finished {
		return nil
	}
	r.until = pred
	r.set(stateRunningUntil)
	defer func() {
		r.until = nil
	}()
	return r.Run(run)
}

// RunContext calls run, asking it to stop once ctx is done. The context
// error is returned if the computation did not finish.
func (r *Runner) RunContext(ctx context.Context, run func() error) error {
	if r.finished {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "run not started")
	}
	if err := r.RunUntil(func() bool { return ctx.Err() != nil }, run); err != nil {
		return err
	}
	if !r.finished && ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), "run interrupted")
	}
	return nil
}

// Report reports whether enough time has passed since the previous progress
// report for another one to be written.
func (r *Runner) Report() bool {
	interval := r.reportInterval
	if interval == 0 {
		interval = DefaultReportInterval
	}
	now := time.Now()
	if now.Sub(r.lastReport) < interval {
		return false
	}
	r.lastReport = now
	return true
}

// Logger returns the logger progress reports are written to.
func (r *Runner) Logger() zerolog.Logger {
	if r.log != nil {
		return *r.log
	}
	return logger.Logger()
}

// State describes the current state, for diagnostics.
func (r *Runner) State() string {
	return r.current().String()
}
