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

// Package profile records where generating pairs are added to congruences.
//
// A session started with Start collects one pprof sample per generating
// pair, keyed by the call stack that added it. When the session stops the
// profile is written to disk and may be inspected with `go tool pprof`.
//
//	p := profile.Start()
//	// ... build congruences
//	p.Stop()
package profile

import (
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/pprof/profile"

	"github.com/consensys/semigroups/logger"
)

var (
	sessions       []*Profile
	sessionsLock   sync.Mutex
	activeSessions int32
)

// Profile is a profiling session.
type Profile struct {
	pprof     profile.Profile
	functions map[string]*profile.Function
	locations map[uintptr]*profile.Location
	filePath  string
	stopped   bool
}

// Option configures a profiling session.
type Option func(*Profile)

// WithPath sets the file the profile is written to on Stop.
func WithPath(path string) Option {
	return func(p *Profile) {
		p.filePath = path
	}
}

// WithNoOutput keeps the profile in memory only.
func WithNoOutput() Option {
	return func(p *Profile) {
		p.filePath = ""
	}
}

// Start creates a new active profiling session.
func Start(options ...Option) *Profile {
	p := &Profile{
		functions: make(map[string]*profile.Function),
		locations: make(map[uintptr]*profile.Location),
		filePath:  "pairs.pprof",
	}
	p.pprof.SampleType = []*profile.ValueType{{Type: "pairs", Unit: "count"}}
	for _, option := range options {
		option(p)
	}

	sessionsLock.Lock()
	sessions = append(sessions, p)
	atomic.AddInt32(&activeSessions, 1)
	sessionsLock.Unlock()
	return p
}

// Stop ends the session and writes the profile if a path was configured.
func (p *Profile) Stop() {
	sessionsLock.Lock()
	if p.stopped {
		sessionsLock.Unlock()
		return
	}
	p.stopped = true
	for i, s := range sessions {
		if s == p {
			sessions = append(sessions[:i], sessions[i+1:]...)
			break
		}
	}
	atomic.AddInt32(&activeSessions, -1)
	sessionsLock.Unlock()

	if p.filePath == "" {
		return
	}
	log := logger.Logger()
	f, err := os.Create(p.filePath)
	if err != nil {
		log.Error().Err(err).Str("path", p.filePath).Msg("could not create profile")
		return
	}
	defer f.Close()
	if err := p.pprof.Write(f); err != nil {
		log.Error().Err(err).Str("path", p.filePath).Msg("could not write profile")
		return
	}
	log.Info().Str("path", p.filePath).Int("pairs", p.NbPairs()).Msg("profile written")
}

// NbPairs returns the number of generating pairs recorded by the session.
func (p *Profile) NbPairs() int {
	sessionsLock.Lock()
	defer sessionsLock.Unlock()
	n := 0
	for _, s := range p.pprof.Sample {
		n += int(s.Value[0])
	}
	return n
}

// Pprof returns the underlying profile. It must not be used before Stop.
func (p *Profile) Pprof() *profile.Profile {
	return &p.pprof
}

// RecordPair records the call stack of its caller in every active session.
func RecordPair() {
	if atomic.LoadInt32(&activeSessions) == 0 {
		return
	}
	pc := make([]uintptr, 20)
	n := runtime.Callers(3, pc)
	if n == 0 {
		return
	}
	pc = pc[:n]

	sessionsLock.Lock()
	defer sessionsLock.Unlock()
	for _, p := range sessions {
		p.recordSample(pc)
	}
}

func (p *Profile) recordSample(pc []uintptr) {
	var locations []*profile.Location
	frames := runtime.CallersFrames(pc)
	for {
		frame, more := frames.Next()
		locations = append(locations, p.location(frame))
		if !more {
			break
		}
	}
	p.pprof.Sample = append(p.pprof.Sample, &profile.Sample{
		Location: locations,
		Value:    []int64{1},
	})
}

func (p *Profile) location(frame runtime.Frame) *profile.Location {
	if l, ok := p.locations[frame.PC]; ok {
		return l
	}
	f, ok := p.functions[frame.Function]
	if !ok {
		f = &profile.Function{
			ID:         uint64(len(p.functions) + 1),
			Name:       frame.Function,
			SystemName: frame.Function,
			Filename:   frame.File,
		}
		p.functions[frame.Function] = f
		p.pprof.Function = append(p.pprof.Function, f)
	}
	l := &profile.Location{
		ID:      uint64(len(p.locations) + 1),
		Address: uint64(frame.PC),
		Line:    []profile.Line{{Function: f, Line: int64(frame.Line)}},
	}
	p.locations[frame.PC] = l
	p.pprof.Location = append(p.pprof.Location, l)
	return l
}
