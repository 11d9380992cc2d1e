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

package runner

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// counter is a toy computation that needs n steps to finish.
type counter struct {
	Runner
	n, done int
}

func (c *counter) Run() error {
	return c.Runner.Run(c.step)
}

func (c *counter) step() error {
	for c.done < c.n {
		if c.Stopped() {
			return nil
		}
		c.done++
	}
	c.SetFinished(true)
	return nil
}

func TestRunToFinish(t *testing.T) {
	assert := require.New(t)

	c := &counter{n: 10}
	assert.False(c.Started())
	assert.NoError(c.Run())
	assert.True(c.Started())
	assert.True(c.Finished())
	assert.False(c.Running())
	assert.Equal(10, c.done)

	// finished runs return immediately
	c.done = 0
	assert.NoError(c.Run())
	assert.Equal(0, c.done)
}

func TestKillBeforeRunIsCleared(t *testing.T) {
	assert := require.New(t)

	c := &counter{n: 5}
	c.Kill()
	assert.True(c.Dead())
	assert.True(c.Stopped())
	assert.False(c.Started())

	assert.NoError(c.Run())
	assert.True(c.Finished())
	assert.False(c.Dead())
}

func TestRunUntil(t *testing.T) {
	assert := require.New(t)

	c := &counter{n: 100}
	assert.NoError(c.RunUntil(func() bool { return c.done >= 40 }, c.Run))
	assert.False(c.Finished())
	assert.Equal(40, c.done)
	assert.True(c.Stopped())

	// the stoppage is cleared by the next run
	assert.NoError(c.Run())
	assert.True(c.Finished())
	assert.Equal(100, c.done)
}

func TestRunForZero(t *testing.T) {
	assert := require.New(t)

	c := &counter{n: 100}
	assert.NoError(c.RunFor(0, c.Run))
	assert.True(c.TimedOut())
	assert.False(c.Finished())
	assert.Equal(0, c.done)
}

func TestRunContext(t *testing.T) {
	assert := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &counter{n: 100}
	err := c.RunContext(ctx, c.Run)
	assert.Error(err)
	assert.True(errors.Is(err, context.Canceled))
	assert.False(c.Started())

	ctx, cancel = context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	assert.NoError(c.RunContext(ctx, c.Run))
	assert.True(c.Finished())
}

func TestReport(t *testing.T) {
	assert := require.New(t)

	var r Runner
	r.Configure(WithReportInterval(time.Hour))
	r.lastReport = time.Now()
	assert.False(r.Report())

	r.Configure(WithReportInterval(time.Nanosecond))
	time.Sleep(time.Millisecond)
	assert.True(r.Report())
	assert.Equal("never run", r.State())
}
