/*
Copyright 2023 The Crossplane Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package poll implements the fixed interval polling used while waiting for
// the provider to converge.
package poll

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"k8s.io/utils/clock"
)

// DefaultInterval between two polls.
const DefaultInterval = 10 * time.Second

// Errors returned when a bound is reached before the condition is met.
var (
	ErrMaxAttempts = errors.New("condition not met within the maximum number of attempts")
	ErrTimeout     = errors.New("condition not met before the timeout")
)

// A ConditionFunc reports whether polling is done. A non-nil error stops
// polling and is returned by Poll as is.
type ConditionFunc func(ctx context.Context) (done bool, err error)

// A Poller calls a condition on a fixed interval. A zero MaxAttempts or
// Timeout leaves that bound unset, so polling only ends once the condition
// is met, fails, or the context is done.
type Poller struct {
	Interval    time.Duration
	MaxAttempts int
	Timeout     time.Duration
	Clock       clock.Clock
}

// Poll sleeps for one interval before every call of cond, the first one
// included.
func (p Poller) Poll(ctx context.Context, cond ConditionFunc) error {
	c := p.Clock
	if c == nil {
		c = clock.RealClock{}
	}
	start := c.Now()
	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.After(p.Interval):
		}
		done, err := cond(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
			return ErrMaxAttempts
		}
		if p.Timeout > 0 && c.Since(start) >= p.Timeout {
			return ErrTimeout
		}
	}
}
