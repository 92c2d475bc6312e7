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

package poll

import (
	"context"
	"testing"
	"time"

	"github.com/crossplane/crossplane-runtime/pkg/test"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"k8s.io/utils/clock"
)

var errBoom = errors.New("boom")

// stepClock fires every After immediately and advances its time by the
// requested duration.
type stepClock struct {
	clock.RealClock
	now   time.Time
	slept []time.Duration
}

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }

func (c *stepClock) After(d time.Duration) <-chan time.Time {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func doneAfter(n int, calls *int) ConditionFunc {
	return func(_ context.Context) (bool, error) {
		*calls++
		return *calls >= n, nil
	}
}

func TestPoll(t *testing.T) {
	type args struct {
		maxAttempts int
		timeout     time.Duration
		cond        func(calls *int) ConditionFunc
	}
	type want struct {
		err   error
		calls int
		slept int
	}

	cases := map[string]struct {
		reason string
		args   args
		want   want
	}{
		"DoneOnFirstAttempt": {
			reason: "Poll should sleep once before the first call",
			args: args{
				cond: func(calls *int) ConditionFunc { return doneAfter(1, calls) },
			},
			want: want{calls: 1, slept: 1},
		},
		"DoneAfterSeveralAttempts": {
			reason: "Poll should keep calling an unmet condition when unbounded",
			args: args{
				cond: func(calls *int) ConditionFunc { return doneAfter(5, calls) },
			},
			want: want{calls: 5, slept: 5},
		},
		"ConditionError": {
			reason: "Errors returned by the condition stop polling",
			args: args{
				cond: func(calls *int) ConditionFunc {
					return func(_ context.Context) (bool, error) {
						*calls++
						return false, errBoom
					}
				},
			},
			want: want{err: errBoom, calls: 1, slept: 1},
		},
		"MaxAttempts": {
			reason: "Poll should give up after MaxAttempts calls",
			args: args{
				maxAttempts: 3,
				cond:        func(calls *int) ConditionFunc { return doneAfter(10, calls) },
			},
			want: want{err: ErrMaxAttempts, calls: 3, slept: 3},
		},
		"Timeout": {
			reason: "Poll should give up once the timeout elapsed",
			args: args{
				timeout: 25 * time.Second,
				cond:    func(calls *int) ConditionFunc { return doneAfter(10, calls) },
			},
			want: want{err: ErrTimeout, calls: 3, slept: 3},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := &stepClock{now: time.Unix(0, 0)}
			p := Poller{Interval: DefaultInterval, MaxAttempts: tc.args.maxAttempts, Timeout: tc.args.timeout, Clock: c}
			calls := 0
			err := p.Poll(context.Background(), tc.args.cond(&calls))
			if diff := cmp.Diff(tc.want.err, err, test.EquateErrors()); diff != "" {
				t.Errorf("\n%s\nPoll(...): -want error, +got error:\n%s", tc.reason, diff)
			}
			if diff := cmp.Diff(tc.want.calls, calls); diff != "" {
				t.Errorf("\n%s\nPoll(...): -want calls, +got calls:\n%s", tc.reason, diff)
			}
			if diff := cmp.Diff(tc.want.slept, len(c.slept)); diff != "" {
				t.Errorf("\n%s\nPoll(...): -want sleeps, +got sleeps:\n%s", tc.reason, diff)
			}
			for _, d := range c.slept {
				if d != DefaultInterval {
					t.Errorf("\n%s\nPoll(...): slept %s, want %s", tc.reason, d, DefaultInterval)
				}
			}
		})
	}
}

func TestPollCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := Poller{Interval: time.Hour}
	err := p.Poll(ctx, func(_ context.Context) (bool, error) {
		t.Errorf("Poll(...): condition called with a cancelled context")
		return true, nil
	})
	if diff := cmp.Diff(context.Canceled, err, test.EquateErrors()); diff != "" {
		t.Errorf("Poll(...): -want error, +got error:\n%s", diff)
	}
}
