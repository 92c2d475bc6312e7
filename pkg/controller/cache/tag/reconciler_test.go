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

package tag

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	elasticachetypes "github.com/aws/aws-sdk-go-v2/service/elasticache/types"
	"github.com/crossplane/crossplane-runtime/pkg/test"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"

	"github.com/crossplane-contrib/elasticache-reconciler/apis/cache/v1alpha1"
	clientset "github.com/crossplane-contrib/elasticache-reconciler/pkg/clients/elasticache"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/clients/elasticache/fake"
)

const (
	account  = "123456789012"
	region   = "us-east-1"
	resource = "cache1"
	cacheARN = "arn:aws:elasticache:us-east-1:123456789012:cluster:cache1"
)

var errBoom = errors.New("boom")

// store is an in memory tag set of a single resource that records the
// mutations issued against it.
type store struct {
	tags    map[string]string
	added   []map[string]string
	removed [][]string
	arns    []string
}

func newStore(tags map[string]string) *store {
	s := &store{tags: map[string]string{}}
	for k, v := range tags {
		s.tags[k] = v
	}
	return s
}

func (s *store) mutations() int {
	return len(s.added) + len(s.removed)
}

func (s *store) client() *fake.MockClient {
	return &fake.MockClient{
		MockListTagsForResource: func(_ context.Context, in *elasticache.ListTagsForResourceInput, _ []func(*elasticache.Options)) (*elasticache.ListTagsForResourceOutput, error) {
			s.arns = append(s.arns, *in.ResourceName)
			return &elasticache.ListTagsForResourceOutput{TagList: clientset.TagList(s.tags)}, nil
		},
		MockAddTagsToResource: func(_ context.Context, in *elasticache.AddTagsToResourceInput, _ []func(*elasticache.Options)) (*elasticache.AddTagsToResourceOutput, error) {
			add := clientset.TagMap(in.Tags)
			s.added = append(s.added, add)
			for k, v := range add {
				s.tags[k] = v
			}
			return &elasticache.AddTagsToResourceOutput{}, nil
		},
		MockRemoveTagsFromResource: func(_ context.Context, in *elasticache.RemoveTagsFromResourceInput, _ []func(*elasticache.Options)) (*elasticache.RemoveTagsFromResourceOutput, error) {
			s.removed = append(s.removed, in.TagKeys)
			for _, k := range in.TagKeys {
				delete(s.tags, k)
			}
			return &elasticache.RemoveTagsFromResourceOutput{}, nil
		},
	}
}

func TestReconcile(t *testing.T) {
	type args struct {
		current map[string]string
		p       v1alpha1.TagParameters
	}
	type want struct {
		result  v1alpha1.Result
		err     error
		added   []map[string]string
		removed [][]string
		tags    map[string]string
	}

	cases := map[string]struct {
		reason string
		args   args
		want   want
	}{
		"List": {
			reason: "List should return the current tags without mutating them",
			args: args{
				current: map[string]string{"env": "dev"},
				p:       v1alpha1.TagParameters{Resource: resource, Account: account, Region: region, State: v1alpha1.StateList},
			},
			want: want{
				result: v1alpha1.Result{Tags: map[string]string{"env": "dev"}},
				tags:   map[string]string{"env": "dev"},
			},
		},
		"PresentChangedValueAndNewKey": {
			reason: "Present should set exactly the keys that are missing or carry another value",
			args: args{
				current: map[string]string{"env": "dev"},
				p:       v1alpha1.TagParameters{Resource: resource, Account: account, Region: region, Tags: map[string]string{"env": "prod", "team": "x"}},
			},
			want: want{
				result: v1alpha1.Result{
					Changed: true,
					Msg:     fmt.Sprintf(msgTagsAdded, cacheARN),
					Tags:    map[string]string{"env": "prod", "team": "x"},
					Added:   map[string]string{"env": "prod", "team": "x"},
				},
				added: []map[string]string{{"env": "prod", "team": "x"}},
				tags:  map[string]string{"env": "prod", "team": "x"},
			},
		},
		"PresentSubset": {
			reason: "Present should not mutate a resource that already has the desired tags",
			args: args{
				current: map[string]string{"env": "prod", "team": "x", "owner": "ops"},
				p:       v1alpha1.TagParameters{Resource: resource, Account: account, Region: region, Tags: map[string]string{"env": "prod"}},
			},
			want: want{
				result: v1alpha1.Result{
					Msg:  fmt.Sprintf(msgTagsExist, cacheARN),
					Tags: map[string]string{"env": "prod", "team": "x", "owner": "ops"},
				},
				tags: map[string]string{"env": "prod", "team": "x", "owner": "ops"},
			},
		},
		"AbsentRemovesMatchingPairs": {
			reason: "Absent should remove exactly the desired pairs the resource has",
			args: args{
				current: map[string]string{"env": "dev", "team": "x", "owner": "ops", "tier": "gold"},
				p: v1alpha1.TagParameters{Resource: resource, Account: account, Region: region, State: v1alpha1.StateAbsent,
					Tags: map[string]string{"team": "x", "env": "dev", "tier": "silver", "missing": "z"}},
			},
			want: want{
				result: v1alpha1.Result{
					Changed: true,
					Msg:     fmt.Sprintf(msgTagsRemoved, cacheARN),
					Tags:    map[string]string{"owner": "ops", "tier": "gold"},
					Removed: []string{"env", "team"},
				},
				removed: [][]string{{"env", "team"}},
				tags:    map[string]string{"owner": "ops", "tier": "gold"},
			},
		},
		"AbsentValueMismatch": {
			reason: "Absent should keep a tag whose value differs from the desired one",
			args: args{
				current: map[string]string{"env": "dev", "owner": "ops"},
				p:       v1alpha1.TagParameters{Resource: resource, Account: account, Region: region, State: v1alpha1.StateAbsent, Tags: map[string]string{"env": "prod"}},
			},
			want: want{
				result: v1alpha1.Result{
					Msg:  fmt.Sprintf(msgNoneRemoved, cacheARN),
					Tags: map[string]string{"env": "dev", "owner": "ops"},
				},
				tags: map[string]string{"env": "dev", "owner": "ops"},
			},
		},
		"AbsentNothingToRemove": {
			reason: "Absent should not mutate a resource that has none of the desired pairs",
			args: args{
				current: map[string]string{"owner": "ops"},
				p:       v1alpha1.TagParameters{Resource: resource, Account: account, Region: region, State: v1alpha1.StateAbsent, Tags: map[string]string{"env": "dev"}},
			},
			want: want{
				result: v1alpha1.Result{
					Msg:  fmt.Sprintf(msgNoneRemoved, cacheARN),
					Tags: map[string]string{"owner": "ops"},
				},
				tags: map[string]string{"owner": "ops"},
			},
		},
		"FullARN": {
			reason: "A resource given as an ARN should be used as is",
			args: args{
				current: map[string]string{},
				p: v1alpha1.TagParameters{Resource: "arn:aws:elasticache:eu-west-1:123456789012:replicationgroup:rg1",
					Tags: map[string]string{"env": "prod"}},
			},
			want: want{
				result: v1alpha1.Result{
					Changed: true,
					Msg:     fmt.Sprintf(msgTagsAdded, "arn:aws:elasticache:eu-west-1:123456789012:replicationgroup:rg1"),
					Tags:    map[string]string{"env": "prod"},
					Added:   map[string]string{"env": "prod"},
				},
				added: []map[string]string{{"env": "prod"}},
				tags:  map[string]string{"env": "prod"},
			},
		},
		"PresentWithoutTags": {
			reason: "Present without tags is a configuration error raised before any call",
			args: args{
				current: map[string]string{"env": "dev"},
				p:       v1alpha1.TagParameters{Resource: resource, Account: account, Region: region},
			},
			want: want{
				err:  errors.Wrap(errors.New("tags argument is required when state is present"), errInvalidParameters),
				tags: map[string]string{"env": "dev"},
			},
		},
		"NotAnElastiCacheARN": {
			reason: "ARNs of other services are rejected",
			args: args{
				p: v1alpha1.TagParameters{Resource: "arn:aws:s3:::bucket", State: v1alpha1.StateList},
			},
			want: want{
				err: errors.Wrap(errors.New(`"arn:aws:s3:::bucket" is not an ElastiCache ARN`), errResolveARN),
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := newStore(tc.args.current)
			r := NewReconciler(s.client())
			got, err := r.Reconcile(context.Background(), tc.args.p)
			if diff := cmp.Diff(tc.want.err, err, test.EquateErrors()); diff != "" {
				t.Errorf("\n%s\nReconcile(...): -want error, +got error:\n%s", tc.reason, diff)
			}
			if diff := cmp.Diff(tc.want.result, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("\n%s\nReconcile(...): -want result, +got result:\n%s", tc.reason, diff)
			}
			if diff := cmp.Diff(tc.want.added, s.added, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("\n%s\nReconcile(...): -want added, +got added:\n%s", tc.reason, diff)
			}
			if diff := cmp.Diff(tc.want.removed, s.removed, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("\n%s\nReconcile(...): -want removed, +got removed:\n%s", tc.reason, diff)
			}
			if diff := cmp.Diff(tc.want.tags, s.tags, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("\n%s\nReconcile(...): -want tags, +got tags:\n%s", tc.reason, diff)
			}
		})
	}
}

func TestReconcileIdempotent(t *testing.T) {
	cases := map[string]v1alpha1.TagParameters{
		"Present": {Resource: resource, Account: account, Region: region, Tags: map[string]string{"env": "prod", "team": "x"}},
		"Absent":  {Resource: resource, Account: account, Region: region, State: v1alpha1.StateAbsent, Tags: map[string]string{"env": "dev"}},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			s := newStore(map[string]string{"env": "dev", "owner": "ops"})
			r := NewReconciler(s.client())
			if _, err := r.Reconcile(context.Background(), p); err != nil {
				t.Fatalf("Reconcile(...): %s", err)
			}
			n := s.mutations()
			got, err := r.Reconcile(context.Background(), p)
			if err != nil {
				t.Fatalf("Reconcile(...): %s", err)
			}
			if got.Changed {
				t.Errorf("Reconcile(...): second run reported changed")
			}
			if diff := cmp.Diff(n, s.mutations()); diff != "" {
				t.Errorf("Reconcile(...): second run mutated the resource: -want, +got:\n%s", diff)
			}
		})
	}
}

func TestReconcileProviderErrors(t *testing.T) {
	p := v1alpha1.TagParameters{Resource: resource, Account: account, Region: region, Tags: map[string]string{"env": "prod"}}
	list := func(_ context.Context, _ *elasticache.ListTagsForResourceInput, _ []func(*elasticache.Options)) (*elasticache.ListTagsForResourceOutput, error) {
		return &elasticache.ListTagsForResourceOutput{TagList: []elasticachetypes.Tag{}}, nil
	}

	cases := map[string]struct {
		client *fake.MockClient
		p      v1alpha1.TagParameters
		want   error
	}{
		"ListFailed": {
			client: &fake.MockClient{
				MockListTagsForResource: func(_ context.Context, _ *elasticache.ListTagsForResourceInput, _ []func(*elasticache.Options)) (*elasticache.ListTagsForResourceOutput, error) {
					return nil, errBoom
				},
			},
			p:    p,
			want: errors.Wrap(errBoom, fmt.Sprintf(errListTags, cacheARN)),
		},
		"AddFailed": {
			client: &fake.MockClient{
				MockListTagsForResource: list,
				MockAddTagsToResource: func(_ context.Context, _ *elasticache.AddTagsToResourceInput, _ []func(*elasticache.Options)) (*elasticache.AddTagsToResourceOutput, error) {
					return nil, errBoom
				},
			},
			p:    p,
			want: errors.Wrap(errBoom, fmt.Sprintf(errAddTags, cacheARN)),
		},
		"RemoveFailed": {
			client: &fake.MockClient{
				MockListTagsForResource: func(_ context.Context, _ *elasticache.ListTagsForResourceInput, _ []func(*elasticache.Options)) (*elasticache.ListTagsForResourceOutput, error) {
					return &elasticache.ListTagsForResourceOutput{TagList: clientset.TagList(map[string]string{"env": "prod"})}, nil
				},
				MockRemoveTagsFromResource: func(_ context.Context, _ *elasticache.RemoveTagsFromResourceInput, _ []func(*elasticache.Options)) (*elasticache.RemoveTagsFromResourceOutput, error) {
					return nil, errBoom
				},
			},
			p:    v1alpha1.TagParameters{Resource: resource, Account: account, Region: region, State: v1alpha1.StateAbsent, Tags: map[string]string{"env": "prod"}},
			want: errors.Wrap(errBoom, fmt.Sprintf(errRemoveTags, cacheARN)),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewReconciler(tc.client).Reconcile(context.Background(), tc.p)
			if diff := cmp.Diff(tc.want, err, test.EquateErrors()); diff != "" {
				t.Errorf("Reconcile(...): -want error, +got error:\n%s", diff)
			}
		})
	}
}
