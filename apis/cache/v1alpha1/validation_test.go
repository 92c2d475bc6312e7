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

package v1alpha1

import (
	"testing"

	"github.com/crossplane/crossplane-runtime/pkg/test"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"k8s.io/utils/ptr"
)

func params(m ...func(*ReplicationGroupParameters)) ReplicationGroupParameters {
	p := ReplicationGroupParameters{
		Name:                        "cache1",
		ReplicationGroupDescription: "a group",
	}
	p.SetDefaults()
	for _, f := range m {
		f(&p)
	}
	return p
}

func TestReplicationGroupParametersValidate(t *testing.T) {
	cases := map[string]struct {
		reason string
		p      ReplicationGroupParameters
		want   error
	}{
		"Valid": {
			reason: "Defaulted parameters with a name and description are valid",
			p:      params(),
		},
		"MissingName": {
			reason: "A name is required",
			p:      params(func(p *ReplicationGroupParameters) { p.Name = "" }),
			want:   errors.New(errNameRequired),
		},
		"NameTooLong": {
			reason: "Names longer than the maximum are rejected",
			p:      params(func(p *ReplicationGroupParameters) { p.Name = "a-very-long-group-name-01" }),
			want:   errors.Errorf(errNameTooLong, MaxReplicationGroupNameLength),
		},
		"NameDoubleHyphen": {
			reason: "Consecutive hyphens are rejected",
			p:      params(func(p *ReplicationGroupParameters) { p.Name = "cache--1" }),
			want:   errors.New(errNameFormat),
		},
		"NameTrailingHyphen": {
			reason: "A trailing hyphen is rejected",
			p:      params(func(p *ReplicationGroupParameters) { p.Name = "cache-" }),
			want:   errors.New(errNameFormat),
		},
		"MissingDescription": {
			reason: "A description is required",
			p:      params(func(p *ReplicationGroupParameters) { p.ReplicationGroupDescription = "" }),
			want:   errors.New(errDescriptionRequired),
		},
		"ListStateUnsupported": {
			reason: "Replication groups cannot be listed",
			p:      params(func(p *ReplicationGroupParameters) { p.State = StateList }),
			want:   errors.Errorf(errUnsupportedState, StateList),
		},
		"PrimaryAndNumClusters": {
			reason: "PrimaryClusterID and NumCacheClusters are mutually exclusive",
			p: params(func(p *ReplicationGroupParameters) {
				p.PrimaryClusterID = ptr.To("cache1-001")
				p.NumCacheClusters = ptr.To(2)
			}),
			want: errors.New(errPrimaryAndNumClusters),
		},
		"PrimaryAndNumClustersAbsent": {
			reason: "Deleting a group does not use PrimaryClusterID or NumCacheClusters",
			p: params(func(p *ReplicationGroupParameters) {
				p.State = StateAbsent
				p.PrimaryClusterID = ptr.To("cache1-001")
				p.NumCacheClusters = ptr.To(2)
			}),
		},
		"ZeroClusters": {
			reason: "At least one cluster is required",
			p:      params(func(p *ReplicationGroupParameters) { p.NumCacheClusters = ptr.To(0) }),
			want:   errors.New(errNumClustersMinimum),
		},
		"AZLengthMismatch": {
			reason: "The AZ list must have one entry per cluster",
			p: params(func(p *ReplicationGroupParameters) {
				p.NumCacheClusters = ptr.To(3)
				p.PreferredCacheClusterAZs = []string{"us-west-2a", "us-west-2b"}
			}),
			want: errors.New(errAZsLength),
		},
		"AZLengthMatch": {
			reason: "An AZ list matching the cluster count is valid",
			p: params(func(p *ReplicationGroupParameters) {
				p.NumCacheClusters = ptr.To(2)
				p.PreferredCacheClusterAZs = []string{"us-west-2a", "us-west-2a"}
			}),
		},
		"BadNotificationStatus": {
			reason: "Only active and inactive notification states exist",
			p:      params(func(p *ReplicationGroupParameters) { p.NotificationTopicStatus = ptr.To("paused") }),
			want:   errors.New(errNotificationTopicState),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.p.Validate()
			if diff := cmp.Diff(tc.want, err, test.EquateErrors()); diff != "" {
				t.Errorf("\n%s\nValidate(...): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}

func TestTagParametersValidate(t *testing.T) {
	cases := map[string]struct {
		reason string
		p      TagParameters
		want   error
	}{
		"ValidPresent": {
			p: TagParameters{Resource: "r", Account: "1", Region: "us-west-2", State: StatePresent, Tags: map[string]string{"k": "v"}},
		},
		"ListWithoutTags": {
			reason: "Listing does not require tags",
			p:      TagParameters{Resource: "r", Account: "1", Region: "us-west-2", State: StateList},
		},
		"ARNWithoutAccount": {
			reason: "Account and region are taken from a full ARN",
			p:      TagParameters{Resource: "arn:aws:elasticache:us-west-2:1:cluster:r", State: StateList},
		},
		"MissingResource": {
			p:    TagParameters{Account: "1", Region: "us-west-2", State: StateList},
			want: errors.New(errResourceRequired),
		},
		"MissingAccount": {
			p:    TagParameters{Resource: "r", Region: "us-west-2", State: StateList},
			want: errors.New(errAccountRequired),
		},
		"MissingRegion": {
			p:    TagParameters{Resource: "r", Account: "1", State: StateList},
			want: errors.New(errRegionRequired),
		},
		"AbsentWithoutTags": {
			reason: "Removing tags requires tags",
			p:      TagParameters{Resource: "r", Account: "1", Region: "us-west-2", State: StateAbsent},
			want:   errors.Errorf(errTagsRequired, StateAbsent),
		},
		"UnknownState": {
			p:    TagParameters{Resource: "r", Account: "1", Region: "us-west-2", State: "gone"},
			want: errors.Errorf(errUnsupportedState, State("gone")),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.p.Validate()
			if diff := cmp.Diff(tc.want, err, test.EquateErrors()); diff != "" {
				t.Errorf("\n%s\nValidate(...): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}
