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
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

const errTagValue = "value of tag %q must be a scalar"

// State is the desired state of a reconciled resource.
type State string

// Desired states.
const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
	StateList    State = "list"
)

// ResourceTypeCluster is the ARN resource segment of a cache cluster.
const ResourceTypeCluster = "cluster"

// Tags maps tag keys to values. Values that a parameter file decodes as
// another scalar, such as yes or 2 in YAML, keep their literal JSON text
// (true, 2). Quote a value to keep its exact spelling.
type Tags map[string]string

// UnmarshalJSON decodes an object of scalars into Tags. A null value is an
// empty tag value.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*t = nil
		return nil
	}
	out := make(Tags, len(raw))
	for k, v := range raw {
		v = bytes.TrimSpace(v)
		switch {
		case bytes.Equal(v, []byte("null")):
			out[k] = ""
		case len(v) > 0 && v[0] == '"':
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}
			out[k] = s
		case len(v) > 0 && (v[0] == '{' || v[0] == '['):
			return errors.Errorf(errTagValue, k)
		default:
			out[k] = string(v)
		}
	}
	*t = out
	return nil
}

// TagParameters define the desired tag set of a single ElastiCache resource.
type TagParameters struct {
	// Resource is the name of the ElastiCache resource, or its full ARN.
	Resource string `json:"resource"`

	// ResourceType is the ARN resource segment used when Resource is a
	// plain name, e.g. cluster or replicationgroup. Defaults to cluster.
	// +optional
	ResourceType string `json:"resource_type,omitempty"`

	// Account is the AWS account number owning the resource.
	Account string `json:"account"`

	// Region is the AWS region the resource lives in.
	Region string `json:"region"`

	// Tags to add or remove. Required unless State is list.
	// +optional
	Tags Tags `json:"tags,omitempty"`

	// State is one of present, absent or list.
	// +optional
	State State `json:"state,omitempty"`
}

// Result is the single record emitted per reconciliation.
type Result struct {
	// Changed is true if any provider mutation was issued.
	Changed bool `json:"changed"`

	// Msg is a human readable summary.
	Msg string `json:"msg,omitempty"`

	// Tags is the tag set of the resource as last read.
	Tags map[string]string `json:"tags,omitempty"`

	// Added holds the tags set by this reconciliation.
	Added map[string]string `json:"added,omitempty"`

	// Removed holds the tag keys removed by this reconciliation.
	Removed []string `json:"removed,omitempty"`

	// ReplicationGroup is the last observed state of the replication group.
	ReplicationGroup *ReplicationGroupObservation `json:"elasticache_replication_group,omitempty"`
}
