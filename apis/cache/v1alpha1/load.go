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
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

const (
	errReadParams   = "cannot read parameters file"
	errDecodeParams = "cannot decode parameters"
)

// LoadReplicationGroupParameters decodes replication group parameters from
// the YAML or JSON file at path. YAML 1.1 booleans such as yes and no are
// accepted.
func LoadReplicationGroupParameters(path string) (ReplicationGroupParameters, error) {
	p := ReplicationGroupParameters{}
	err := load(path, &p)
	return p, err
}

// LoadTagParameters decodes tag parameters from the YAML or JSON file at path.
func LoadTagParameters(path string) (TagParameters, error) {
	p := TagParameters{}
	err := load(path, &p)
	return p, err
}

func load(path string, into any) error {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return errors.Wrap(err, errReadParams)
	}
	return errors.Wrap(yaml.UnmarshalStrict(data, into), errDecodeParams)
}
