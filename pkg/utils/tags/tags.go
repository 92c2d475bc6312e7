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

package tags

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// ToSet returns the tags of desired whose key is missing from current or
// carries a different value there. Tags are compared by key: setting a key
// that already exists overwrites its value, so a changed value never needs a
// removal first.
func ToSet(desired, current map[string]string) map[string]string {
	add := make(map[string]string, len(desired))
	for k, v := range desired {
		if cv, ok := current[k]; ok && cv == v {
			continue
		}
		add[k] = v
	}
	return add
}

// ToRemove returns the sorted keys of the desired tags that exist in current
// with the same value. A key carrying another value is left alone.
func ToRemove(desired, current map[string]string) []string {
	keys := sets.New[string]()
	for k, v := range desired {
		if cv, ok := current[k]; ok && cv == v {
			keys.Insert(k)
		}
	}
	return sets.List(keys)
}
