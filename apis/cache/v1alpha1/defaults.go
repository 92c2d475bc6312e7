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

import "k8s.io/utils/ptr"

// SetDefaults fills unset parameters with the values the reconciler assumes
// when a caller does not supply them.
func (p *ReplicationGroupParameters) SetDefaults() {
	if p.State == "" {
		p.State = StatePresent
	}
	if p.CacheNodeType == "" {
		p.CacheNodeType = DefaultCacheNodeType
	}
	if p.AutomaticFailoverEnabled == nil {
		p.AutomaticFailoverEnabled = ptr.To(false)
	}
	if p.ApplyImmediately == nil {
		p.ApplyImmediately = ptr.To(false)
	}
	if p.AutoMinorVersionUpgrade == nil {
		p.AutoMinorVersionUpgrade = ptr.To(true)
	}
	if p.Port == nil {
		p.Port = ptr.To(DefaultPort)
	}
	if p.SnapshotRetentionLimit == nil {
		p.SnapshotRetentionLimit = ptr.To(0)
	}
	if p.NotificationTopicStatus == nil {
		p.NotificationTopicStatus = ptr.To(NotificationTopicActive)
	}
	if p.RetainPrimaryCluster == nil {
		p.RetainPrimaryCluster = ptr.To(false)
	}
	if p.SnapshotOnNumCacheClusters == nil {
		p.SnapshotOnNumCacheClusters = ptr.To(false)
	}
	if p.Wait == nil {
		p.Wait = ptr.To(true)
	}
}

// SetDefaults fills unset tag parameters.
func (p *TagParameters) SetDefaults() {
	if p.State == "" {
		p.State = StatePresent
	}
	if p.ResourceType == "" {
		p.ResourceType = ResourceTypeCluster
	}
}
