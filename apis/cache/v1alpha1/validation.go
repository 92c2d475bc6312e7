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
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Configuration errors. They are returned before any provider call is made.
const (
	errNameRequired           = "name is required"
	errNameTooLong            = "name must be at most %d characters"
	errNameFormat             = "name must start with a letter and contain only letters, digits and single hyphens"
	errDescriptionRequired    = "replication_group_description is required"
	errUnsupportedState       = "unsupported state %q"
	errPrimaryAndNumClusters  = "cannot use num_cache_clusters with primary_cluster_id"
	errNumClustersMinimum     = "num_cache_clusters must be at least 1"
	errAZsLength              = "preferred_cache_cluster_azs must have a length equal to num_cache_clusters"
	errNotificationTopicState = "notification_topic_status must be one of active, inactive"
	errResourceRequired       = "resource is required"
	errAccountRequired        = "account is required"
	errRegionRequired         = "region is required"
	errTagsRequired           = "tags argument is required when state is %s"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z](-?[a-zA-Z0-9])*$`)

// Validate checks the static constraints of the parameters. Defaults should
// be applied first.
func (p ReplicationGroupParameters) Validate() error { //nolint:gocyclo
	switch {
	case p.Name == "":
		return errors.New(errNameRequired)
	case len(p.Name) > MaxReplicationGroupNameLength:
		return errors.Errorf(errNameTooLong, MaxReplicationGroupNameLength)
	case !nameRegex.MatchString(p.Name):
		return errors.New(errNameFormat)
	case p.ReplicationGroupDescription == "":
		return errors.New(errDescriptionRequired)
	}
	if p.State != StatePresent && p.State != StateAbsent {
		return errors.Errorf(errUnsupportedState, p.State)
	}
	// Checked before the group is looked up, so that a create with both set
	// issues no call at all.
	if p.State == StatePresent && p.PrimaryClusterID != nil && *p.PrimaryClusterID != "" && p.NumCacheClusters != nil {
		return errors.New(errPrimaryAndNumClusters)
	}
	if p.NumCacheClusters != nil {
		if *p.NumCacheClusters < 1 {
			return errors.New(errNumClustersMinimum)
		}
		if len(p.PreferredCacheClusterAZs) != 0 && len(p.PreferredCacheClusterAZs) != *p.NumCacheClusters {
			return errors.New(errAZsLength)
		}
	}
	if s := p.NotificationTopicStatus; s != nil && *s != NotificationTopicActive && *s != NotificationTopicInactive {
		return errors.New(errNotificationTopicState)
	}
	return nil
}

// Validate checks the static constraints of the tag parameters. Defaults
// should be applied first.
func (p TagParameters) Validate() error {
	if p.Resource == "" {
		return errors.New(errResourceRequired)
	}
	if !strings.HasPrefix(p.Resource, "arn:") {
		if p.Account == "" {
			return errors.New(errAccountRequired)
		}
		if p.Region == "" {
			return errors.New(errRegionRequired)
		}
	}
	switch p.State {
	case StateList:
		return nil
	case StatePresent, StateAbsent:
		if len(p.Tags) == 0 {
			return errors.Errorf(errTagsRequired, p.State)
		}
		return nil
	default:
		return errors.Errorf(errUnsupportedState, p.State)
	}
}
