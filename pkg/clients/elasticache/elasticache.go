/*
Copyright 2019 The Crossplane Authors.

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

package elasticache

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	elasticachetypes "github.com/aws/aws-sdk-go-v2/service/elasticache/types"
	"github.com/pkg/errors"

	"github.com/crossplane-contrib/elasticache-reconciler/apis/cache/v1alpha1"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/utils/pointer"
)

// A Client handles CRUD operations for ElastiCache resources.
type Client interface {
	DescribeReplicationGroups(context.Context, *elasticache.DescribeReplicationGroupsInput, ...func(*elasticache.Options)) (*elasticache.DescribeReplicationGroupsOutput, error)
	CreateReplicationGroup(context.Context, *elasticache.CreateReplicationGroupInput, ...func(*elasticache.Options)) (*elasticache.CreateReplicationGroupOutput, error)
	ModifyReplicationGroup(context.Context, *elasticache.ModifyReplicationGroupInput, ...func(*elasticache.Options)) (*elasticache.ModifyReplicationGroupOutput, error)
	DeleteReplicationGroup(context.Context, *elasticache.DeleteReplicationGroupInput, ...func(*elasticache.Options)) (*elasticache.DeleteReplicationGroupOutput, error)

	CreateCacheCluster(context.Context, *elasticache.CreateCacheClusterInput, ...func(*elasticache.Options)) (*elasticache.CreateCacheClusterOutput, error)
	DeleteCacheCluster(context.Context, *elasticache.DeleteCacheClusterInput, ...func(*elasticache.Options)) (*elasticache.DeleteCacheClusterOutput, error)

	ListTagsForResource(context.Context, *elasticache.ListTagsForResourceInput, ...func(*elasticache.Options)) (*elasticache.ListTagsForResourceOutput, error)
	AddTagsToResource(context.Context, *elasticache.AddTagsToResourceInput, ...func(*elasticache.Options)) (*elasticache.AddTagsToResourceOutput, error)
	RemoveTagsFromResource(context.Context, *elasticache.RemoveTagsFromResourceInput, ...func(*elasticache.Options)) (*elasticache.RemoveTagsFromResourceOutput, error)
}

// NewClient returns a new ElastiCache client.
func NewClient(cfg aws.Config) Client {
	return elasticache.NewFromConfig(cfg)
}

// NewCreateReplicationGroupInput returns ElastiCache replication group creation
// input suitable for use with the AWS API. Optional parameters are only
// forwarded when populated.
func NewCreateReplicationGroupInput(p v1alpha1.ReplicationGroupParameters) *elasticache.CreateReplicationGroupInput {
	c := &elasticache.CreateReplicationGroupInput{
		ReplicationGroupId:          aws.String(p.Name),
		ReplicationGroupDescription: aws.String(p.ReplicationGroupDescription),
		CacheNodeType:               pointer.ToOrNilIfZeroValue(p.CacheNodeType),

		AutomaticFailoverEnabled:   p.AutomaticFailoverEnabled,
		AutoMinorVersionUpgrade:    p.AutoMinorVersionUpgrade,
		CacheParameterGroupName:    pointer.NilIfEmpty(p.CacheParameterGroupName),
		CacheSecurityGroupNames:    pointer.SliceOrNil(p.CacheSecurityGroupNames),
		CacheSubnetGroupName:       pointer.NilIfEmpty(p.CacheSubnetGroupName),
		Engine:                     pointer.NilIfEmpty(p.Engine),
		EngineVersion:              pointer.NilIfEmpty(p.EngineVersion),
		NumCacheClusters:           pointer.ToIntAsInt32Ptr(p.NumCacheClusters),
		Port:                       pointer.ToIntAsInt32Ptr(p.Port),
		PreferredCacheClusterAZs:   pointer.SliceOrNil(p.PreferredCacheClusterAZs),
		PreferredMaintenanceWindow: pointer.NilIfEmpty(p.PreferredMaintenanceWindow),
		PrimaryClusterId:           pointer.NilIfEmpty(p.PrimaryClusterID),
		SecurityGroupIds:           pointer.SliceOrNil(p.SecurityGroupIDs),
		SnapshotArns:               pointer.SliceOrNil(p.SnapshotARNs),
		SnapshotName:               pointer.NilIfEmpty(p.SnapshotName),
		SnapshotRetentionLimit:     pointer.ToIntAsInt32Ptr(p.SnapshotRetentionLimit),
		SnapshotWindow:             pointer.NilIfEmpty(p.SnapshotWindow),
		Tags:                       TagList(p.Tags),
	}
	// Notifications are only sent to an active topic.
	if pointer.StringValue(p.NotificationTopicStatus) == v1alpha1.NotificationTopicActive {
		c.NotificationTopicArn = pointer.NilIfEmpty(p.NotificationTopicARN)
	}
	return c
}

// NewModifyReplicationGroupInput returns ElastiCache replication group
// modification input suitable for use with the AWS API.
func NewModifyReplicationGroupInput(p v1alpha1.ReplicationGroupParameters) *elasticache.ModifyReplicationGroupInput {
	return &elasticache.ModifyReplicationGroupInput{
		ReplicationGroupId:          aws.String(p.Name),
		ReplicationGroupDescription: aws.String(p.ReplicationGroupDescription),
		ApplyImmediately:            pointer.BoolValue(p.ApplyImmediately),
		AutomaticFailoverEnabled:    p.AutomaticFailoverEnabled,
		AutoMinorVersionUpgrade:     p.AutoMinorVersionUpgrade,
		CacheNodeType:               pointer.ToOrNilIfZeroValue(p.CacheNodeType),
		SnapshotRetentionLimit:      pointer.ToIntAsInt32Ptr(p.SnapshotRetentionLimit),

		CacheParameterGroupName:    pointer.NilIfEmpty(p.CacheParameterGroupName),
		CacheSecurityGroupNames:    pointer.SliceOrNil(p.CacheSecurityGroupNames),
		EngineVersion:              pointer.NilIfEmpty(p.EngineVersion),
		NotificationTopicArn:       pointer.NilIfEmpty(p.NotificationTopicARN),
		NotificationTopicStatus:    pointer.NilIfEmpty(p.NotificationTopicStatus),
		PreferredMaintenanceWindow: pointer.NilIfEmpty(p.PreferredMaintenanceWindow),
		PrimaryClusterId:           pointer.NilIfEmpty(p.PrimaryClusterID),
		SecurityGroupIds:           pointer.SliceOrNil(p.SecurityGroupIDs),
		SnapshotWindow:             pointer.NilIfEmpty(p.SnapshotWindow),
		SnapshottingClusterId:      pointer.NilIfEmpty(p.SnapshottingClusterID),
	}
}

// NewDeleteReplicationGroupInput returns ElastiCache replication group deletion
// input suitable for use with the AWS API.
func NewDeleteReplicationGroupInput(p v1alpha1.ReplicationGroupParameters) *elasticache.DeleteReplicationGroupInput {
	return &elasticache.DeleteReplicationGroupInput{
		ReplicationGroupId:      aws.String(p.Name),
		RetainPrimaryCluster:    aws.Bool(pointer.BoolValue(p.RetainPrimaryCluster)),
		FinalSnapshotIdentifier: pointer.NilIfEmpty(p.FinalSnapshotIdentifier),
	}
}

// NewDescribeReplicationGroupsInput returns ElastiCache replication group describe
// input suitable for use with the AWS API.
func NewDescribeReplicationGroupsInput(id string) *elasticache.DescribeReplicationGroupsInput {
	return &elasticache.DescribeReplicationGroupsInput{ReplicationGroupId: &id}
}

// NewCreateCacheClusterInput returns the input adding cluster id as a member
// of replication group groupID. The zone is optional.
func NewCreateCacheClusterInput(groupID, id, zone string) *elasticache.CreateCacheClusterInput {
	return &elasticache.CreateCacheClusterInput{
		CacheClusterId:            aws.String(id),
		ReplicationGroupId:        aws.String(groupID),
		PreferredAvailabilityZone: pointer.ToOrNilIfZeroValue(zone),
	}
}

// NewDeleteCacheClusterInput returns the input deleting member cluster id,
// taking a final snapshot named finalSnapshotID unless it is empty.
func NewDeleteCacheClusterInput(id, finalSnapshotID string) *elasticache.DeleteCacheClusterInput {
	return &elasticache.DeleteCacheClusterInput{
		CacheClusterId:          aws.String(id),
		FinalSnapshotIdentifier: pointer.ToOrNilIfZeroValue(finalSnapshotID),
	}
}

// NewListTagsForResourceInput returns the input listing the tags of arn.
func NewListTagsForResourceInput(arn string) *elasticache.ListTagsForResourceInput {
	return &elasticache.ListTagsForResourceInput{ResourceName: aws.String(arn)}
}

// NewAddTagsToResourceInput returns the input setting tags on arn.
func NewAddTagsToResourceInput(arn string, tags map[string]string) *elasticache.AddTagsToResourceInput {
	return &elasticache.AddTagsToResourceInput{ResourceName: aws.String(arn), Tags: TagList(tags)}
}

// NewRemoveTagsFromResourceInput returns the input removing keys from arn.
func NewRemoveTagsFromResourceInput(arn string, keys []string) *elasticache.RemoveTagsFromResourceInput {
	return &elasticache.RemoveTagsFromResourceInput{ResourceName: aws.String(arn), TagKeys: keys}
}

// TagList converts tags into the AWS representation, sorted by key. It
// returns nil for an empty map.
func TagList(tags map[string]string) []elasticachetypes.Tag {
	if len(tags) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	l := make([]elasticachetypes.Tag, len(keys))
	for i, k := range keys {
		l[i] = elasticachetypes.Tag{Key: aws.String(k), Value: aws.String(tags[k])}
	}
	return l
}

// TagMap converts AWS tags into a map. A later duplicate key wins.
func TagMap(tags []elasticachetypes.Tag) map[string]string {
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[pointer.StringValue(t.Key)] = pointer.StringValue(t.Value)
	}
	return m
}

// MemberClusterID returns the identifier of the member cluster with the
// supplied one-based ordinal, e.g. cache1-003.
func MemberClusterID(groupID string, ordinal int) string {
	return fmt.Sprintf("%s-%03d", groupID, ordinal)
}

// NodeGroupMemberCount returns the number of members across all node groups.
func NodeGroupMemberCount(rg elasticachetypes.ReplicationGroup) int {
	n := 0
	for _, ng := range rg.NodeGroups {
		n += len(ng.NodeGroupMembers)
	}
	return n
}

// GenerateObservation produces a ReplicationGroupObservation object out of
// received elasticache.ReplicationGroup object.
func GenerateObservation(rg elasticachetypes.ReplicationGroup) v1alpha1.ReplicationGroupObservation {
	o := v1alpha1.ReplicationGroupObservation{
		ARN:                    pointer.StringValue(rg.ARN),
		ReplicationGroupID:     pointer.StringValue(rg.ReplicationGroupId),
		Description:            pointer.StringValue(rg.Description),
		AutomaticFailover:      string(rg.AutomaticFailover),
		CacheNodeType:          pointer.StringValue(rg.CacheNodeType),
		ClusterEnabled:         aws.ToBool(rg.ClusterEnabled),
		ConfigurationEndpoint:  newEndpoint(rg.ConfigurationEndpoint),
		MemberClusters:         rg.MemberClusters,
		SnapshotRetentionLimit: int(aws.ToInt32(rg.SnapshotRetentionLimit)),
		SnapshotWindow:         pointer.StringValue(rg.SnapshotWindow),
		SnapshottingClusterID:  pointer.StringValue(rg.SnapshottingClusterId),
		Status:                 pointer.StringValue(rg.Status),
	}
	if len(rg.NodeGroups) != 0 {
		o.NodeGroups = make([]v1alpha1.NodeGroup, len(rg.NodeGroups))
		for i, ng := range rg.NodeGroups {
			o.NodeGroups[i] = generateNodeGroup(ng)
		}
	}
	if rg.PendingModifiedValues != nil {
		o.PendingModifiedValues = &v1alpha1.ReplicationGroupPendingModifiedValues{
			AutomaticFailoverStatus: string(rg.PendingModifiedValues.AutomaticFailoverStatus),
			PrimaryClusterID:        pointer.StringValue(rg.PendingModifiedValues.PrimaryClusterId),
		}
	}
	return o
}

func generateNodeGroup(ng elasticachetypes.NodeGroup) v1alpha1.NodeGroup {
	r := v1alpha1.NodeGroup{
		NodeGroupID:     pointer.StringValue(ng.NodeGroupId),
		PrimaryEndpoint: newEndpoint(ng.PrimaryEndpoint),
		Status:          pointer.StringValue(ng.Status),
	}
	if len(ng.NodeGroupMembers) != 0 {
		r.NodeGroupMembers = make([]v1alpha1.NodeGroupMember, len(ng.NodeGroupMembers))
		for i, m := range ng.NodeGroupMembers {
			r.NodeGroupMembers[i] = v1alpha1.NodeGroupMember{
				CacheClusterID:            pointer.StringValue(m.CacheClusterId),
				CacheNodeID:               pointer.StringValue(m.CacheNodeId),
				CurrentRole:               pointer.StringValue(m.CurrentRole),
				PreferredAvailabilityZone: pointer.StringValue(m.PreferredAvailabilityZone),
				ReadEndpoint:              newEndpoint(m.ReadEndpoint),
			}
		}
	}
	return r
}

func newEndpoint(e *elasticachetypes.Endpoint) *v1alpha1.Endpoint {
	if e == nil {
		return nil
	}
	return &v1alpha1.Endpoint{Address: pointer.StringValue(e.Address), Port: int(e.Port)}
}

// IsNotFound returns true if the supplied error indicates a Replication Group
// was not found.
func IsNotFound(err error) bool {
	var gnf *elasticachetypes.ReplicationGroupNotFoundFault
	return errors.As(err, &gnf)
}

// IsClusterNotFound returns true if the supplied error indicates a Cache Cluster
// was not found.
func IsClusterNotFound(err error) bool {
	var gnf *elasticachetypes.CacheClusterNotFoundFault
	return errors.As(err, &gnf)
}
