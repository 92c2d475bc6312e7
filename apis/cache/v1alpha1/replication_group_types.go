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

// ReplicationGroup states.
const (
	StatusCreating     = "creating"
	StatusAvailable    = "available"
	StatusModifying    = "modifying"
	StatusDeleting     = "deleting"
	StatusCreateFailed = "create-failed"
	StatusSnapshotting = "snapshotting"
	StatusGone         = "gone"
)

// Supported cache engines.
const (
	CacheEngineRedis     = "redis"
	CacheEngineMemcached = "memcached"
)

// Notification topic states.
const (
	NotificationTopicActive   = "active"
	NotificationTopicInactive = "inactive"
)

// Parameter defaults applied by SetDefaults.
const (
	DefaultCacheNodeType = "cache.m3.medium"
	DefaultPort          = 6379
)

// MaxReplicationGroupNameLength is the longest replication group identifier
// accepted by this reconciler.
const MaxReplicationGroupNameLength = 20

// ReplicationGroupParameters define the desired state of an AWS ElastiCache
// Replication Group. Field names follow the flat parameter set accepted on the
// command line and in parameter files.
type ReplicationGroupParameters struct {
	// Name is the identifier of the replication group to create or modify.
	// It is immutable once the group exists.
	Name string `json:"name"`

	// ReplicationGroupDescription is a user-created description for the
	// replication group.
	ReplicationGroupDescription string `json:"replication_group_description"`

	// State is either present or absent.
	// +optional
	State State `json:"state,omitempty"`

	// Region is the AWS region the replication group lives in. The ambient
	// AWS configuration is used when it is empty.
	// +optional
	Region string `json:"region,omitempty"`

	// AutomaticFailoverEnabled specifies whether a read-only replica will be
	// automatically promoted to read/write primary if the existing primary
	// fails.
	// +optional
	AutomaticFailoverEnabled *bool `json:"automatic_failover_enabled,omitempty"`

	// ApplyImmediately causes modifications to be applied as soon as possible
	// rather than during the next maintenance window.
	// +optional
	ApplyImmediately *bool `json:"apply_immediately,omitempty"`

	// CacheNodeType specifies the compute and memory capacity of the nodes in
	// the node group.
	// +optional
	CacheNodeType string `json:"cache_node_type,omitempty"`

	// CacheSubnetGroupName is the name of the cache subnet group to be used
	// for the replication group.
	// +optional
	CacheSubnetGroupName *string `json:"cache_subnet_group_name,omitempty"`

	// PrimaryClusterID is the identifier of the cache cluster that will serve
	// as the primary for this replication group. It cannot be combined with
	// NumCacheClusters.
	// +optional
	PrimaryClusterID *string `json:"primary_cluster_id,omitempty"`

	// NumCacheClusters is the number of member clusters this replication
	// group should have. Missing clusters are created and excess clusters
	// are deleted.
	// +optional
	NumCacheClusters *int `json:"num_cache_clusters,omitempty"`

	// Engine is the name of the cache engine to be used for the clusters in
	// this replication group.
	// +optional
	Engine *string `json:"engine,omitempty"`

	// EngineVersion is the version number of the cache engine.
	// +optional
	EngineVersion *string `json:"engine_version,omitempty"`

	// SecurityGroupIDs specifies one or more Amazon VPC security groups
	// associated with this replication group.
	// +optional
	SecurityGroupIDs []string `json:"security_group_ids,omitempty"`

	// PreferredCacheClusterAZs specifies the EC2 availability zones in which
	// the member clusters are created, one per cluster ordinal. When set
	// together with NumCacheClusters the lengths must match.
	// +optional
	PreferredCacheClusterAZs []string `json:"preferred_cache_cluster_azs,omitempty"`

	// CacheSecurityGroupNames is a list of cache security group names to
	// associate with this replication group.
	// +optional
	CacheSecurityGroupNames []string `json:"cache_security_group_names,omitempty"`

	// CacheParameterGroupName specifies the name of the parameter group to
	// associate with this replication group.
	// +optional
	CacheParameterGroupName *string `json:"cache_parameter_group_name,omitempty"`

	// AutoMinorVersionUpgrade enables automatic minor engine upgrades.
	// +optional
	AutoMinorVersionUpgrade *bool `json:"auto_minor_version_upgrade,omitempty"`

	// Port number on which each member of the replication group accepts
	// connections.
	// +optional
	Port *int `json:"port,omitempty"`

	// NotificationTopicARN is the ARN of the SNS topic to which notifications
	// are sent.
	// +optional
	NotificationTopicARN *string `json:"notification_topic_arn,omitempty"`

	// NotificationTopicStatus is the status of the SNS notification topic.
	// Notifications are sent only if the status is active.
	// +optional
	NotificationTopicStatus *string `json:"notification_topic_status,omitempty"`

	// SnapshotRetentionLimit is the number of days for which ElastiCache
	// retains automatic snapshots before deleting them.
	// +optional
	SnapshotRetentionLimit *int `json:"snapshot_retention_limit,omitempty"`

	// SnapshotWindow is the daily time range (in UTC) during which
	// ElastiCache begins taking a daily snapshot. Example: 05:00-09:00
	// +optional
	SnapshotWindow *string `json:"snapshot_window,omitempty"`

	// SnapshotARNs specifies Redis RDB snapshot files stored in Amazon S3
	// used to populate the new replication group.
	// +optional
	SnapshotARNs []string `json:"snapshot_arns,omitempty"`

	// SnapshotName is the name of a snapshot from which to restore data into
	// the new replication group.
	// +optional
	SnapshotName *string `json:"snapshot_name,omitempty"`

	// PreferredMaintenanceWindow specifies the weekly time range during which
	// maintenance is performed. Example: sun:05:00-sun:09:00
	// +optional
	PreferredMaintenanceWindow *string `json:"preferred_maintenance_window,omitempty"`

	// SnapshottingClusterID is the cluster used as the daily snapshot source.
	// Only used when modifying an existing group.
	// +optional
	SnapshottingClusterID *string `json:"snapshotting_cluster_id,omitempty"`

	// RetainPrimaryCluster keeps the primary cluster when the group is
	// deleted; only the read replicas are removed.
	// +optional
	RetainPrimaryCluster *bool `json:"retain_primary_cluster,omitempty"`

	// FinalSnapshotIdentifier is the name of the final snapshot taken before
	// the group is deleted.
	// +optional
	FinalSnapshotIdentifier *string `json:"final_snapshot_identifier,omitempty"`

	// SnapshotOnNumCacheClusters takes a final snapshot of every member
	// cluster removed while scaling NumCacheClusters down.
	// +optional
	SnapshotOnNumCacheClusters *bool `json:"snapshot_on_num_cache_clusters,omitempty"`

	// Wait blocks until the provider reports the desired state.
	// +optional
	Wait *bool `json:"wait,omitempty"`

	// Tags are applied to the replication group when it is created and
	// added to it when it is modified.
	// +optional
	Tags Tags `json:"tags,omitempty"`
}

// Endpoint represents the information required for client programs to connect
// to a cache node.
type Endpoint struct {
	// Address is the DNS hostname of the cache node.
	Address string `json:"address,omitempty"`

	// Port number that the cache engine is listening on.
	Port int `json:"port,omitempty"`
}

// NodeGroup represents a collection of cache nodes in a replication group.
// One node in the node group is the read/write primary node. All the other
// nodes are read-only Replica nodes.
type NodeGroup struct {
	// NodeGroupID is the identifier for the node group (shard).
	NodeGroupID string `json:"node_group_id,omitempty"`

	// NodeGroupMembers is a list containing information about individual nodes
	// within the node group (shard).
	NodeGroupMembers []NodeGroupMember `json:"node_group_members,omitempty"`

	// PrimaryEndpoint is the endpoint of the primary node in this node group.
	PrimaryEndpoint *Endpoint `json:"primary_endpoint,omitempty"`

	// Status of this node group - creating, available, etc.
	Status string `json:"status,omitempty"`
}

// NodeGroupMember represents a single node within a node group (shard).
type NodeGroupMember struct {
	// CacheClusterID is the ID of the cluster to which the node belongs.
	CacheClusterID string `json:"cache_cluster_id,omitempty"`

	// CacheNodeID is the ID of the node within its cluster.
	CacheNodeID string `json:"cache_node_id,omitempty"`

	// CurrentRole is the role that is currently assigned to the node -
	// primary or replica.
	CurrentRole string `json:"current_role,omitempty"`

	// PreferredAvailabilityZone is the name of the Availability Zone in
	// which the node is located.
	PreferredAvailabilityZone string `json:"preferred_availability_zone,omitempty"`

	// ReadEndpoint is the information required for client programs to
	// connect to a node for read operations.
	ReadEndpoint *Endpoint `json:"read_endpoint,omitempty"`
}

// ReplicationGroupPendingModifiedValues are the settings to be applied to the
// Redis replication group, either immediately or during the next maintenance
// window.
type ReplicationGroupPendingModifiedValues struct {
	// AutomaticFailoverStatus indicates the status of Multi-AZ with automatic
	// failover for this Redis replication group.
	AutomaticFailoverStatus string `json:"automatic_failover_status,omitempty"`

	// PrimaryClusterID that is applied immediately or during the next
	// maintenance window.
	PrimaryClusterID string `json:"primary_cluster_id,omitempty"`
}

// ReplicationGroupObservation contains the observation of the status of the
// given ReplicationGroup as last reported by the provider.
type ReplicationGroupObservation struct {
	// ARN of the replication group.
	ARN string `json:"arn,omitempty"`

	// ReplicationGroupID is the identifier of the replication group.
	ReplicationGroupID string `json:"replication_group_id,omitempty"`

	// Description of the replication group.
	Description string `json:"description,omitempty"`

	// AutomaticFailover indicates the status of Multi-AZ with automatic
	// failover for this replication group.
	AutomaticFailover string `json:"automatic_failover,omitempty"`

	// CacheNodeType is the name of the compute and memory capacity node type
	// of the member clusters.
	CacheNodeType string `json:"cache_node_type,omitempty"`

	// ClusterEnabled is a flag indicating whether or not this replication
	// group is cluster enabled.
	ClusterEnabled bool `json:"cluster_enabled,omitempty"`

	// ConfigurationEndpoint for this replication group. Only set for cluster
	// enabled groups.
	ConfigurationEndpoint *Endpoint `json:"configuration_endpoint,omitempty"`

	// MemberClusters is the ordered list of member cluster identifiers.
	MemberClusters []string `json:"member_clusters,omitempty"`

	// NodeGroups is a list of node groups in this replication group.
	NodeGroups []NodeGroup `json:"node_groups,omitempty"`

	// PendingModifiedValues is a group of settings to be applied to the
	// replication group.
	PendingModifiedValues *ReplicationGroupPendingModifiedValues `json:"pending_modified_values,omitempty"`

	// SnapshotRetentionLimit is the number of days automatic snapshots are
	// retained.
	SnapshotRetentionLimit int `json:"snapshot_retention_limit,omitempty"`

	// SnapshotWindow is the daily time range for automatic snapshots.
	SnapshotWindow string `json:"snapshot_window,omitempty"`

	// SnapshottingClusterID is the cluster used as the snapshot source.
	SnapshottingClusterID string `json:"snapshotting_cluster_id,omitempty"`

	// Status is the current state of this replication group - creating,
	// available, modifying, deleting.
	Status string `json:"status,omitempty"`
}
