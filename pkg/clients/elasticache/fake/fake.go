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


package fake

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/elasticache"

	clientset "github.com/crossplane-contrib/elasticache-reconciler/pkg/clients/elasticache"
)

var _ clientset.Client = &MockClient{}

// MockClient is a fake implementation of elasticache.Client.
type MockClient struct {
	MockDescribeReplicationGroups func(ctx context.Context, input *elasticache.DescribeReplicationGroupsInput, opts []func(*elasticache.Options)) (*elasticache.DescribeReplicationGroupsOutput, error)
	MockCreateReplicationGroup    func(ctx context.Context, input *elasticache.CreateReplicationGroupInput, opts []func(*elasticache.Options)) (*elasticache.CreateReplicationGroupOutput, error)
	MockModifyReplicationGroup    func(ctx context.Context, input *elasticache.ModifyReplicationGroupInput, opts []func(*elasticache.Options)) (*elasticache.ModifyReplicationGroupOutput, error)
	MockDeleteReplicationGroup    func(ctx context.Context, input *elasticache.DeleteReplicationGroupInput, opts []func(*elasticache.Options)) (*elasticache.DeleteReplicationGroupOutput, error)
	MockCreateCacheCluster        func(ctx context.Context, input *elasticache.CreateCacheClusterInput, opts []func(*elasticache.Options)) (*elasticache.CreateCacheClusterOutput, error)
	MockDeleteCacheCluster        func(ctx context.Context, input *elasticache.DeleteCacheClusterInput, opts []func(*elasticache.Options)) (*elasticache.DeleteCacheClusterOutput, error)
	MockListTagsForResource       func(ctx context.Context, input *elasticache.ListTagsForResourceInput, opts []func(*elasticache.Options)) (*elasticache.ListTagsForResourceOutput, error)
	MockAddTagsToResource         func(ctx context.Context, input *elasticache.AddTagsToResourceInput, opts []func(*elasticache.Options)) (*elasticache.AddTagsToResourceOutput, error)
	MockRemoveTagsFromResource    func(ctx context.Context, input *elasticache.RemoveTagsFromResourceInput, opts []func(*elasticache.Options)) (*elasticache.RemoveTagsFromResourceOutput, error)
}

// DescribeReplicationGroups calls the underlying MockDescribeReplicationGroups method.
func (c *MockClient) DescribeReplicationGroups(ctx context.Context, i *elasticache.DescribeReplicationGroupsInput, opts ...func(*elasticache.Options)) (*elasticache.DescribeReplicationGroupsOutput, error) {
	return c.MockDescribeReplicationGroups(ctx, i, opts)
}

// CreateReplicationGroup calls the underlying MockCreateReplicationGroup method.
func (c *MockClient) CreateReplicationGroup(ctx context.Context, i *elasticache.CreateReplicationGroupInput, opts ...func(*elasticache.Options)) (*elasticache.CreateReplicationGroupOutput, error) {
	return c.MockCreateReplicationGroup(ctx, i, opts)
}

// ModifyReplicationGroup calls the underlying MockModifyReplicationGroup method.
func (c *MockClient) ModifyReplicationGroup(ctx context.Context, i *elasticache.ModifyReplicationGroupInput, opts ...func(*elasticache.Options)) (*elasticache.ModifyReplicationGroupOutput, error) {
	return c.MockModifyReplicationGroup(ctx, i, opts)
}

// DeleteReplicationGroup calls the underlying MockDeleteReplicationGroup method.
func (c *MockClient) DeleteReplicationGroup(ctx context.Context, i *elasticache.DeleteReplicationGroupInput, opts ...func(*elasticache.Options)) (*elasticache.DeleteReplicationGroupOutput, error) {
	return c.MockDeleteReplicationGroup(ctx, i, opts)
}

// CreateCacheCluster calls the underlying MockCreateCacheCluster method.
func (c *MockClient) CreateCacheCluster(ctx context.Context, i *elasticache.CreateCacheClusterInput, opts ...func(*elasticache.Options)) (*elasticache.CreateCacheClusterOutput, error) {
	return c.MockCreateCacheCluster(ctx, i, opts)
}

// DeleteCacheCluster calls the underlying MockDeleteCacheCluster method.
func (c *MockClient) DeleteCacheCluster(ctx context.Context, i *elasticache.DeleteCacheClusterInput, opts ...func(*elasticache.Options)) (*elasticache.DeleteCacheClusterOutput, error) {
	return c.MockDeleteCacheCluster(ctx, i, opts)
}

// ListTagsForResource calls the underlying MockListTagsForResource method.
func (c *MockClient) ListTagsForResource(ctx context.Context, i *elasticache.ListTagsForResourceInput, opts ...func(*elasticache.Options)) (*elasticache.ListTagsForResourceOutput, error) {
	return c.MockListTagsForResource(ctx, i, opts)
}

// AddTagsToResource calls the underlying MockAddTagsToResource method.
func (c *MockClient) AddTagsToResource(ctx context.Context, i *elasticache.AddTagsToResourceInput, opts ...func(*elasticache.Options)) (*elasticache.AddTagsToResourceOutput, error) {
	return c.MockAddTagsToResource(ctx, i, opts)
}

// RemoveTagsFromResource calls the underlying MockRemoveTagsFromResource method.
func (c *MockClient) RemoveTagsFromResource(ctx context.Context, i *elasticache.RemoveTagsFromResourceInput, opts ...func(*elasticache.Options)) (*elasticache.RemoveTagsFromResourceOutput, error) {
	return c.MockRemoveTagsFromResource(ctx, i, opts)
}
