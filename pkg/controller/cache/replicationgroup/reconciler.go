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

// Package replicationgroup creates, modifies, scales and deletes ElastiCache
// replication groups.
package replicationgroup

import (
	"context"
	"fmt"
	"strconv"

	elasticachetypes "github.com/aws/aws-sdk-go-v2/service/elasticache/types"
	"github.com/crossplane/crossplane-runtime/pkg/logging"
	"github.com/pkg/errors"
	"k8s.io/utils/clock"

	"github.com/crossplane-contrib/elasticache-reconciler/apis/cache/v1alpha1"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/clients/elasticache"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/controller/cache/tag"
	awserrors "github.com/crossplane-contrib/elasticache-reconciler/pkg/utils/errors"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/utils/pointer"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/utils/poll"
)

// Error strings.
const (
	errInvalidParameters        = "invalid replication group parameters"
	errDescribeReplicationGroup = "cannot describe ElastiCache replication group"
	errCreateReplicationGroup   = "cannot create ElastiCache replication group"
	errModifyReplicationGroup   = "cannot modify ElastiCache replication group"
	errDeleteReplicationGroup   = "cannot delete ElastiCache replication group"
	errCreateCacheCluster       = "cannot create cache cluster %s"
	errDeleteCacheCluster       = "cannot delete cache cluster %s"
	errUpdateTags               = "cannot update ElastiCache replication group tags"
	errWaitAvailable            = "cannot wait for ElastiCache replication group to become available"
	errWaitSettled              = "cannot wait for ElastiCache replication group members to settle"
	errWaitDeleted              = "cannot wait for ElastiCache replication group to be deleted"
	errNoReplicationGroup       = "no replication group returned for %s"
	errUnsupportedState         = "unsupported state %q"

	msgCreated  = "Replication group %s created."
	msgModified = "Replication group %s modified."
	msgRemoved  = "Replication group %s removed."
	msgMissing  = "Replication group %s does not exist."
)

// A DeletePollErrorPolicy decides what happens when describing a replication
// group fails while waiting for its deletion.
type DeletePollErrorPolicy string

// Delete poll error policies.
const (
	// DeletePollErrorsIgnore logs the error and stops waiting.
	DeletePollErrorsIgnore DeletePollErrorPolicy = "ignore"

	// DeletePollErrorsFail returns the error.
	DeletePollErrorsFail DeletePollErrorPolicy = "fail"
)

// A Reconciler converges ElastiCache replication groups.
type Reconciler struct {
	client           elasticache.Client
	tags             *tag.Reconciler
	poller           poll.Poller
	clock            clock.Clock
	log              logging.Logger
	deletePollErrors DeletePollErrorPolicy
}

// An Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger specifies how the Reconciler should log messages.
func WithLogger(l logging.Logger) Option {
	return func(r *Reconciler) {
		r.log = l
	}
}

// WithPoller specifies how the Reconciler waits for a replication group to
// converge. The clock of the Reconciler is used if p has none.
func WithPoller(p poll.Poller) Option {
	return func(r *Reconciler) {
		r.poller = p
	}
}

// WithClock specifies the clock used to name final snapshots and to wait.
func WithClock(c clock.Clock) Option {
	return func(r *Reconciler) {
		r.clock = c
	}
}

// WithDeletePollErrorPolicy specifies how errors are handled while waiting
// for a deleted replication group to disappear.
func WithDeletePollErrorPolicy(p DeletePollErrorPolicy) Option {
	return func(r *Reconciler) {
		r.deletePollErrors = p
	}
}

// NewReconciler returns a Reconciler issuing its calls through c.
func NewReconciler(c elasticache.Client, o ...Option) *Reconciler {
	r := &Reconciler{
		client:           c,
		poller:           poll.Poller{Interval: poll.DefaultInterval},
		clock:            clock.RealClock{},
		log:              logging.NewNopLogger(),
		deletePollErrors: DeletePollErrorsIgnore,
	}
	for _, f := range o {
		f(r)
	}
	if r.poller.Clock == nil {
		r.poller.Clock = r.clock
	}
	r.tags = tag.NewReconciler(c, tag.WithLogger(r.log))
	return r
}

// Reconcile converges the replication group named by p. Configuration errors
// are returned before any provider call.
func (r *Reconciler) Reconcile(ctx context.Context, p v1alpha1.ReplicationGroupParameters) (v1alpha1.Result, error) {
	p.SetDefaults()
	if err := p.Validate(); err != nil {
		return v1alpha1.Result{}, errors.Wrap(err, errInvalidParameters)
	}
	log := r.log.WithValues("replication-group", p.Name, "state", p.State)

	switch p.State {
	case v1alpha1.StatePresent:
		rg, err := r.describe(ctx, p.Name)
		if elasticache.IsNotFound(err) {
			return r.create(ctx, log, p)
		}
		if err != nil {
			return v1alpha1.Result{}, err
		}
		return r.modify(ctx, log, p, rg)
	case v1alpha1.StateAbsent:
		return r.delete(ctx, log, p)
	}
	return v1alpha1.Result{}, errors.Errorf(errUnsupportedState, p.State)
}

func (r *Reconciler) create(ctx context.Context, log logging.Logger, p v1alpha1.ReplicationGroupParameters) (v1alpha1.Result, error) {
	if _, err := r.client.CreateReplicationGroup(ctx, elasticache.NewCreateReplicationGroupInput(p)); err != nil {
		return v1alpha1.Result{}, awserrors.Wrap(err, errCreateReplicationGroup)
	}
	log.Info("Created replication group")

	rg, err := r.await(ctx, p.Name, pointer.BoolValue(p.Wait), available)
	if err != nil {
		return v1alpha1.Result{}, errors.Wrap(err, errWaitAvailable)
	}
	return changed(fmt.Sprintf(msgCreated, p.Name), rg), nil
}

func (r *Reconciler) modify(ctx context.Context, log logging.Logger, p v1alpha1.ReplicationGroupParameters, rg elasticachetypes.ReplicationGroup) (v1alpha1.Result, error) { //nolint:gocyclo
	wait := pointer.BoolValue(p.Wait)

	var err error
	if !settled(rg) {
		log.Debug("Waiting for replication group to settle before modifying it", "status", pointer.StringValue(rg.Status))
		if rg, err = r.await(ctx, p.Name, wait, settled); err != nil {
			return v1alpha1.Result{}, errors.Wrap(err, errWaitSettled)
		}
	}

	if _, err := r.client.ModifyReplicationGroup(ctx, elasticache.NewModifyReplicationGroupInput(p)); err != nil {
		return v1alpha1.Result{}, awserrors.Wrap(err, errModifyReplicationGroup)
	}
	log.Info("Modified replication group")
	if rg, err = r.await(ctx, p.Name, wait, available); err != nil {
		return v1alpha1.Result{}, errors.Wrap(err, errWaitAvailable)
	}

	current := len(rg.MemberClusters)
	if desired := pointer.IntValue(p.NumCacheClusters); desired > 0 && current > 0 && current != desired {
		if err := r.scale(ctx, log, p, rg.MemberClusters, desired); err != nil {
			return v1alpha1.Result{}, err
		}
		if rg, err = r.await(ctx, p.Name, wait, scaledTo(desired)); err != nil {
			return v1alpha1.Result{}, errors.Wrap(err, errWaitSettled)
		}
	}

	if len(p.Tags) != 0 {
		if err := r.updateTags(ctx, log, rg, p.Tags); err != nil {
			return v1alpha1.Result{}, err
		}
	}
	return changed(fmt.Sprintf(msgModified, p.Name), rg), nil
}

// scale adds or removes member clusters one at a time until the group has
// desired members. The first failure stops scaling; clusters created or
// deleted before it are kept. A member that no longer exists counts as
// deleted, so a scale down interrupted by a failure can simply be rerun.
func (r *Reconciler) scale(ctx context.Context, log logging.Logger, p v1alpha1.ReplicationGroupParameters, members []string, desired int) error {
	current := len(members)
	for i := current + 1; i <= desired; i++ {
		id := elasticache.MemberClusterID(p.Name, i)
		zone := ""
		if len(p.PreferredCacheClusterAZs) >= i {
			zone = p.PreferredCacheClusterAZs[i-1]
		}
		if _, err := r.client.CreateCacheCluster(ctx, elasticache.NewCreateCacheClusterInput(p.Name, id, zone)); err != nil {
			return awserrors.Wrapf(err, errCreateCacheCluster, id)
		}
		log.Info("Created member cluster", "cache-cluster", id, "availability-zone", zone)
	}
	for i := current - 1; i >= desired; i-- {
		id := members[i]
		snapshot := ""
		if pointer.BoolValue(p.SnapshotOnNumCacheClusters) {
			snapshot = id + "-" + strconv.FormatInt(r.clock.Now().UnixMilli(), 10)
		}
		_, err := r.client.DeleteCacheCluster(ctx, elasticache.NewDeleteCacheClusterInput(id, snapshot))
		if elasticache.IsClusterNotFound(err) {
			log.Debug("Member cluster is already gone", "cache-cluster", id)
			continue
		}
		if err != nil {
			return awserrors.Wrapf(err, errDeleteCacheCluster, id)
		}
		log.Info("Deleted member cluster", "cache-cluster", id, "final-snapshot", snapshot)
	}
	return nil
}

func (r *Reconciler) updateTags(ctx context.Context, log logging.Logger, rg elasticachetypes.ReplicationGroup, desired map[string]string) error {
	arn := pointer.StringValue(rg.ARN)
	if arn == "" {
		log.Debug("Replication group has no ARN, not updating tags")
		return nil
	}
	_, err := r.tags.Converge(ctx, arn, v1alpha1.StatePresent, desired)
	return errors.Wrap(err, errUpdateTags)
}

func (r *Reconciler) delete(ctx context.Context, log logging.Logger, p v1alpha1.ReplicationGroupParameters) (v1alpha1.Result, error) {
	rg, err := r.describe(ctx, p.Name)
	if elasticache.IsNotFound(err) {
		log.Debug("Replication group does not exist")
		return v1alpha1.Result{Msg: fmt.Sprintf(msgMissing, p.Name)}, nil
	}
	if err != nil {
		return v1alpha1.Result{}, err
	}

	res := v1alpha1.Result{Msg: fmt.Sprintf(msgRemoved, p.Name)}
	if pointer.StringValue(rg.Status) != v1alpha1.StatusDeleting {
		// Only available groups can be deleted.
		if rg, err = r.await(ctx, p.Name, true, deletable); err != nil {
			return v1alpha1.Result{}, errors.Wrap(err, errWaitAvailable)
		}
	}
	o := elasticache.GenerateObservation(rg)
	res.ReplicationGroup = &o

	if pointer.StringValue(rg.Status) == v1alpha1.StatusDeleting {
		log.Debug("Replication group is already being deleted")
	} else {
		if _, err := r.client.DeleteReplicationGroup(ctx, elasticache.NewDeleteReplicationGroupInput(p)); err != nil {
			return v1alpha1.Result{}, awserrors.Wrap(err, errDeleteReplicationGroup)
		}
		log.Info("Deleted replication group")
		res.Changed = true
	}

	if !pointer.BoolValue(p.Wait) {
		return res, nil
	}
	err = r.poller.Poll(ctx, func(ctx context.Context) (bool, error) {
		g, err := r.describe(ctx, p.Name)
		if elasticache.IsNotFound(err) {
			return true, nil
		}
		if err != nil {
			if r.deletePollErrors == DeletePollErrorsFail {
				return false, err
			}
			log.Info("Cannot observe replication group deletion, not waiting any longer", "error", err)
			return true, nil
		}
		return pointer.StringValue(g.Status) == v1alpha1.StatusGone, nil
	})
	return res, errors.Wrap(err, errWaitDeleted)
}

// await polls the replication group until done reports true for it. Unless
// wait is set only a single poll is made.
func (r *Reconciler) await(ctx context.Context, name string, wait bool, done func(elasticachetypes.ReplicationGroup) bool) (elasticachetypes.ReplicationGroup, error) {
	var rg elasticachetypes.ReplicationGroup
	err := r.poller.Poll(ctx, func(ctx context.Context) (bool, error) {
		g, err := r.describe(ctx, name)
		if err != nil {
			return false, err
		}
		rg = g
		return !wait || done(g), nil
	})
	return rg, err
}

func (r *Reconciler) describe(ctx context.Context, name string) (elasticachetypes.ReplicationGroup, error) {
	out, err := r.client.DescribeReplicationGroups(ctx, elasticache.NewDescribeReplicationGroupsInput(name))
	if err != nil {
		return elasticachetypes.ReplicationGroup{}, awserrors.Wrap(err, errDescribeReplicationGroup)
	}
	if len(out.ReplicationGroups) == 0 {
		return elasticachetypes.ReplicationGroup{}, errors.Errorf(errNoReplicationGroup, name)
	}
	return out.ReplicationGroups[0], nil
}

func available(rg elasticachetypes.ReplicationGroup) bool {
	return pointer.StringValue(rg.Status) == v1alpha1.StatusAvailable
}

// deletable reports whether a delete call may be issued, or whether the
// group is already on its way out.
func deletable(rg elasticachetypes.ReplicationGroup) bool {
	s := pointer.StringValue(rg.Status)
	return s == v1alpha1.StatusAvailable || s == v1alpha1.StatusDeleting
}

// settled reports whether the group is available and every member cluster
// shows up as a node group member.
func settled(rg elasticachetypes.ReplicationGroup) bool {
	return available(rg) && len(rg.MemberClusters) == elasticache.NodeGroupMemberCount(rg)
}

func scaledTo(n int) func(elasticachetypes.ReplicationGroup) bool {
	return func(rg elasticachetypes.ReplicationGroup) bool {
		return settled(rg) && len(rg.MemberClusters) == n
	}
}

func changed(msg string, rg elasticachetypes.ReplicationGroup) v1alpha1.Result {
	o := elasticache.GenerateObservation(rg)
	return v1alpha1.Result{Changed: true, Msg: msg, ReplicationGroup: &o}
}
