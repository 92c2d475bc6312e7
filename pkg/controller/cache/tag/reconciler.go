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

// Package tag converges the tag set of a single ElastiCache resource.
package tag

import (
	"context"
	"fmt"

	"github.com/crossplane/crossplane-runtime/pkg/logging"
	"github.com/pkg/errors"

	"github.com/crossplane-contrib/elasticache-reconciler/apis/cache/v1alpha1"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/clients/elasticache"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/utils/arn"
	awserrors "github.com/crossplane-contrib/elasticache-reconciler/pkg/utils/errors"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/utils/tags"
)

const (
	errInvalidParameters = "invalid tag parameters"
	errResolveARN        = "cannot resolve resource ARN"
	errListTags          = "cannot list tags of %s"
	errAddTags           = "cannot add tags to %s"
	errRemoveTags        = "cannot remove tags from %s"
	errUnsupportedState  = "unsupported state %q"

	msgTagsExist   = "Tags already exist in %s."
	msgTagsAdded   = "Tags added to %s."
	msgNoneRemoved = "Nothing to remove from %s."
	msgTagsRemoved = "Tags removed from %s."
)

// A Reconciler converges the tags of ElastiCache resources.
type Reconciler struct {
	client elasticache.Client
	log    logging.Logger
}

// An Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger specifies how the Reconciler should log messages.
func WithLogger(l logging.Logger) Option {
	return func(r *Reconciler) {
		r.log = l
	}
}

// NewReconciler returns a Reconciler issuing its calls through c.
func NewReconciler(c elasticache.Client, o ...Option) *Reconciler {
	r := &Reconciler{client: c, log: logging.NewNopLogger()}
	for _, f := range o {
		f(r)
	}
	return r
}

// Reconcile converges the tags of the resource named by p. Configuration
// errors are returned before any provider call.
func (r *Reconciler) Reconcile(ctx context.Context, p v1alpha1.TagParameters) (v1alpha1.Result, error) {
	p.SetDefaults()
	if err := p.Validate(); err != nil {
		return v1alpha1.Result{}, errors.Wrap(err, errInvalidParameters)
	}
	resource, err := arn.ResolveElastiCache(p.Resource, p.ResourceType, p.Region, p.Account)
	if err != nil {
		return v1alpha1.Result{}, errors.Wrap(err, errResolveARN)
	}
	return r.Converge(ctx, resource, p.State, p.Tags)
}

// Converge brings the tags of the resource with the supplied ARN into the
// requested state. Tags are compared by key: present sets every desired tag
// that is missing or carries another value, absent removes every desired key
// the resource has regardless of its value.
func (r *Reconciler) Converge(ctx context.Context, resource string, state v1alpha1.State, desired map[string]string) (v1alpha1.Result, error) {
	if state != v1alpha1.StateList && state != v1alpha1.StatePresent && state != v1alpha1.StateAbsent {
		return v1alpha1.Result{}, errors.Errorf(errUnsupportedState, state)
	}
	log := r.log.WithValues("resource", resource, "state", state)

	current, err := r.list(ctx, resource)
	if err != nil {
		return v1alpha1.Result{}, err
	}

	switch state {
	case v1alpha1.StateList:
		return v1alpha1.Result{Tags: current}, nil

	case v1alpha1.StatePresent:
		add := tags.ToSet(desired, current)
		if len(add) == 0 {
			log.Debug("Tags are up to date")
			return v1alpha1.Result{Msg: fmt.Sprintf(msgTagsExist, resource), Tags: current}, nil
		}
		if _, err := r.client.AddTagsToResource(ctx, elasticache.NewAddTagsToResourceInput(resource, add)); err != nil {
			return v1alpha1.Result{}, awserrors.Wrapf(err, errAddTags, resource)
		}
		log.Info("Added tags", "count", len(add))
		current, err = r.list(ctx, resource)
		if err != nil {
			return v1alpha1.Result{}, err
		}
		return v1alpha1.Result{Changed: true, Msg: fmt.Sprintf(msgTagsAdded, resource), Tags: current, Added: add}, nil

	case v1alpha1.StateAbsent:
		remove := tags.ToRemove(desired, current)
		if len(remove) == 0 {
			log.Debug("No tags to remove")
			return v1alpha1.Result{Msg: fmt.Sprintf(msgNoneRemoved, resource), Tags: current}, nil
		}
		if _, err := r.client.RemoveTagsFromResource(ctx, elasticache.NewRemoveTagsFromResourceInput(resource, remove)); err != nil {
			return v1alpha1.Result{}, awserrors.Wrapf(err, errRemoveTags, resource)
		}
		log.Info("Removed tags", "keys", remove)
		current, err = r.list(ctx, resource)
		if err != nil {
			return v1alpha1.Result{}, err
		}
		return v1alpha1.Result{Changed: true, Msg: fmt.Sprintf(msgTagsRemoved, resource), Tags: current, Removed: remove}, nil
	}
	return v1alpha1.Result{}, errors.Errorf(errUnsupportedState, state)
}

func (r *Reconciler) list(ctx context.Context, resource string) (map[string]string, error) {
	out, err := r.client.ListTagsForResource(ctx, elasticache.NewListTagsForResourceInput(resource))
	if err != nil {
		return nil, awserrors.Wrapf(err, errListTags, resource)
	}
	return elasticache.TagMap(out.TagList), nil
}
