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

package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/crossplane/crossplane-runtime/pkg/logging"
	"go.uber.org/zap/zapcore"
	"gopkg.in/alecthomas/kingpin.v2"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"

	"github.com/crossplane-contrib/elasticache-reconciler/apis/cache/v1alpha1"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/clients/elasticache"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/controller/cache/replicationgroup"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/controller/cache/tag"
	connectaws "github.com/crossplane-contrib/elasticache-reconciler/pkg/utils/connect/aws"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/utils/metrics"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/utils/poll"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/version"
)

// output is the single record printed per run.
type output struct {
	v1alpha1.Result
	Failed bool `json:"failed,omitempty"`
}

func main() { //nolint:gocyclo
	var (
		app              = kingpin.New(filepath.Base(os.Args[0]), "Converges AWS ElastiCache tags and replication groups.").DefaultEnvars()
		debug            = app.Flag("debug", "Run with debug logging.").Short('d').Bool()
		region           = app.Flag("region", "AWS region, used when the parameters do not name one.").String()
		profile          = app.Flag("profile", "Profile of the shared AWS configuration or of the credentials file.").String()
		credentialsFile  = app.Flag("credentials-file", "INI file holding static AWS credentials.").ExistingFile()
		endpoint         = app.Flag("endpoint", "URL every AWS request is sent to.").String()
		pollInterval     = app.Flag("poll-interval", "Time to sleep before every poll of a replication group.").Default(poll.DefaultInterval.String()).Duration()
		pollTimeout      = app.Flag("poll-timeout", "Give up waiting for a replication group after this long. Zero waits forever.").Default("0s").Duration()
		pollMaxAttempts  = app.Flag("poll-max-attempts", "Give up waiting for a replication group after this many polls. Zero waits forever.").Default("0").Int()
		deletePollErrors = app.Flag("delete-poll-errors", "What to do with errors while waiting for a deleted replication group to disappear.").
					Default(string(replicationgroup.DeletePollErrorsIgnore)).
					Enum(string(replicationgroup.DeletePollErrorsIgnore), string(replicationgroup.DeletePollErrorsFail))
		metricsTextfile = app.Flag("metrics-textfile", "Write AWS API call metrics to this file on exit.").String()

		tagCmd        = app.Command("tag", "Converge the tags of an ElastiCache resource.")
		tagParamsFile = tagCmd.Flag("params-file", "YAML or JSON file holding the tag parameters. Parameter flags are ignored when set.").ExistingFile()
		tp            = v1alpha1.TagParameters{}

		rgCmd        = app.Command("replication-group", "Converge an ElastiCache replication group.")
		rgParamsFile = rgCmd.Flag("params-file", "YAML or JSON file holding the replication group parameters. Parameter flags are ignored when set.").ExistingFile()
		rp           = v1alpha1.ReplicationGroupParameters{}
	)
	app.Version(version.Version)

	tagCmd.Flag("resource", "Name or ARN of the resource.").StringVar(&tp.Resource)
	tagCmd.Flag("resource-type", "ARN resource type of a resource given by name.").Default(v1alpha1.ResourceTypeCluster).StringVar(&tp.ResourceType)
	tagCmd.Flag("account", "AWS account number owning the resource.").StringVar(&tp.Account)
	tagCmd.Flag("tag", "Tag to add or remove, as key=value.").StringMapVar((*map[string]string)(&tp.Tags))
	tagCmd.Flag("state", "One of present, absent or list.").Default(string(v1alpha1.StatePresent)).
		EnumVar((*string)(&tp.State), string(v1alpha1.StatePresent), string(v1alpha1.StateAbsent), string(v1alpha1.StateList))

	rgCmd.Flag("name", "Replication group identifier.").StringVar(&rp.Name)
	rgCmd.Flag("replication-group-description", "Description of the replication group.").StringVar(&rp.ReplicationGroupDescription)
	rgCmd.Flag("state", "Either present or absent.").Default(string(v1alpha1.StatePresent)).
		EnumVar((*string)(&rp.State), string(v1alpha1.StatePresent), string(v1alpha1.StateAbsent))
	rgCmd.Flag("cache-node-type", "Compute and memory capacity of the nodes.").StringVar(&rp.CacheNodeType)
	boolVar(rgCmd.Flag("automatic-failover-enabled", "Promote a read replica when the primary fails."), &rp.AutomaticFailoverEnabled)
	boolVar(rgCmd.Flag("apply-immediately", "Apply modifications now rather than in the next maintenance window."), &rp.ApplyImmediately)
	boolVar(rgCmd.Flag("auto-minor-version-upgrade", "Apply minor engine upgrades automatically."), &rp.AutoMinorVersionUpgrade)
	boolVar(rgCmd.Flag("retain-primary-cluster", "Keep the primary cluster when deleting the group."), &rp.RetainPrimaryCluster)
	boolVar(rgCmd.Flag("snapshot-on-num-cache-clusters", "Snapshot member clusters removed while scaling down."), &rp.SnapshotOnNumCacheClusters)
	boolVar(rgCmd.Flag("wait", "Wait until the replication group reaches the desired state."), &rp.Wait)
	stringVar(rgCmd.Flag("cache-subnet-group-name", "Cache subnet group of the group."), &rp.CacheSubnetGroupName)
	stringVar(rgCmd.Flag("primary-cluster-id", "Existing cluster to use as primary."), &rp.PrimaryClusterID)
	stringVar(rgCmd.Flag("engine", "Cache engine."), &rp.Engine)
	stringVar(rgCmd.Flag("engine-version", "Cache engine version."), &rp.EngineVersion)
	stringVar(rgCmd.Flag("cache-parameter-group-name", "Parameter group of the group."), &rp.CacheParameterGroupName)
	stringVar(rgCmd.Flag("notification-topic-arn", "SNS topic notifications are sent to."), &rp.NotificationTopicARN)
	stringVar(rgCmd.Flag("notification-topic-status", "Either active or inactive."), &rp.NotificationTopicStatus)
	stringVar(rgCmd.Flag("snapshot-window", "Daily time range for automatic snapshots, e.g. 05:00-09:00."), &rp.SnapshotWindow)
	stringVar(rgCmd.Flag("snapshot-name", "Snapshot to restore into a new group."), &rp.SnapshotName)
	stringVar(rgCmd.Flag("preferred-maintenance-window", "Weekly maintenance window, e.g. sun:05:00-sun:09:00."), &rp.PreferredMaintenanceWindow)
	stringVar(rgCmd.Flag("snapshotting-cluster-id", "Cluster used as the daily snapshot source."), &rp.SnapshottingClusterID)
	stringVar(rgCmd.Flag("final-snapshot-identifier", "Name of the snapshot taken before deletion."), &rp.FinalSnapshotIdentifier)
	intVar(rgCmd.Flag("num-cache-clusters", "Number of member clusters."), &rp.NumCacheClusters)
	intVar(rgCmd.Flag("port", "Port the members accept connections on."), &rp.Port)
	intVar(rgCmd.Flag("snapshot-retention-limit", "Days automatic snapshots are retained."), &rp.SnapshotRetentionLimit)
	rgCmd.Flag("security-group-ids", "VPC security group, may be repeated.").StringsVar(&rp.SecurityGroupIDs)
	rgCmd.Flag("preferred-cache-cluster-azs", "Availability zone of each member cluster in order, may be repeated.").StringsVar(&rp.PreferredCacheClusterAZs)
	rgCmd.Flag("cache-security-group-names", "Cache security group, may be repeated.").StringsVar(&rp.CacheSecurityGroupNames)
	rgCmd.Flag("snapshot-arns", "S3 RDB snapshot to seed a new group from, may be repeated.").StringsVar(&rp.SnapshotARNs)
	rgCmd.Flag("tag", "Tag of the group, as key=value.").StringMapVar((*map[string]string)(&rp.Tags))

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	lvl := zapcore.InfoLevel
	if *debug {
		lvl = zapcore.DebugLevel
	}
	// Logs go to stderr; stdout only carries the result.
	zl := zap.New(zap.UseDevMode(*debug), zap.Level(lvl), zap.WriteTo(os.Stderr))
	log := logging.NewLogrLogger(zl.WithName("elasticache"))

	ctx := signals.SetupSignalHandler()
	o := connectaws.Options{Region: *region, Profile: *profile, CredentialsFile: *credentialsFile, Endpoint: *endpoint}

	var (
		res v1alpha1.Result
		err error
	)
	switch cmd {
	case tagCmd.FullCommand():
		if *tagParamsFile != "" {
			tp, err = v1alpha1.LoadTagParameters(*tagParamsFile)
		}
		if err == nil {
			if tp.Region == "" {
				tp.Region = *region
			}
			o.Region = tp.Region
			res, err = run(ctx, log, o, func(ctx context.Context, c elasticache.Client) (v1alpha1.Result, error) {
				return tag.NewReconciler(c, tag.WithLogger(log)).Reconcile(ctx, tp)
			})
		}
	case rgCmd.FullCommand():
		if *rgParamsFile != "" {
			rp, err = v1alpha1.LoadReplicationGroupParameters(*rgParamsFile)
		}
		if err == nil {
			if rp.Region != "" {
				o.Region = rp.Region
			}
			p := poll.Poller{Interval: *pollInterval, MaxAttempts: *pollMaxAttempts, Timeout: *pollTimeout}
			res, err = run(ctx, log, o, func(ctx context.Context, c elasticache.Client) (v1alpha1.Result, error) {
				return replicationgroup.NewReconciler(c,
					replicationgroup.WithLogger(log),
					replicationgroup.WithPoller(p),
					replicationgroup.WithDeletePollErrorPolicy(replicationgroup.DeletePollErrorPolicy(*deletePollErrors)),
				).Reconcile(ctx, rp)
			})
		}
	}

	if *metricsTextfile != "" {
		if merr := metrics.WriteTextfile(*metricsTextfile); merr != nil {
			log.Info("Cannot write metrics", "error", merr)
		}
	}
	kingpin.FatalIfError(emit(os.Stdout, res, err), "Cannot write result")
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, log logging.Logger, o connectaws.Options, reconcile func(context.Context, elasticache.Client) (v1alpha1.Result, error)) (v1alpha1.Result, error) {
	cfg, err := connectaws.GetConfig(ctx, o)
	if err != nil {
		return v1alpha1.Result{}, err
	}
	log.Debug("Loaded AWS configuration", "region", cfg.Region)
	return reconcile(ctx, elasticache.NewClient(cfg))
}

// emit writes the result of a run as a single JSON record. A failed run
// carries the error as its message.
func emit(w io.Writer, res v1alpha1.Result, err error) error {
	out := output{Result: res}
	if err != nil {
		out.Failed = true
		out.Msg = err.Error()
	}
	return json.NewEncoder(w).Encode(out)
}
