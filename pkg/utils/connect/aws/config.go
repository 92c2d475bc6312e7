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

package connectaws

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/smithy-go/middleware"
	"github.com/go-ini/ini"
	"github.com/pkg/errors"

	"github.com/crossplane-contrib/elasticache-reconciler/pkg/utils/metrics"
	"github.com/crossplane-contrib/elasticache-reconciler/pkg/version"
)

// DefaultSection for INI files.
const DefaultSection = "default"

// Keys of a credentials file profile.
const (
	keyAccessKeyID     = "aws_access_key_id"
	keySecretAccessKey = "aws_secret_access_key"
	keySessionToken    = "aws_session_token"
)

// UserAgent is the key added to the user agent of every request.
const UserAgent = "elasticache-reconciler"

const (
	errReadCredentials  = "cannot read credentials file"
	errParseCredentials = "cannot parse credentials file"
	errLoadConfig       = "cannot load AWS configuration"
)

// middlewareV2 constructs the AWS SDK v2 middleware
var middlewareV2 = config.WithAPIOptions([]func(*middleware.Stack) error{
	awsmiddleware.AddUserAgentKeyValue(UserAgent, version.Version),
	func(s *middleware.Stack) error {
		return s.Finalize.Add(recordRequestMetrics, middleware.After)
	},
})

// recordRequestMetrics records Prometheus metrics for requests to the AWS APIs
var recordRequestMetrics = middleware.FinalizeMiddlewareFunc("recordRequestMetrics", func(ctx context.Context, in middleware.FinalizeInput, next middleware.FinalizeHandler) (middleware.FinalizeOutput, middleware.Metadata, error) {
	metrics.IncAWSAPICall(awsmiddleware.GetServiceID(ctx), awsmiddleware.GetOperationName(ctx), "2")
	return next.HandleFinalize(ctx, in)
})

// Options select how the AWS configuration is loaded. Zero values fall back
// to the ambient AWS configuration chain.
type Options struct {
	// Region overrides the region of the shared configuration.
	Region string

	// Profile of the shared configuration or credentials file to use.
	Profile string

	// CredentialsFile is an INI file holding static credentials under
	// Profile. The default credentials chain is used when it is empty.
	CredentialsFile string

	// Endpoint is a URL all requests are sent to, e.g. a local emulator.
	Endpoint string
}

// GetConfig constructs an aws.Config that can be used to authenticate to AWS
// API by the AWS clients.
func GetConfig(ctx context.Context, o Options) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{middlewareV2}
	if o.Region != "" {
		opts = append(opts, config.WithRegion(o.Region))
	}
	profile := o.Profile
	switch {
	case o.CredentialsFile != "":
		if profile == "" {
			profile = DefaultSection
		}
		data, err := os.ReadFile(o.CredentialsFile)
		if err != nil {
			return aws.Config{}, errors.Wrap(err, errReadCredentials)
		}
		creds, err := CredentialsIDSecret(data, profile)
		if err != nil {
			return aws.Config{}, errors.Wrap(err, errParseCredentials)
		}
		opts = append(opts, config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: creds,
		}))
	case profile != "":
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if o.Endpoint != "" {
		opts = append(opts, config.WithEndpointResolverWithOptions(StaticResolver(o.Endpoint)))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	return cfg, errors.Wrap(err, errLoadConfig)
}

type awsEndpointResolverAdaptorWithOptions func(service, region string, options interface{}) (aws.Endpoint, error)

func (a awsEndpointResolverAdaptorWithOptions) ResolveEndpoint(service, region string, options ...interface{}) (aws.Endpoint, error) {
	return a(service, region, options)
}

// StaticResolver sends the requests of every service to url, signed for the
// region of the request.
func StaticResolver(url string) aws.EndpointResolverWithOptions {
	return awsEndpointResolverAdaptorWithOptions(func(_, region string, _ interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               url,
			HostnameImmutable: true,
			SigningRegion:     region,
			Source:            aws.EndpointSourceCustom,
		}, nil
	})
}

// CredentialsIDSecret retrieves AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY from the data which contains
// aws credentials under given profile
// Example:
// [default]
// aws_access_key_id = <YOUR_ACCESS_KEY_ID>
// aws_secret_access_key = <YOUR_SECRET_ACCESS_KEY>
func CredentialsIDSecret(data []byte, profile string) (aws.Credentials, error) {
	cfg, err := ini.InsensitiveLoad(data)
	if err != nil {
		return aws.Credentials{}, errors.Wrap(err, "cannot parse credentials")
	}

	iniProfile, err := cfg.GetSection(profile)
	if err != nil {
		return aws.Credentials{}, errors.Wrap(err, fmt.Sprintf("cannot get %s profile in credentials", profile))
	}

	// The implicit DEFAULT section always exists, so an absent profile
	// only shows as missing keys.
	for _, k := range []string{keyAccessKeyID, keySecretAccessKey} {
		if iniProfile.Key(k).String() == "" {
			return aws.Credentials{}, errors.Errorf("%s is missing from %s profile in credentials", k, profile)
		}
	}

	return aws.Credentials{
		AccessKeyID:     iniProfile.Key(keyAccessKeyID).String(),
		SecretAccessKey: iniProfile.Key(keySecretAccessKey).String(),
		SessionToken:    iniProfile.Key(keySessionToken).String(),
	}, nil
}
