/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	storeerrors "github.com/suparena/tablestore/errors"
)

// EndpointEnvVar names the environment variable consulted for a custom
// DynamoDB endpoint. Set it to e.g. "http://localhost:8000" to target
// DynamoDB Local; leave it unset to use the real AWS endpoint.
const EndpointEnvVar = "DYNAMODB_ENDPOINT_URL"

// DynamoDBAPI is the subset of the DynamoDB client used by TableHandle.
// *dynamodb.Client satisfies it; tests substitute an in-memory fake.
type DynamoDBAPI interface {
	DescribeTable(ctx context.Context, params *sdk.DescribeTableInput, optFns ...func(*sdk.Options)) (*sdk.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *sdk.CreateTableInput, optFns ...func(*sdk.Options)) (*sdk.CreateTableOutput, error)
	DeleteTable(ctx context.Context, params *sdk.DeleteTableInput, optFns ...func(*sdk.Options)) (*sdk.DeleteTableOutput, error)
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	BatchWriteItem(ctx context.Context, params *sdk.BatchWriteItemInput, optFns ...func(*sdk.Options)) (*sdk.BatchWriteItemOutput, error)
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
}

// ClientOptions configures NewClient. The zero value uses the ambient AWS
// configuration (environment, shared config files, instance role).
type ClientOptions struct {
	// Region overrides the region resolved from the environment.
	Region string

	// AccessKey and SecretKey, when both set, install a static credentials
	// provider instead of the default chain.
	AccessKey string
	SecretKey string

	// EndpointURL overrides the service endpoint. When empty, the
	// DYNAMODB_ENDPOINT_URL environment variable is consulted instead.
	EndpointURL string
}

// NewClient builds a DynamoDB client. The endpoint is resolved in order:
// opts.EndpointURL, then the DYNAMODB_ENDPOINT_URL environment variable,
// then the standard AWS endpoint for the resolved region.
func NewClient(ctx context.Context, opts ClientOptions) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	endpoint := opts.EndpointURL
	if endpoint == "" {
		endpoint = os.Getenv(EndpointEnvVar)
	}

	var clientFns []func(*sdk.Options)
	if endpoint != "" {
		clientFns = append(clientFns, func(o *sdk.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	return sdk.NewFromConfig(cfg, clientFns...), nil
}

var (
	defaultClient     DynamoDBAPI
	defaultClientOnce sync.Once
	defaultClientErr  error
	defaultClientMu   sync.RWMutex
)

// InitDefaultClient constructs the process-wide default client exactly once.
// Subsequent calls return the result of the first call.
func InitDefaultClient(ctx context.Context, opts ClientOptions) (DynamoDBAPI, error) {
	defaultClientOnce.Do(func() {
		client, err := NewClient(ctx, opts)
		defaultClientMu.Lock()
		defer defaultClientMu.Unlock()
		if err != nil {
			defaultClientErr = err
			return
		}
		defaultClient = client
	})

	defaultClientMu.RLock()
	defer defaultClientMu.RUnlock()
	return defaultClient, defaultClientErr
}

// DefaultClient returns the client set up by InitDefaultClient. It fails
// with a ConfigError when initialization has not happened yet; handles
// never fall back to an implicit client silently.
func DefaultClient() (DynamoDBAPI, error) {
	defaultClientMu.RLock()
	defer defaultClientMu.RUnlock()
	if defaultClient == nil {
		return nil, storeerrors.NewConfigError("client", "default client not initialized; call InitDefaultClient or pass a client explicitly")
	}
	return defaultClient, nil
}
