/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"

	storeerrors "github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/preprocess"
	"github.com/suparena/tablestore/storagemodels"
)

const (
	defaultWaitTimeout = 2 * time.Minute
)

// TableHandle implements datastore.TableStore on top of a DynamoDB table.
// A handle is bound to one table for its lifetime; after DeleteTable the
// handle is stale and every operation fails with a StaleHandleError.
type TableHandle struct {
	api  DynamoDBAPI
	log  zerolog.Logger
	name string
	cfg  storagemodels.TableConfig
	pre  *preprocess.Preprocessor

	mu    sync.Mutex
	stale bool
	batch []storagemodels.Item
}

// TableHandleOption customizes a TableHandle at construction time.
type TableHandleOption func(*TableHandle)

// WithLogger attaches a structured logger to the handle. The default is a
// disabled logger.
func WithLogger(log zerolog.Logger) TableHandleOption {
	return func(h *TableHandle) {
		h.log = log
	}
}

// WithPreprocessor installs an item preprocessor applied to every item on
// Put and on batch flush.
func WithPreprocessor(p *preprocess.Preprocessor) TableHandleOption {
	return func(h *TableHandle) {
		h.pre = p
	}
}

// NewTableHandle binds to the table named in cfg, creating it first when it
// does not exist. Creation uses cfg's key schema, attribute definitions and
// throughput, and blocks until the table reports ACTIVE.
//
// When two callers race to create the same table, the loser's CreateTable
// fails with ResourceInUseException; that is treated as "already exists" and
// resolved by re-describing.
func NewTableHandle(ctx context.Context, api DynamoDBAPI, cfg storagemodels.TableConfig, opts ...TableHandleOption) (*TableHandle, error) {
	if api == nil {
		return nil, storeerrors.NewConfigError("client", "DynamoDB client must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h := &TableHandle{
		api:  api,
		log:  zerolog.Nop(),
		name: cfg.TableName,
		cfg:  cfg,
	}
	for _, opt := range opts {
		opt(h)
	}

	desc, err := findTableByName(ctx, api, cfg.TableName)
	if err != nil {
		return nil, err
	}
	if desc != nil {
		h.bindDescription(desc)
		h.log.Debug().Str("table", h.name).Msg("bound to existing table")
		return h, nil
	}

	if err := cfg.ValidateForProvisioning(); err != nil {
		return nil, err
	}
	if err := h.createTable(ctx); err != nil {
		return nil, err
	}

	h.log.Info().Str("table", h.name).Msg("table created")
	return h, nil
}

// createTable issues CreateTable and waits for the table to become ACTIVE.
func (h *TableHandle) createTable(ctx context.Context) error {
	input := &sdk.CreateTableInput{
		TableName:            aws.String(h.name),
		KeySchema:            toSDKKeySchema(h.cfg.KeySchema),
		AttributeDefinitions: toSDKAttributeDefinitions(h.cfg.AttributeDefinitions),
	}
	if h.cfg.ProvisionedThroughput != nil {
		input.ProvisionedThroughput = &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(h.cfg.ProvisionedThroughput.ReadCapacityUnits),
			WriteCapacityUnits: aws.Int64(h.cfg.ProvisionedThroughput.WriteCapacityUnits),
		}
	} else {
		input.BillingMode = types.BillingModePayPerRequest
	}

	_, err := h.api.CreateTable(ctx, input)
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			// Lost a create race; the table exists now. Re-describe and bind.
			desc, derr := findTableByName(ctx, h.api, h.name)
			if derr != nil {
				return derr
			}
			if desc != nil {
				h.bindDescription(desc)
				return nil
			}
		}
		return storeerrors.NewProvisioningError(h.name, err)
	}

	waiter := sdk.NewTableExistsWaiter(h.api)
	if err := waiter.Wait(ctx, &sdk.DescribeTableInput{TableName: aws.String(h.name)}, defaultWaitTimeout); err != nil {
		return storeerrors.NewProvisioningError(h.name, fmt.Errorf("waiting for table to become active: %w", err))
	}
	return nil
}

// bindDescription fills in key schema details the caller's config omitted,
// using the live table description as the source of truth.
func (h *TableHandle) bindDescription(desc *types.TableDescription) {
	if len(h.cfg.KeySchema) == 0 {
		h.cfg.KeySchema = fromSDKKeySchema(desc.KeySchema)
	}
	if len(h.cfg.AttributeDefinitions) == 0 {
		h.cfg.AttributeDefinitions = fromSDKAttributeDefinitions(desc.AttributeDefinitions)
	}
}

// findTableByName describes the table, returning nil (not an error) when the
// backend definitively reports it absent.
func findTableByName(ctx context.Context, api DynamoDBAPI, name string) (*types.TableDescription, error) {
	out, err := api.DescribeTable(ctx, &sdk.DescribeTableInput{TableName: aws.String(name)})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, wrapBackendError("DescribeTable", name, err)
	}
	return out.Table, nil
}

// DescribeTableConfig reconstructs a TableConfig from the live table. It
// returns a NotFoundError when the table does not exist.
func DescribeTableConfig(ctx context.Context, api DynamoDBAPI, name string) (*storagemodels.TableConfig, error) {
	desc, err := findTableByName(ctx, api, name)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, storeerrors.NewTableNotFoundError(name)
	}

	cfg := &storagemodels.TableConfig{
		TableName:            name,
		KeySchema:            fromSDKKeySchema(desc.KeySchema),
		AttributeDefinitions: fromSDKAttributeDefinitions(desc.AttributeDefinitions),
	}
	if pt := desc.ProvisionedThroughput; pt != nil && pt.ReadCapacityUnits != nil && pt.WriteCapacityUnits != nil {
		if *pt.ReadCapacityUnits > 0 || *pt.WriteCapacityUnits > 0 {
			cfg.ProvisionedThroughput = &storagemodels.ProvisionedThroughput{
				ReadCapacityUnits:  *pt.ReadCapacityUnits,
				WriteCapacityUnits: *pt.WriteCapacityUnits,
			}
		}
	}
	return cfg, nil
}

// TableName returns the name the handle was constructed with.
func (h *TableHandle) TableName() string {
	return h.name
}

// Config returns a copy of the handle's table configuration.
func (h *TableHandle) Config() storagemodels.TableConfig {
	return h.cfg
}

// Exists reports whether the table currently exists. It returns false with a
// nil error only on a definitive not-found from the backend.
func (h *TableHandle) Exists(ctx context.Context) (bool, error) {
	if err := h.ensureBound("Exists"); err != nil {
		return false, err
	}
	desc, err := findTableByName(ctx, h.api, h.name)
	if err != nil {
		return false, err
	}
	return desc != nil, nil
}

// DeleteTable deletes the table and waits until the backend confirms it is
// gone, then marks the handle stale.
func (h *TableHandle) DeleteTable(ctx context.Context) error {
	if err := h.ensureBound("DeleteTable"); err != nil {
		return err
	}

	_, err := h.api.DeleteTable(ctx, &sdk.DeleteTableInput{TableName: aws.String(h.name)})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			// Already gone; still invalidate the handle.
			h.markStale()
			return nil
		}
		h.log.Error().Err(err).Str("table", h.name).Msg("DeleteTable failed")
		return wrapBackendError("DeleteTable", h.name, err)
	}

	waiter := sdk.NewTableNotExistsWaiter(h.api)
	if err := waiter.Wait(ctx, &sdk.DescribeTableInput{TableName: aws.String(h.name)}, defaultWaitTimeout); err != nil {
		return wrapBackendError("DeleteTable", h.name, fmt.Errorf("waiting for table deletion: %w", err))
	}

	h.markStale()
	h.log.Info().Str("table", h.name).Msg("table deleted")
	return nil
}

func (h *TableHandle) markStale() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stale = true
	h.batch = nil
}

// ensureBound fails with a StaleHandleError once the handle's table has been
// deleted through this handle.
func (h *TableHandle) ensureBound(op string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stale {
		return storeerrors.NewStaleHandleError(h.name, op)
	}
	return nil
}

// wrapBackendError converts an SDK error into a BackendError, pulling the
// service error code and message out of smithy.APIError when present.
func wrapBackendError(op, table string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return storeerrors.NewBackendError(op, table, apiErr.ErrorCode(), apiErr.ErrorMessage(), err)
	}
	return storeerrors.NewBackendError(op, table, "", "", err)
}

func toSDKKeySchema(ks []storagemodels.KeySchemaElement) []types.KeySchemaElement {
	out := make([]types.KeySchemaElement, 0, len(ks))
	for _, e := range ks {
		out = append(out, types.KeySchemaElement{
			AttributeName: aws.String(e.AttributeName),
			KeyType:       types.KeyType(e.KeyType),
		})
	}
	return out
}

func fromSDKKeySchema(ks []types.KeySchemaElement) []storagemodels.KeySchemaElement {
	out := make([]storagemodels.KeySchemaElement, 0, len(ks))
	for _, e := range ks {
		out = append(out, storagemodels.KeySchemaElement{
			AttributeName: aws.ToString(e.AttributeName),
			KeyType:       string(e.KeyType),
		})
	}
	return out
}

func toSDKAttributeDefinitions(ads []storagemodels.AttributeDefinition) []types.AttributeDefinition {
	out := make([]types.AttributeDefinition, 0, len(ads))
	for _, a := range ads {
		out = append(out, types.AttributeDefinition{
			AttributeName: aws.String(a.AttributeName),
			AttributeType: types.ScalarAttributeType(a.AttributeType),
		})
	}
	return out
}

func fromSDKAttributeDefinitions(ads []types.AttributeDefinition) []storagemodels.AttributeDefinition {
	out := make([]storagemodels.AttributeDefinition, 0, len(ads))
	for _, a := range ads {
		out = append(out, storagemodels.AttributeDefinition{
			AttributeName: aws.ToString(a.AttributeName),
			AttributeType: string(a.AttributeType),
		})
	}
	return out
}
