/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entitymapper/datastore"
	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/key"
	"github.com/suparena/entitymapper/storagemodels"
)

// Attribute names of a stored item.
const (
	AttrPK         = "PK"
	AttrSK         = "SK"
	AttrEntityType = "EntityType"
	AttrParentKey  = "ParentKey"
	AttrProperties = "Properties"
)

// Client is the subset of the DynamoDB API used by the data store. *dynamodb.Client
// satisfies it.
type Client interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
}

// ClientOptions configures NewDynamoDBClient.
type ClientOptions struct {
	AccessKey string
	SecretKey string
	Region    string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
}

// DynamodbDataStore implements datastore.Backend on a single DynamoDB table. Each
// entity is one item: PK holds the canonical key path, SK the kind, and the
// properties live in a nested map so they never collide with the key attributes.
type DynamodbDataStore struct {
	client    Client
	tableName string
}

var _ datastore.Backend = (*DynamodbDataStore)(nil)

// NewDynamoDBClient initializes a DynamoDB client. Static credentials are used when
// an access key is given, otherwise the default AWS credential chain applies.
func NewDynamoDBClient(ctx context.Context, opts ClientOptions) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	slog.Info("DynamoDB client initialized", "region", opts.Region, "endpoint", opts.Endpoint)
	return client, nil
}

// NewDynamodbDataStore constructs a data store backed by a new DynamoDB client.
func NewDynamodbDataStore(ctx context.Context, opts ClientOptions, tableName string) (*DynamodbDataStore, error) {
	client, err := NewDynamoDBClient(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return NewWithClient(client, tableName)
}

// NewWithClient constructs a data store over an existing client.
func NewWithClient(client Client, tableName string) (*DynamodbDataStore, error) {
	if client == nil {
		return nil, errors.NewValidationError("client", "must not be nil")
	}
	if tableName == "" {
		return nil, errors.NewValidationError("tableName", "must not be empty")
	}
	return &DynamodbDataStore{client: client, tableName: tableName}, nil
}

// TableName returns the table the data store reads and writes.
func (d *DynamodbDataStore) TableName() string {
	return d.tableName
}

// Get retrieves the entity stored under k with a strongly consistent read.
func (d *DynamodbDataStore) Get(ctx context.Context, k *key.Key) (*storagemodels.Entity, error) {
	if k == nil {
		return nil, errors.NewValidationError("key", "must not be nil")
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      &d.tableName,
		Key:            itemKey(k),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, errors.NewStorageUnavailableError("GetItem", err)
	}
	if len(out.Item) == 0 {
		return nil, errors.NewNotFoundError(k.Kind(), k.String())
	}

	props, err := unmarshalProperties(out.Item)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal item %s: %w", k, err)
	}
	return &storagemodels.Entity{
		Key:        k,
		Kind:       k.Kind(),
		Parent:     k.Parent(),
		Properties: props,
	}, nil
}

// Put writes e as a whole item, replacing any item under the same key. Entities
// without a key get a new one of e.Kind under e.Parent.
func (d *DynamodbDataStore) Put(ctx context.Context, e *storagemodels.Entity) (*key.Key, error) {
	if e == nil {
		return nil, errors.NewValidationError("entity", "must not be nil")
	}

	k := e.Key
	if k == nil {
		if !key.ValidKind(e.Kind) {
			return nil, errors.NewValidationError("kind", "invalid kind "+e.Kind)
		}
		k = datastore.AllocateKey(e.Kind, e.Parent)
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}

	item, err := marshalItem(k, e.Properties)
	if err != nil {
		return nil, err
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      item,
	})
	if err != nil {
		return nil, errors.NewStorageUnavailableError("PutItem", err)
	}
	return k, nil
}

// Delete removes the item under k. DynamoDB treats absent keys as success.
func (d *DynamodbDataStore) Delete(ctx context.Context, k *key.Key) error {
	if k == nil {
		return errors.NewValidationError("key", "must not be nil")
	}

	_, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       itemKey(k),
	})
	if err != nil {
		return errors.NewStorageUnavailableError("DeleteItem", err)
	}
	return nil
}

// ParseKey decodes a serialized key
func (d *DynamodbDataStore) ParseKey(s string) (*key.Key, error) {
	return key.Decode(s)
}

// SerializeKey encodes a key
func (d *DynamodbDataStore) SerializeKey(k *key.Key) string {
	return k.Encode()
}

func itemKey(k *key.Key) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrPK: &types.AttributeValueMemberS{Value: k.String()},
		AttrSK: &types.AttributeValueMemberS{Value: k.Kind()},
	}
}

func marshalItem(k *key.Key, props storagemodels.PropertyMap) (map[string]types.AttributeValue, error) {
	normalized, err := datastore.NormalizeProperties(props)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize properties: %w", err)
	}
	av, err := attributevalue.MarshalMap(map[string]any(normalized))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal properties: %w", err)
	}

	item := itemKey(k)
	item[AttrEntityType] = &types.AttributeValueMemberS{Value: k.Kind()}
	item[AttrProperties] = &types.AttributeValueMemberM{Value: av}
	if p := k.Parent(); p != nil {
		item[AttrParentKey] = &types.AttributeValueMemberS{Value: p.String()}
	}
	return item, nil
}

func unmarshalProperties(item map[string]types.AttributeValue) (storagemodels.PropertyMap, error) {
	attr, ok := item[AttrProperties]
	if !ok {
		return storagemodels.PropertyMap{}, nil
	}
	m, ok := attr.(*types.AttributeValueMemberM)
	if !ok {
		return nil, fmt.Errorf("attribute %s is %T, not a map", AttrProperties, attr)
	}

	var props map[string]any
	err := attributevalue.UnmarshalMapWithOptions(m.Value, &props, func(o *attributevalue.DecoderOptions) {
		o.UseNumber = true
	})
	if err != nil {
		return nil, err
	}
	out := make(storagemodels.PropertyMap, len(props))
	for name, v := range props {
		if out[name], err = fromNumbers(v); err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}
	}
	return out, nil
}

// fromNumbers replaces decoded numbers with int64, uint64 or float64, whichever
// holds the stored text exactly, descending into lists and maps.
func fromNumbers(v any) (any, error) {
	switch t := v.(type) {
	case attributevalue.Number:
		return parseNumber(string(t))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			n, err := fromNumbers(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			n, err := fromNumbers(e)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	}
	return v, nil
}

func parseNumber(s string) (any, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return u, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}
