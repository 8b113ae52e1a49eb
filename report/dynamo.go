package report

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/agnostic/codec"
)

// DDBClient is the subset of *dynamodb.Client used by DynamoSink.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var _ DDBClient = (*dynamodb.Client)(nil)

// ErrConcurrentModification is returned when another writer committed the
// same report version first.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// ErrNoReport is returned by Latest for a run without reports.
var ErrNoReport = errors.New("no report stored")

// DynamoSink appends reports to a DynamoDB table, one versioned item per
// report.
//
// Table schema:
//   - Partition key: run_id (string) - program/size, e.g. "gradient/512"
//   - Sort key: version (number) - monotonically increasing per run
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name agnostic-reports \
//	  --attribute-definitions AttributeName=run_id,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=run_id,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DynamoSink struct {
	client    DDBClient
	tableName string
	codec     codec.Codec
}

// NewDynamoSink creates a sink writing to tableName. A nil codec selects
// codec.Default.
func NewDynamoSink(client DDBClient, tableName string, c codec.Codec) *DynamoSink {
	if c == nil {
		c = codec.Default
	}
	return &DynamoSink{
		client:    client,
		tableName: tableName,
		codec:     c,
	}
}

// Publish commits r as the next version of its run. The write is
// conditional, so two runners racing on the same version never overwrite
// each other; the loser gets ErrConcurrentModification.
func (s *DynamoSink) Publish(ctx context.Context, r *Report) error {
	data, err := Encode(s.codec, r)
	if err != nil {
		return err
	}

	current, err := s.latestVersion(ctx, r.Run())
	if err != nil {
		return err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"run_id":  &types.AttributeValueMemberS{Value: r.Run()},
			"version": &types.AttributeValueMemberN{Value: strconv.FormatUint(current+1, 10)},
			"started": &types.AttributeValueMemberS{Value: r.Started.UTC().Format(time.RFC3339Nano)},
			"codec":   &types.AttributeValueMemberS{Value: s.codec.Name()},
			"report":  &types.AttributeValueMemberS{Value: string(data)},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("failed to put report to DynamoDB: %w", err)
	}

	return nil
}

// Latest returns the most recent report of a run.
func (s *DynamoSink) Latest(ctx context.Context, program string, size int) (*Report, uint64, error) {
	probe := &Report{Program: program, Size: size}
	items, err := s.query(ctx, probe.Run(), 1)
	if err != nil {
		return nil, 0, err
	}
	if len(items) == 0 {
		return nil, 0, ErrNoReport
	}
	return s.decodeItem(items[0])
}

// History returns up to limit reports of a run, newest first. A limit of
// zero returns all; result pages are followed until the limit is reached.
func (s *DynamoSink) History(ctx context.Context, program string, size int, limit int32) ([]*Report, error) {
	probe := &Report{Program: program, Size: size}
	items, err := s.query(ctx, probe.Run(), limit)
	if err != nil {
		return nil, err
	}

	out := make([]*Report, 0, len(items))
	for _, item := range items {
		r, _, err := s.decodeItem(item)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *DynamoSink) query(ctx context.Context, run string, limit int32) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("run_id = :run"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":run": &types.AttributeValueMemberS{Value: run},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}

	var items []map[string]types.AttributeValue
	p := dynamodb.NewQueryPaginator(s.client, input)
	for p.HasMorePages() {
		resp, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query DynamoDB: %w", err)
		}
		items = append(items, resp.Items...)
		if limit > 0 && len(items) >= int(limit) {
			return items[:limit], nil
		}
	}
	return items, nil
}

func (s *DynamoSink) latestVersion(ctx context.Context, run string) (uint64, error) {
	items, err := s.query(ctx, run, 1)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}
	return parseVersion(items[0])
}

func parseVersion(item map[string]types.AttributeValue) (uint64, error) {
	attr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, errors.New("invalid version attribute in DynamoDB")
	}
	v, err := strconv.ParseUint(attr.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse version: %w", err)
	}
	return v, nil
}

func (s *DynamoSink) decodeItem(item map[string]types.AttributeValue) (*Report, uint64, error) {
	version, err := parseVersion(item)
	if err != nil {
		return nil, 0, err
	}

	body, ok := item["report"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, 0, errors.New("invalid report attribute in DynamoDB")
	}

	c := s.codec
	if name, ok := item["codec"].(*types.AttributeValueMemberS); ok {
		if byName, found := codec.ByName(name.Value); found {
			c = byName
		}
	}

	r, err := Decode(c, []byte(body.Value))
	if err != nil {
		return nil, 0, err
	}
	return r, version, nil
}
