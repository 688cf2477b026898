package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/waitlist-api/internal/domain"
)

// WaitlistRepo provides typed DynamoDB operations for the waitlist table.
// The table is keyed by the normalized email, so uniqueness per address is
// enforced by the store itself.
type WaitlistRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewWaitlistRepo(client *dynamodb.Client, tableName string) *WaitlistRepo {
	return &WaitlistRepo{client: client, tableName: tableName}
}

// PutIfAbsent inserts the entry only when no document with the same email
// exists yet. Returns created=false (and no error) when the email is already
// on the list. The conditional write makes concurrent first submissions for
// the same address safe: exactly one wins.
func (r *WaitlistRepo) PutIfAbsent(ctx context.Context, e *domain.WaitlistEntry) (created bool, err error) {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return false, fmt.Errorf("marshal waitlist entry: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// TouchUpdatedAt sets updated_at on an existing entry, leaving every other
// attribute untouched.
func (r *WaitlistRepo) TouchUpdatedAt(ctx context.Context, email string, at time.Time) error {
	ts, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("marshal timestamp: %w", err)
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("email", email),
		UpdateExpression:          aws.String("SET updated_at = :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":t": ts},
		ConditionExpression:       aws.String("attribute_exists(email)"),
	})
	return err
}

// GetByEmail returns the entry for a normalized email, or nil when absent.
func (r *WaitlistRepo) GetByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}
	var e domain.WaitlistEntry
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Count returns the total number of waitlist entries, following scan pages
// until the table is exhausted.
func (r *WaitlistRepo) Count(ctx context.Context) (int, error) {
	var total int
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Select:    types.SelectCount,
	}
	for {
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return 0, err
		}
		total += int(out.Count)
		if out.LastEvaluatedKey == nil {
			return total, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}
