package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Diag exposes the connectivity probe used by the diagnostic endpoint.
// Listing table names is the DynamoDB analog of listing collections.
type Diag struct {
	client *dynamodb.Client
}

func NewDiag(client *dynamodb.Client) *Diag {
	return &Diag{client: client}
}

// ListCollections returns up to limit table names.
func (d *Diag) ListCollections(ctx context.Context, limit int32) ([]string, error) {
	out, err := d.client.ListTables(ctx, &dynamodb.ListTablesInput{
		Limit: aws.Int32(limit),
	})
	if err != nil {
		return nil, err
	}
	return out.TableNames, nil
}
