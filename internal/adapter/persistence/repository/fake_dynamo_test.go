package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type item = map[string]types.AttributeValue

// fakeDynamo is an in-memory stand-in for the handful of DynamoDB calls the
// repositories make. It understands exactly the expressions they send.
type fakeDynamo struct {
	mu     sync.Mutex
	keys   map[string]string
	tables map[string]map[string]item
	calls  map[string]int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		keys: map[string]string{
			"requests":       "id",
			"payment_orders": "gateway_order_id",
			"projects":       "id",
			"users":          "id",
		},
		tables: map[string]map[string]item{},
		calls:  map[string]int{},
	}
}

func str(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	}
	return ""
}

func (f *fakeDynamo) table(name string) map[string]item {
	t, ok := f.tables[name]
	if !ok {
		t = map[string]item{}
		f.tables[name] = t
	}
	return t
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GetItem"]++
	name := aws.ToString(in.TableName)
	return &dynamodb.GetItemOutput{Item: f.table(name)[str(in.Key[f.keys[name]])]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["PutItem"]++
	name := aws.ToString(in.TableName)
	f.table(name)[str(in.Item[f.keys[name]])] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

// Query supports "attr = :value" key conditions on any attribute.
func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Query"]++
	parts := strings.Split(aws.ToString(in.KeyConditionExpression), " = ")
	if len(parts) != 2 {
		return nil, fmt.Errorf("unsupported key condition %q", aws.ToString(in.KeyConditionExpression))
	}
	want := str(in.ExpressionAttributeValues[parts[1]])

	var out []item
	for _, it := range f.table(aws.ToString(in.TableName)) {
		if av, ok := it[parts[0]]; ok && str(av) == want {
			out = append(out, it)
		}
	}
	return &dynamodb.QueryOutput{Items: out}, nil
}

// Scan ignores filters; callers that filter re-check in process.
func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Scan"]++
	var out []item
	for _, it := range f.table(aws.ToString(in.TableName)) {
		out = append(out, it)
	}
	return &dynamodb.ScanOutput{Items: out}, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["TransactWriteItems"]++

	reasons := make([]types.CancellationReason, len(in.TransactItems))
	failed := false
	for i, tx := range in.TransactItems {
		p := tx.Put
		name := aws.ToString(p.TableName)
		existing, exists := f.table(name)[str(p.Item[f.keys[name]])]
		reasons[i] = types.CancellationReason{Code: aws.String("None")}
		if !f.check(aws.ToString(p.ConditionExpression), existing, exists, p.ExpressionAttributeValues) {
			reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
			failed = true
		}
	}
	if failed {
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("Transaction cancelled"),
			CancellationReasons: reasons,
		}
	}
	for _, tx := range in.TransactItems {
		name := aws.ToString(tx.Put.TableName)
		f.table(name)[str(tx.Put.Item[f.keys[name]])] = tx.Put.Item
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func (f *fakeDynamo) check(cond string, existing item, exists bool, values map[string]types.AttributeValue) bool {
	switch cond {
	case "":
		return true
	case "attribute_not_exists(#id)":
		return !exists
	case "#version = :expected":
		return exists && str(existing["version"]) == str(values[":expected"])
	case "attribute_not_exists(#oid) OR #rid = :rid":
		return !exists || str(existing["request_id"]) == str(values[":rid"])
	}
	panic("unsupported condition: " + cond)
}
