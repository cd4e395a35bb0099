// Package dynamotest provides an in-process stand-in for the DynamoDB API that
// understands the narrow expression forms the stores issue.
package dynamotest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"screenboard/internal/platform/dynamo"
)

var _ dynamo.API = (*Fake)(nil)

// Fake keeps one map of items per table, keyed by the string "id" attribute.
// It supports:
//   - conditions attribute_not_exists(id) and attribute_exists(id)
//   - key conditions of the form "#k = :v" on any string attribute
//   - update expressions of the form "SET #a = :a, #b = :b REMOVE #c"
//   - transactions made of Put and Delete items
//   - Scan with an optional PageSize to exercise pagination
//
// Reads of the base table are strongly consistent. Index queries are too, unless
// FreezeIndexes was called: they then see the table as it was at that moment.
type Fake struct {
	mu       sync.Mutex
	tables   map[string]map[string]map[string]types.AttributeValue
	frozen   map[string]map[string]map[string]types.AttributeValue
	PageSize int
	// Err, when set, is returned by every call.
	Err error
	// Calls counts invocations by operation name.
	Calls map[string]int
}

func New() *Fake {
	return &Fake{
		tables: make(map[string]map[string]map[string]types.AttributeValue),
		Calls:  make(map[string]int),
	}
}

func (f *Fake) table(name string) map[string]map[string]types.AttributeValue {
	t, ok := f.tables[name]
	if !ok {
		t = make(map[string]map[string]types.AttributeValue)
		f.tables[name] = t
	}
	return t
}

func keyOf(item map[string]types.AttributeValue) string {
	if v, ok := item["id"].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (f *Fake) begin(op string) error {
	f.Calls[op]++
	return f.Err
}

func (f *Fake) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("GetItem"); err != nil {
		return nil, err
	}
	return &dynamodb.GetItemOutput{Item: f.table(*in.TableName)[keyOf(in.Key)]}, nil
}

func (f *Fake) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("PutItem"); err != nil {
		return nil, err
	}
	t := f.table(*in.TableName)
	key := keyOf(in.Item)
	if err := checkCondition(in.ConditionExpression, t, key); err != nil {
		return nil, err
	}
	t[key] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *Fake) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("DeleteItem"); err != nil {
		return nil, err
	}
	t := f.table(*in.TableName)
	key := keyOf(in.Key)
	if err := checkCondition(in.ConditionExpression, t, key); err != nil {
		return nil, err
	}
	delete(t, key)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *Fake) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Query"); err != nil {
		return nil, err
	}
	if in.KeyConditionExpression == nil || strings.TrimSpace(*in.KeyConditionExpression) != "#k = :v" {
		return nil, errors.New("dynamotest: unsupported key condition")
	}
	attr := in.ExpressionAttributeNames["#k"]
	want, ok := in.ExpressionAttributeValues[":v"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, errors.New("dynamotest: key value must be a string")
	}

	source := f.table(*in.TableName)
	if in.IndexName != nil && f.frozen != nil {
		source = f.frozen[*in.TableName]
	}
	var items []map[string]types.AttributeValue
	for _, key := range sortedKeys(source) {
		item := source[key]
		if v, ok := item[attr].(*types.AttributeValueMemberS); ok && v.Value == want.Value {
			items = append(items, item)
			if in.Limit != nil && len(items) >= int(*in.Limit) {
				break
			}
		}
	}
	return &dynamodb.QueryOutput{Items: items, Count: int32(len(items))}, nil
}

func (f *Fake) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Scan"); err != nil {
		return nil, err
	}
	keys := sortedKeys(f.table(*in.TableName))
	start := 0
	if in.ExclusiveStartKey != nil {
		after := keyOf(in.ExclusiveStartKey)
		start = sort.SearchStrings(keys, after)
		if start < len(keys) && keys[start] == after {
			start++
		}
	}
	end := len(keys)
	if f.PageSize > 0 && start+f.PageSize < end {
		end = start + f.PageSize
	}

	out := &dynamodb.ScanOutput{}
	for _, key := range keys[start:end] {
		out.Items = append(out.Items, f.tables[*in.TableName][key])
	}
	if end < len(keys) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: keys[end-1]}}
	}
	return out, nil
}

func (f *Fake) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("UpdateItem"); err != nil {
		return nil, err
	}
	t := f.table(*in.TableName)
	key := keyOf(in.Key)
	if err := checkCondition(in.ConditionExpression, t, key); err != nil {
		return nil, err
	}
	current, ok := t[key]
	if !ok {
		current = in.Key
	}
	updated, err := applyUpdate(current, in.UpdateExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}
	t[key] = updated
	return &dynamodb.UpdateItemOutput{}, nil
}

// TransactWriteItems checks every condition before applying any write. A failed
// condition cancels the whole transaction.
func (f *Fake) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("TransactWriteItems"); err != nil {
		return nil, err
	}

	reasons := make([]types.CancellationReason, len(in.TransactItems))
	cancelled := false
	for i, item := range in.TransactItems {
		var (
			table, key string
			cond       *string
		)
		switch {
		case item.Put != nil:
			table, key, cond = *item.Put.TableName, keyOf(item.Put.Item), item.Put.ConditionExpression
		case item.Delete != nil:
			table, key, cond = *item.Delete.TableName, keyOf(item.Delete.Key), item.Delete.ConditionExpression
		default:
			return nil, errors.New("dynamotest: only Put and Delete are supported in transactions")
		}
		reasons[i].Code = stringPtr("None")
		if err := checkCondition(cond, f.table(table), key); err != nil {
			var ccf *types.ConditionalCheckFailedException
			if !errors.As(err, &ccf) {
				return nil, err
			}
			reasons[i].Code = stringPtr("ConditionalCheckFailed")
			cancelled = true
		}
	}
	if cancelled {
		return nil, &types.TransactionCanceledException{
			Message:             stringPtr("transaction cancelled"),
			CancellationReasons: reasons,
		}
	}

	for _, item := range in.TransactItems {
		if item.Put != nil {
			f.table(*item.Put.TableName)[keyOf(item.Put.Item)] = item.Put.Item
			continue
		}
		delete(f.table(*item.Delete.TableName), keyOf(item.Delete.Key))
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

// FreezeIndexes makes index queries keep answering from the current contents until
// ThawIndexes is called, the way a lagging global secondary index would.
func (f *Fake) FreezeIndexes() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frozen = make(map[string]map[string]map[string]types.AttributeValue, len(f.tables))
	for name, t := range f.tables {
		snapshot := make(map[string]map[string]types.AttributeValue, len(t))
		for k, item := range t {
			snapshot[k] = item
		}
		f.frozen[name] = snapshot
	}
}

func (f *Fake) ThawIndexes() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frozen = nil
}

// Len returns the number of items stored in table.
func (f *Fake) Len(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tables[table])
}

// Put stores item directly, bypassing conditions.
func (f *Fake) Put(table string, item map[string]types.AttributeValue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.table(table)[keyOf(item)] = item
}

func checkCondition(expr *string, t map[string]map[string]types.AttributeValue, key string) error {
	if expr == nil {
		return nil
	}
	_, exists := t[key]
	switch strings.TrimSpace(*expr) {
	case "attribute_not_exists(id)":
		if exists {
			return &types.ConditionalCheckFailedException{Message: stringPtr("item exists")}
		}
	case "attribute_exists(id)":
		if !exists {
			return &types.ConditionalCheckFailedException{Message: stringPtr("item missing")}
		}
	default:
		return errors.New("dynamotest: unsupported condition " + *expr)
	}
	return nil
}

// applyUpdate returns a copy of item with the SET and REMOVE clauses of expr applied.
func applyUpdate(item map[string]types.AttributeValue, expr *string, names map[string]string, values map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if expr == nil {
		return nil, errors.New("dynamotest: missing update expression")
	}
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}

	resolve := func(name string) string {
		name = strings.TrimSpace(name)
		if n, ok := names[name]; ok {
			return n
		}
		return name
	}

	setPart, removePart := strings.TrimSpace(*expr), ""
	if i := strings.Index(setPart, "REMOVE "); i >= 0 {
		setPart, removePart = strings.TrimSpace(setPart[:i]), setPart[i+len("REMOVE "):]
	}
	if setPart != "" {
		if !strings.HasPrefix(setPart, "SET ") {
			return nil, errors.New("dynamotest: unsupported update expression " + *expr)
		}
		for _, assign := range strings.Split(strings.TrimPrefix(setPart, "SET "), ",") {
			name, placeholder, ok := strings.Cut(assign, "=")
			if !ok {
				return nil, errors.New("dynamotest: malformed assignment " + assign)
			}
			v, ok := values[strings.TrimSpace(placeholder)]
			if !ok {
				return nil, errors.New("dynamotest: missing value " + placeholder)
			}
			out[resolve(name)] = v
		}
	}
	for _, name := range strings.Split(removePart, ",") {
		if strings.TrimSpace(name) != "" {
			delete(out, resolve(name))
		}
	}
	return out, nil
}

func sortedKeys(t map[string]map[string]types.AttributeValue) []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func stringPtr(s string) *string { return &s }
