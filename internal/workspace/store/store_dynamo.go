package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"screenboard/internal/platform/dynamo"
	"screenboard/internal/workspace/models"
	id "screenboard/pkg/domain"
	"screenboard/pkg/platform/sentinel"
)

// Global secondary indexes used to list children by parent.
const (
	UserIndex     = "userId-index"
	SolutionIndex = "solutionId-index"
	ScreenIndex   = "screenId-index"
)

// Tables names the three DynamoDB tables.
type Tables struct {
	Solutions string
	Screens   string
	Widgets   string
}

type solutionItem struct {
	ID        string    `dynamodbav:"id"`
	UserID    string    `dynamodbav:"userId"`
	Name      string    `dynamodbav:"name"`
	Comment   string    `dynamodbav:"comment"`
	CreatedAt time.Time `dynamodbav:"createdAt"`
	UpdatedAt time.Time `dynamodbav:"updatedAt"`
}

type screenItem struct {
	ID         string    `dynamodbav:"id"`
	SolutionID string    `dynamodbav:"solutionId"`
	Name       string    `dynamodbav:"name"`
	Comment    string    `dynamodbav:"comment"`
	CreatedAt  time.Time `dynamodbav:"createdAt"`
	UpdatedAt  time.Time `dynamodbav:"updatedAt"`
}

type widgetItem struct {
	ID        string    `dynamodbav:"id"`
	ScreenID  string    `dynamodbav:"screenId"`
	Name      string    `dynamodbav:"name"`
	Type      string    `dynamodbav:"type"`
	Src       *string   `dynamodbav:"src,omitempty"`
	Values    []float64 `dynamodbav:"values"`
	CreatedAt time.Time `dynamodbav:"createdAt"`
	UpdatedAt time.Time `dynamodbav:"updatedAt"`
}

// DynamoStore persists the workspace tree in three tables. DynamoDB has no foreign
// keys, so parent checks and cascades are done here.
type DynamoStore struct {
	api    dynamo.API
	tables Tables
}

func NewDynamo(api dynamo.API, tables Tables) *DynamoStore {
	return &DynamoStore{api: api, tables: tables}
}

func (s *DynamoStore) CreateSolution(ctx context.Context, sol *models.Solution) error {
	return s.put(ctx, s.tables.Solutions, solutionToItem(sol), "attribute_not_exists(id)", sentinel.ErrConflict)
}

func (s *DynamoStore) UpdateSolution(ctx context.Context, sol *models.Solution) error {
	return s.put(ctx, s.tables.Solutions, solutionToItem(sol), "attribute_exists(id)", sentinel.ErrNotFound)
}

func (s *DynamoStore) FindSolution(ctx context.Context, solutionID id.SolutionID) (*models.Solution, error) {
	var item solutionItem
	if err := s.get(ctx, s.tables.Solutions, solutionID.String(), &item); err != nil {
		return nil, err
	}
	return item.toModel()
}

func (s *DynamoStore) ListSolutions(ctx context.Context, userID id.UserID) ([]*models.Solution, error) {
	var items []solutionItem
	if err := s.query(ctx, s.tables.Solutions, UserIndex, "userId", userID.String(), &items); err != nil {
		return nil, fmt.Errorf("list solutions: %w", err)
	}
	out := make([]*models.Solution, 0, len(items))
	for _, item := range items {
		sol, err := item.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, sol)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// DeleteSolution removes children first so a failure part way leaves the solution
// reachable for a retry.
func (s *DynamoStore) DeleteSolution(ctx context.Context, solutionID id.SolutionID) error {
	screens, err := s.ListScreens(ctx, solutionID)
	if err != nil {
		return err
	}
	for _, sc := range screens {
		if err := s.DeleteScreen(ctx, sc.ID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return err
		}
	}
	return s.delete(ctx, s.tables.Solutions, solutionID.String())
}

func (s *DynamoStore) DeleteOwnedBy(ctx context.Context, userID id.UserID) error {
	solutions, err := s.ListSolutions(ctx, userID)
	if err != nil {
		return err
	}
	for _, sol := range solutions {
		if err := s.DeleteSolution(ctx, sol.ID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return err
		}
	}
	return nil
}

func (s *DynamoStore) CreateScreen(ctx context.Context, sc *models.Screen) error {
	if _, err := s.FindSolution(ctx, sc.SolutionID); err != nil {
		return err
	}
	return s.put(ctx, s.tables.Screens, screenToItem(sc), "attribute_not_exists(id)", sentinel.ErrConflict)
}

func (s *DynamoStore) UpdateScreen(ctx context.Context, sc *models.Screen) error {
	return s.put(ctx, s.tables.Screens, screenToItem(sc), "attribute_exists(id)", sentinel.ErrNotFound)
}

func (s *DynamoStore) FindScreen(ctx context.Context, screenID id.ScreenID) (*models.Screen, error) {
	var item screenItem
	if err := s.get(ctx, s.tables.Screens, screenID.String(), &item); err != nil {
		return nil, err
	}
	return item.toModel()
}

func (s *DynamoStore) ListScreens(ctx context.Context, solutionID id.SolutionID) ([]*models.Screen, error) {
	var items []screenItem
	if err := s.query(ctx, s.tables.Screens, SolutionIndex, "solutionId", solutionID.String(), &items); err != nil {
		return nil, fmt.Errorf("list screens: %w", err)
	}
	out := make([]*models.Screen, 0, len(items))
	for _, item := range items {
		sc, err := item.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *DynamoStore) DeleteScreen(ctx context.Context, screenID id.ScreenID) error {
	widgets, err := s.ListWidgets(ctx, screenID)
	if err != nil {
		return err
	}
	for _, w := range widgets {
		if err := s.DeleteWidget(ctx, w.ID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return err
		}
	}
	return s.delete(ctx, s.tables.Screens, screenID.String())
}

func (s *DynamoStore) CreateWidget(ctx context.Context, w *models.Widget) error {
	if _, err := s.FindScreen(ctx, w.ScreenID); err != nil {
		return err
	}
	return s.put(ctx, s.tables.Widgets, widgetToItem(w), "attribute_not_exists(id)", sentinel.ErrConflict)
}

func (s *DynamoStore) UpdateWidget(ctx context.Context, w *models.Widget) error {
	return s.put(ctx, s.tables.Widgets, widgetToItem(w), "attribute_exists(id)", sentinel.ErrNotFound)
}

func (s *DynamoStore) FindWidget(ctx context.Context, widgetID id.WidgetID) (*models.Widget, error) {
	var item widgetItem
	if err := s.get(ctx, s.tables.Widgets, widgetID.String(), &item); err != nil {
		return nil, err
	}
	return item.toModel()
}

func (s *DynamoStore) ListWidgets(ctx context.Context, screenID id.ScreenID) ([]*models.Widget, error) {
	var items []widgetItem
	if err := s.query(ctx, s.tables.Widgets, ScreenIndex, "screenId", screenID.String(), &items); err != nil {
		return nil, fmt.Errorf("list widgets: %w", err)
	}
	out := make([]*models.Widget, 0, len(items))
	for _, item := range items {
		w, err := item.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *DynamoStore) DeleteWidget(ctx context.Context, widgetID id.WidgetID) error {
	return s.delete(ctx, s.tables.Widgets, widgetID.String())
}

func (s *DynamoStore) put(ctx context.Context, table string, item any, condition string, onConditionFailed error) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal %s item: %w", table, err)
	}
	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                av,
		ConditionExpression: aws.String(condition),
	})
	if err != nil {
		if dynamo.IsConditionFailed(err) {
			return onConditionFailed
		}
		return fmt.Errorf("put %s item: %w", table, err)
	}
	return nil
}

func (s *DynamoStore) get(ctx context.Context, table, key string, out any) error {
	res, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: key}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("get %s item: %w", table, err)
	}
	if res.Item == nil {
		return sentinel.ErrNotFound
	}
	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return fmt.Errorf("unmarshal %s item: %w", table, err)
	}
	return nil
}

func (s *DynamoStore) delete(ctx context.Context, table, key string) error {
	_, err := s.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(table),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: key}},
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if dynamo.IsConditionFailed(err) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("delete %s item: %w", table, err)
	}
	return nil
}

// query follows LastEvaluatedKey until the index is exhausted.
func (s *DynamoStore) query(ctx context.Context, table, index, attr, value string, out any) error {
	var (
		raw      []map[string]types.AttributeValue
		startKey map[string]types.AttributeValue
	)
	for {
		res, err := s.api.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(table),
			IndexName:                 aws.String(index),
			KeyConditionExpression:    aws.String("#k = :v"),
			ExpressionAttributeNames:  map[string]string{"#k": attr},
			ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return err
		}
		raw = append(raw, res.Items...)
		if len(res.LastEvaluatedKey) == 0 {
			break
		}
		startKey = res.LastEvaluatedKey
	}
	return attributevalue.UnmarshalListOfMaps(raw, out)
}

func solutionToItem(sol *models.Solution) solutionItem {
	return solutionItem{
		ID:        sol.ID.String(),
		UserID:    sol.UserID.String(),
		Name:      sol.Name,
		Comment:   sol.Comment,
		CreatedAt: sol.CreatedAt,
		UpdatedAt: sol.UpdatedAt,
	}
}

func (item solutionItem) toModel() (*models.Solution, error) {
	solutionID, err := id.ParseSolutionID(item.ID)
	if err != nil {
		return nil, fmt.Errorf("stored solution id: %w", err)
	}
	userID, err := id.ParseUserID(item.UserID)
	if err != nil {
		return nil, fmt.Errorf("stored solution owner: %w", err)
	}
	return &models.Solution{
		ID:        solutionID,
		UserID:    userID,
		Name:      item.Name,
		Comment:   item.Comment,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}, nil
}

func screenToItem(sc *models.Screen) screenItem {
	return screenItem{
		ID:         sc.ID.String(),
		SolutionID: sc.SolutionID.String(),
		Name:       sc.Name,
		Comment:    sc.Comment,
		CreatedAt:  sc.CreatedAt,
		UpdatedAt:  sc.UpdatedAt,
	}
}

func (item screenItem) toModel() (*models.Screen, error) {
	screenID, err := id.ParseScreenID(item.ID)
	if err != nil {
		return nil, fmt.Errorf("stored screen id: %w", err)
	}
	solutionID, err := id.ParseSolutionID(item.SolutionID)
	if err != nil {
		return nil, fmt.Errorf("stored screen solution: %w", err)
	}
	return &models.Screen{
		ID:         screenID,
		SolutionID: solutionID,
		Name:       item.Name,
		Comment:    item.Comment,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}, nil
}

func widgetToItem(w *models.Widget) widgetItem {
	item := widgetItem{
		ID:        w.ID.String(),
		ScreenID:  w.ScreenID.String(),
		Name:      w.Name,
		Type:      w.Type,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	if models.IsDataWidget(w.Type) {
		item.Values = w.Values
		if item.Values == nil {
			item.Values = []float64{}
		}
	} else {
		src := w.Src
		item.Src = &src
	}
	return item
}

func (item widgetItem) toModel() (*models.Widget, error) {
	widgetID, err := id.ParseWidgetID(item.ID)
	if err != nil {
		return nil, fmt.Errorf("stored widget id: %w", err)
	}
	screenID, err := id.ParseScreenID(item.ScreenID)
	if err != nil {
		return nil, fmt.Errorf("stored widget screen: %w", err)
	}
	w := &models.Widget{
		ID:        widgetID,
		ScreenID:  screenID,
		Name:      item.Name,
		Type:      item.Type,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if models.IsDataWidget(item.Type) {
		w.Values = item.Values
		if w.Values == nil {
			w.Values = []float64{}
		}
	} else if item.Src != nil {
		w.Src = *item.Src
	}
	return w, nil
}
