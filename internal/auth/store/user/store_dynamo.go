package user

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"screenboard/internal/auth/models"
	"screenboard/internal/platform/dynamo"
	id "screenboard/pkg/domain"
	"screenboard/pkg/platform/sentinel"
)

// SessionTokenIndex is the global secondary index on the users table keyed by
// session token. It is sparse: users without a session carry no sessionToken
// attribute. Index reads are eventually consistent, so every hit is confirmed
// against the base table before it is trusted.
const SessionTokenIndex = "sessionToken-index"

// emailClaimPrefix keys the item that reserves an email address. A claim is written
// in the same transaction as its user and removed with it, which makes email
// uniqueness a conditional write on the base table rather than an index lookup.
const emailClaimPrefix = "email#"

type userItem struct {
	ID              string     `dynamodbav:"id"`
	Email           string     `dynamodbav:"email"`
	Username        string     `dynamodbav:"username"`
	Salt            string     `dynamodbav:"salt"`
	PasswordDigest  string     `dynamodbav:"passwordDigest"`
	SessionToken    string     `dynamodbav:"sessionToken,omitempty"`
	SessionIssuedAt *time.Time `dynamodbav:"sessionIssuedAt,omitempty"`
	CreatedAt       time.Time  `dynamodbav:"createdAt"`
	UpdatedAt       time.Time  `dynamodbav:"updatedAt"`
}

type emailClaim struct {
	ID     string `dynamodbav:"id"`
	UserID string `dynamodbav:"userId"`
}

// DynamoStore persists users in a DynamoDB table keyed by id.
type DynamoStore struct {
	api   dynamo.API
	table string
}

func NewDynamo(api dynamo.API, table string) *DynamoStore {
	return &DynamoStore{api: api, table: table}
}

// Create writes the user and its email claim in one transaction. Either an existing
// id or an existing claim on the email cancels it with sentinel.ErrConflict.
func (s *DynamoStore) Create(ctx context.Context, user *models.User) error {
	item, err := attributevalue.MarshalMap(toItem(user))
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	claim, err := attributevalue.MarshalMap(emailClaim{ID: emailClaimKey(user.Email), UserID: user.ID.String()})
	if err != nil {
		return fmt.Errorf("marshal email claim: %w", err)
	}

	_, err = s.api.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(s.table),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			}},
			{Put: &types.Put{
				TableName:           aws.String(s.table),
				Item:                claim,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			}},
		},
	})
	if err != nil {
		if dynamo.IsConditionFailed(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// SetSession replaces the session token of userID.
func (s *DynamoStore) SetSession(ctx context.Context, userID id.UserID, token string, issuedAt time.Time) error {
	at, err := attributevalue.Marshal(issuedAt)
	if err != nil {
		return fmt.Errorf("marshal session time: %w", err)
	}
	return s.update(ctx, "set session", userID, "SET #token = :token, #issued = :at, #updated = :at",
		map[string]string{"#token": "sessionToken", "#issued": "sessionIssuedAt", "#updated": "updatedAt"},
		map[string]types.AttributeValue{":token": &types.AttributeValueMemberS{Value: token}, ":at": at},
	)
}

func (s *DynamoStore) ClearSession(ctx context.Context, userID id.UserID, at time.Time) error {
	when, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("marshal update time: %w", err)
	}
	return s.update(ctx, "clear session", userID, "SET #updated = :at REMOVE #token, #issued",
		map[string]string{"#token": "sessionToken", "#issued": "sessionIssuedAt", "#updated": "updatedAt"},
		map[string]types.AttributeValue{":at": when},
	)
}

func (s *DynamoStore) UpdateUsername(ctx context.Context, userID id.UserID, username string, at time.Time) error {
	when, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("marshal update time: %w", err)
	}
	return s.update(ctx, "update username", userID, "SET #username = :username, #updated = :at",
		map[string]string{"#username": "username", "#updated": "updatedAt"},
		map[string]types.AttributeValue{":username": &types.AttributeValueMemberS{Value: username}, ":at": when},
	)
}

func (s *DynamoStore) update(ctx context.Context, op string, userID id.UserID, expr string, names map[string]string, values map[string]types.AttributeValue) error {
	_, err := s.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       userKey(userID.String()),
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		if dynamo.IsConditionFailed(err) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *DynamoStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	raw, err := s.getItem(ctx, userID.String())
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if raw == nil {
		return nil, sentinel.ErrNotFound
	}
	return decodeUser(raw)
}

// FindByEmail resolves the email claim and then the user, both with consistent reads.
func (s *DynamoStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	raw, err := s.getItem(ctx, emailClaimKey(email))
	if err != nil {
		return nil, fmt.Errorf("find email claim: %w", err)
	}
	if raw == nil {
		return nil, sentinel.ErrNotFound
	}
	var claim emailClaim
	if err := attributevalue.UnmarshalMap(raw, &claim); err != nil {
		return nil, fmt.Errorf("unmarshal email claim: %w", err)
	}
	userID, err := id.ParseUserID(claim.UserID)
	if err != nil {
		return nil, fmt.Errorf("claimed user id: %w", err)
	}
	u, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Email != email {
		return nil, sentinel.ErrNotFound
	}
	return u, nil
}

// FindBySessionToken looks the token up in the index and re-reads every candidate
// from the base table. A candidate whose stored token no longer matches was
// superseded by a later login or logout and is dropped.
func (s *DynamoStore) FindBySessionToken(ctx context.Context, token string) (*models.User, error) {
	candidates, err := s.queryIndex(ctx, SessionTokenIndex, "sessionToken", token)
	if err != nil {
		return nil, fmt.Errorf("find user by session token: %w", err)
	}

	var holders []*models.User
	for _, candidate := range candidates {
		u, err := s.FindByID(ctx, candidate.ID)
		if errors.Is(err, sentinel.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if u.SessionToken != nil && *u.SessionToken == token {
			holders = append(holders, u)
		}
	}

	switch len(holders) {
	case 0:
		return nil, sentinel.ErrNotFound
	case 1:
		return holders[0], nil
	default:
		return nil, sentinel.ErrConflict
	}
}

func (s *DynamoStore) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.api.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		for _, raw := range out.Items {
			if isEmailClaim(raw) {
				continue
			}
			u, err := decodeUser(raw)
			if err != nil {
				return nil, err
			}
			users = append(users, u)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID.String() < users[j].ID.String()
	})
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

// Delete removes the user and releases its email claim in one transaction.
func (s *DynamoStore) Delete(ctx context.Context, userID id.UserID) error {
	u, err := s.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	_, err = s.api.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Delete: &types.Delete{
				TableName:           aws.String(s.table),
				Key:                 userKey(userID.String()),
				ConditionExpression: aws.String("attribute_exists(id)"),
			}},
			{Delete: &types.Delete{
				TableName: aws.String(s.table),
				Key:       userKey(emailClaimKey(u.Email)),
			}},
		},
	})
	if err != nil {
		if dynamo.IsConditionFailed(err) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *DynamoStore) getItem(ctx context.Context, key string) (map[string]types.AttributeValue, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            userKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	return out.Item, nil
}

// queryIndex reads at most two matches, enough to detect a duplicate.
func (s *DynamoStore) queryIndex(ctx context.Context, index, attr, value string) ([]*models.User, error) {
	out, err := s.api.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#k = :v"),
		ExpressionAttributeNames:  map[string]string{"#k": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
		Limit:                     aws.Int32(2),
	})
	if err != nil {
		return nil, err
	}
	users := make([]*models.User, 0, len(out.Items))
	for _, raw := range out.Items {
		u, err := decodeUser(raw)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func userKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: key}}
}

func emailClaimKey(email string) string {
	return emailClaimPrefix + email
}

func isEmailClaim(raw map[string]types.AttributeValue) bool {
	v, ok := raw["id"].(*types.AttributeValueMemberS)
	return ok && strings.HasPrefix(v.Value, emailClaimPrefix)
}

func toItem(u *models.User) userItem {
	item := userItem{
		ID:              u.ID.String(),
		Email:           u.Email,
		Username:        u.Username,
		Salt:            u.Salt,
		PasswordDigest:  u.PasswordDigest,
		SessionIssuedAt: u.SessionIssuedAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if u.SessionToken != nil {
		item.SessionToken = *u.SessionToken
	}
	return item
}

func decodeUser(raw map[string]types.AttributeValue) (*models.User, error) {
	var item userItem
	if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	userID, err := id.ParseUserID(item.ID)
	if err != nil {
		return nil, fmt.Errorf("stored user id: %w", err)
	}
	u := &models.User{
		ID:              userID,
		Email:           item.Email,
		Username:        item.Username,
		Salt:            item.Salt,
		PasswordDigest:  item.PasswordDigest,
		SessionIssuedAt: item.SessionIssuedAt,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
	if item.SessionToken != "" {
		token := item.SessionToken
		u.SessionToken = &token
	}
	return u, nil
}
