package dynamo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenboard/internal/platform/config"
)

func TestIsConditionFailed(t *testing.T) {
	wrapped := fmt.Errorf("put: %w", &types.ConditionalCheckFailedException{})
	assert.True(t, IsConditionFailed(wrapped))
	assert.False(t, IsConditionFailed(errors.New("throttled")))

	cancelled := &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
		{Code: aws.String("None")},
		{Code: aws.String("ConditionalCheckFailed")},
	}}
	assert.True(t, IsConditionFailed(fmt.Errorf("transact: %w", cancelled)))
	assert.False(t, IsConditionFailed(&types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
		{Code: aws.String("ThrottlingError")},
	}}))
}

func TestNewAppliesEndpointOverride(t *testing.T) {
	client, err := New(context.Background(), config.DynamoConfig{
		Region:      "eu-west-1",
		Endpoint:    "http://localhost:8000",
		AccessKeyID: "local",
		SecretKey:   "local",
	})
	require.NoError(t, err)

	opts := client.Options()
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://localhost:8000", *opts.BaseEndpoint)
	assert.Equal(t, "eu-west-1", opts.Region)
}
