//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/twmb/franz-go/pkg/kgo"

	id "screenboard/pkg/domain"
	audit "screenboard/pkg/platform/audit"
)

type KafkaStoreSuite struct {
	suite.Suite
	container *redpanda.Container
	broker    string
	client    *kgo.Client
}

func TestKafkaStoreSuite(t *testing.T) {
	suite.Run(t, new(KafkaStoreSuite))
}

func (s *KafkaStoreSuite) SetupSuite() {
	ctx := context.Background()
	container, err := redpanda.Run(ctx, "docker.redpanda.com/redpandadata/redpanda:v24.2.4")
	s.Require().NoError(err)
	s.container = container

	broker, err := container.KafkaSeedBroker(ctx)
	s.Require().NoError(err)
	s.broker = broker

	client, err := NewClient([]string{broker}, "screenboard-test")
	s.Require().NoError(err)
	s.client = client
}

func (s *KafkaStoreSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *KafkaStoreSuite) TestAppendIsConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	const topic = "audit-events"
	s.Require().NoError(EnsureTopic(ctx, s.client, topic, 1, 1))
	s.Require().NoError(EnsureTopic(ctx, s.client, topic, 1, 1), "creating twice is a no-op")

	userID := id.NewUserID()
	store := New(s.client, topic)
	s.Require().NoError(store.Append(ctx, audit.Event{
		Category:  audit.CategoryCompliance,
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		Action:    string(audit.EventUserCreated),
	}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())
	records := fetches.Records()
	s.Require().NotEmpty(records)

	var got map[string]any
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal(userID.String(), got["user_id"])
	s.Equal("user_created", got["action"])
}
