package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *models.ScoredResult {
	return &models.ScoredResult{
		ID:             "res-1",
		ExamRef:        "exam-1",
		ExamTitle:      "Chemistry",
		Subject:        "science",
		StudentRef:     "stu-1",
		Score:          3,
		TotalQuestions: 4,
		Percentage:     75,
		Grade:          "B+",
		Passed:         true,
	}
}

func TestWatermillPublisher_PublishesEnvelope(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(context.Background(), "grading")
	require.NoError(t, err)

	publisher := NewWatermillPublisher(pubSub, "grading", slog.New(slog.DiscardHandler))
	event := NewResultScoredEvent(sampleResult())
	require.NoError(t, publisher.Publish(context.Background(), event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EventResultScored), msg.Metadata.Get("event_type"))
		assert.Equal(t, eventSource, msg.Metadata.Get("source"))
		assert.Equal(t, "exam-1", msg.Metadata.Get(partitionKeyHeader))

		var decoded struct {
			Type     EventType         `json:"type"`
			Data     ResultScoredEvent `json:"data"`
			Metadata map[string]string `json:"metadata"`
		}
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, EventResultScored, decoded.Type)
		assert.Equal(t, "res-1", decoded.Data.ResultID)
		assert.Equal(t, 75, decoded.Data.Percentage)
		assert.Equal(t, "science", decoded.Metadata["subject"])
		assert.NotContains(t, string(msg.Payload), `"key"`)
	case <-time.After(time.Second):
		t.Fatal("message was not delivered")
	}
}

func TestWatermillPublisher_PublishesBatch(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 8}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(context.Background(), "grading")
	require.NoError(t, err)

	publisher := NewWatermillPublisher(pubSub, "grading", slog.New(slog.DiscardHandler))
	var batch []*GradingEvent
	for i := 0; i < 3; i++ {
		batch = append(batch, NewResultScoredEvent(sampleResult()))
	}
	require.NoError(t, publisher.Publish(context.Background(), batch...))
	require.NoError(t, publisher.Publish(context.Background()))

	var received, want []string
	for i := 0; i < 3; i++ {
		want = append(want, batch[i].ID)
		select {
		case msg := <-messages:
			msg.Ack()
			received = append(received, msg.UUID)
		case <-time.After(time.Second):
			t.Fatalf("message %d was not delivered", i)
		}
	}
	assert.ElementsMatch(t, want, received)
}

func TestNewKafkaPublisher_RequiresBrokers(t *testing.T) {
	_, err := NewKafkaPublisher(KafkaConfig{Topic: "grading", Logger: slog.New(slog.DiscardHandler)})
	assert.Error(t, err)
}

func TestMemoryPublisher(t *testing.T) {
	m := NewMemoryPublisher(slog.New(slog.DiscardHandler))

	exam := &models.ExamDefinition{ID: "exam-1", Title: "T", TotalMarks: 2, Questions: make([]models.Question, 2)}
	require.NoError(t, m.Publish(context.Background(), NewExamImportedEvent(exam, 1)))

	published := m.Published()
	require.Len(t, published, 1)
	assert.Equal(t, EventExamImported, published[0].Type)
	assert.Equal(t, "exam-1", published[0].Key)
	assert.NotEmpty(t, published[0].ID)

	data, ok := published[0].Data.(ExamImportedEvent)
	require.True(t, ok)
	assert.Equal(t, 2, data.QuestionCount)
	assert.Equal(t, 1, data.Skipped)

	m.Reset()
	assert.Empty(t, m.Published())
	assert.NoError(t, m.Close())
}
