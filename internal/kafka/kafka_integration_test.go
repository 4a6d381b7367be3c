//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/wb_streams/internal/cache/memory"
	"github.com/Gunvolt24/wb_streams/internal/consumer"
	ikafka "github.com/Gunvolt24/wb_streams/internal/kafka"
	"github.com/Gunvolt24/wb_streams/internal/pipeline"
	"github.com/Gunvolt24/wb_streams/internal/testutil"
	"github.com/Gunvolt24/wb_streams/internal/usecase"
	"github.com/Gunvolt24/wb_streams/pkg/logger"
	"github.com/Gunvolt24/wb_streams/pkg/validate"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

// стенд: redpanda + собранный движок потребления поверх LRU-хранилища
func newStack(t *testing.T, topic, group string, brokers []string) (*consumer.Group, *usecase.EventService) {
	t.Helper()

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	store := cachemem.NewLRUStoreTTL(100, time.Minute)
	svc := usecase.NewEventService(store, logg, validate.NewEventValidator())

	client := ikafka.NewClient(ikafka.ClientConfig{
		Brokers:     brokers,
		GroupID:     group,
		StartOffset: "first",
	}, logg)

	proc := pipeline.NewProcessor(pipeline.Config{
		ProcessTimeout: 5 * time.Second,
		SkipMalformed:  true,
	}, svc, logg)

	g := consumer.NewGroup(consumer.GroupConfig{
		Partitions: map[string]int{topic: 1},
		Retry: consumer.RetryPolicy{
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     2 * time.Second,
			ResetWindow:  time.Minute,
			MaxRetries:   consumer.UnlimitedRetries,
		},
		ShutdownGracePeriod: 10 * time.Second,
	}, client, proc, logg)

	return g, svc
}

func writeMsg(t *testing.T, ctx context.Context, brokers []string, topic string, value []byte) {
	t.Helper()
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()
	require.NoError(t, w.WriteMessages(ctx, kafka.Message{Value: value}))
}

// ждём, пока событие появится в хранилище
func waitStored(t *testing.T, ctx context.Context, svc *usecase.EventService, eventID string) {
	t.Helper()
	deadline := time.Now().Add(20 * time.Second)
	for {
		got, err := svc.GetEvent(ctx, eventID)
		require.NoError(t, err)
		if got != nil {
			require.Equal(t, eventID, got.EventID)
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("event %s not stored in time", eventID)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// 1) Валидное событие доезжает до хранилища через весь движок
func TestKafka_ValidEvent_Stored_TC(t *testing.T) {
	// длинный контекст только на старт контейнера
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "events-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	// короткий контекст на сам тест
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic, 1))

	g, svc := newStack(t, topic, group, kf.Brokers)
	require.NoError(t, g.Start(ctx))
	t.Cleanup(func() { _ = g.Stop(context.Background()) })

	// даём воркеру присоединиться к группе/получить assignment
	time.Sleep(1500 * time.Millisecond)

	ev := testutil.MakeEvent()
	require.NoError(t, validate.NewEventValidator().Validate(context.Background(), &ev))

	raw, _ := json.Marshal(ev)
	writeMsg(t, ctx, kf.Brokers, topic, raw)

	waitStored(t, ctx, svc, ev.EventID)

	// после обработки коммит оффсетов проходит без ошибок
	require.NoError(t, g.CommitOffsets(ctx))
	require.True(t, g.IsRunning())
}

// 2) Не-JSON сообщение пропускается, валидное после него — сохраняется
func TestKafka_Skip_InvalidJSON_Then_StoreValid_TC(t *testing.T) {
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "events-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-invalid-json-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic, 1))

	g, svc := newStack(t, topic, group, kf.Brokers)
	require.NoError(t, g.Start(ctx))
	t.Cleanup(func() { _ = g.Stop(context.Background()) })

	time.Sleep(1500 * time.Millisecond)

	// 1) Шлём мусор
	writeMsg(t, ctx, kf.Brokers, topic, []byte("not-a-json"))

	// 2) Шлём валидное событие
	ev := testutil.MakeEvent()
	raw, _ := json.Marshal(ev)
	writeMsg(t, ctx, kf.Brokers, topic, raw)

	waitStored(t, ctx, svc, ev.EventID)
}

// 3) Stop закрывает reader'ы, движок считает поток исчерпанным и гаснет
func TestKafka_StopDrainsWorkers_TC(t *testing.T) {
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "events-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-stop-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic, 1))

	g, _ := newStack(t, topic, group, kf.Brokers)
	require.NoError(t, g.Start(ctx))

	time.Sleep(1500 * time.Millisecond)
	require.True(t, g.IsRunning())

	require.NoError(t, g.Stop(ctx))
	require.False(t, g.IsRunning())

	// Повторный Stop — no-op
	require.NoError(t, g.Stop(ctx))
}
