package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
)

var (
	StreamRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_retries_total",
			Help: "Number of stream restarts after recoverable errors",
		},
		[]string{"topic"},
	)
	StreamFatalErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_fatal_errors_total",
			Help: "Number of unrecoverable stream errors",
		},
		[]string{"topic"},
	)
	StreamsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "streams_active",
			Help: "Number of stream workers currently running",
		},
	)
	GroupShutdowns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "consumer_group_shutdowns_total",
			Help: "Number of emergency consumer group shutdowns",
		},
	)
)

var (
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_store_operations_total",
			Help: "Event store operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	StoreSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "event_store_size",
			Help: "Number of events currently in the store",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в дефолтном реестре; повторные
// вызовы (например, из тестов) безопасны.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			StreamRetries, StreamFatalErrors, StreamsActive, GroupShutdowns,
			StoreOps, StoreSize,
		)
	})
}
