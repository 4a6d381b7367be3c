//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
)

// Журнал жизненного цикла контейнеров интеграционного стенда.
var itestLogger = log.New(os.Stdout, "[itest] ", log.LstdFlags)

func shortID(c tc.Container) string {
	id := c.GetContainerID()
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// lifecycleHooks — краткие отметки этапов жизни контейнера в логе стенда,
// чтобы в выводе длинных интеграционных прогонов было видно, на чём висим.
func lifecycleHooks(l *log.Logger) tc.ContainerLifecycleHooks {
	return tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{
			func(_ context.Context, req tc.ContainerRequest) error {
				l.Printf("🐳 create image=%s", req.Image)
				return nil
			},
		},
		PostCreates: []tc.ContainerHook{
			func(ctx context.Context, c tc.Container) error {
				n, _ := c.Name(ctx)
				l.Printf("✅ created id=%s name=%s", shortID(c), n)
				return nil
			},
		},
		PreStarts: []tc.ContainerHook{
			func(_ context.Context, c tc.Container) error {
				l.Printf("🐳 start id=%s", shortID(c))
				return nil
			},
		},
		PostStarts: []tc.ContainerHook{
			func(_ context.Context, c tc.Container) error {
				l.Printf("✅ started id=%s", shortID(c))
				return nil
			},
		},
		PostReadies: []tc.ContainerHook{
			func(_ context.Context, c tc.Container) error {
				l.Printf("🔔 ready id=%s", shortID(c))
				return nil
			},
		},
		PreTerminates: []tc.ContainerHook{
			func(_ context.Context, c tc.Container) error {
				l.Printf("🛑 terminate id=%s", shortID(c))
				return nil
			},
		},
		PostTerminates: []tc.ContainerHook{
			func(_ context.Context, c tc.Container) error {
				l.Printf("🚫 terminated id=%s", shortID(c))
				return nil
			},
		},
	}
}

// KafkaEnv — поднятый redpanda-стенд: движок потребления говорит с ним
// по kafka-протоколу как с обычным кластером.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

// StartKafkaTC — запускает одноузловой redpanda с автосозданием тем.
// BaseTopic — префикс для уникальных тем теста (см. UniqueTopicAndGroup).
func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, func(context.Context) error, error) {
	rp, err := redpanda.Run(
		ctx,
		"docker.redpanda.com/redpandadata/redpanda:v23.3.8",
		tc.WithLifecycleHooks(lifecycleHooks(itestLogger)),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx) // "host:port" для kafka-клиента
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	env := &KafkaEnv{
		Container: rp,
		Brokers:   []string{seed},
		BaseTopic: baseTopic,
	}
	stop := func(_ context.Context) error { return tc.TerminateContainer(rp) }
	return env, stop, nil
}
