package live

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"trendz_backend/internal/pkg/worker"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBroker(t *testing.T) (*Broker, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	pool := worker.NewPushPool(rdb, 2, 64)
	pool.Start()

	broker := NewBroker(rdb, pool)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	broker.Start(ctx)

	// 等 PSubscribe 真正建立，避免发布早于订阅
	time.Sleep(50 * time.Millisecond)

	return broker, rdb
}

func TestChannelNames(t *testing.T) {
	assert.Equal(t, "live:chat:box1", ChatChannel("box1"))
	assert.Equal(t, "live:notify:u1", NotifyChannel("u1"))
}

func TestPublishReachesSubscriber(t *testing.T) {
	broker, _ := newTestBroker(t)

	sub := broker.Subscribe(NotifyChannel("u1"))
	defer sub.Close()

	event := map[string]string{"content": "đã theo dõi bạn"}
	broker.Publish(NotifyChannel("u1"), event)

	select {
	case payload := <-sub.C:
		var got map[string]string
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, "đã theo dõi bạn", got["content"])
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not receive published event")
	}
}

func TestChannelsAreIsolated(t *testing.T) {
	broker, _ := newTestBroker(t)

	subA := broker.Subscribe(ChatChannel("boxA"))
	defer subA.Close()
	subB := broker.Subscribe(ChatChannel("boxB"))
	defer subB.Close()

	broker.Publish(ChatChannel("boxA"), map[string]string{"content": "hi"})

	select {
	case <-subA.C:
	case <-time.After(2 * time.Second):
		t.Fatal("boxA subscriber did not receive event")
	}

	select {
	case payload := <-subB.C:
		t.Fatalf("boxB subscriber received foreign event: %s", payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCloseRemovesSubscriber(t *testing.T) {
	broker, _ := newTestBroker(t)

	sub := broker.Subscribe(NotifyChannel("u1"))
	sub.Close()
	// Close 幂等
	sub.Close()

	_, ok := <-sub.C
	assert.False(t, ok, "channel should be closed after unsubscribe")

	_, present := broker.subs.Load(NotifyChannel("u1"))
	assert.False(t, present, "empty channel entry should be dropped from connection table")
}

func TestSubscribeSkipsDyingSet(t *testing.T) {
	broker, _ := newTestBroker(t)

	first := broker.Subscribe(NotifyChannel("u1"))

	// 抓住旧集合并摘除最后一个成员，集合进入 dead 状态
	setAny, ok := broker.subs.Load(NotifyChannel("u1"))
	require.True(t, ok)
	first.Close()
	assert.True(t, setAny.(*subscriberSet).dead)

	// 新订阅必须落进一个 dispatch 找得到的活集合
	second := broker.Subscribe(NotifyChannel("u1"))
	defer second.Close()

	liveAny, ok := broker.subs.Load(NotifyChannel("u1"))
	require.True(t, ok)
	assert.NotSame(t, setAny, liveAny, "new subscriber must not land in the retired set")

	broker.dispatch(NotifyChannel("u1"), []byte(`{"n":1}`))
	select {
	case _, ok := <-second.C:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("re-subscriber did not receive dispatched event")
	}
}

func TestSlowSubscriberEvicted(t *testing.T) {
	broker, _ := newTestBroker(t)

	sub := broker.Subscribe(NotifyChannel("u1"))

	// 填满订阅缓冲后再投一条，订阅者按断连处理
	for i := 0; i < 20; i++ {
		broker.dispatch(NotifyChannel("u1"), []byte(`{"n":1}`))
	}

	// 清空通道，最后应当读到关闭
	closed := false
	for !closed {
		select {
		case _, ok := <-sub.C:
			if !ok {
				closed = true
			}
		case <-time.After(time.Second):
			t.Fatal("subscription was not closed after buffer overflow")
		}
	}

	_, present := broker.subs.Load(NotifyChannel("u1"))
	assert.False(t, present)
}
