package live

import (
	"context"
	"encoding/json"
	"sync"
	"trendz_backend/internal/pkg/worker"
	"trendz_backend/pkg/logger"
	"trendz_backend/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "live:"

// ChatChannel 聊天室通道名
func ChatChannel(chatBoxID string) string { return channelPrefix + "chat:" + chatBoxID }

// NotifyChannel 用户通知通道名
func NotifyChannel(userID string) string { return channelPrefix + "notify:" + userID }

// Subscription 单个订阅者连接
// C 上收到的是已序列化的事件负载；通道关闭表示订阅被移除
type Subscription struct {
	C       <-chan []byte
	channel string
	ch      chan []byte
	broker  *Broker
	once    sync.Once
}

// Close 取消订阅并释放连接表条目
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.remove(s.channel, s)
	})
}

// Broker 进程级实时通道：Redis 发布/订阅 + 显式连接表
// 连接表生命周期：Subscribe 时插入，Close 或首次投递失败（缓冲满）时移除
type Broker struct {
	rdb  *redis.Client
	pool *worker.PushPool
	subs sync.Map // channel name -> *subscriberSet
}

type subscriberSet struct {
	mu      sync.Mutex
	members map[*Subscription]struct{}
	dead    bool // 置位后此集合已从连接表摘除，不再接收新成员
}

func NewBroker(rdb *redis.Client, pool *worker.PushPool) *Broker {
	return &Broker{rdb: rdb, pool: pool}
}

// Start 启动 Redis 订阅循环，ctx 取消时退出
func (b *Broker) Start(ctx context.Context) {
	pubsub := b.rdb.PSubscribe(ctx, channelPrefix+"*")
	go func() {
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				b.dispatch(msg.Channel, []byte(msg.Payload))
			}
		}
	}()
}

// Publish 把事件异步发布到指定通道（经由推送 worker 池）
// 投递语义是 at-most-once：发布失败或无人订阅时消息只存在于数据库
func (b *Broker) Publish(channel string, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Log.Warn("failed to marshal live event", zap.String("channel", channel), zap.Error(err))
		return
	}
	b.pool.AddTask(worker.PushTask{Channel: channel, Payload: payload})
}

// Subscribe 在连接表中登记一个订阅者
func (b *Broker) Subscribe(channel string) *Subscription {
	sub := &Subscription{channel: channel, broker: b, ch: make(chan []byte, 16)}
	sub.C = sub.ch

	// LoadOrStore 可能拿到正被 remove 摘除的集合，dead 置位则换新集合重试
	for {
		setAny, _ := b.subs.LoadOrStore(channel, &subscriberSet{members: make(map[*Subscription]struct{})})
		set := setAny.(*subscriberSet)
		set.mu.Lock()
		if set.dead {
			set.mu.Unlock()
			continue
		}
		set.members[sub] = struct{}{}
		set.mu.Unlock()
		break
	}

	metrics.GetGlobalCollector().SubscriberConnected()
	return sub
}

func (b *Broker) remove(channel string, sub *Subscription) {
	setAny, ok := b.subs.Load(channel)
	if !ok {
		return
	}
	set := setAny.(*subscriberSet)
	set.mu.Lock()
	if _, ok := set.members[sub]; ok {
		delete(set.members, sub)
		close(sub.ch)
		metrics.GetGlobalCollector().SubscriberDisconnected()
	}
	empty := len(set.members) == 0
	if empty {
		// 摘除前先标记，挡住并发 Subscribe 落进孤儿集合
		set.dead = true
	}
	set.mu.Unlock()

	if empty {
		b.subs.CompareAndDelete(channel, setAny)
	}
}

// dispatch 把一条消息分发给本进程内该通道的所有订阅者
// 订阅者缓冲已满视为断连：移除并关闭，历史消息由持久层兜底
func (b *Broker) dispatch(channel string, payload []byte) {
	setAny, ok := b.subs.Load(channel)
	if !ok {
		return
	}
	set := setAny.(*subscriberSet)

	set.mu.Lock()
	var stale []*Subscription
	for sub := range set.members {
		select {
		case sub.ch <- payload:
		default:
			stale = append(stale, sub)
		}
	}
	set.mu.Unlock()

	for _, sub := range stale {
		b.remove(channel, sub)
	}
}
