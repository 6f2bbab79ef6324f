package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"golang.org/x/net/context"

	"github.com/sandrogomez-dev/Task-Flow/config"
	"github.com/sandrogomez-dev/Task-Flow/models"
)

// Transport 协作通道的传输抽象，便于替换实现与离线测试
type Transport interface {
	// Connect 连接并订阅指定项目的通道
	Connect(ctx context.Context, projectID string) error
	// Publish 向当前项目通道发布事件
	Publish(ctx context.Context, event models.Event) error
	// Events 返回接收远端事件的只读通道，连接断开时关闭
	Events() <-chan models.Event
	// Close 关闭订阅与底层连接
	Close() error
}

// RedisTransport 基于Redis发布订阅实现的协作通道，
// 每个项目对应一个频道
type RedisTransport struct {
	client  *redis.Client
	pubsub  *redis.PubSub
	events  chan models.Event
	channel string
	cancel  context.CancelFunc
}

// NewRedisTransport 创建Redis传输
func NewRedisTransport(conf config.Config) *RedisTransport {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.GetRedisConnString(),
		Password: conf.RedisPassword,
		DB:       conf.RedisDB,
	})
	return &RedisTransport{client: client}
}

func projectChannel(projectID string) string {
	return fmt.Sprintf("taskflow:project:%s", projectID)
}

// Connect 测试连接并订阅项目频道
func (t *RedisTransport) Connect(ctx context.Context, projectID string) error {
	// 测试连接
	if _, err := t.client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("Redis连接测试失败: %v", err)
	}

	t.channel = projectChannel(projectID)
	t.pubsub = t.client.Subscribe(ctx, t.channel)

	// 等待订阅确认
	if _, err := t.pubsub.Receive(ctx); err != nil {
		t.pubsub.Close()
		return fmt.Errorf("订阅项目频道失败: %v", err)
	}

	t.events = make(chan models.Event, 64)
	pumpCtx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	go t.pump(pumpCtx)
	return nil
}

// pump 持续读取频道消息并解码为事件
func (t *RedisTransport) pump(ctx context.Context) {
	defer close(t.events)

	ch := t.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event models.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				config.Logger.Warnw("无法解析协作事件", "error", err, "payload", msg.Payload)
				continue
			}
			select {
			case t.events <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Publish 向项目频道发布事件
func (t *RedisTransport) Publish(ctx context.Context, event models.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化协作事件失败: %v", err)
	}
	return t.client.Publish(ctx, t.channel, data).Err()
}

// Events 返回接收事件的通道
func (t *RedisTransport) Events() <-chan models.Event {
	return t.events
}

// Close 关闭订阅与连接
func (t *RedisTransport) Close() error {
	if t.cancel != nil {
		t.cancel()
	}
	if t.pubsub != nil {
		t.pubsub.Close()
	}
	return t.client.Close()
}
