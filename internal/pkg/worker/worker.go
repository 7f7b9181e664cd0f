package worker

import (
	"context"
	"time"
	"trendz_backend/pkg/logger"
	"trendz_backend/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PushTask 实时推送任务：把一条已落库的事件发布到 Redis 通道
// 任务丢失只影响实时送达，不影响持久化数据
type PushTask struct {
	Channel string
	Payload []byte
	Retry   int // 重试次数
}

// PushPool 推送 worker 池
type PushPool struct {
	TaskQueue  chan PushTask
	RetryQueue chan PushTask // 重试队列
	rdb        *redis.Client
	WorkerNum  int
	MaxRetry   int // 最大重试次数
}

func NewPushPool(rdb *redis.Client, workerNum int, bufferSize int) *PushPool {
	if workerNum <= 0 {
		workerNum = 5
	}
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	return &PushPool{
		TaskQueue:  make(chan PushTask, bufferSize),
		RetryQueue: make(chan PushTask, bufferSize/2),
		rdb:        rdb,
		WorkerNum:  workerNum,
		MaxRetry:   3,
	}
}

func (p *PushPool) Start() {
	for i := 0; i < p.WorkerNum; i++ {
		go p.worker(i)
	}
	// 启动重试处理协程
	go p.retryWorker()
	logger.Log.Info("push pool started", zap.Int("workers", p.WorkerNum))
}

func (p *PushPool) worker(id int) {
	for task := range p.TaskQueue {
		if err := p.processTask(task); err != nil {
			logger.Log.Warn("push publish failed",
				zap.Int("worker", id), zap.String("channel", task.Channel), zap.Error(err))

			// 如果未达到最大重试次数，加入重试队列
			if task.Retry < p.MaxRetry {
				task.Retry++
				select {
				case p.RetryQueue <- task:
					metrics.GetGlobalCollector().RecordPushTask("retry")
				default:
					// 实时推送是尽力而为，队列满直接丢弃
					p.logDroppedTask(task, err)
				}
			} else {
				p.logDroppedTask(task, err)
			}
			continue
		}
		metrics.GetGlobalCollector().RecordPushTask("ok")
	}
}

func (p *PushPool) retryWorker() {
	for task := range p.RetryQueue {
		// 延迟重试，避免立即重试
		time.Sleep(time.Duration(task.Retry) * time.Second)

		select {
		case p.TaskQueue <- task:
		default:
			p.logDroppedTask(task, nil)
		}
	}
}

func (p *PushPool) processTask(task PushTask) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()
	return p.rdb.Publish(ctx, task.Channel, task.Payload).Err()
}

func (p *PushPool) logDroppedTask(task PushTask, err error) {
	metrics.GetGlobalCollector().RecordPushTask("dropped")
	logger.Log.Warn("push task dropped", zap.String("channel", task.Channel), zap.Error(err))
}

// AddTask 任务入队，队列满时丢弃（不阻塞请求路径）
func (p *PushPool) AddTask(task PushTask) {
	select {
	case p.TaskQueue <- task:
	default:
		p.logDroppedTask(task, nil)
	}
}
