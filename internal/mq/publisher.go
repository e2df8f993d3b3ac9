package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"jup-pnl-sol/internal/logic/domain"
	"jup-pnl-sol/internal/types"
	"jup-pnl-sol/pkg/logger"
)

// SummaryMessage 发布到 Kafka 的 PnL 计算结果
type SummaryMessage struct {
	Wallet     string            `json:"wallet"`
	Token      string            `json:"token"`
	Summary    domain.PnlSummary `json:"summary"`
	Signatures int               `json:"signatures"` // 参与计算的交易数
	ComputedAt int64             `json:"computedAt"` // Unix 毫秒
}

func NewSummaryMessage(wallet, token types.Pubkey, summary domain.PnlSummary, signatures int, at time.Time) SummaryMessage {
	return SummaryMessage{
		Wallet:     wallet.String(),
		Token:      token.String(),
		Summary:    summary,
		Signatures: signatures,
		ComputedAt: at.UnixMilli(),
	}
}

// BuildJob 以钱包地址为 key，同一钱包的结果落在同一分区
func (m SummaryMessage) BuildJob(topic string) (*KafkaJob, error) {
	value, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return &KafkaJob{Topic: topic, Key: []byte(m.Wallet), Value: value}, nil
}

// SummaryPublisher 发送失败只记录日志，不影响调用方
type SummaryPublisher struct {
	producer *kafka.Producer
	topic    string
	timeout  time.Duration
}

func NewSummaryPublisher(producer *kafka.Producer, topic string, timeout time.Duration) *SummaryPublisher {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &SummaryPublisher{producer: producer, topic: topic, timeout: timeout}
}

func (p *SummaryPublisher) Publish(ctx context.Context, msg SummaryMessage) {
	job, err := msg.BuildJob(p.topic)
	if err != nil {
		logger.Errorf("[mq] 序列化汇总结果失败: wallet=%s, token=%s, err=%v", msg.Wallet, msg.Token, err)
		return
	}

	_, failed := SendKafkaJobs(ctx, p.producer, []*KafkaJob{job}, p.timeout)
	for _, f := range failed {
		logger.Warnf("[mq] 发布汇总结果失败: topic=%s, wallet=%s, err=%v", p.topic, msg.Wallet, f.Err)
	}
}

func (p *SummaryPublisher) Close() {
	if p.producer == nil {
		return
	}
	p.producer.Flush(int(p.timeout.Milliseconds()))
	p.producer.Close()
}
