package config

import (
	"strings"
	"time"

	"github.com/zeromicro/go-zero/rest"

	"jup-pnl-sol/pkg/logger"
)

type LogConfig struct {
	Format   string `json:",default=console,options=console|json"` // 日志格式，支持 "console" 或 "json"
	LogDir   string `json:",optional"`                              // 日志目录（可为相对路径或绝对路径），为空时只输出到 stdout
	Level    string `json:",default=info"`                          // 日志级别：debug / info / warn / error
	Compress bool   `json:",optional"`                              // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// RpcConfig Solana JSON-RPC 节点及拉取参数
type RpcConfig struct {
	Endpoint         string `json:",default=https://api.mainnet-beta.solana.com"`
	MaxSignatures    int    `json:",default=25"`    // 每次请求分析的最近交易数
	FetchAttempts    int    `json:",default=5"`     // 单笔交易最大拉取次数
	Workers          int    `json:",default=25"`    // 拉取 / 构建阶段的并发上限
	RequestTimeoutMs int    `json:",default=60000"` // 单次 PnL 计算的总超时
}

func (c *RpcConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// PriceServiceConfig 价格服务配置
type PriceServiceConfig struct {
	HermesEndpoint     string `json:",default=https://hermes.pyth.network"` // Pyth Hermes 历史价格
	JupiterEndpoint    string `json:",default=https://lite-api.jup.ag"`     // Jupiter Price API v3 现价
	HistoricalAttempts int    `json:",default=3"`
	CurrentAttempts    int    `json:",default=5"`
	TimeoutMs          int    `json:",default=10000"` // 单次 HTTP 请求超时
}

func (c *PriceServiceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// KafkaProducerConfig 表示 Kafka 生产者相关配置，Brokers 为空时不发布
type KafkaProducerConfig struct {
	Brokers       string `json:",optional"`                // Kafka broker 地址，多个用英文逗号分隔
	BatchSize     int    `json:",optional"`                // 批处理大小（单位字节）
	LingerMs      int    `json:",optional"`                // 批处理最大延迟（毫秒）
	Topic         string `json:",default=jup-pnl-summary"` // 汇总结果 topic
	Partitions    int    `json:",default=3"`               // topic 不存在时创建的分区数
	SendTimeoutMs int    `json:",default=3000"`            // 单条消息发送并等待 ack 的超时
}

func (c *KafkaProducerConfig) Enabled() bool {
	return strings.TrimSpace(c.Brokers) != ""
}

func (c *KafkaProducerConfig) SendTimeout() time.Duration {
	return time.Duration(c.SendTimeoutMs) * time.Millisecond
}

// ApiConfig 是主配置结构体，用于驱动 PnL 服务
type ApiConfig struct {
	rest.RestConf

	LogConf           LogConfig           `json:"Logger"`
	Rpc               RpcConfig           `json:"Rpc"`
	PriceServiceConf  PriceServiceConfig  `json:"PriceService"`
	KafkaProducerConf KafkaProducerConfig `json:"KafkaProducer,optional"`
}
