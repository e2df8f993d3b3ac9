package svc

import (
	"jup-pnl-sol/internal/config"
	"jup-pnl-sol/internal/logic/chain"
	"jup-pnl-sol/internal/logic/indexer"
	"jup-pnl-sol/internal/logic/pnl"
	"jup-pnl-sol/internal/logic/price"
	"jup-pnl-sol/internal/logic/swapitem"
	"jup-pnl-sol/internal/mq"
	"jup-pnl-sol/internal/service"
	"jup-pnl-sol/pkg/logger"
)

// ServiceContext 包含 PnL 服务运行所需的资源
type ServiceContext struct {
	Config     config.ApiConfig
	PnlService *service.PnlService
	publisher  *mq.SummaryPublisher
}

// NewServiceContext 创建服务上下文，Kafka 未配置时不发布结果
func NewServiceContext(c config.ApiConfig) (*ServiceContext, error) {
	rpc := chain.NewRpcClient(c.Rpc.Endpoint)

	oracle := price.NewOracle(
		price.NewHermesClient(c.PriceServiceConf.HermesEndpoint, c.PriceServiceConf.Timeout()),
		price.NewJupiterClient(c.PriceServiceConf.JupiterEndpoint, c.PriceServiceConf.Timeout()),
		c.PriceServiceConf.HistoricalAttempts,
	)

	idx := indexer.New(
		rpc,
		swapitem.NewBuilder(oracle),
		pnl.NewEngine(oracle, c.PriceServiceConf.CurrentAttempts),
		indexer.Options{
			MaxSignatures:  c.Rpc.MaxSignatures,
			FetchAttempts:  c.Rpc.FetchAttempts,
			Workers:        c.Rpc.Workers,
			RequestTimeout: c.Rpc.RequestTimeout(),
		},
	)

	ctx := &ServiceContext{Config: c}

	if c.KafkaProducerConf.Enabled() {
		producer, err := mq.NewKafkaProducer(c.KafkaProducerConf)
		if err != nil {
			logger.Errorf("Kafka producer 初始化失败: %v", err)
			return nil, err
		}
		ctx.publisher = mq.NewSummaryPublisher(producer, c.KafkaProducerConf.Topic, c.KafkaProducerConf.SendTimeout())
		ctx.PnlService = service.NewPnlService(idx, ctx.publisher)
	} else {
		ctx.PnlService = service.NewPnlService(idx, nil)
	}

	logger.Infof("服务上下文初始化完成: rpc=%s, kafka=%v", c.Rpc.Endpoint, c.KafkaProducerConf.Enabled())
	return ctx, nil
}

// Close 关闭服务上下文中的资源
func (ctx *ServiceContext) Close() {
	if ctx.publisher != nil {
		ctx.publisher.Close()
	}
}
