package consts

const (
	// https://www.pyth.network/price-feeds/crypto-sol-usd
	PythSOLFeedIDStr = "0xef0d8b6fda2ceba41da15d4095d1da392a0d2f8ed0c6c7bc0f4cfac8c280b56d"

	// Hermes 返回的 price.price 按固定 8 位小数解释
	PythPriceDecimals = 8

	// 稳定币固定报价 1.0（6 位小数）
	StablePriceRaw      = 1_000_000
	StablePriceDecimals = 6

	DefaultHermesEndpoint  = "https://hermes.pyth.network"
	DefaultJupiterEndpoint = "https://lite-api.jup.ag"
)
