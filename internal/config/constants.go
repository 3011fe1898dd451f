// Static platform constants shared by every service.
package config

// Exchange identifiers.
const (
	ExchangeDeribit = "deribit"
	ExchangeBinance = "binance"
)

// SupportedExchanges lists the exchanges the platform has connectors for.
var SupportedExchanges = []string{ExchangeDeribit, ExchangeBinance}

// DeribitMainAccountID is the primary system account on Deribit.
const DeribitMainAccountID = "deribit-148510"

// DeribitWSURL is the production Deribit websocket endpoint.
const DeribitWSURL = "wss://www.deribit.com/ws/api/v2"

// Redis streams and consumer groups.
const (
	RedisStreamMarket                = "stream:market_data"
	RedisStreamErrors                = "stream:errors"
	RedisGroupDispatcher             = "dispatcher_group"
	RedisStateChangeChannel          = "events:state_change"
	RedisInstrumentInvalidateChannel = "system:cache:instrument:invalidate"
)

// Database table names.
const (
	OrdersTable     = "orders"
	OHLCTablePrefix = "ohlc"
)

// Error routing toggles.
const (
	ErrorTelegramEnabled = true
	ErrorRedisEnabled    = true
)

// Websocket connection parameters, in seconds.
const (
	WSReconnectBaseDelay   = 5
	WSMaxReconnectDelay    = 3600
	WSMaintenanceThreshold = 300
	WSHeartbeatInterval    = 30
	WSTimeout              = 300
)

// Redis pub/sub channels.
const (
	ChannelChartUpdate            = "market.chart.all"
	ChannelChartLowHighTick       = "market.chart.low_high_tick"
	ChannelTickerUpdateData       = "market.ticker.data"
	ChannelTickerCacheUpdating    = "market.ticker.cached"
	ChannelMarketAnalyticsUpdate  = "market.analytics"
	ChannelAbnormalTradingNotices = "market.abnormal_trading_notices"
	ChannelPortfolio              = "account.portfolio.ws"
	ChannelPortfolioREST          = "account.portfolio.rest"
	ChannelOrderREST              = "account.order.rest"
	ChannelOrderReceiving         = "account.user_changes.order"
	ChannelMyTradeReceiving       = "account.user_changes.my_trade"
	ChannelSubAccountReceiving    = "account.user_changes.sub_account"
	ChannelOrderIsAllowed         = "account.is_order_allowed"
	ChannelOrderCacheUpdating     = "account.sub_account.cached_order"
	ChannelMyTradesCacheUpdating  = "account.sub_account.cached_trade"
	ChannelPositionCacheUpdating  = "account.sub_account.cached_positions"
	ChannelSubAccountCacheUpdate  = "account.sub_account.cached_all"
	ChannelSummaryUpdating        = "others.summary.cached_all"
	ChannelSQLiteRecordUpdating   = "others.sqlite_record_updating"
)

// Deribit JSON-RPC method names.
const (
	MethodGetInstruments          = "public/get_instruments"
	MethodGetTradingviewChartData = "public/get_tradingview_chart_data"
	MethodGetAccountSummary       = "private/get_account_summary"
	MethodGetTransactionLog       = "private/get_transaction_log"
	MethodGetSubaccountsDetails   = "private/get_subaccounts_details"
	MethodGetOpenOrdersByCurrency = "private/get_open_orders_by_currency"
	MethodGetUserTradesByOrder    = "private/get_user_trades_by_order"
	MethodCancelOrder             = "private/cancel"
	MethodSimulatePME             = "private/pme/simulate"
)

// servicesRequiringDB are the services that cannot start without persistence.
var servicesRequiringDB = []string{
	"distributor", "executor", "janitor", "receiver", "analyzer", "backfill",
}

// sentinelService is the one service that talks to the OCI-hosted database.
const sentinelService = "executor"
