package payload

import (
	"time"

	"github.com/shopspring/decimal"
)

// SignalType classifies a trading signal.
type SignalType string

const (
	SignalEntryLong  SignalType = "entry_long"
	SignalEntryShort SignalType = "entry_short"
	SignalExitLong   SignalType = "exit_long"
	SignalExitShort  SignalType = "exit_short"
)

// Signal is one trading signal with metadata.
type Signal struct {
	ID         string          `json:"id"`
	Symbol     string          `json:"symbol"`
	Type       SignalType      `json:"type"`
	Price      decimal.Decimal `json:"price"`
	Timestamp  time.Time       `json:"timestamp"`
	Expiration *time.Time      `json:"expiration,omitempty"`
	Confidence float64         `json:"confidence"` // 0.0 to 1.0
	Metadata   map[string]any  `json:"metadata,omitempty"`
}

// Signals is the output of a signal-generation module for one cycle.
type Signals struct {
	Signals []Signal `json:"signals"`
}

func (Signals) Kind() Kind { return KindSignals }

// RiskParameters sizes and bounds a prospective trade.
type RiskParameters struct {
	SignalID             string           `json:"signal_id"`
	PositionSize         decimal.Decimal  `json:"position_size"`
	StopLossPrice        decimal.Decimal  `json:"stop_loss_price"`
	TakeProfitPrice      *decimal.Decimal `json:"take_profit_price,omitempty"`
	TrailingStop         bool             `json:"trailing_stop"`
	TrailingStopDistance *decimal.Decimal `json:"trailing_stop_distance,omitempty"`
	MaxDrawdown          *decimal.Decimal `json:"max_drawdown,omitempty"`
}

// Risk is the output of a risk-management module for one cycle.
type Risk struct {
	Parameters []RiskParameters `json:"parameters"`
}

func (Risk) Kind() Kind { return KindRisk }

// OrderType and OrderSide classify an order.
type (
	OrderType   string
	OrderSide   string
	TimeInForce string
)

const (
	OrderMarket    OrderType = "market"
	OrderLimit     OrderType = "limit"
	OrderStop      OrderType = "stop"
	OrderStopLimit OrderType = "stop_limit"

	SideBuy  OrderSide = "buy"
	SideSell OrderSide = "sell"

	TifGoodTillCancel    TimeInForce = "good_till_cancel"
	TifImmediateOrCancel TimeInForce = "immediate_or_cancel"
	TifFillOrKill        TimeInForce = "fill_or_kill"
	TifDay               TimeInForce = "day"
)

// Order is one order produced by an execution module.
type Order struct {
	ID          string           `json:"id"`
	Symbol      string           `json:"symbol"`
	Type        OrderType        `json:"type"`
	Side        OrderSide        `json:"side"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Price       *decimal.Decimal `json:"price,omitempty"`      // limit and stop-limit
	StopPrice   *decimal.Decimal `json:"stop_price,omitempty"` // stop and stop-limit
	TimeInForce TimeInForce      `json:"time_in_force"`
	CreatedAt   time.Time        `json:"created_at"`
	SignalID    string           `json:"signal_id,omitempty"`
	Status      string           `json:"status"` // created, submitted, filled, canceled, rejected
}

// Orders is the output of an execution module for one cycle.
type Orders struct {
	Orders []Order `json:"orders"`
}

func (Orders) Kind() Kind { return KindOrders }

// Trade is one executed trade.
type Trade struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	Symbol     string          `json:"symbol"`
	Side       OrderSide       `json:"side"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Timestamp  time.Time       `json:"timestamp"`
	Commission decimal.Decimal `json:"commission"`
}

// Trades is a collection of executed trades.
type Trades struct {
	Trades []Trade `json:"trades"`
}

func (Trades) Kind() Kind { return KindTrades }

// Metrics summarizes trading performance, as produced by monitoring and
// reporting modules.
type Metrics struct {
	TotalTrades   int             `json:"total_trades"`
	WinningTrades int             `json:"winning_trades"`
	LosingTrades  int             `json:"losing_trades"`
	TotalPnL      decimal.Decimal `json:"total_pnl"`
	WinRate       float64         `json:"win_rate"`
	AverageWin    decimal.Decimal `json:"average_win"`
	AverageLoss   decimal.Decimal `json:"average_loss"`
	MaxDrawdown   decimal.Decimal `json:"max_drawdown"`
}

func (Metrics) Kind() Kind { return KindMetrics }
