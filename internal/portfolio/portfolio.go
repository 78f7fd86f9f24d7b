// Package portfolio implements the paper-trading account: virtual cash and
// per-player share lots bought and sold at the engine's computed prices. One
// account per process; there is no order book or matching, a trade simply
// fills at the quoted price.
package portfolio

import (
	"errors"
	"sync"
	"time"
)

const epsilon = 1e-9

// Side enumerates trade directions.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Trade is one executed paper fill.
type Trade struct {
	PlayerID string    `json:"player_id"`
	Side     Side      `json:"side"`
	Shares   float64   `json:"shares"`
	Price    float64   `json:"price"`
	Ts       time.Time `json:"ts"`
}

// TradeRecorder captures executed trades for later inspection.
type TradeRecorder interface {
	Record(Trade)
}

// Limits encodes guard-rails on how much a single trade may take on.
type Limits struct {
	MaxNotionalPerTrade float64
	MaxSharesPerPlayer  float64
}

// Allow reports whether a trade notional fits under the per-trade cap. A zero
// cap disables the check.
func (l Limits) Allow(notional float64) bool {
	return l.MaxNotionalPerTrade <= 0 || notional <= l.MaxNotionalPerTrade
}

type positionState struct {
	Shares  float64
	AvgCost float64
}

// Account tracks cash, realized PnL, and per-player positions.
type Account struct {
	mu           sync.Mutex
	startingCash float64
	cash         float64
	realizedPnL  float64
	limits       Limits
	positions    map[string]positionState
	recorder     TradeRecorder
}

// PositionSnapshot exposes a read-only view of a single player position.
type PositionSnapshot struct {
	Shares      float64 `json:"shares"`
	AvgCost     float64 `json:"avg_cost"`
	MarketValue float64 `json:"market_value"`
	Unrealized  float64 `json:"unrealized"`
}

// Snapshot is a consistent view of the account, marked to market using the
// supplied prices.
type Snapshot struct {
	Cash        float64                     `json:"cash"`
	RealizedPnL float64                     `json:"realized_pnl"`
	Equity      float64                     `json:"equity"`
	Positions   map[string]PositionSnapshot `json:"positions"`
}

// NewAccount constructs an account with starting cash and trade limits.
func NewAccount(startingCash float64, limits Limits) *Account {
	return &Account{
		startingCash: startingCash,
		cash:         startingCash,
		limits:       limits,
		positions:    make(map[string]positionState),
	}
}

// SetRecorder attaches a trade recorder; call before trading starts.
func (a *Account) SetRecorder(r TradeRecorder) { a.recorder = r }

// StartingCash returns the initial bankroll.
func (a *Account) StartingCash() float64 { return a.startingCash }

// Execute fills a market trade at the provided price, mutating balances if
// every check passes.
func (a *Account) Execute(playerID string, side Side, shares, price float64) (Trade, error) {
	if playerID == "" {
		return Trade{}, errors.New("player id required")
	}
	if shares <= 0 {
		return Trade{}, errors.New("share count must be positive")
	}
	if price <= 0 {
		return Trade{}, errors.New("price must be positive")
	}
	notional := shares * price
	if !a.limits.Allow(notional) {
		return Trade{}, errors.New("trade notional exceeds limit")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	state := a.positions[playerID]
	switch side {
	case Buy:
		if notional > a.cash+epsilon {
			return Trade{}, errors.New("insufficient cash for buy")
		}
		newShares := state.Shares + shares
		if a.limits.MaxSharesPerPlayer > 0 && newShares > a.limits.MaxSharesPerPlayer+epsilon {
			return Trade{}, errors.New("position limit exceeded")
		}
		newAvg := price
		if newShares > 0 {
			newAvg = ((state.AvgCost * state.Shares) + notional) / newShares
		}
		a.cash -= notional
		a.positions[playerID] = positionState{Shares: newShares, AvgCost: newAvg}

	case Sell:
		if state.Shares <= 0 || state.Shares+epsilon < shares {
			return Trade{}, errors.New("insufficient shares to sell")
		}
		a.realizedPnL += (price - state.AvgCost) * shares
		a.cash += notional
		newShares := state.Shares - shares
		if newShares <= epsilon {
			delete(a.positions, playerID)
		} else {
			a.positions[playerID] = positionState{Shares: newShares, AvgCost: state.AvgCost}
		}

	default:
		return Trade{}, errors.New("unknown trade side")
	}

	trade := Trade{PlayerID: playerID, Side: side, Shares: shares, Price: price, Ts: time.Now().UTC()}
	if a.recorder != nil {
		a.recorder.Record(trade)
	}
	return trade, nil
}

// Snapshot returns a copy of balances marked using the supplied prices.
// Players with no quote contribute zero market value.
func (a *Account) Snapshot(prices map[string]float64) Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	positions := make(map[string]PositionSnapshot, len(a.positions))
	equity := a.cash
	for id, pos := range a.positions {
		mark := prices[id]
		marketValue := pos.Shares * mark
		unrealized := (mark - pos.AvgCost) * pos.Shares
		if mark == 0 {
			marketValue = 0
			unrealized = 0
		}
		positions[id] = PositionSnapshot{
			Shares:      pos.Shares,
			AvgCost:     pos.AvgCost,
			MarketValue: marketValue,
			Unrealized:  unrealized,
		}
		equity += marketValue
	}

	return Snapshot{
		Cash:        a.cash,
		RealizedPnL: a.realizedPnL,
		Equity:      equity,
		Positions:   positions,
	}
}

// Shares returns the current position size for a player.
func (a *Account) Shares(playerID string) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.positions[playerID].Shares
}

// RealizedPnL returns total closed-trade profit and loss.
func (a *Account) RealizedPnL() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.realizedPnL
}
