package history

import "context"

// Store persists price series and the per-player smoothed delta state. The
// engine treats every implementation identically: the append/overwrite/cap
// rules live in AppendOrReplace, never in a backend.
//
// A store failure is never fatal to a price update; callers log it and keep
// the computed result.
type Store interface {
	// Series returns the stored series for a player, nil when absent.
	Series(ctx context.Context, playerID string) ([]PricePoint, error)
	// PutSeries replaces the stored series for a player.
	PutSeries(ctx context.Context, playerID string, series []PricePoint) error
	// Smoothed returns the player's smoothed delta state, 0 when absent.
	Smoothed(ctx context.Context, playerID string) (float64, error)
	// PutSmoothed replaces the player's smoothed delta state.
	PutSmoothed(ctx context.Context, playerID string, v float64) error
	// PlayerIDs lists every player with a stored series.
	PlayerIDs(ctx context.Context) ([]string, error)
	// Flush forces any buffered writes out. Write-through backends no-op.
	Flush(ctx context.Context) error
	// Close releases backend resources, flushing first where applicable.
	Close() error
}
