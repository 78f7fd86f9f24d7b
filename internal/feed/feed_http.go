package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/metrics"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/stats"
)

// statLine is the wire shape the HTTP provider expects: identity fields plus
// a free-form stats object that goes through the normalizer. Provider payloads
// disagree on stat key names, which is exactly what the alias tables absorb.
type statLine struct {
	PlayerID string         `json:"playerId"`
	Name     string         `json:"name"`
	Position string         `json:"position"`
	Stats    map[string]any `json:"stats"`
}

func (f *Feed) runHTTP(ctx context.Context, out chan<- stats.Event) error {
	if f.baseURL == "" {
		return errors.New("http provider requires a base url")
	}
	client := &http.Client{Timeout: 10 * time.Second}
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ts := <-ticker.C:
			events, err := f.fetch(ctx, client)
			if err != nil {
				f.log.Warn().Err(err).Msg("stats poll failed")
				continue
			}
			for _, ev := range events {
				if ev.Ts.IsZero() {
					ev.Ts = ts
				}
				select {
				case out <- ev:
					metrics.StatEventsTotal.WithLabelValues(ProviderHTTP).Inc()
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}

func (f *Feed) fetch(ctx context.Context, client *http.Client) ([]stats.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/playerstats", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats endpoint returned %d", resp.StatusCode)
	}

	var lines []statLine
	if err := json.NewDecoder(resp.Body).Decode(&lines); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}

	events := make([]stats.Event, 0, len(lines))
	for _, line := range lines {
		if line.PlayerID == "" {
			continue
		}
		events = append(events, stats.Event{
			PlayerID: line.PlayerID,
			Name:     line.Name,
			Position: line.Position,
			Class:    stats.ParseClass(line.Position),
			Bundle:   stats.Normalize(line.Stats),
			Advanced: stats.NormalizeAdvanced(line.Stats),
		})
	}
	return events, nil
}
