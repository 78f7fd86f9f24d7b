// Command replay drives the pricing engine offline: it reads stat lines from
// a JSONL file, processes them in order, and prints the resulting prices.
// Useful for backtesting weight changes against a recorded season.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/engine"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/history"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/pricing"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/stats"
	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/util"
)

type replayLine struct {
	PlayerID string         `json:"playerId"`
	Name     string         `json:"name"`
	Position string         `json:"position"`
	Ts       time.Time      `json:"ts"`
	Stats    map[string]any `json:"stats"`
}

func main() {
	input := flag.String("input", "", "JSONL file of stat lines to replay")
	basePrice := flag.Float64("base", 100, "Base price for first-seen players")
	leagueAvg := flag.Float64("league-avg", 1, "League average performance baseline")
	sensitivity := flag.Float64("sensitivity", 1, "Performance sensitivity")
	flag.Parse()

	log := util.NewConsoleLogger("info")
	if *input == "" {
		log.Fatal().Msg("-input is required")
	}

	file, err := os.Open(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("open input")
	}
	defer file.Close()

	store, err := history.NewMemoryStore()
	if err != nil {
		log.Fatal().Err(err).Msg("build store")
	}
	defer store.Close()

	eng := engine.New(store, engine.Options{
		BasePrice:   *basePrice,
		LeagueAvg:   *leagueAvg,
		Sensitivity: *sensitivity,
		Delta:       pricing.DeltaParams{},
	}, log)

	ctx := context.Background()
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		var line replayLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			log.Warn().Err(err).Int("line", lineNo).Msg("skipping bad line")
			continue
		}
		if line.PlayerID == "" {
			continue
		}
		res := eng.Process(ctx, stats.Event{
			PlayerID: line.PlayerID,
			Name:     line.Name,
			Position: line.Position,
			Class:    stats.ParseClass(line.Position),
			Bundle:   stats.Normalize(line.Stats),
			Advanced: stats.NormalizeAdvanced(line.Stats),
			Ts:       line.Ts,
		})
		fmt.Printf("%-20s %-4s %8.2f  %+.2f%%\n", line.PlayerID, line.Position, res.Price, res.AppliedPct*100)
	}
	if err := scanner.Err(); err != nil {
		log.Fatal().Err(err).Msg("read input")
	}

	ids, _ := store.PlayerIDs(ctx)
	fmt.Printf("\nreplayed %d lines across %d players\n", lineNo, len(ids))
}
