/*CSV export tool for the stored transaction blob, without running the server.*/
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	appcli "github.com/michaelfuchaka/Personal-Finance-Tracker/internal/cli"
	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/core"
	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/export"
	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/persist"
)

var cli struct {
	Csv csvCmd `cmd:"" help:"Export stored transactions as CSV." default:"withargs"`
}

type csvCmd struct {
	Backend string `default:"file" enum:"file,sqlite" help:"Storage backend to read [file sqlite]."`
	File    string `default:"./data/transactions.json" help:"Path of the JSON blob file (file backend)."`
	Db      string `default:"./data/fintrack.db" help:"Path of the SQLite database (sqlite backend)."`
	Key     string `default:"financeTrackerTransactions" help:"Storage key the blob is saved under."`
	Out     string `help:"Output path. Defaults to transactions_YYYY-MM-DD.csv; use - for stdout."`
}

func (c *csvCmd) Run() error {
	logger := appcli.SetupLogger()
	appcli.LoadEnvFile()

	res, err := persist.Open(persist.Config{
		Kind:         persist.Kind(c.Backend),
		FilePath:     c.File,
		SQLiteDBPath: c.Db,
		Key:          c.Key,
	}, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() { _ = res.Cleanup() }()

	data, ok, err := res.Store.Load(context.Background())
	if err != nil {
		return fmt.Errorf("load blob: %w", err)
	}

	var txns []core.Transaction
	if ok {
		if err := json.Unmarshal(data, &txns); err != nil {
			return fmt.Errorf("decode blob: %w", err)
		}
	}
	if len(txns) == 0 {
		return fmt.Errorf("no transactions to export")
	}

	csv := export.Render(txns)

	out := c.Out
	if out == "-" {
		_, err := fmt.Print(csv)
		return err
	}
	if out == "" {
		out = export.Filename(time.Now())
	}
	if err := os.WriteFile(out, []byte(csv), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("Transactions exported", "count", len(txns), "path", out)
	return nil
}

func main() {
	ctx := kong.Parse(&cli)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
