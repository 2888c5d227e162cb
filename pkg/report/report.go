// Package report renders human-readable views of engine state. It only
// consumes the engine's read-only queries; no matching logic lives here.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/erain9/bookmatch/pkg/core"
	"github.com/fatih/color"
	"github.com/nikolaydubina/fpdecimal"
)

var (
	cyan  = color.New(color.FgCyan).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

// FormatFixed renders a decimal with exactly the given number of
// decimal places, padding with zeros and truncating extra digits.
func FormatFixed(d fpdecimal.Decimal, places int) string {
	s := d.String()
	if places <= 0 {
		return s
	}

	whole, frac, found := strings.Cut(s, ".")
	if !found {
		return whole + "." + strings.Repeat("0", places)
	}
	if len(frac) < places {
		return whole + "." + frac + strings.Repeat("0", places-len(frac))
	}
	return whole + "." + frac[:places]
}

// PrintLadder writes the trading-ladder view for a ticker: the union of
// outstanding buy and sell levels, prices descending, one row per
// price with the aggregate bid and ask volume (blank when none).
func PrintLadder(w io.Writer, ticker string, ladder []core.LadderLevel) {
	fmt.Fprintf(w, "Ticker: %s\n", cyan(ticker))
	fmt.Fprintln(w, "Bid Size | Price  | Ask Size")
	fmt.Fprintln(w, "---------+--------+---------")

	for _, row := range ladder {
		bid := ""
		if row.BidVolume.GreaterThan(fpdecimal.Zero) {
			bid = row.BidVolume.String()
		}

		ask := ""
		if row.AskVolume.GreaterThan(fpdecimal.Zero) {
			ask = row.AskVolume.String()
		}

		fmt.Fprintf(w, "%s | %6s | %s\n",
			green(fmt.Sprintf("%8s", bid)),
			FormatFixed(row.Price, 2),
			red(ask))
	}
}

// PrintSnapshot writes the raw book view: asks highest to lowest, then
// bids highest to lowest, terminated by a sentinel marker.
func PrintSnapshot(w io.Writer, snap core.BookSnapshot) {
	fmt.Fprintln(w, "Printing OrderBook ----")

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, lvl := range snap.Asks {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", red("Sell"), FormatFixed(lvl.Price, 2), lvl.Volume.String())
	}
	for _, lvl := range snap.Bids {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", green("Buy"), FormatFixed(lvl.Price, 2), lvl.Volume.String())
	}
	tw.Flush()

	fmt.Fprintln(w, "End")
}

// PrintPnL writes the PnL accumulator at fixed 2-decimal precision
func PrintPnL(w io.Writer, pnl fpdecimal.Decimal) {
	fmt.Fprintf(w, "Total PnL: $%s\n", FormatFixed(pnl, 2))
}
