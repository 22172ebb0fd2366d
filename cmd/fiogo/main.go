/*Basic command structure*/
package main

import (
	"github.com/alecthomas/kong"
)

// cli commands / args available
var cli struct {
	Globals globals `embed:""`

	FetchPeriod    fetchPeriodCmd    `cmd:"" help:"Fetch transactions for a date range."`
	FetchLast      fetchLastCmd      `cmd:"" help:"Fetch transactions since the last download marker."`
	FetchStatement fetchStatementCmd `cmd:"" help:"Fetch an official account statement by year and number."`
	LastInfo       lastInfoCmd       `cmd:"" help:"Show year and number of the newest account statement."`
	SetLastID      setLastIDCmd      `cmd:"" help:"Move the bank-side resume pointer to a transaction ID."`
	SetLastDate    setLastDateCmd    `cmd:"" help:"Rewind the local download marker to a date."`
	SaveToken      saveTokenCmd      `cmd:"" help:"Seal the API token into a file for later runs."`
}

func main() {
	ctx := kong.Parse(&cli)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
