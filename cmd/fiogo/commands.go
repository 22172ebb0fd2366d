/*Subcommand implementations*/
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/liborw/fiogo/pkg/crypto"
	"github.com/liborw/fiogo/pkg/domain"
	"github.com/liborw/fiogo/pkg/fio"
	"github.com/liborw/fiogo/pkg/marker"
	"github.com/liborw/fiogo/pkg/store"
)

type globals struct {
	Token      string `env:"FIO_API_TOKEN" help:"Fio API token. Falls back to the sealed token file when empty."`
	TokenFile  string `default:"fio-token.sealed" help:"Path to the sealed token file."`
	TokenKey   string `env:"FIO_TOKEN_KEY" help:"Key for sealing/opening the token file."`
	BaseURL    string `default:"https://fioapi.fio.cz/v1/rest" help:"Override the API base URL."`
	MarkerFile string `default:"fio-marker.json" help:"Where the download marker is persisted."`
}

func (g *globals) client() (*fio.Client, error) {
	token := g.Token
	if token == "" {
		sealed, err := os.ReadFile(g.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("no token given and no sealed token file: %w", err)
		}
		if g.TokenKey == "" {
			return nil, fmt.Errorf("sealed token file needs FIO_TOKEN_KEY to open")
		}
		raw, err := crypto.Open(strings.TrimSpace(string(sealed)), g.TokenKey)
		if err != nil {
			return nil, fmt.Errorf("open sealed token: %w", err)
		}
		token = string(raw)
	}

	return fio.New(token,
		fio.WithBaseURL(g.BaseURL),
		fio.WithMarkerStore(marker.NewJSONFile(g.MarkerFile)),
	)
}

// openStore picks a transaction sink from an --out value.
func openStore(out string) (store.Store, error) {
	bits := strings.SplitN(out, ":", 2)
	if len(bits) != 2 {
		return nil, fmt.Errorf("invalid out path, expected [jsonfile:/path/to/file.json] or [es8:http://elasticsearch:9200]")
	}

	if bits[0] == "es8" {
		return store.NewElasticsearchV8(bits[1]), nil
	}
	return store.NewJSONFile(bits[1]), nil
}

// deliver prints the raw payload, or parses it and hands it to a sink
// when --out is set.
func deliver(c *fio.Client, format fio.TransactionFormat, payload []byte, out string) error {
	if out == "" {
		fmt.Println(string(payload))
		return nil
	}

	txns, err := c.ParseTransactions(format, payload)
	if err != nil {
		return err
	}
	sink, err := openStore(out)
	if err != nil {
		return err
	}

	ptrs := make([]*domain.Transaction, len(txns))
	for i := range txns {
		ptrs[i] = &txns[i]
	}
	return sink.Write(ptrs)
}

type fetchPeriodCmd struct {
	Start  string `required:"" help:"Start date YYYY-MM-DD."`
	End    string `required:"" help:"End date YYYY-MM-DD."`
	Format string `default:"json" enum:"csv,gpc,html,json,ofx,xml" help:"Report format."`
	Out    string `help:"Write parsed transactions to [jsonfile:/path/file.json es8:http://myelasticsearch:9200] (json only)."`
}

func (f *fetchPeriodCmd) Run(g *globals) error {
	from, err := domain.ParseDate(f.Start)
	if err != nil {
		return err
	}
	to, err := domain.ParseDate(f.End)
	if err != nil {
		return err
	}

	c, err := g.client()
	if err != nil {
		return err
	}
	format := fio.TransactionFormat(f.Format)
	payload, err := c.FetchTransactionReport(context.Background(), fio.Period{From: from, To: to}, format)
	if err != nil {
		return err
	}
	return deliver(c, format, payload, f.Out)
}

type fetchLastCmd struct {
	Format string `default:"json" enum:"csv,gpc,html,json,ofx,xml" help:"Report format."`
	Out    string `help:"Write parsed transactions to [jsonfile:/path/file.json es8:http://myelasticsearch:9200] (json only)."`
	Mark   bool   `help:"Advance the download marker after the payload is delivered."`
}

func (f *fetchLastCmd) Run(g *globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	format := fio.TransactionFormat(f.Format)
	payload, err := c.FetchTransactionReportSinceLastDownload(context.Background(), format)
	if err != nil {
		return err
	}
	if err := deliver(c, format, payload, f.Out); err != nil {
		return err
	}

	if !f.Mark {
		return nil
	}
	// marker moves to the end of the covered range, or today when the
	// payload format hides it
	end := domain.Today()
	if format.Parseable() {
		if report, err := c.ParseReport(format, payload); err == nil && !report.Account.DateEnd.IsZero() {
			end = report.Account.DateEnd
		}
	}
	return c.MarkDownloaded(end)
}

type fetchStatementCmd struct {
	Year   int    `required:"" help:"Statement year."`
	ID     int64  `required:"" name:"id" help:"Statement number within the year."`
	Format string `default:"json" enum:"csv,gpc,html,json,ofx,xml,pdf,mt940,cba_xml,sba_xml" help:"Statement format."`
	Output string `help:"Output file, required for binary formats such as pdf."`
}

func (f *fetchStatementCmd) Run(g *globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	format := fio.StatementFormat(f.Format)
	payload, err := c.FetchAccountStatement(context.Background(), f.Year, f.ID, format)
	if err != nil {
		return err
	}

	if format.Binary() {
		if f.Output == "" {
			return fmt.Errorf("--output is required for binary formats")
		}
		if err := os.WriteFile(f.Output, payload, 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %d bytes to %s\n", len(payload), f.Output)
		return nil
	}

	if f.Output != "" {
		return os.WriteFile(f.Output, payload, 0644)
	}
	fmt.Print(string(payload))
	return nil
}

type lastInfoCmd struct{}

func (l *lastInfoCmd) Run(g *globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	info, err := c.FetchLastStatementInfo(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("year=%d, statement_id=%d\n", info.Year, info.StatementID)
	return nil
}

type setLastIDCmd struct {
	ID int64 `arg:"" name:"id" help:"Transaction ID to resume after."`
}

func (s *setLastIDCmd) Run(g *globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	if err := c.SetLastDownloadedTransactionID(context.Background(), s.ID); err != nil {
		return err
	}
	fmt.Printf("set last downloaded transaction id to %d\n", s.ID)
	return nil
}

type setLastDateCmd struct {
	Date string `arg:"" help:"Marker date YYYY-MM-DD."`
}

func (s *setLastDateCmd) Run(g *globals) error {
	date, err := domain.ParseDate(s.Date)
	if err != nil {
		return err
	}
	c, err := g.client()
	if err != nil {
		return err
	}
	if err := c.SetLastUnsuccessfulDownloadDate(date); err != nil {
		return err
	}
	fmt.Printf("set last unsuccessful download date to %s\n", domain.FormatDate(date))
	return nil
}

type saveTokenCmd struct{}

func (s *saveTokenCmd) Run(g *globals) error {
	if g.Token == "" {
		return fmt.Errorf("pass the token via --token or FIO_API_TOKEN")
	}
	if _, err := domain.NewToken(g.Token); err != nil {
		return err
	}

	key := g.TokenKey
	if key == "" {
		var err error
		key, err = crypto.NewKey()
		if err != nil {
			return err
		}
		fmt.Printf("generated a new key, keep it:\nexport FIO_TOKEN_KEY=%s\n", key)
	}

	sealed, err := crypto.Seal([]byte(g.Token), key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(g.TokenFile, []byte(sealed), 0600); err != nil {
		return err
	}
	fmt.Printf("sealed token written to %s\n", g.TokenFile)
	return nil
}
