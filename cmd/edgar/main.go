// Command edgar cleans locally stored SEC filings and extracts their MD&A
// and Item 1 sections, and downloads index files and filings from EDGAR.
//
// Usage:
//
//	edgar clean-filings    [--start=INT] [--end=INT] [--form-type=STR]
//	edgar extract-mda      [--start=INT] [--end=INT] [--form-type=STR]
//	edgar extract-item1    [--start=INT] [--end=INT] [--form-type=STR]
//	edgar download-index   [--start=INT] [--end=INT] [--user-agent=STR]
//	edgar download-filings [--start=INT] [--end=INT] [--form-type=STR] [-n=INT] [--user-agent=STR]
//	edgar count-filings    [--start=INT] [--end=INT] [--form-type=STR]
//	edgar sample-filings   [--start=INT] [--end=INT] [--form-type=STR] [--section-type=STR] [-n=INT] [--seed=INT]
//	edgar gather-sections  [--form-type=STR] [--section-type=STR] [--min-sec-length=INT]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/md-experiments/scraper-edgar/pkg/core/config"
	"github.com/md-experiments/scraper-edgar/pkg/core/corpus"
	"github.com/md-experiments/scraper-edgar/pkg/core/filings"
	"github.com/md-experiments/scraper-edgar/pkg/core/pipeline"
	"github.com/md-experiments/scraper-edgar/pkg/core/scrape"
	"github.com/md-experiments/scraper-edgar/pkg/core/store"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	command := os.Args[1]

	var (
		start       int
		end         int
		formType    string
		sectionType string
		configPath  string
		userAgent   string
		n           int
		seed        int64
		minSecLen   int
		withCatalog bool
	)
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	fs.IntVar(&start, "start", 1996, "Start year")
	fs.IntVar(&end, "end", 2020, "End year")
	fs.StringVar(&formType, "form-type", "10-k", "Form type (one of: 8-k, 10-k, 10-k/a, 10-q, 10-q/a)")
	fs.StringVar(&sectionType, "section-type", "mda", "Section type (one of: mda, item1)")
	fs.StringVar(&configPath, "config", os.Getenv("EDGAR_CONFIG"), "Optional config file (.yaml or .hjson)")
	fs.StringVar(&userAgent, "user-agent", "", "Agent to identify with SEC EDGAR ('ORG_NAME MAIL_ADDRESS')")
	fs.IntVar(&n, "n", 10, "Number of filings per quarter")
	fs.Int64Var(&seed, "seed", 2020, "Random seed for sampling")
	fs.IntVar(&minSecLen, "min-sec-length", 0, "Minimum section length in characters (0 uses the configured default)")
	fs.BoolVar(&withCatalog, "with-catalog", false, "Record processed filings in the Postgres catalog (DATABASE_URL)")
	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if userAgent != "" {
		cfg.UserAgent = userAgent
	}
	if minSecLen > 0 {
		cfg.MinSectionLen = minSecLen
	}

	form, err := filings.ParseFormType(formType)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid form type")
	}
	section := filings.SectionMDA
	if sectionType == "item1" {
		section = filings.SectionItem1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := corpus.NewStore(cfg.OutputRoot)
	client := scrape.NewClient(cfg.UserAgent)

	switch command {
	case "clean-filings", "extract-mda", "extract-item1":
		kind := pipeline.KindClean
		switch command {
		case "extract-mda":
			kind = pipeline.KindMDA
		case "extract-item1":
			kind = pipeline.KindItem1
		}
		p := pipeline.New(cfg, log.Logger)
		if withCatalog {
			if err := store.InitDB(ctx); err != nil {
				log.Fatal().Err(err).Msg("failed to initialize catalog database")
			}
			defer store.Close()
			p = p.WithCatalog(store.NewFilingRepo())
		}
		stats, err := p.Run(ctx, kind, start, end, form)
		if err != nil {
			log.Fatal().Err(err).Msg("run failed")
		}
		fmt.Printf("\n%s completed! processed=%d skipped=%d empty=%d failed=%d\n",
			kind, stats.Processed, stats.Skipped, stats.Empty, stats.Failed)
		fmt.Printf("Log-file written under %s\n", st.FormDir(form))

	case "download-index":
		if err := client.DownloadIndex(ctx, st, start, end, log.Logger); err != nil {
			log.Fatal().Err(err).Msg("index download failed")
		}

	case "download-filings":
		if err := client.DownloadFilings(ctx, st, start, end, form, n, log.Logger); err != nil {
			log.Fatal().Err(err).Msg("filing download failed")
		}

	case "count-filings":
		if err := client.CountFilings(st, start, end, form, log.Logger); err != nil {
			log.Fatal().Err(err).Msg("count failed")
		}

	case "sample-filings":
		if err := st.Sample(form, section, start, end, n, seed); err != nil {
			log.Fatal().Err(err).Msg("sampling failed")
		}

	case "gather-sections":
		count, err := st.Gather(form, section, cfg.MinSectionLen)
		if err != nil {
			log.Fatal().Err(err).Msg("gather failed")
		}
		fmt.Printf("\nGathered %d sections\n", count)

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: edgar COMMAND [flags]

commands:
  clean-filings     Normalize raw filings in place
  extract-mda       Extract the MD&A section of each filing
  extract-item1     Extract the Item 1 section of each filing
  download-index    Download quarterly master index files
  download-filings  Download filings listed in the index files
  count-filings     Count filings per quarter into a CSV
  sample-filings    Copy a random validation sample with a CSV manifest
  gather-sections   Pool extracted sections into one corpus file

run 'edgar COMMAND -h' for flags`)
}
