package commands

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"assessorscraper/lib/scrapers/assessor"
	"assessorscraper/lib/serviceutil"
	"assessorscraper/services/property"
)

var (
	scrapeDb       *string
	scrapeDelay    *time.Duration
	scrapeAttempts *int
)

func init() {
	scrapeDb = scrapeCmd.Flags().String("db", "property.db", "The database to write scrape results to.")
	scrapeDelay = scrapeCmd.Flags().Duration("retry-delay", time.Second*10, "How long to wait before retrying a failed fetch.")
	scrapeAttempts = scrapeCmd.Flags().Int("retry-attempts", 0, "Fetch attempts per page, 0 retries forever.")
	rootCmd.AddCommand(scrapeCmd)
}

func openService(dbPath string) *property.Service {
	client, err := assessor.NewClient(assessor.ClientOptions{
		Retry: assessor.RetryPolicy{
			Delay:       *scrapeDelay,
			MaxAttempts: *scrapeAttempts,
		},
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize assessor client", err)
	}
	svc, err := property.NewService(dbPath, client)
	if err != nil {
		serviceutil.Fatal("failed to open db", err)
	}
	return svc
}

func parsePropertyID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		serviceutil.Fatal("property ids must be numeric", err)
	}
	return id
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <propertyid> [<endid>]",
	Short: "Scrapes one property, or an inclusive range of property ids, into a database.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		start := parsePropertyID(args[0])
		end := start
		if len(args) == 2 {
			end = parsePropertyID(args[1])
		}
		if end < start {
			serviceutil.Fatal("invalid range", errors.New("end id is before start id"))
		}

		svc := openService(*scrapeDb)
		defer svc.Close()

		t1 := time.Now()
		var scraped, skipped int
		for id := start; id <= end; id++ {
			_, err := svc.ScrapeProperty(cmd.Context(), id)

			var structural *assessor.StructuralError
			switch {
			case errors.As(err, &structural):
				// pages that do not match the expected layout are
				// almost always demolished or merged parcels, log
				// and move on
				slog.Warn("skipping property", "propertyid", id, "reason", err.Error())
				skipped++
			case errors.Is(err, context.Canceled):
				slog.Info("interrupted", "scraped", scraped, "skipped", skipped)
				return
			case err != nil:
				serviceutil.Fatal("failed to scrape property", err)
			default:
				scraped++
			}
		}
		t2 := time.Now()

		slog.Info(
			"scraping done",
			"scraped", scraped,
			"skipped", skipped,
			"seconds", t2.Sub(t1).Seconds(),
		)
	},
}
