package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"assessorscraper/lib/serviceutil"
)

var showDb *string

func init() {
	showDb = showCmd.Flags().String("db", "property.db", "The database to read from.")
	rootCmd.AddCommand(showCmd)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func cell(v any) any {
	switch v := v.(type) {
	case *int64:
		if v == nil {
			return ""
		}
		return *v
	case *float64:
		if v == nil {
			return ""
		}
		return *v
	case time.Time:
		return v.Format("2006-01-02")
	}
	return v
}

var showCmd = &cobra.Command{
	Use:   "show <propertyid>",
	Short: "Prints a previously scraped property record.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parsePropertyID(args[0])

		svc := openService(*showDb)
		defer svc.Close()

		record, err := svc.GetProperty(cmd.Context(), id)
		if errors.Is(err, sql.ErrNoRows) {
			fmt.Fprintf(os.Stderr, "property %d has not been scraped\n", id)
			os.Exit(1)
		}
		if err != nil {
			serviceutil.Fatal("failed to load property", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Field", "Value"})
		for _, row := range []struct {
			name  string
			value any
		}{
			{"Property ID", record.PropertyID},
			{"Account Number", record.AccountNumber},
			{"Type", record.PropertyType},
			{"Location", record.Location},
			{"Building Name/Occupant", record.BuildingNameOccupant},
			{"City", record.City},
			{"Owner Name 1", record.OwnerName1},
			{"Owner Name 2", record.OwnerName2},
			{"Billing Address 1", record.BillingAddress1},
			{"Billing Address 2", record.BillingAddress2},
			{"City, State, Zip", record.CityStateZip},
			{"1/4 Section", cell(record.QuarterSection)},
			{"Parent Acct", record.ParentAcct},
			{"Tax District", record.TaxDistrict},
			{"School System", record.SchoolSystem},
			{"Land Size (sq ft)", cell(record.LandSize)},
			{"Land Value", cell(record.LandValue)},
			{"1/4 Section Description", record.QuarterSectionDescription},
			{"Subdivision", record.Subdivision},
			{"Block", record.Block},
			{"Lot", record.Lot},
		} {
			t.AppendRow(table.Row{row.name, row.value})
		}
		t.Render()

		if len(record.Valuations) > 0 {
			t := newTable()
			t.AppendHeader(table.Row{
				"Year", "Market", "Taxable Market", "Gross Assessed",
				"Exemption", "Net Assessed", "Millage", "Tax", "Savings",
			})
			for _, v := range record.Valuations {
				t.AppendRow(table.Row{
					cell(v.Year), cell(v.MarketValue), cell(v.TaxableMarketValue),
					cell(v.GrossAssessed), cell(v.Exemption), cell(v.NetAssessed),
					cell(v.Millage), cell(v.Tax), cell(v.TaxSavings),
				})
			}
			t.Render()
		}

		if len(record.Deeds) > 0 {
			t := newTable()
			t.AppendHeader(table.Row{"Date", "Type", "Book", "Page", "Price", "Grantor", "Grantee"})
			for _, d := range record.Deeds {
				t.AppendRow(table.Row{
					cell(d.Date), d.Type, cell(d.Book), cell(d.Page),
					cell(d.Price), d.Grantor, d.Grantee,
				})
			}
			t.Render()
		}

		if len(record.Permits) > 0 {
			t := newTable()
			t.AppendHeader(table.Row{"Date", "Permit #", "Provided By", "Bldg #", "Description", "Est. Cost", "Status"})
			for _, p := range record.Permits {
				t.AppendRow(table.Row{
					cell(p.Date), p.PermitNumber, p.ProvidedBy,
					cell(p.BuildingNumber), p.Description,
					cell(p.EstimatedCost), p.Status,
				})
			}
			t.Render()
		}

		if len(record.Buildings) > 0 {
			t := newTable()
			t.AppendHeader(table.Row{"Bldg #", "Vacant/Improved", "Description", "Year Built", "Sq Ft", "Stories"})
			for _, b := range record.Buildings {
				t.AppendRow(table.Row{
					cell(b.BuildingNumber), b.VacantOrImproved, b.Description,
					cell(b.YearBuilt), cell(b.SquareFeet), cell(b.Stories),
				})
			}
			t.Render()
		}
	},
}
