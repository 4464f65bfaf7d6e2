package assessor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Row is one child-table row keyed by field name, already normalized.
// It is the shape handed to the record builders.
type Row map[string]any

// rowSpec describes one child table on the property page: where it
// sits and how each cell, in order, becomes a keyed value.
type rowSpec struct {
	name       string
	tableIndex int
	columns    []rowColumn
}

type rowColumn struct {
	key       string
	normalize func(string) any
}

func asText(s string) any  { return s }
func asInt(s string) any   { return ParseInt(s) }
func asFloat(s string) any { return ParseFloat(s) }

var valuationSpec = rowSpec{
	name:       "valuation history",
	tableIndex: valuationTableIndex,
	columns: []rowColumn{
		{"year", asInt},
		{"market_value", asInt},
		{"taxable_market_value", asInt},
		{"gross_assessed", asInt},
		{"exemption", asInt},
		{"net_assessed", asInt},
		{"millage", asFloat},
		{"tax", asFloat},
		{"tax_savings", asFloat},
	},
}

var transactionSpec = rowSpec{
	name:       "deed transactions",
	tableIndex: deedTableIndex,
	columns: []rowColumn{
		{"date", asText},
		{"type", asText},
		{"book", asInt},
		{"page", asInt},
		{"price", asInt},
		{"grantor", asText},
		{"grantee", asText},
	},
}

var permitSpec = rowSpec{
	name:       "building permits",
	tableIndex: permitTableIndex,
	columns: []rowColumn{
		{"date", asText},
		{"permit_number", asText},
		{"provided_by", asText},
		{"building_number", asInt},
		{"description", asText},
		{"estimated_cost", asInt},
		{"status", asText},
	},
}

var buildingSpec = rowSpec{
	name:       "buildings",
	tableIndex: buildingTableIndex,
	columns: []rowColumn{
		{"building_number", asInt},
		{"vacant_or_improved", asText},
		{"building_description", asText},
		{"year_built", asInt},
		{"square_feet", asFloat},
		{"stories", asFloat},
	},
}

// rowList fetches the property page and splits one child table into
// keyed rows. The first row is the header and is skipped; data rows
// short on cells are a structural mismatch, not a partial result.
func (c *Client) rowList(ctx context.Context, propertyid int64, spec rowSpec) ([]Row, error) {
	page, err := c.propertyPage(ctx, propertyid)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}
	rows, err := tableRows(doc, spec.tableIndex)
	if err != nil {
		return nil, tagProperty(propertyid, err)
	}

	var out []Row
	for i := 1; i < rows.Length(); i++ {
		cells := rows.Eq(i).Find("td")
		if cells.Length() < len(spec.columns) {
			return nil, &StructuralError{
				PropertyID: propertyid,
				Stage:      spec.name,
				Detail: fmt.Sprintf(
					"row %d has %d cells, expected %d",
					i, cells.Length(), len(spec.columns),
				),
			}
		}

		row := Row{}
		for j, col := range spec.columns {
			text, err := cellText(rows, i, j, extractCollapsed)
			if err != nil {
				return nil, tagProperty(propertyid, err)
			}
			row[col.key] = col.normalize(text)
		}
		out = append(out, row)
	}
	return out, nil
}
