package assessor

import (
	"bytes"
	"context"

	"github.com/PuerkitoBio/goquery"
)

// PropertySource names the page to extract: either a property id to
// fetch, or pre-fetched markup. Supplying neither yields no record
// (nil, nil) rather than an error. When markup is supplied the id is
// still recorded on the result if present.
type PropertySource struct {
	PropertyID int64
	HTML       []byte
}

// primaryColumn maps one cell of the top table to a RealProperty
// field. The page gives the parser no semantic hooks, so the map is
// the single place the positional layout is written down: a layout
// change on the site is an edit here, not a code change.
type primaryColumn struct {
	field     string
	row, cell int
	mode      extractMode
	assign    func(*RealProperty, string) error
}

var primaryColumns = []primaryColumn{
	{"account_number", 0, 0, extractText,
		func(p *RealProperty, s string) error { p.AccountNumber = s; return nil }},
	{"property_type", 0, 1, extractText,
		func(p *RealProperty, s string) error { p.PropertyType = s; return nil }},
	{"location", 0, 4, extractText,
		func(p *RealProperty, s string) error { p.Location = s; return nil }},

	{"building_name_occupant", 1, 1, extractText,
		func(p *RealProperty, s string) error { p.BuildingNameOccupant = s; return nil }},
	{"city", 1, 3, extractText,
		func(p *RealProperty, s string) error { p.City = s; return nil }},

	{"owner_name_1", 2, 1, extractText,
		func(p *RealProperty, s string) error { p.OwnerName1 = s; return nil }},
	{"quarter_section", 2, 3, extractText,
		func(p *RealProperty, s string) error { p.QuarterSection = ParseInt(s); return nil }},

	{"owner_name_2", 3, 1, extractText,
		func(p *RealProperty, s string) error { p.OwnerName2 = s; return nil }},
	{"parent_acct", 3, 3, extractText,
		func(p *RealProperty, s string) error { p.ParentAcct = s; return nil }},

	{"billing_address_1", 4, 1, extractText,
		func(p *RealProperty, s string) error { p.BillingAddress1 = s; return nil }},
	// "TXD xxx", rendered as a button rather than text
	{"tax_district", 4, 3, extractInputValue,
		func(p *RealProperty, s string) error { p.TaxDistrict = s; return nil }},

	{"billing_address_2", 5, 1, extractText,
		func(p *RealProperty, s string) error { p.BillingAddress2 = s; return nil }},
	{"school_system", 5, 3, extractText,
		func(p *RealProperty, s string) error { p.SchoolSystem = s; return nil }},

	{"city_state_zip", 6, 1, extractCollapsed,
		func(p *RealProperty, s string) error { p.CityStateZip = s; return nil }},
	{"land_size", 6, 3, extractCollapsed,
		func(p *RealProperty, s string) error { p.LandSize = ParseLandSize(s); return nil }},

	{"land_value", 7, 1, extractSecondFont,
		func(p *RealProperty, s string) error { p.LandValue = ParseInt(s); return nil }},

	// row 8 is just a link to taxes, keyed by the account number we
	// already have

	{"quarter_section_description", 9, 0, extractCollapsed,
		func(p *RealProperty, s string) error { p.QuarterSectionDescription = s; return nil }},
	{"subdivision", 9, 1, extractCollapsed,
		func(p *RealProperty, s string) error {
			subdivision, block, lot, err := ParseSubdivisionBlockLot(s)
			if err != nil {
				return err
			}
			p.Subdivision = subdivision
			p.Block = block
			p.Lot = lot
			return nil
		}},
}

// Property extracts the top-table record for a property.
func (c *Client) Property(ctx context.Context, src PropertySource) (*RealProperty, error) {
	ctx, span := tracer.Start(ctx, "client:Property")
	defer span.End()

	html := src.HTML
	if len(html) == 0 {
		if src.PropertyID == 0 {
			return nil, nil
		}
		var err error
		html, err = c.propertyPage(ctx, src.PropertyID)
		if err != nil {
			return nil, err
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}
	rows, err := tableRows(doc, primaryTableIndex)
	if err != nil {
		return nil, tagProperty(src.PropertyID, err)
	}

	prop := &RealProperty{PropertyID: src.PropertyID}
	for _, col := range primaryColumns {
		text, err := cellText(rows, col.row, col.cell, col.mode)
		if err != nil {
			return nil, tagProperty(src.PropertyID, err)
		}
		err = col.assign(prop, text)
		if err != nil {
			return nil, &StructuralError{
				PropertyID: src.PropertyID,
				Stage:      col.field,
				Detail:     err.Error(),
			}
		}
	}

	return prop, nil
}
