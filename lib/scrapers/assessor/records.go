package assessor

import "context"

// The builders below copy row values into typed records 1:1. All
// normalization already happened in the row-list extraction, the only
// work left here is field naming. Dates are the exception, the site
// makes them mandatory and a bad format fails the whole record.

func rowString(d Row, key string) string {
	s, _ := d[key].(string)
	return s
}

func rowInt(d Row, key string) *int64 {
	n, _ := d[key].(*int64)
	return n
}

func rowFloat(d Row, key string) *float64 {
	f, _ := d[key].(*float64)
	return f
}

func valuationFromRow(d Row) Valuation {
	return Valuation{
		Year:               rowInt(d, "year"),
		MarketValue:        rowInt(d, "market_value"),
		TaxableMarketValue: rowInt(d, "taxable_market_value"),
		GrossAssessed:      rowInt(d, "gross_assessed"),
		Exemption:          rowInt(d, "exemption"),
		NetAssessed:        rowInt(d, "net_assessed"),
		Millage:            rowFloat(d, "millage"),
		Tax:                rowFloat(d, "tax"),
		TaxSavings:         rowFloat(d, "tax_savings"),
	}
}

func deedFromRow(d Row) (DeedTransaction, error) {
	date, err := ParseDate(rowString(d, "date"))
	if err != nil {
		return DeedTransaction{}, err
	}
	return DeedTransaction{
		Date:    date,
		Type:    rowString(d, "type"),
		Book:    rowInt(d, "book"),
		Page:    rowInt(d, "page"),
		Price:   rowInt(d, "price"),
		Grantor: rowString(d, "grantor"),
		Grantee: rowString(d, "grantee"),
	}, nil
}

func permitFromRow(d Row) (BuildingPermit, error) {
	date, err := ParseDate(rowString(d, "date"))
	if err != nil {
		return BuildingPermit{}, err
	}
	return BuildingPermit{
		Date:           date,
		PermitNumber:   rowString(d, "permit_number"),
		ProvidedBy:     rowString(d, "provided_by"),
		BuildingNumber: rowInt(d, "building_number"),
		Description:    rowString(d, "description"),
		EstimatedCost:  rowInt(d, "estimated_cost"),
		Status:         rowString(d, "status"),
	}, nil
}

func buildingFromRow(d Row) Building {
	return Building{
		BuildingNumber:   rowInt(d, "building_number"),
		VacantOrImproved: rowString(d, "vacant_or_improved"),
		Description:      rowString(d, "building_description"),
		YearBuilt:        rowInt(d, "year_built"),
		SquareFeet:       rowFloat(d, "square_feet"),
		Stories:          rowFloat(d, "stories"),
	}
}

// Valuations extracts the valuation history table, one entry per
// assessment year.
func (c *Client) Valuations(ctx context.Context, propertyid int64) ([]Valuation, error) {
	ctx, span := tracer.Start(ctx, "client:Valuations")
	defer span.End()

	rows, err := c.rowList(ctx, propertyid, valuationSpec)
	if err != nil {
		return nil, err
	}
	out := make([]Valuation, 0, len(rows))
	for _, d := range rows {
		out = append(out, valuationFromRow(d))
	}
	return out, nil
}

// Deeds extracts the deed transaction table.
func (c *Client) Deeds(ctx context.Context, propertyid int64) ([]DeedTransaction, error) {
	ctx, span := tracer.Start(ctx, "client:Deeds")
	defer span.End()

	rows, err := c.rowList(ctx, propertyid, transactionSpec)
	if err != nil {
		return nil, err
	}
	out := make([]DeedTransaction, 0, len(rows))
	for _, d := range rows {
		deed, err := deedFromRow(d)
		if err != nil {
			return nil, &StructuralError{
				PropertyID: propertyid,
				Stage:      "deed date",
				Detail:     err.Error(),
			}
		}
		out = append(out, deed)
	}
	return out, nil
}

// Permits extracts the building permit table.
func (c *Client) Permits(ctx context.Context, propertyid int64) ([]BuildingPermit, error) {
	ctx, span := tracer.Start(ctx, "client:Permits")
	defer span.End()

	rows, err := c.rowList(ctx, propertyid, permitSpec)
	if err != nil {
		return nil, err
	}
	out := make([]BuildingPermit, 0, len(rows))
	for _, d := range rows {
		permit, err := permitFromRow(d)
		if err != nil {
			return nil, &StructuralError{
				PropertyID: propertyid,
				Stage:      "permit date",
				Detail:     err.Error(),
			}
		}
		out = append(out, permit)
	}
	return out, nil
}

// Buildings extracts the building summary table.
func (c *Client) Buildings(ctx context.Context, propertyid int64) ([]Building, error) {
	ctx, span := tracer.Start(ctx, "client:Buildings")
	defer span.End()

	rows, err := c.rowList(ctx, propertyid, buildingSpec)
	if err != nil {
		return nil, err
	}
	out := make([]Building, 0, len(rows))
	for _, d := range rows {
		out = append(out, buildingFromRow(d))
	}
	return out, nil
}
