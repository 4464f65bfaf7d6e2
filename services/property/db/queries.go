package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"assessorscraper/lib/scrapers/assessor"
)

// dates are stored as ISO text, sqlite has no date type
const dateColumnLayout = "2006-01-02"

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const upsertProperty = `
INSERT INTO realproperty (
	propertyid, account_number, property_type, location,
	building_name_occupant, city, owner_name_1, owner_name_2,
	billing_address_1, billing_address_2, city_state_zip,
	quarter_section, parent_acct, tax_district, school_system,
	land_size, lot_width, lot_depth, land_value,
	quarter_section_description, subdivision, block, lot,
	legal_description
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (propertyid) DO UPDATE SET
	account_number = excluded.account_number,
	property_type = excluded.property_type,
	location = excluded.location,
	building_name_occupant = excluded.building_name_occupant,
	city = excluded.city,
	owner_name_1 = excluded.owner_name_1,
	owner_name_2 = excluded.owner_name_2,
	billing_address_1 = excluded.billing_address_1,
	billing_address_2 = excluded.billing_address_2,
	city_state_zip = excluded.city_state_zip,
	quarter_section = excluded.quarter_section,
	parent_acct = excluded.parent_acct,
	tax_district = excluded.tax_district,
	school_system = excluded.school_system,
	land_size = excluded.land_size,
	lot_width = excluded.lot_width,
	lot_depth = excluded.lot_depth,
	land_value = excluded.land_value,
	quarter_section_description = excluded.quarter_section_description,
	subdivision = excluded.subdivision,
	block = excluded.block,
	lot = excluded.lot,
	legal_description = excluded.legal_description
RETURNING id
`

// UpsertProperty stores the top-table record, keyed by the site's
// property id, and returns the local surrogate key.
func (q *Queries) UpsertProperty(ctx context.Context, p *assessor.RealProperty) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(
		ctx, upsertProperty,
		p.PropertyID, p.AccountNumber, p.PropertyType, p.Location,
		p.BuildingNameOccupant, p.City, p.OwnerName1, p.OwnerName2,
		p.BillingAddress1, p.BillingAddress2, p.CityStateZip,
		p.QuarterSection, p.ParentAcct, p.TaxDistrict, p.SchoolSystem,
		p.LandSize, p.LotWidth, p.LotDepth, p.LandValue,
		p.QuarterSectionDescription, p.Subdivision, p.Block, p.Lot,
		p.LegalDescription,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert property: %w", err)
	}
	return id, nil
}

// DeleteChildren clears every child row for a property, extraction
// always replaces the previous lists wholesale.
func (q *Queries) DeleteChildren(ctx context.Context, localPropertyID int64) error {
	for _, table := range []string{
		"valuationhistory", "deedtransactions", "buildingpermits", "buildings",
	} {
		_, err := q.db.ExecContext(
			ctx,
			"DELETE FROM "+table+" WHERE local_property_id = ?",
			localPropertyID,
		)
		if err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func (q *Queries) InsertValuation(ctx context.Context, localPropertyID int64, v assessor.Valuation) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO valuationhistory (
			local_property_id, year, market_value, taxable_market_value,
			gross_assessed, exemption, net_assessed, millage, tax, tax_savings
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		localPropertyID, v.Year, v.MarketValue, v.TaxableMarketValue,
		v.GrossAssessed, v.Exemption, v.NetAssessed, v.Millage, v.Tax, v.TaxSavings,
	)
	return err
}

func (q *Queries) InsertDeed(ctx context.Context, localPropertyID int64, d assessor.DeedTransaction) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO deedtransactions (
			local_property_id, date, type, book, page, price, grantor, grantee
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		localPropertyID, d.Date.Format(dateColumnLayout), d.Type,
		d.Book, d.Page, d.Price, d.Grantor, d.Grantee,
	)
	return err
}

func (q *Queries) InsertPermit(ctx context.Context, localPropertyID int64, p assessor.BuildingPermit) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO buildingpermits (
			local_property_id, date, permit_number, provided_by,
			building_number, description, estimated_cost, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		localPropertyID, p.Date.Format(dateColumnLayout), p.PermitNumber,
		p.ProvidedBy, p.BuildingNumber, p.Description, p.EstimatedCost, p.Status,
	)
	return err
}

func (q *Queries) InsertBuilding(ctx context.Context, localPropertyID int64, b assessor.Building) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO buildings (
			local_property_id, building_number, vacant_or_improved,
			building_description, year_built, square_feet, stories
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		localPropertyID, b.BuildingNumber, b.VacantOrImproved,
		b.Description, b.YearBuilt, b.SquareFeet, b.Stories,
	)
	return err
}

const getProperty = `
SELECT
	id, propertyid, account_number, property_type, location,
	building_name_occupant, city, owner_name_1, owner_name_2,
	billing_address_1, billing_address_2, city_state_zip,
	quarter_section, parent_acct, tax_district, school_system,
	land_size, lot_width, lot_depth, land_value,
	quarter_section_description, subdivision, block, lot,
	legal_description
FROM realproperty WHERE propertyid = ?
`

// GetProperty loads a stored top-table record by the site's property
// id, returning the local surrogate key alongside. Returns
// sql.ErrNoRows when it was never scraped.
func (q *Queries) GetProperty(ctx context.Context, propertyid int64) (*assessor.RealProperty, int64, error) {
	p := &assessor.RealProperty{}
	var localID int64
	err := q.db.QueryRowContext(ctx, getProperty, propertyid).Scan(
		&localID, &p.PropertyID, &p.AccountNumber, &p.PropertyType, &p.Location,
		&p.BuildingNameOccupant, &p.City, &p.OwnerName1, &p.OwnerName2,
		&p.BillingAddress1, &p.BillingAddress2, &p.CityStateZip,
		&p.QuarterSection, &p.ParentAcct, &p.TaxDistrict, &p.SchoolSystem,
		&p.LandSize, &p.LotWidth, &p.LotDepth, &p.LandValue,
		&p.QuarterSectionDescription, &p.Subdivision, &p.Block, &p.Lot,
		&p.LegalDescription,
	)
	if err != nil {
		return nil, 0, err
	}
	return p, localID, nil
}

func (q *Queries) ListValuations(ctx context.Context, localPropertyID int64) ([]assessor.Valuation, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT year, market_value, taxable_market_value, gross_assessed,
			exemption, net_assessed, millage, tax, tax_savings
		FROM valuationhistory WHERE local_property_id = ? ORDER BY id`,
		localPropertyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []assessor.Valuation
	for rows.Next() {
		var v assessor.Valuation
		err := rows.Scan(
			&v.Year, &v.MarketValue, &v.TaxableMarketValue, &v.GrossAssessed,
			&v.Exemption, &v.NetAssessed, &v.Millage, &v.Tax, &v.TaxSavings,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanDate(raw string) (time.Time, error) {
	return time.Parse(dateColumnLayout, raw)
}

func (q *Queries) ListDeeds(ctx context.Context, localPropertyID int64) ([]assessor.DeedTransaction, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT date, type, book, page, price, grantor, grantee
		FROM deedtransactions WHERE local_property_id = ? ORDER BY id`,
		localPropertyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []assessor.DeedTransaction
	for rows.Next() {
		var d assessor.DeedTransaction
		var rawDate string
		err := rows.Scan(&rawDate, &d.Type, &d.Book, &d.Page, &d.Price, &d.Grantor, &d.Grantee)
		if err != nil {
			return nil, err
		}
		d.Date, err = scanDate(rawDate)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (q *Queries) ListPermits(ctx context.Context, localPropertyID int64) ([]assessor.BuildingPermit, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT date, permit_number, provided_by, building_number,
			description, estimated_cost, status
		FROM buildingpermits WHERE local_property_id = ? ORDER BY id`,
		localPropertyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []assessor.BuildingPermit
	for rows.Next() {
		var p assessor.BuildingPermit
		var rawDate string
		err := rows.Scan(
			&rawDate, &p.PermitNumber, &p.ProvidedBy, &p.BuildingNumber,
			&p.Description, &p.EstimatedCost, &p.Status,
		)
		if err != nil {
			return nil, err
		}
		p.Date, err = scanDate(rawDate)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (q *Queries) ListBuildings(ctx context.Context, localPropertyID int64) ([]assessor.Building, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT building_number, vacant_or_improved, building_description,
			year_built, square_feet, stories
		FROM buildings WHERE local_property_id = ? ORDER BY id`,
		localPropertyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []assessor.Building
	for rows.Next() {
		var b assessor.Building
		err := rows.Scan(
			&b.BuildingNumber, &b.VacantOrImproved, &b.Description,
			&b.YearBuilt, &b.SquareFeet, &b.Stories,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
