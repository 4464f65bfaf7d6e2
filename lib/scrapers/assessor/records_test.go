package assessor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValuationFromRowVerbatim(t *testing.T) {
	d := Row{
		"year":                 ptrInt(2020),
		"market_value":         ptrInt(100000),
		"taxable_market_value": ptrInt(95000),
		"gross_assessed":       ptrInt(11000),
		"exemption":            ptrInt(1000),
		"net_assessed":         ptrInt(10000),
		"millage":              ptrFloat(115.04),
		"tax":                  ptrFloat(1150.4),
		"tax_savings":          ptrFloat(115.04),
	}

	require.Equal(t, Valuation{
		Year:               ptrInt(2020),
		MarketValue:        ptrInt(100000),
		TaxableMarketValue: ptrInt(95000),
		GrossAssessed:      ptrInt(11000),
		Exemption:          ptrInt(1000),
		NetAssessed:        ptrInt(10000),
		Millage:            ptrFloat(115.04),
		Tax:                ptrFloat(1150.4),
		TaxSavings:         ptrFloat(115.04),
	}, valuationFromRow(d))
}

func TestValuationFromRowMissingKeys(t *testing.T) {
	v := valuationFromRow(Row{"year": ptrInt(2021)})
	require.Equal(t, ptrInt(2021), v.Year)
	require.Nil(t, v.MarketValue)
	require.Nil(t, v.Millage)
}

func TestDeedFromRow(t *testing.T) {
	deed, err := deedFromRow(Row{
		"date":    "01/15/2021",
		"type":    "WD Warranty Deed",
		"book":    ptrInt(12345),
		"page":    ptrInt(678),
		"price":   ptrInt(250000),
		"grantor": "DOE RICHARD",
		"grantee": "SMITH JOHN",
	})
	require.NoError(t, err)
	require.Equal(t, DeedTransaction{
		Date:    time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC),
		Type:    "WD Warranty Deed",
		Book:    ptrInt(12345),
		Page:    ptrInt(678),
		Price:   ptrInt(250000),
		Grantor: "DOE RICHARD",
		Grantee: "SMITH JOHN",
	}, deed)
}

func TestDeedFromRowBadDate(t *testing.T) {
	_, err := deedFromRow(Row{"date": "2021-01-15"})
	require.Error(t, err)
}

func TestPermitFromRow(t *testing.T) {
	permit, err := permitFromRow(Row{
		"date":            "03/10/2019",
		"permit_number":   "PB-2019-00123",
		"provided_by":     "OKLAHOMA CITY",
		"building_number": ptrInt(1),
		"description":     "ROOF REPAIR",
		"estimated_cost":  ptrInt(8000),
		"status":          "CLOSED",
	})
	require.NoError(t, err)
	require.Equal(t, BuildingPermit{
		Date:           time.Date(2019, 3, 10, 0, 0, 0, 0, time.UTC),
		PermitNumber:   "PB-2019-00123",
		ProvidedBy:     "OKLAHOMA CITY",
		BuildingNumber: ptrInt(1),
		Description:    "ROOF REPAIR",
		EstimatedCost:  ptrInt(8000),
		Status:         "CLOSED",
	}, permit)
}
