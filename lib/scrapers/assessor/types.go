package assessor

import "time"

// RealProperty is one property record as displayed on the AN-R page.
// Lenient numeric fields are pointer typed, nil means the site left
// the cell blank or unparseable.
type RealProperty struct {
	// PropertyID is the PROPERTYID=xxxxxx assigned by the assessor
	// site, taken verbatim from the fetch url. Never reassigned after
	// extraction.
	PropertyID int64

	// first two rows of the property record display
	AccountNumber        string // usually a letter followed by numbers
	PropertyType         string
	Location             string // usually the street address
	BuildingNameOccupant string
	City                 string

	// owner contact info
	OwnerName1      string
	OwnerName2      string
	BillingAddress1 string
	BillingAddress2 string
	CityStateZip    string

	QuarterSection            *int64
	ParentAcct                string
	TaxDistrict               string
	SchoolSystem              string
	LandSize                  *float64 // always square feet, acres are converted
	LotWidth                  *float64 // not extracted yet
	LotDepth                  *float64 // not extracted yet
	LandValue                 *int64
	QuarterSectionDescription string
	Subdivision               string
	Block                     string // kept as text, some blocks carry letters
	Lot                       string // same as block
	LegalDescription          string // not extracted yet

	Valuations []Valuation
	Buildings  []Building
	Deeds      []DeedTransaction
	Permits    []BuildingPermit
}

// Valuation is one line of the valuation history table, one per
// assessment year.
type Valuation struct {
	Year               *int64
	MarketValue        *int64
	TaxableMarketValue *int64
	GrossAssessed      *int64
	Exemption          *int64
	NetAssessed        *int64
	Millage            *float64
	Tax                *float64
	TaxSavings         *float64
}

// DeedTransaction is one recorded transfer from the deed table.
type DeedTransaction struct {
	Date    time.Time
	Type    string
	Book    *int64
	Page    *int64
	Price   *int64
	Grantor string
	Grantee string
}

// BuildingPermit is one line of the permit history table.
type BuildingPermit struct {
	Date           time.Time
	PermitNumber   string
	ProvidedBy     string
	BuildingNumber *int64
	Description    string
	EstimatedCost  *int64
	Status         string
}

// Building is one line of the building summary table on the property
// page. The per-building detail page is scraped separately.
type Building struct {
	BuildingNumber   *int64
	VacantOrImproved string
	Description      string
	YearBuilt        *int64
	SquareFeet       *float64
	Stories          *float64
}
