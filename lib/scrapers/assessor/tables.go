package assessor

import (
	"fmt"
	"strings"

	"assessorscraper/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// The AN-R page carries a fixed sequence of tables. Addressing is
// purely positional, the markup has no usable ids or headers, so a
// layout change on the site surfaces as a StructuralError here.
const (
	primaryTableIndex   = 3
	valuationTableIndex = 4
	deedTableIndex      = 5
	permitTableIndex    = 6
	buildingTableIndex  = 7
)

// extractMode selects how a cell's value is pulled out of its markup.
type extractMode int

const (
	// innermost text, stripped
	extractText extractMode = iota
	// stripped with interior whitespace runs collapsed
	extractCollapsed
	// the value attribute of the nested <input>
	extractInputValue
	// the text of the second <font> in the cell, used where the label
	// and value share one cell
	extractSecondFont
)

// tableRows returns the <tr> rows of the nth <table> on the page.
func tableRows(doc *goquery.Document, n int) (*goquery.Selection, error) {
	table := doc.Find("table").Eq(n)
	if table.Length() == 0 {
		return nil, &StructuralError{
			Stage:  fmt.Sprintf("table %d", n),
			Detail: "table not found at expected index",
		}
	}
	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil, &StructuralError{
			Stage:  fmt.Sprintf("table %d", n),
			Detail: "table has no rows",
		}
	}
	return rows, nil
}

// cellText extracts one cell's value by (row, cell) position.
func cellText(rows *goquery.Selection, row, cell int, mode extractMode) (string, error) {
	r := rows.Eq(row)
	if r.Length() == 0 {
		return "", &StructuralError{
			Stage:  fmt.Sprintf("row %d", row),
			Detail: fmt.Sprintf("only %d rows present", rows.Length()),
		}
	}
	td := r.Find("td").Eq(cell)
	if td.Length() == 0 {
		return "", &StructuralError{
			Stage:  fmt.Sprintf("row %d cell %d", row, cell),
			Detail: fmt.Sprintf("only %d cells present", r.Find("td").Length()),
		}
	}

	switch mode {
	case extractCollapsed:
		return htmlutil.CollapseSpace(htmlutil.GetText(td.Nodes[0])), nil
	case extractInputValue:
		value, ok := td.Find("input").Attr("value")
		if !ok {
			return "", &StructuralError{
				Stage:  fmt.Sprintf("row %d cell %d", row, cell),
				Detail: "expected an <input> with a value attribute",
			}
		}
		return strings.TrimSpace(value), nil
	case extractSecondFont:
		fonts := td.Find("font")
		if fonts.Length() < 2 {
			return "", &StructuralError{
				Stage:  fmt.Sprintf("row %d cell %d", row, cell),
				Detail: "expected a label font followed by a value font",
			}
		}
		return strings.TrimSpace(fonts.Eq(1).Text()), nil
	default:
		return strings.TrimSpace(htmlutil.GetText(td.Nodes[0])), nil
	}
}
