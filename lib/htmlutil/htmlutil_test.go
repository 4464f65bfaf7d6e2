package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		`<td><font color="blue"><font size="2"> R123456 </font></font></td>`,
	))
	require.NoError(t, err)

	require.Equal(t, " R123456 ", strings.TrimSuffix(getInnerText(doc), "\n"))
}

// walks to the first td and extracts its text, mirroring how the table
// parser uses GetText
func getInnerText(node *html.Node) string {
	if node.Type == html.ElementNode && node.Data == "td" {
		return GetText(node)
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if text := getInnerText(child); text != "" {
			return text
		}
	}
	return ""
}

func TestCollapseSpace(t *testing.T) {
	require.Equal(t, "OKLAHOMA CITY, OK 73102", CollapseSpace("  OKLAHOMA CITY,\n\t OK 73102  "))
	require.Equal(t, "", CollapseSpace("   \n "))
}
