package htmlutil

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// GetText returns the concatenated text nodes beneath a node. The
// assessor site wraps every value in one or more <font> tags, this
// unwraps them down to the innermost text.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		getTextRecursive(child, buffer)
	}
}

// CollapseSpace trims the string and squeezes interior whitespace runs
// (newlines, tabs, &nbsp; padding) down to single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
