package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
)

func lookupAttr(node *html.Node, key string) (string, bool) {
	for _, a := range node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func attr(node *html.Node, key string) string {
	value, _ := lookupAttr(node, key)
	return value
}

func hasAttr(node *html.Node, key string) bool {
	_, ok := lookupAttr(node, key)
	return ok
}

func setAttr(node *html.Node, key, value string) {
	for i, a := range node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			node.Attr[i].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(node *html.Node, key string) {
	out := node.Attr[:0]
	for _, a := range node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			continue
		}
		out = append(out, a)
	}
	node.Attr = out
}
