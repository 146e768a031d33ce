// Package markup builds page sets from an HTML-like document,
// where each tag maps to an element of the layout tree:
//
//	<document>
//	  <pageset size="A4" margin="36">
//	    <text font="Go 14 bold">Title</text>
//	    <hstack>
//	      <block padding="4" border="1 dashed #888">left</block>
//	      <img src="logo.png" width="30%">
//	    </hstack>
//	    <page-break forced>
//	    <table columns="50 * 2*" header-rows="1" repeat-header>
//	      <tr><td>a</td><td>b</td><td>c</td></tr>
//	    </table>
//	  </pageset>
//	</document>
//
// The document is read with the tokenizer of golang.org/x/net/html,
// without the HTML tree construction rules: the nesting is exactly
// the one written.
package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/benoitkugler/paginate/utils"
	"golang.org/x/net/html"
)

// void elements never have content
var voidTags = utils.NewSet("img", "spacer", "page-break", "br")

// node is a parsed tag, or a character data node if tag is empty.
type node struct {
	tag      string
	attrs    []html.Attribute
	children []*node
	data     string
}

func (n *node) attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (n *node) isBlank() bool { return n.tag == "" && strings.TrimSpace(n.data) == "" }

func (n *node) String() string {
	if n.tag == "" {
		return fmt.Sprintf("text %q", n.data)
	}
	return "<" + n.tag + ">"
}

func markupError(format string, args ...interface{}) error {
	return utils.NewError(utils.CodeInvalidMarkup, format, args...)
}

// parseTree reads the whole input, returning a root node
// with the top level nodes as children.
func parseTree(r io.Reader) (*node, error) {
	z := html.NewTokenizer(r)
	root := &node{tag: "#root"}
	stack := []*node{root}
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			if len(stack) > 1 {
				return nil, markupError("unclosed tag <%s>", stack[len(stack)-1].tag)
			}
			return root, nil
		case html.TextToken:
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, &node{data: string(z.Text())})
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			n := &node{tag: tok.Data, attrs: tok.Attr}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
			if tt == html.StartTagToken && !voidTags.Has(n.tag) {
				stack = append(stack, n)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if voidTags.Has(tag) {
				continue
			}
			if top := stack[len(stack)-1]; len(stack) == 1 || top.tag != tag {
				return nil, markupError("unexpected closing tag </%s>", tag)
			}
			stack = stack[:len(stack)-1]
		}
		// comments and doctypes are ignored
	}
}
