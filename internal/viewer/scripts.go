package viewer

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	perrors "github.com/riverfold/privydash/internal/errors"
)

// ScriptLoader mounts scripts from decrypted markup into the viewer's
// page. LoadExternal settles (successfully or not) before any inline
// script runs; RunInline executes inline code in document order.
type ScriptLoader interface {
	LoadExternal(ctx context.Context, url string) error
	RunInline(ctx context.Context, code string) error
}

// ExtractScripts parses the markup and partitions its scripts into
// external references and inline bodies, each in document order.
func ExtractScripts(markup string) (external []string, inline []string, err error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: markup does not parse", perrors.ErrInvalidPayload)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			if src := attr(n, "src"); src != "" {
				external = append(external, src)
			} else if body := textContent(n); strings.TrimSpace(body) != "" {
				inline = append(inline, body)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return external, inline, nil
}

// MountScripts performs the two-wave mount: all external script references
// are loaded first, and inline scripts execute only after every external
// load has settled. Success and error both count as settled, preserving
// any ordering dependency between library scripts and the inline code that
// uses them. A failed external load is therefore not fatal; a failed
// inline script is.
func MountScripts(ctx context.Context, markup string, loader ScriptLoader) error {
	external, inline, err := ExtractScripts(markup)
	if err != nil {
		return err
	}

	for _, url := range external {
		// Settled either way; the page still mounts, matching how a
		// browser treats a script tag whose source fails to load.
		_ = loader.LoadExternal(ctx, url)
	}

	for _, code := range inline {
		if err := loader.RunInline(ctx, code); err != nil {
			return fmt.Errorf("inline script failed: %w", err)
		}
	}

	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
