// Package metadata fetches page metadata (title, description, favicon) for
// a URL being saved. It is a best-effort collaborator: any failure degrades
// to empty fields and never blocks the save path.
package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"linkstash/pkg/linkstash/errs"
)

// Metadata holds the extracted page fields; any of them may be empty
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Favicon     string `json:"favicon"`
}

// Scraper fetches and parses remote pages
type Scraper struct {
	client *http.Client
}

// NewScraper creates a scraper with the given request timeout
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the page and extracts its title, description and favicon.
// The description falls back from the standard meta tag to og:description;
// relative favicon hrefs are resolved against the page URL.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (Metadata, error) {
	base, err := url.Parse(rawURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") {
		return Metadata{}, &errs.ValidationError{Field: "url", Message: "must be an http or https URL"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return Metadata{}, &errs.DependencyError{Op: "fetch metadata", Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Metadata{}, &errs.DependencyError{Op: "fetch metadata", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, &errs.DependencyError{
			Op:  "fetch metadata",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return Metadata{}, &errs.DependencyError{Op: "parse metadata", Err: err}
	}

	return extract(doc, base), nil
}

func extract(doc *html.Node, base *url.URL) Metadata {
	var meta Metadata
	var ogDescription string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if meta.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					meta.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				name, property, content := attr(n, "name"), attr(n, "property"), attr(n, "content")
				if strings.EqualFold(name, "description") && meta.Description == "" {
					meta.Description = content
				}
				if strings.EqualFold(property, "og:description") && ogDescription == "" {
					ogDescription = content
				}
			case "link":
				rel := strings.ToLower(attr(n, "rel"))
				if (rel == "icon" || rel == "shortcut icon") && meta.Favicon == "" {
					meta.Favicon = resolveFavicon(base, attr(n, "href"))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if meta.Description == "" {
		meta.Description = ogDescription
	}
	return meta
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func resolveFavicon(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
