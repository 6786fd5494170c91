package metadata

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
)

const defaultFaviconPath = "/favicon.ico"

var faviconRels = []string{"icon", "shortcut icon", "apple-touch-icon"}

// extract applies the per field fallback chains to an HTML document.
// Text fields take the first matching tag in document order; go-opengraph
// keeps the last duplicate, so it only backs them up and supplies og:image
// variants such as og:image:url.
func extract(body []byte, target *url.URL) (Result, error) {
	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(bytes.NewReader(body)); err != nil {
		return Result{}, fmt.Errorf("parse open graph: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("parse html: %w", err)
	}

	origin := originOf(target)

	title := firstNonEmpty(
		metaContent(doc, `meta[property="og:title"]`),
		og.Title,
		doc.Find("title").First().Text(),
		target.Hostname(),
	)

	description := firstNonEmpty(
		metaContent(doc, `meta[property="og:description"]`),
		og.Description,
		metaContent(doc, `meta[name="description"]`),
	)

	favicon := firstNonEmpty(append(linkHrefs(doc, faviconRels), defaultFaviconPath)...)
	if !strings.HasPrefix(favicon, "http") {
		favicon = resolveAgainstOrigin(favicon, origin)
		if favicon == "" {
			favicon = originString(target) + defaultFaviconPath
		}
	}

	ogImage := firstNonEmpty(
		openGraphImage(og),
		metaContent(doc, `meta[property="og:image"]`),
		metaContent(doc, `meta[name="twitter:image"]`),
	)
	if ogImage != "" && !strings.HasPrefix(ogImage, "http") {
		ogImage = resolveAgainstOrigin(ogImage, origin)
	}

	return Result{
		Title:       title,
		Description: description,
		Favicon:     favicon,
		OGImage:     ogImage,
		URL:         target.String(),
	}, nil
}

func openGraphImage(og *opengraph.OpenGraph) string {
	for _, img := range og.Images {
		if img == nil {
			continue
		}
		if u := strings.TrimSpace(img.URL); u != "" {
			return u
		}
	}
	return ""
}

func metaContent(doc *goquery.Document, selector string) string {
	value, _ := doc.Find(selector).First().Attr("content")
	return value
}

func linkHrefs(doc *goquery.Document, rels []string) []string {
	hrefs := make([]string, 0, len(rels))
	for _, rel := range rels {
		href, _ := doc.Find(fmt.Sprintf(`link[rel=%q]`, rel)).First().Attr("href")
		hrefs = append(hrefs, href)
	}
	return hrefs
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
