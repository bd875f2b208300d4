// Package source locates, downloads and unpacks the published report
// archives.
package source

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	// CrushIndexURL lists the crush report archives.
	CrushIndexURL = "https://www.nass.usda.gov/Statistics_by_State/California/Publications/Specialty_and_Other_Releases/Grapes/Crush/Reports/index.php"
	// AcreageIndexURL lists the acreage report files.
	AcreageIndexURL = "https://www.nass.usda.gov/Statistics_by_State/California/Publications/Specialty_and_Other_Releases/Grapes/Acreage/Reports/"

	// ReportErrata marks a corrected crush report, preferred over ReportFinal.
	ReportErrata = "Errata"
	// ReportFinal marks the final crush report.
	ReportFinal = "Final"
)

// ErrYearNotListed indicates a requested year has no published report.
var ErrYearNotListed = eris.New("year not in published listing")

var crushArchiveHref = regexp.MustCompile(`\.\./(?P<type>.*)/(?P<year>[0-9]{4})/.*\.zip`)

// Link is one downloadable report file.
type Link struct {
	Year int
	Type string
	URL  string
}

// Listing maps years to the report links published for them.
type Listing map[int][]Link

// Years returns the listed years in ascending order.
func (l Listing) Years() []int {
	years := make([]int, 0, len(l))
	for y := range l {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Select returns the link to download for year: an errata archive when one
// is listed, else the last listed link.
func (l Listing) Select(year int) (Link, error) {
	links, ok := l[year]
	if !ok || len(links) == 0 {
		return Link{}, eris.Wrapf(ErrYearNotListed, "year %d", year)
	}
	selected := links[len(links)-1]
	for _, link := range links {
		if link.Type == ReportErrata {
			selected = link
			break
		}
	}
	return selected, nil
}

// FetchPage retrieves and parses an index page.
func FetchPage(ctx context.Context, client *http.Client, pageURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "listing: build request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "listing: get %s", pageURL)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, eris.Errorf("listing: get %s: status %s", pageURL, resp.Status)
	}
	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "listing: parse html")
	}
	return doc, nil
}

// ParseCrushListing collects the zip archive links of the crush index page.
func ParseCrushListing(doc *html.Node, base string) (Listing, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, eris.Wrap(err, "listing: parse base url")
	}
	listing := make(Listing)
	var walkErr error
	walk(doc, func(n *html.Node) bool {
		if walkErr != nil {
			return false
		}
		if n.Type != html.ElementNode || n.Data != "a" {
			return true
		}
		href := attr(n, "href")
		if !strings.Contains(href, ".zip") {
			return true
		}
		m := crushArchiveHref.FindStringSubmatch(href)
		if m == nil {
			walkErr = eris.Errorf("listing: unexpected archive link %q", href)
			return false
		}
		year, _ := strconv.Atoi(m[crushArchiveHref.SubexpIndex("year")])
		link := Link{
			Year: year,
			Type: m[crushArchiveHref.SubexpIndex("type")],
			URL:  resolve(baseURL, href),
		}
		zap.L().Debug("found crush archive",
			zap.Int("year", link.Year), zap.String("type", link.Type), zap.String("url", link.URL))
		listing[year] = append(listing[year], link)
		return true
	})
	return listing, walkErr
}

// ParseAcreageListing walks the table cells of the acreage index page. A
// cell starting with a year is followed by the cell holding its XLS or XLSX
// link.
func ParseAcreageListing(doc *html.Node, base string) (Listing, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, eris.Wrap(err, "listing: parse base url")
	}
	listing := make(Listing)
	currentYear := 0
	var walkErr error
	walk(doc, func(n *html.Node) bool {
		if walkErr != nil {
			return false
		}
		if n.Type != html.ElementNode || n.Data != "td" {
			return true
		}
		text := strings.TrimSpace(textContent(n))
		if len(text) >= 4 {
			if year, err := strconv.Atoi(text[:4]); err == nil {
				currentYear = year
				return false
			}
		}
		if text != "XLS" && text != "XLSX" {
			return false
		}
		a := firstElement(n, "a")
		if a == nil {
			return false
		}
		if currentYear == 0 {
			walkErr = eris.Errorf("listing: %s link %q without a year", text, attr(a, "href"))
			return false
		}
		link := Link{Year: currentYear, Type: text, URL: resolve(baseURL, attr(a, "href"))}
		zap.L().Debug("found acreage file", zap.Int("year", link.Year), zap.String("url", link.URL))
		listing[currentYear] = []Link{link}
		currentYear = 0
		return false
	})
	return listing, walkErr
}

// walk visits nodes depth first. fn returns false to skip a node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
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
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

func firstElement(n *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if c.Type == html.ElementNode && c.Data == tag {
			found = c
			return false
		}
		return true
	})
	return found
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
