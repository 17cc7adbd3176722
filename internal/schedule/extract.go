package schedule

import (
	"bytes"
	"io"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jole/ivsb/pkg/models"
)

// minCells is the number of cells a row needs to become a session.
const minCells = int(models.FieldCount)

const stationsCell = int(models.FieldStations)

var innerWhitespace = regexp.MustCompile(`\s+`)

// Prefilter restricts which rows are kept while extracting. Both checks are
// case-sensitive substring tests; empty values keep everything.
type Prefilter struct {
	// Session must occur in the session code.
	Session string
	// Antenna must occur in the joined active stations.
	Antenna string
}

func (p Prefilter) keep(s models.Session) bool {
	if p.Session != "" && !strings.Contains(s.Code(), p.Session) {
		return false
	}
	if p.Antenna != "" && !strings.Contains(strings.Join(s.Active, ""), p.Antenna) {
		return false
	}
	return true
}

// Extract reads the session rows of a schedule page. Header rows and rows
// with fewer than eleven cells are skipped.
func Extract(r io.Reader, src Source, pf Prefilter) ([]models.Session, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	pageURL, _ := url.Parse(src.URL)

	var sessions []models.Session
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.Find("th").Length() > 0 {
			return
		}
		cells := tr.Find("td")
		if cells.Length() < minCells {
			return
		}

		var fields [models.FieldCount]string
		cells.Each(func(i int, td *goquery.Selection) {
			if i < minCells && i != stationsCell {
				fields[i] = cellText(td)
			}
		})
		active, removed := stations(cells.Eq(stationsCell))
		href, _ := cells.Eq(int(models.FieldCode)).Find("a").First().Attr("href")

		s := models.NewSession(src.Kind, fields, active, removed, resolveHref(pageURL, href))
		if pf.keep(s) {
			sessions = append(sessions, s)
		}
	})
	return sessions, nil
}

// stations splits the list items of a stations cell by their "removed" class.
func stations(td *goquery.Selection) (active, removed []string) {
	td.Find("li").Each(func(_ int, li *goquery.Selection) {
		id := stationID(nodeText(li.Nodes...))
		if id == "" {
			return
		}
		if li.HasClass("removed") {
			removed = append(removed, id)
		} else {
			active = append(active, id)
		}
	})
	return active, removed
}

func stationID(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, text)
}

func resolveHref(page *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if page == nil {
		return ref.String()
	}
	return page.ResolveReference(ref).String()
}

func cellText(sel *goquery.Selection) string {
	return strings.TrimSpace(innerWhitespace.ReplaceAllString(nodeText(sel.Nodes...), " "))
}

func nodeText(nodes ...*html.Node) string {
	var buf bytes.Buffer
	for _, n := range nodes {
		writeText(n, &buf)
	}
	return buf.String()
}

func writeText(n *html.Node, buf *bytes.Buffer) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(c, buf)
	}
}
