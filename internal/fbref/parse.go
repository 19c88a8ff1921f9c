package fbref

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StatRow is one player line from the fbref standard-stats table, season
// totals as displayed.
type StatRow struct {
	Name      string
	Team      string
	Minutes   int
	Goals     int
	Assists   int
	Shots     int
	KeyPasses int
	XG        float64
	XA        float64
}

// ExtractTable finds the table with the given id. fbref ships most of its
// tables inside HTML comments to defeat naive parsers, so when the direct
// lookup misses, the comment markers are stripped and the page re-parsed.
func ExtractTable(page []byte, tableID string) (*goquery.Selection, error) {
	sel, err := findTable(page, tableID)
	if err != nil {
		return nil, err
	}
	if sel != nil {
		return sel, nil
	}

	uncommented := bytes.ReplaceAll(page, []byte("<!--"), nil)
	uncommented = bytes.ReplaceAll(uncommented, []byte("-->"), nil)
	sel, err = findTable(uncommented, tableID)
	if err != nil {
		return nil, err
	}
	if sel == nil {
		return nil, fmt.Errorf("table %q not found", tableID)
	}
	return sel, nil
}

func findTable(page []byte, tableID string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}
	sel := doc.Find("table#" + tableID)
	if sel.Length() == 0 {
		return nil, nil
	}
	return sel.First(), nil
}

// ParsePlayerTable reads player rows out of a stats table. Cells are
// addressed by their data-stat attribute, not position, so column
// reshuffles on fbref's side don't break the parse. Header and spacer rows
// are skipped; unparseable numeric cells default to zero.
func ParsePlayerTable(table *goquery.Selection) []StatRow {
	var rows []StatRow
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("thead") || tr.HasClass("spacer") {
			return
		}
		name := cellText(tr, "player")
		if name == "" {
			return
		}
		rows = append(rows, StatRow{
			Name:      name,
			Team:      cellText(tr, "team"),
			Minutes:   cellInt(tr, "minutes"),
			Goals:     cellInt(tr, "goals"),
			Assists:   cellInt(tr, "assists"),
			Shots:     cellInt(tr, "shots"),
			KeyPasses: cellInt(tr, "assisted_shots"),
			XG:        cellFloat(tr, "xg"),
			XA:        cellFloat(tr, "xg_assist"),
		})
	})
	return rows
}

func cellText(tr *goquery.Selection, stat string) string {
	return strings.TrimSpace(tr.Find(`[data-stat="` + stat + `"]`).First().Text())
}

func cellInt(tr *goquery.Selection, stat string) int {
	// fbref renders thousands with commas ("2,340")
	s := strings.ReplaceAll(cellText(tr, stat), ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func cellFloat(tr *goquery.Selection, stat string) float64 {
	f, err := strconv.ParseFloat(cellText(tr, stat), 64)
	if err != nil {
		return 0
	}
	return f
}
