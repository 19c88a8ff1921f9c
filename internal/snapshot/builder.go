package snapshot

import (
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Number coerces a raw JSON value to a float64. The FPL API serializes
// several numeric fields as strings ("2.35"), so both forms are accepted.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func text(v any) string {
	s, _ := v.(string)
	return s
}

// Build projects raw bootstrap element records into a snapshot for gw.
// Every row carries the full declared schema: cumulative fields that are
// absent or fail coercion become zero, point-in-time fields stay null.
// Records without a usable id are dropped; nothing else is validated here.
func Build(elements []map[string]any, gw int) *Snapshot {
	rows := make([]Row, 0, len(elements))
	for _, el := range elements {
		id, ok := Number(el["id"])
		if !ok || id <= 0 {
			continue
		}

		row := Row{
			ID:          int(id),
			FirstName:   text(el["first_name"]),
			SecondName:  text(el["second_name"]),
			WebName:     text(el["web_name"]),
			Status:      text(el["status"]),
			PointInTime: make(map[string]*float64, len(PointInTimeFields)),
			Cumulative:  make(map[string]float64, len(CumulativeFields)),
		}

		for _, f := range PointInTimeFields {
			var raw any
			if f == "price" {
				raw = el["now_cost"]
			} else {
				raw = el[f]
			}
			if v, ok := Number(raw); ok {
				if f == "price" {
					v /= 10.0 // now_cost is in tenths of a million
				}
				row.PointInTime[f] = &v
			} else {
				row.PointInTime[f] = nil
			}
		}

		for _, f := range CumulativeFields {
			v, _ := Number(el[f])
			row.Cumulative[f] = v
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	return &Snapshot{
		Gameweek:       gw,
		RunID:          uuid.NewString(),
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Rows:           rows,
	}
}
