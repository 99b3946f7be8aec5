package wizard

import (
	"fmt"
	"math"
	"strings"
)

// ============================================================
// Completion Scorer
// ============================================================

// ChecklistItem names a document key counted toward completion.
type ChecklistItem struct {
	Label string
	Key   string
}

type Checklist []ChecklistItem

type ItemStatus struct {
	Label    string `json:"label"`
	Key      string `json:"key"`
	Complete bool   `json:"complete"`
}

// Report is derived on demand and never stored.
type Report struct {
	Items     []ItemStatus `json:"items"`
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
	Percent   int          `json:"percent"`
}

// Score evaluates doc against the checklist. Percent only reaches 100 when
// every item is complete.
func Score(doc Document, checklist Checklist) Report {
	report := Report{
		Items: make([]ItemStatus, 0, len(checklist)),
		Total: len(checklist),
	}
	for _, item := range checklist {
		done := Populated(doc[item.Key])
		if done {
			report.Completed++
		}
		report.Items = append(report.Items, ItemStatus{Label: item.Label, Key: item.Key, Complete: done})
	}

	if report.Total == 0 {
		report.Percent = 100
		return report
	}
	report.Percent = int(math.Round(100 * float64(report.Completed) / float64(report.Total)))
	if report.Percent == 100 && report.Completed < report.Total {
		report.Percent = 99
	}
	return report
}

// Populated reports whether a document value counts as filled in: non-empty
// arrays, records with at least one truthy entry, and scalars that are not
// blank once trimmed.
func Populated(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case []map[string]any:
		return len(t) > 0
	case map[string]any:
		for _, inner := range t {
			if truthy(inner) {
				return true
			}
		}
		return false
	case Document:
		return Populated(map[string]any(t))
	case string:
		return strings.TrimSpace(t) != ""
	default:
		return strings.TrimSpace(fmt.Sprint(t)) != ""
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	default:
		return true
	}
}
