// Package stats is the public aggregate read path: pure computations
// over a report set, no side effects, safe on empty input.
package stats

import (
	"context"
	"fmt"
	"sort"

	"ecsrs/internal/utils"
	"ecsrs/pkg/types"
)

// ReportLister is the single store dependency.
type ReportLister interface {
	ListReports(ctx context.Context, filter types.ReportFilter) ([]*types.Report, error)
}

// Summary is the public dashboard payload.
type Summary struct {
	Total      int                            `json:"total"`
	Resolved   int                            `json:"resolved"`
	ByStatus   map[types.ReportStatus]int     `json:"byStatus"`
	ByCategory map[types.ReportCategory]int   `json:"byCategory"`
	ByLGA      map[string]int                 `json:"byLga"`
	// ResolutionRate is a percentage rounded to one decimal place;
	// exactly 0 for an empty window.
	ResolutionRate float64   `json:"resolutionRate"`
	Hotspots       []Hotspot `json:"hotspots"`
}

// Hotspot is a display-only cluster of nearby reports, never persisted.
type Hotspot struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Count     int     `json:"count"`
}

// hotspotMinReports is the cluster threshold; fewer nearby reports is
// noise, not a hotspot.
const hotspotMinReports = 3

type Service struct {
	reports ReportLister
}

func NewService(reports ReportLister) *Service {
	return &Service{reports: reports}
}

func (s *Service) Summary(ctx context.Context, filter types.ReportFilter) (*Summary, error) {
	reports, err := s.reports.ListReports(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch reports for summary: %w", err)
	}

	return Summarize(reports), nil
}

// Summarize computes the aggregate view over an already-fetched report
// set. resolved and closed both count as successfully concluded.
func Summarize(reports []*types.Report) *Summary {
	summary := &Summary{
		ByStatus:   make(map[types.ReportStatus]int),
		ByCategory: make(map[types.ReportCategory]int),
		ByLGA:      make(map[string]int),
		Hotspots:   []Hotspot{},
	}

	for _, report := range reports {
		summary.Total++
		summary.ByStatus[report.Status]++
		summary.ByCategory[report.Category]++
		if report.LGAID != nil {
			summary.ByLGA[*report.LGAID]++
		}
		if report.Status == types.ReportStatusResolved || report.Status == types.ReportStatusClosed {
			summary.Resolved++
		}
	}

	if summary.Total > 0 {
		rate := float64(summary.Resolved) / float64(summary.Total) * 100
		summary.ResolutionRate = utils.RoundFloat64(rate, 1)
	}

	summary.Hotspots = hotspots(reports)

	return summary
}

// hotspots grid-buckets geolocated reports at roughly 1km resolution
// and keeps cells with enough reports to matter.
func hotspots(reports []*types.Report) []Hotspot {
	type cell struct {
		latSum, lngSum float64
		count          int
	}

	cells := make(map[[2]int]*cell)
	for _, report := range reports {
		if report.Latitude == nil || report.Longitude == nil {
			continue
		}
		key := [2]int{int(*report.Latitude * 100), int(*report.Longitude * 100)}
		c, ok := cells[key]
		if !ok {
			c = &cell{}
			cells[key] = c
		}
		c.latSum += *report.Latitude
		c.lngSum += *report.Longitude
		c.count++
	}

	out := make([]Hotspot, 0)
	for _, c := range cells {
		if c.count < hotspotMinReports {
			continue
		}
		out = append(out, Hotspot{
			Latitude:  utils.RoundFloat64(c.latSum/float64(c.count), 5),
			Longitude: utils.RoundFloat64(c.lngSum/float64(c.count), 5),
			Count:     c.count,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Latitude != out[j].Latitude {
			return out[i].Latitude < out[j].Latitude
		}
		return out[i].Longitude < out[j].Longitude
	})

	return out
}
