package stats

import (
	"testing"

	"ecsrs/internal/utils"
	"ecsrs/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(status types.ReportStatus, category types.ReportCategory, lgaID string) *types.Report {
	r := &types.Report{
		Status:   status,
		Category: category,
	}
	if lgaID != "" {
		r.LGAID = &lgaID
	}
	return r
}

func located(status types.ReportStatus, lat, lng float64) *types.Report {
	return &types.Report{
		Status:    status,
		Category:  types.CategoryIllegalDumping,
		Latitude:  utils.Float64Ptr(lat),
		Longitude: utils.Float64Ptr(lng),
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.Resolved)
	assert.Zero(t, summary.ResolutionRate)
	assert.Empty(t, summary.ByStatus)
	assert.Empty(t, summary.Hotspots)
}

func TestSummarizeCounts(t *testing.T) {
	reports := []*types.Report{
		report(types.ReportStatusSubmitted, types.CategoryIllegalDumping, "lga-1"),
		report(types.ReportStatusInProgress, types.CategoryIllegalDumping, "lga-1"),
		report(types.ReportStatusResolved, types.CategoryBlockedDrainage, "lga-2"),
		report(types.ReportStatusClosed, types.CategoryNoisePollution, ""),
	}

	summary := Summarize(reports)

	assert.Equal(t, 4, summary.Total)
	// resolved and closed both count as concluded.
	assert.Equal(t, 2, summary.Resolved)
	assert.Equal(t, 50.0, summary.ResolutionRate)

	assert.Equal(t, map[types.ReportStatus]int{
		types.ReportStatusSubmitted:  1,
		types.ReportStatusInProgress: 1,
		types.ReportStatusResolved:   1,
		types.ReportStatusClosed:     1,
	}, summary.ByStatus)

	assert.Equal(t, 2, summary.ByCategory[types.CategoryIllegalDumping])

	// Reports without an area don't appear in the per-LGA breakdown.
	assert.Equal(t, map[string]int{"lga-1": 2, "lga-2": 1}, summary.ByLGA)
}

func TestResolutionRateRounding(t *testing.T) {
	reports := []*types.Report{
		report(types.ReportStatusResolved, types.CategoryIllegalDumping, ""),
		report(types.ReportStatusSubmitted, types.CategoryIllegalDumping, ""),
		report(types.ReportStatusSubmitted, types.CategoryIllegalDumping, ""),
	}

	summary := Summarize(reports)

	// 1/3 = 33.333...%, rounded to one decimal place.
	assert.Equal(t, 33.3, summary.ResolutionRate)
}

func TestHotspotClustering(t *testing.T) {
	reports := []*types.Report{
		// Three reports in the same ~1km cell form a hotspot.
		located(types.ReportStatusSubmitted, 4.8152, 7.0496),
		located(types.ReportStatusSubmitted, 4.8155, 7.0492),
		located(types.ReportStatusResolved, 4.8158, 7.0498),
		// Two nearby-but-elsewhere reports stay below the threshold.
		located(types.ReportStatusSubmitted, 4.9011, 7.1103),
		located(types.ReportStatusSubmitted, 4.9013, 7.1105),
		// No coordinates, no contribution.
		report(types.ReportStatusSubmitted, types.CategoryIllegalDumping, "lga-1"),
	}

	summary := Summarize(reports)

	require.Len(t, summary.Hotspots, 1)
	hotspot := summary.Hotspots[0]
	assert.Equal(t, 3, hotspot.Count)
	assert.InDelta(t, 4.8155, hotspot.Latitude, 0.001)
	assert.InDelta(t, 7.0495, hotspot.Longitude, 0.001)
}

func TestHotspotsSortedByCount(t *testing.T) {
	var reports []*types.Report
	for i := 0; i < 3; i++ {
		reports = append(reports, located(types.ReportStatusSubmitted, 4.81, 7.04))
	}
	for i := 0; i < 5; i++ {
		reports = append(reports, located(types.ReportStatusSubmitted, 4.90, 7.11))
	}

	summary := Summarize(reports)

	require.Len(t, summary.Hotspots, 2)
	assert.Equal(t, 5, summary.Hotspots[0].Count)
	assert.Equal(t, 3, summary.Hotspots[1].Count)
}
