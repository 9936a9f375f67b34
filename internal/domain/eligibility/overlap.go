package eligibility

import "sort"

// OverlapType classifies how a competing request's dates relate to the
// candidate's. The order is total: EXACT < PARTIAL < ADJACENT < NEARBY,
// and is the primary sort key when ranking competitors.
type OverlapType string

const (
	OverlapExact    OverlapType = "EXACT"
	OverlapPartial  OverlapType = "PARTIAL"
	OverlapAdjacent OverlapType = "ADJACENT"
	OverlapNearby   OverlapType = "NEARBY"
)

// AdjacentGapDays is the largest gap, in whole calendar days, at which two
// non-intersecting ranges still count as ADJACENT.
const AdjacentGapDays = 3

// NearbyWindowDays widens the same-rank competitor fetch around the
// candidate's range so ADJACENT and NEARBY competitors are visible to
// classification at all.
const NearbyWindowDays = 10

var overlapOrder = map[OverlapType]int{
	OverlapExact:    0,
	OverlapPartial:  1,
	OverlapAdjacent: 2,
	OverlapNearby:   3,
}

// rankOrder returns the tie-break position of a rank: Captain before
// First Officer.
func rankOrder(r Rank) int {
	if r == RankCaptain {
		return 0
	}
	return 1
}

// CompareOverlap orders two overlap types, negative when a sorts first.
func CompareOverlap(a, b OverlapType) int {
	return overlapOrder[a] - overlapOrder[b]
}

// Intersects reports whether the overlap type means the two ranges
// actually share days. Adjacent and nearby windows do not.
func (t OverlapType) Intersects() bool {
	return t == OverlapExact || t == OverlapPartial
}

// ClassifyOverlap determines the overlap type between the candidate range
// and a competitor range, plus the shared day count for intersecting
// ranges.
func ClassifyOverlap(candStart, candEnd, otherStart, otherEnd Date) (OverlapType, int) {
	if candStart.Equal(otherStart) && candEnd.Equal(otherEnd) {
		days, _ := DaysBetween(candStart, candEnd)
		return OverlapExact, days
	}
	if RangesIntersect(candStart, candEnd, otherStart, otherEnd) {
		return OverlapPartial, IntersectionDays(candStart, candEnd, otherStart, otherEnd)
	}
	if GapDays(candStart, candEnd, otherStart, otherEnd) <= AdjacentGapDays {
		return OverlapAdjacent, 0
	}
	return OverlapNearby, 0
}

// SortCompetitors orders conflicting requests by overlap severity, then
// rank (Captain first), then seniority number ascending. The sort is
// stable so equally-placed competitors keep fetch order.
func SortCompetitors(competitors []ConflictingRequest) {
	sort.SliceStable(competitors, func(i, j int) bool {
		a, b := competitors[i], competitors[j]
		if c := CompareOverlap(a.OverlapType, b.OverlapType); c != 0 {
			return c < 0
		}
		if rankOrder(a.PilotRank) != rankOrder(b.PilotRank) {
			return rankOrder(a.PilotRank) < rankOrder(b.PilotRank)
		}
		return a.SeniorityNumber < b.SeniorityNumber
	})
}
