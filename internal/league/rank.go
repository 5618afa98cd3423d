package league

import (
	"context"
	"fmt"
)

// ComputeRank returns the rank for an arbitrary season-point total:
// (count of members with strictly greater points) + 1. Tied members share
// the same rank number; there is no dense ranking. No full sort is needed.
func ComputeRank(ctx context.Context, users UserStore, points int) (int, error) {
	above, err := users.CountWithPointsAbove(ctx, points)
	if err != nil {
		return 0, fmt.Errorf("count members above %d points: %w", points, err)
	}
	return above + 1, nil
}

// RankLabel formats a rank for display on public profiles. Members with no
// points yet are "Unranked".
func RankLabel(points, rank int) string {
	if points <= 0 {
		return "Unranked"
	}
	return fmt.Sprintf("#%d", rank)
}
