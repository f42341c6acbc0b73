package geom

import (
	"strconv"

	"github.com/halcyon-marine/aistrack/internal/aiserr"
)

func incompatibleCRSErr(op string) error {
	return aiserr.New(aiserr.KindInvalidGeometry, op, "mixed CRS in geometry construction")
}

func invalidLengthErr(op string, n int) error {
	return aiserr.New(aiserr.KindInvalidLength, op, "linestring must have length 0 or >= 2, got "+strconv.Itoa(n))
}

func nonMonotonicErr(op string) error {
	return aiserr.New(aiserr.KindNonMonotonicTime, op, "m-values are not non-decreasing")
}
