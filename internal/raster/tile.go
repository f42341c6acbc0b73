package raster

import (
	"time"

	"github.com/halcyon-marine/aistrack/internal/aiserr"
)

// Tile is an integer grid cell at a zoom, carrying the aggregated
// statistics folded from every trajectory cell that fell inside it.
// Optional fields use a pointer to represent "not yet observed" (the
// source's `None`) distinctly from a true zero value.
type Tile struct {
	X, Y, Z int64

	MaxDraught          *float64
	DistinctVesselCount int
	MinSOG, MaxSOG      *float32
	MinLength, MaxLength *float64
	MinWidth, MaxWidth   *float64
	OccupationDuration  time.Duration
}

// Reduce folds two tiles sharing (x, y, z) into one. It is associative
// and commutative under the precondition that each input tile represents
// exactly one distinct vessel — distinct_vessel_count is a plain sum, not
// a true set union, and trusts that precondition rather than
// deduplicating itself.
func Reduce(a, b Tile) Tile {
	return Tile{
		X: a.X, Y: a.Y, Z: a.Z,
		MaxDraught:          maxOptional(a.MaxDraught, b.MaxDraught),
		DistinctVesselCount: a.DistinctVesselCount + b.DistinctVesselCount,
		MinSOG:              minOptionalF32(a.MinSOG, b.MinSOG),
		MaxSOG:              maxOptionalF32(a.MaxSOG, b.MaxSOG),
		MinLength:           minOptional(a.MinLength, b.MinLength),
		MaxLength:           maxOptional(a.MaxLength, b.MaxLength),
		MinWidth:            minOptional(a.MinWidth, b.MinWidth),
		MaxWidth:            maxOptional(a.MaxWidth, b.MaxWidth),
		OccupationDuration:  a.OccupationDuration + b.OccupationDuration,
	}
}

// ReduceAll folds a slice of tiles into one via repeated Reduce, after
// checking that every tile shares the same (x, y, z) as the first. The
// source silently aggregated tiles of different zooms via spread syntax;
// this is treated as a correctness bug, not a feature, so a mismatch is
// rejected with an InvalidGeometry error rather than silently folded.
func ReduceAll(tiles []Tile) (Tile, error) {
	if len(tiles) == 0 {
		return Tile{}, nil
	}
	out := tiles[0]
	for _, t := range tiles[1:] {
		if t.X != out.X || t.Y != out.Y || t.Z != out.Z {
			return Tile{}, aiserr.New(aiserr.KindInvalidGeometry, "raster.ReduceAll",
				"cannot aggregate tiles at different (x, y, z)")
		}
		out = Reduce(out, t)
	}
	return out, nil
}

func maxOptional(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a >= *b:
		return a
	default:
		return b
	}
}

func minOptional(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a <= *b:
		return a
	default:
		return b
	}
}

func maxOptionalF32(a, b *float32) *float32 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a >= *b:
		return a
	default:
		return b
	}
}

func minOptionalF32(a, b *float32) *float32 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a <= *b:
		return a
	default:
		return b
	}
}
