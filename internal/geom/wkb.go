package geom

import (
	"encoding/binary"
	"math"

	"github.com/halcyon-marine/aistrack/internal/aiserr"
)

// wkbType enumerates the WKB geometry type codes this module understands.
// Only the XYM (2000-offset) codes are valid input; the 2D/Z/ZM variants
// are out of scope and rejected with InvalidGeometry.
type wkbType uint32

const (
	wkbPointM           wkbType = 2001
	wkbLineStringM      wkbType = 2002
	wkbPolygonM         wkbType = 2003
	wkbMultiPointM      wkbType = 2004
	wkbMultiLineStringM wkbType = 2005
	wkbMultiPolygonM    wkbType = 2006
)

// Read decodes a WKB byte stream into one of PointM, LineStringM, or
// MultiPointM (the only geometry kinds this module's core operates on),
// returned as the corresponding Go value behind the empty interface. It
// fails with InvalidGeometry when the geometry type is a polygon or
// multi-geometry variant this module doesn't model, when the
// dimensionality is not XYM, and when the stream is malformed.
func Read(data []byte, crs CRS) (any, error) {
	if len(data) < 5 {
		return nil, aiserr.New(aiserr.KindInvalidGeometry, "wkb.Read", "stream too short for header")
	}
	var order binary.ByteOrder
	switch data[0] {
	case 0:
		order = binary.BigEndian
	case 1:
		order = binary.LittleEndian
	default:
		return nil, aiserr.New(aiserr.KindInvalidGeometry, "wkb.Read", "invalid endianness byte")
	}
	typ := wkbType(order.Uint32(data[1:5]))
	body := data[5:]

	switch typ {
	case wkbPointM:
		c, _, err := readCoordM(body, order, crs)
		if err != nil {
			return nil, err
		}
		return PointM{Coord: c}, nil
	case wkbLineStringM:
		coords, _, err := readCoordSeq(body, order, crs)
		if err != nil {
			return nil, err
		}
		ls, err := From(coords)
		if err != nil {
			return nil, err
		}
		return ls, nil
	case wkbMultiPointM:
		n, rest, err := readUint32(body, order)
		if err != nil {
			return nil, err
		}
		points := make([]PointM, 0, n)
		for i := uint32(0); i < n; i++ {
			if len(rest) < 5 {
				return nil, aiserr.New(aiserr.KindInvalidGeometry, "wkb.Read", "truncated multipoint member")
			}
			memberOrder := order
			switch rest[0] {
			case 0:
				memberOrder = binary.BigEndian
			case 1:
				memberOrder = binary.LittleEndian
			}
			memberType := wkbType(memberOrder.Uint32(rest[1:5]))
			if memberType != wkbPointM {
				return nil, aiserr.New(aiserr.KindInvalidGeometry, "wkb.Read", "multipoint member is not XYM point")
			}
			c, remaining, err := readCoordM(rest[5:], memberOrder, crs)
			if err != nil {
				return nil, err
			}
			points = append(points, PointM{Coord: c})
			rest = remaining
		}
		mp, err := NewMultiPointM(points)
		if err != nil {
			return nil, err
		}
		return mp, nil
	case wkbPolygonM, wkbMultiLineStringM, wkbMultiPolygonM:
		return nil, aiserr.New(aiserr.KindInvalidGeometry, "wkb.Read", "geometry type not supported by this module's core")
	default:
		return nil, aiserr.New(aiserr.KindInvalidGeometry, "wkb.Read", "unrecognised or non-XYM geometry type")
	}
}

func readUint32(b []byte, order binary.ByteOrder) (uint32, []byte, error) {
	if len(b) < 4 {
		return 0, nil, aiserr.New(aiserr.KindInvalidGeometry, "wkb.readUint32", "truncated count field")
	}
	return order.Uint32(b[:4]), b[4:], nil
}

func readCoordM(b []byte, order binary.ByteOrder, crs CRS) (CoordM, []byte, error) {
	if len(b) < 24 {
		return CoordM{}, nil, aiserr.New(aiserr.KindInvalidGeometry, "wkb.readCoordM", "truncated XYM coordinate")
	}
	x := math.Float64frombits(order.Uint64(b[0:8]))
	y := math.Float64frombits(order.Uint64(b[8:16]))
	m := math.Float64frombits(order.Uint64(b[16:24]))
	c, err := NewCoordM(x, y, m, crs)
	if err != nil {
		return CoordM{}, nil, err
	}
	return c, b[24:], nil
}

func readCoordSeq(b []byte, order binary.ByteOrder, crs CRS) ([]CoordM, []byte, error) {
	n, rest, err := readUint32(b, order)
	if err != nil {
		return nil, nil, err
	}
	coords := make([]CoordM, 0, n)
	for i := uint32(0); i < n; i++ {
		var c CoordM
		c, rest, err = readCoordM(rest, order, crs)
		if err != nil {
			return nil, nil, err
		}
		coords = append(coords, c)
	}
	return coords, rest, nil
}

// Write encodes g (a PointM, LineStringM, or MultiPointM) as little-endian
// WKB at XYM dimensionality. Returns InvalidGeometry for any other Go
// value.
func Write(g any) ([]byte, error) {
	switch v := g.(type) {
	case PointM:
		buf := make([]byte, 0, 29)
		buf = appendHeader(buf, wkbPointM)
		buf = appendCoordM(buf, v.Coord)
		return buf, nil
	case LineStringM:
		buf := make([]byte, 0, 9+24*v.Len())
		buf = appendHeader(buf, wkbLineStringM)
		buf = appendUint32(buf, uint32(v.Len()))
		for _, c := range v.Coords {
			buf = appendCoordM(buf, c)
		}
		return buf, nil
	case MultiPointM:
		buf := make([]byte, 0, 9+29*len(v.Points))
		buf = appendHeader(buf, wkbMultiPointM)
		buf = appendUint32(buf, uint32(len(v.Points)))
		for _, p := range v.Points {
			buf = appendHeader(buf, wkbPointM)
			buf = appendCoordM(buf, p.Coord)
		}
		return buf, nil
	default:
		return nil, aiserr.New(aiserr.KindInvalidGeometry, "wkb.Write", "unsupported geometry value")
	}
}

func appendHeader(buf []byte, typ wkbType) []byte {
	buf = append(buf, 1) // always little-endian on write
	return appendUint32(buf, uint32(typ))
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendCoordM(buf []byte, c CoordM) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(c.X))
	buf = append(buf, tmp[:]...)
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(c.Y))
	buf = append(buf, tmp[:]...)
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(c.M))
	buf = append(buf, tmp[:]...)
	return buf
}
