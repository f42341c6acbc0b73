package geom

import "math"

// Displace returns the point obtained by moving distanceM metres from p in
// the direction (dirX, dirY), which need not be normalised. On a metric CRS
// this is plane vector addition; on a degree CRS it is a geodesic
// destination-point computation (direct Vincenty/haversine approximation),
// so that "port offset c metres" means the same physical distance on both
// CRSs. The measure value is copied unchanged from p.
func Displace(p PointM, dirX, dirY, distanceM float64) (PointM, error) {
	switch {
	case p.CRS().IsMetric():
		norm := math.Hypot(dirX, dirY)
		if norm == 0 {
			return p, nil
		}
		ux, uy := dirX/norm, dirY/norm
		return NewPointM(p.X()+ux*distanceM, p.Y()+uy*distanceM, p.M(), p.CRS())
	case p.CRS().IsDegree():
		return geodesicDestination(p, dirX, dirY, distanceM)
	default:
		return PointM{}, wrongMetricErr("Displace", p.CRS())
	}
}

// geodesicDestination moves distanceM metres from p in planar direction
// (dirX, dirY) expressed in degrees of (lon, lat), converting the bearing
// implied by that direction vector into a true geodesic destination point.
func geodesicDestination(p PointM, dirX, dirY, distanceM float64) (PointM, error) {
	norm := math.Hypot(dirX, dirY)
	if norm == 0 {
		return p, nil
	}
	// Bearing measured clockwise from north: atan2(east-component, north-component).
	bearing := math.Atan2(dirX, dirY)
	lat1 := p.Y() * math.Pi / 180
	lon1 := p.X() * math.Pi / 180
	angularDist := distanceM / earthRadiusM

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angularDist) +
		math.Cos(lat1)*math.Sin(angularDist)*math.Cos(bearing))
	lon2 := lon1 + math.Atan2(
		math.Sin(bearing)*math.Sin(angularDist)*math.Cos(lat1),
		math.Cos(angularDist)-math.Sin(lat1)*math.Sin(lat2))

	return NewPointM(lon2*180/math.Pi, lat2*180/math.Pi, p.M(), p.CRS())
}
