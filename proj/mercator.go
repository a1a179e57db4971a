// Package proj converts between WGS84 latitude/longitude, Web Mercator
// (EPSG:3857) meters, slippy-map tile coordinates and screen pixels.
package proj

import "math"

const (
	// MaxLat is the largest latitude Web Mercator can show, arctan(sinh(π)).
	MaxLat = 85.0511
	MinLat = -MaxLat

	// MaxZoom is the deepest supported zoom level.
	MaxZoom = 21

	// EarthRadius is the WGS84 semi-major axis in meters.
	EarthRadius = 6378137.0
	// MaxMeters is the half width of the projected world in meters.
	MaxMeters = math.Pi * EarthRadius

	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// pow2 holds 2^zoom for every supported zoom level.
var pow2 = func() (p [MaxZoom + 1]float64) {
	for z := range p {
		p[z] = float64(uint64(1) << z)
	}
	return p
}()

// TileCount returns the number of tiles along one axis at zoom, which is
// clamped to [0, MaxZoom].
func TileCount(zoom int) float64 {
	return pow2[clampZoom(zoom)]
}

func clampZoom(zoom int) int {
	return max(0, min(zoom, MaxZoom))
}

func clampLat(lat float64) float64 {
	return max(MinLat, min(lat, MaxLat))
}

// LatLonToTileCoords converts WGS84 coordinates to fractional tile
// coordinates at zoom. Latitudes beyond ±MaxLat map to the top or bottom
// edge of the world.
func LatLonToTileCoords(lat, lon float64, zoom int) (x, y float64) {
	lat = clampLat(lat)
	n := TileCount(zoom)
	x = (lon + 180.0) * (n / 360.0)

	switch {
	case lat >= MaxLat:
		return x, 0
	case lat <= MinLat:
		return x, n
	}
	sinLat := math.Sin(lat * degToRad)
	y = n * (0.5 - 0.25*math.Log((1.0+sinLat)/(1.0-sinLat))/math.Pi)
	return x, y
}

// TileCoordsToLatLon is the inverse of LatLonToTileCoords.
func TileCoordsToLatLon(x, y float64, zoom int) (lat, lon float64) {
	n := TileCount(zoom)
	lon = x/n*360.0 - 180.0
	lat = math.Atan(math.Sinh(math.Pi*(1-2*y/n))) * radToDeg
	return clampLat(lat), lon
}

// LatLonToWebMercator projects WGS84 coordinates to Web Mercator meters.
func LatLonToWebMercator(lat, lon float64) (x, y float64) {
	lat = clampLat(lat)
	x = lon * degToRad * EarthRadius
	y = math.Log(math.Tan(math.Pi/4+lat*degToRad/2)) * EarthRadius
	return x, y
}

// WebMercatorToLatLon is the inverse of LatLonToWebMercator.
func WebMercatorToLatLon(x, y float64) (lat, lon float64) {
	lon = x / EarthRadius * radToDeg
	lat = (2*math.Atan(math.Exp(y/EarthRadius)) - math.Pi/2) * radToDeg
	return lat, lon
}

// WebMercatorToTileCoords converts Web Mercator meters to fractional tile
// coordinates at zoom. Tile y grows southward.
func WebMercatorToTileCoords(x, y float64, zoom int) (tileX, tileY float64) {
	n := TileCount(zoom)
	tileX = (x + MaxMeters) / (2 * MaxMeters) * n
	tileY = (1 - (y+MaxMeters)/(2*MaxMeters)) * n
	return tileX, tileY
}

// TileCoordsToWebMercator is the inverse of WebMercatorToTileCoords.
func TileCoordsToWebMercator(tileX, tileY float64, zoom int) (x, y float64) {
	n := TileCount(zoom)
	x = tileX/n*2*MaxMeters - MaxMeters
	y = (1-tileY/n)*2*MaxMeters - MaxMeters
	return x, y
}

// WebMercatorToScreenCoords converts Web Mercator meters to pixels relative
// to a view whose top-left corner is at (originX, originY) in world pixels,
// with tiles tileSize pixels wide.
func WebMercatorToScreenCoords(x, y float64, zoom int, originX, originY, tileSize float64) (screenX, screenY float64) {
	tileX, tileY := WebMercatorToTileCoords(x, y, zoom)
	return tileX*tileSize - originX, tileY*tileSize - originY
}

// MetersPerPixel returns the ground resolution at zoom along the equator.
func MetersPerPixel(zoom int, tileSize float64) float64 {
	return 2 * MaxMeters / (TileCount(zoom) * tileSize)
}
