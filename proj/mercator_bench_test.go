package proj

import "testing"

// benchPoints are lat/lon/zoom samples covering the equator, both clamped
// latitude limits and a city at street zoom.
var benchPoints = []struct {
	name     string
	lat, lon float64
	zoom     int
}{
	{"origin", 0, 0, 1},
	{"north edge", MaxLat, 180, 10},
	{"south edge", MinLat, -180, 15},
	{"portland", 45.5152, -122.6784, 12},
}

func BenchmarkLatLonToTileCoords(b *testing.B) {
	for _, p := range benchPoints {
		b.Run(p.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				LatLonToTileCoords(p.lat, p.lon, p.zoom)
			}
		})
	}
}

func BenchmarkTileCoordsToLatLon(b *testing.B) {
	for _, p := range benchPoints {
		x, y := LatLonToTileCoords(p.lat, p.lon, p.zoom)
		b.Run(p.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				TileCoordsToLatLon(x, y, p.zoom)
			}
		})
	}
}

func BenchmarkWebMercator(b *testing.B) {
	for _, p := range benchPoints {
		mx, my := LatLonToWebMercator(p.lat, p.lon)
		b.Run(p.name, func(b *testing.B) {
			b.Run("forward", func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					LatLonToWebMercator(p.lat, p.lon)
				}
			})
			b.Run("inverse", func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					WebMercatorToLatLon(mx, my)
				}
			})
		})
	}
}

func BenchmarkWebMercatorToTileCoords(b *testing.B) {
	for _, p := range benchPoints {
		mx, my := LatLonToWebMercator(p.lat, p.lon)
		b.Run(p.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				WebMercatorToTileCoords(mx, my, p.zoom)
			}
		})
	}
}

func BenchmarkWebMercatorToScreenCoords(b *testing.B) {
	mx, my := LatLonToWebMercator(45.5152, -122.6784)
	ox, oy := WebMercatorToTileCoords(mx, my, 12)
	for i := 0; i < b.N; i++ {
		WebMercatorToScreenCoords(mx, my, 12, ox*256-400, oy*256-300, 256)
	}
}
