package geo

// Graticule returns meridians and parallels spaced step degrees apart,
// sampled every two degrees so they bend with the projection.
func Graticule(step float64) [][]LatLng {
	if step <= 0 {
		return nil
	}
	const sample = 2.0

	var lines [][]LatLng
	for lng := -180.0; lng < 180; lng += step {
		var line []LatLng
		for lat := -90.0; lat <= 90; lat += sample {
			line = append(line, LatLng{Lat: lat, Lng: lng})
		}
		lines = append(lines, line)
	}
	for lat := -90 + step; lat < 90; lat += step {
		var line []LatLng
		for lng := -180.0; lng <= 180; lng += sample {
			line = append(line, LatLng{Lat: lat, Lng: lng})
		}
		lines = append(lines, line)
	}
	return lines
}
