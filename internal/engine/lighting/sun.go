package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-render/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a light
// direction. Longitude is rotation around Y (0-360), latitude is elevation
// from the horizon (0-90). The result points towards the sun.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := longitude * math32.Pi / 180
	latRad := latitude * math32.Pi / 180

	return math.Vec3{
		X: math32.Cos(latRad) * math32.Sin(lonRad),
		Y: math32.Sin(latRad),
		Z: math32.Cos(latRad) * math32.Cos(lonRad),
	}
}
