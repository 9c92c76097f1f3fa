package atlas

import "time"

// MapPhoto is a single photo attached to a discovered place.
type MapPhoto struct {
	URL         string    `json:"url"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description,omitempty"`
}

// MapPoint is a place the player discovered. Points are append-only:
// photos are added over time but points are never deleted or merged.
type MapPoint struct {
	ID           string     `json:"id"`
	Lat          float64    `json:"lat"`
	Lng          float64    `json:"lng"`
	Name         string     `json:"name"`
	IconType     string     `json:"iconType,omitempty"`
	DiscoveredAt time.Time  `json:"discoveredAt"`
	Photos       []MapPhoto `json:"photos"`
}
