package config

// GeoConfig configures the static geolocation provider used when no
// platform positioning capability is wired in (terminal deployments).
type GeoConfig struct {
	Latitude  float64 `env:"LATITUDE"  envDefault:"0"`
	Longitude float64 `env:"LONGITUDE" envDefault:"0"`
	Accuracy  float64 `env:"ACCURACY"  envDefault:"50"`
}
