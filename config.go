package orrery

import (
	"fmt"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/viper"
)

// Config holds the settings of the serving daemon, loaded once at startup.
type Config struct {
	ListenAddr    string
	FrameInterval time.Duration
	TimeRate      float64 // simulated seconds per wall-clock second
	SceneScale    float64 // km per scene unit, forwarded to renderers
	TracePoints   int     // segments per orbit trace
	CatalogPath   string  // empty means built-in catalog
}

// LoadConfig reads the daemon configuration from the given file. An empty
// path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ListenAddr:    ":8090",
		FrameInterval: 33 * time.Millisecond,
		TimeRate:      86400, // one simulated day per second
		SceneScale:    1e6,
		TracePoints:   DefaultSamples,
	}
	if path == "" {
		return cfg, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("could not read config %s: %s", path, err)
	}
	if v.IsSet("server.listen") {
		cfg.ListenAddr = v.GetString("server.listen")
	}
	if v.IsSet("server.frame_interval") {
		cfg.FrameInterval = v.GetDuration("server.frame_interval")
	}
	if v.IsSet("simulation.time_rate") {
		cfg.TimeRate = v.GetFloat64("simulation.time_rate")
	}
	if v.IsSet("scene.scale") {
		cfg.SceneScale = v.GetFloat64("scene.scale")
	}
	if v.IsSet("scene.trace_points") {
		cfg.TracePoints = v.GetInt("scene.trace_points")
	}
	if v.IsSet("catalog.path") {
		cfg.CatalogPath = v.GetString("catalog.path")
	}
	return cfg, nil
}

// elementKeys are the required fields of a catalog element record: the six
// J2000 elements and their secular rates per Julian century.
var elementKeys = []string{"a", "adot", "e", "edot", "i", "idot", "node", "nodedot", "peri", "peridot", "l", "ldot"}

// LoadCatalog builds a catalog from a TOML file mapping lowercase body names
// to element records (semi-major axis in AU, angles in degrees, reference
// epoch J2000.0). A record missing a required element field is reported once
// and its body degrades to the static circular fallback; the load itself only
// fails when the file cannot be read or names collide.
func LoadCatalog(path string, logger kitlog.Logger) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read catalog %s: %s", path, err)
	}
	names := v.GetStringMap("bodies")
	bodies := make([]Body, 0, len(names))
	for name := range names {
		sub := v.Sub("bodies." + name)
		if sub == nil {
			logger.Log("level", "warning", "subsys", "catalog", "body", name, "err", "record is not a table")
			continue
		}
		b := Body{
			Name:        name,
			Radius:      sub.GetFloat64("radius"),
			Color:       sub.GetString("color"),
			RefDistance: sub.GetFloat64("distance") * AU,
			ContentID:   sub.GetString("content"),
		}
		el, err := elementsFromRecord(sub)
		if err != nil {
			// Not fatal: the body is treated as absent from the element
			// table and falls back to static placement.
			logger.Log("level", "warning", "subsys", "catalog", "body", name, "err", err)
		} else {
			b.Elements = el
			if b.RefDistance == 0 {
				b.RefDistance = el.a * AU
			}
		}
		bodies = append(bodies, b)
	}
	return NewCatalog(bodies...)
}

func elementsFromRecord(v *viper.Viper) (*MeanElements, error) {
	for _, key := range elementKeys {
		if !v.IsSet(key) {
			return nil, fmt.Errorf("missing element field '%s'", key)
		}
	}
	return NewMeanElements(
		v.GetFloat64("a"), v.GetFloat64("adot"),
		v.GetFloat64("e"), v.GetFloat64("edot"),
		v.GetFloat64("i"), v.GetFloat64("idot"),
		v.GetFloat64("node"), v.GetFloat64("nodedot"),
		v.GetFloat64("peri"), v.GetFloat64("peridot"),
		v.GetFloat64("l"), v.GetFloat64("ldot"),
	), nil
}
