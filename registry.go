package orrery

import (
	"strings"

	kitlog "github.com/go-kit/kit/log"
)

// ScenePublisher receives per-body heliocentric positions in kilometers; any
// display scale factor is left to the implementation. It is the boundary to
// the external rendering layer.
type ScenePublisher interface {
	PublishPosition(name string, R []float64)
}

// handle is the per-body entry of the interned lookup table, built once at
// registration so the frame loop never resolves names through strings.
type handle struct {
	name     string
	elements *MeanElements
}

// Registry drives the per-tick update of every tracked body: it re-propagates
// each catalogued body at the clock's current epoch and republishes the
// position to the scene. Bodies without elements are placed once at
// registration and left untouched afterwards.
type Registry struct {
	catalog *Catalog
	clock   *SimClock
	scene   ScenePublisher
	logger  kitlog.Logger
	handles []handle
	content map[string]string
}

// NewRegistry builds the registry from an immutable catalog, the simulation
// clock and the scene collaborator. Static fallback bodies are published here,
// exactly once.
func NewRegistry(catalog *Catalog, clock *SimClock, scene ScenePublisher, logger kitlog.Logger) *Registry {
	r := &Registry{
		catalog: catalog,
		clock:   clock,
		scene:   scene,
		logger:  logger,
		handles: make([]handle, 0, catalog.Len()),
		content: make(map[string]string, catalog.Len()),
	}
	for _, b := range catalog.Bodies() {
		r.content[b.Name] = b.ContentID
		if !b.HasElements() {
			logger.Log("level", "info", "subsys", "registry", "body", b.Name, "placement", "static", "distance(km)", b.RefDistance)
			scene.PublishPosition(b.Name, b.StaticPosition())
			continue
		}
		r.handles = append(r.handles, handle{name: b.Name, elements: b.Elements})
	}
	return r
}

// Update re-propagates every catalogued body at the clock's current epoch and
// publishes the positions. Repeated calls at the same epoch publish identical
// positions.
func (r *Registry) Update() {
	jd := r.clock.EpochJD()
	for _, h := range r.handles {
		R, _ := h.elements.Propagate(jd)
		r.scene.PublishPosition(h.name, R)
	}
}

// ContentID maps a body identifier to its content-panel identifier for the
// picking/UI collaborator. The mapping is static after catalog load.
func (r *Registry) ContentID(name string) (string, bool) {
	id, found := r.content[strings.ToLower(name)]
	return id, found
}

// SampleTraces returns one orbit trace per catalogued body, anchored at the
// clock's current simulated time. Traces are snapshots and are not refreshed
// by Update.
func (r *Registry) SampleTraces(n int) map[string][][]float64 {
	traces := make(map[string][][]float64, r.catalog.Len())
	now := r.clock.Now()
	for _, b := range r.catalog.Bodies() {
		traces[b.Name] = SampleOrbit(b, now, n)
	}
	return traces
}
