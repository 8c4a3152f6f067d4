package system

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/ecs/component"
	"github.com/milk9111/steering/ecs/entity"
	"github.com/milk9111/steering/scenarios"
)

// ReloadSystem consumes ReloadRequest entities. An edit to the running
// scenario's file retunes the live world in place. Prefab and script edits,
// and requests that ask for it, call respawn once after all requests of the
// tick are handled.
type ReloadSystem struct {
	scenario string
	respawn  func()
}

func NewReloadSystem(scenario string, respawn func()) *ReloadSystem {
	return &ReloadSystem{scenario: scenario, respawn: respawn}
}

func (r *ReloadSystem) Update(w *ecs.World) {
	if r == nil || w == nil {
		return
	}
	if _, ok := w.First(component.ReloadRequestComponent.Kind()); !ok {
		return
	}

	var reqs []component.ReloadRequest
	ecs.ForEach(w, component.ReloadRequestComponent.Kind(), func(e ecs.Entity, req *component.ReloadRequest) {
		reqs = append(reqs, *req)
		ecs.DestroyEntity(w, e)
	})

	respawn := false
	for _, req := range reqs {
		if req.Respawn || !isScenarioPath(req.Path) {
			respawn = true
			continue
		}
		name := strings.TrimSuffix(filepath.Base(req.Path), filepath.Ext(req.Path))
		if name != r.scenario {
			continue
		}
		sc, err := scenarios.Load(r.scenario)
		if err != nil {
			log.Printf("reload: %s: %v", req.Path, err)
			continue
		}
		if err := entity.RetuneScenario(w, sc); err != nil {
			log.Printf("reload: %s: %v", req.Path, err)
			continue
		}
		log.Printf("reload: retuned %s", r.scenario)
	}

	if respawn && r.respawn != nil {
		r.respawn()
	}
}

// RequestReload queues a reload of path for the next ReloadSystem update.
func RequestReload(w *ecs.World, path string, respawn bool) error {
	return ecs.Add(w, ecs.CreateEntity(w), component.ReloadRequestComponent.Kind(), &component.ReloadRequest{
		Path:    path,
		Respawn: respawn,
	})
}

func isScenarioPath(path string) bool {
	return path != "" && filepath.Base(filepath.Dir(path)) == scenarios.Dir
}
