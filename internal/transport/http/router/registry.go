package router

import (
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
)

// APIModule is implemented by feature packages that mount routes on the API
// engine. Modules register themselves and the engine mounts them in one pass.
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// Optional: controls mount order (lower mounts first, default 100).
type prioritizer interface{ Priority() int }

var (
	mu      sync.RWMutex
	apiMods []APIModule
)

func Register(mod APIModule) {
	mu.Lock()
	defer mu.Unlock()
	apiMods = append(apiMods, mod)
}

func MountAllAPI(root *gin.RouterGroup) {
	mu.RLock()
	mods := append([]APIModule(nil), apiMods...)
	mu.RUnlock()

	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(root)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
