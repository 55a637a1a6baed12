package custody_service

import (
	"sync"

	"github.com/famcal/custody-schedule-engine/internal/core/domain"
)

type custodyServiceDebug struct {
	mu   sync.Mutex
	data []domain.DebugInfo
}

func (d *custodyServiceDebug) AddDebugInfo(info domain.DebugInfo) {
	d.mu.Lock()
	d.data = append(d.data, info)
	d.mu.Unlock()
}
