package game

import (
	"log/slog"

	"github.com/pthm-cable/memorytree/components"
)

// IngestPhoto queues a decoded photo. It is safe to call from any goroutine; the
// photo becomes a particle at the start of the next frame and that frame switches
// to FOCUS on it.
func (g *Game) IngestPhoto(photo components.Photo) {
	g.pendingMu.Lock()
	g.pending = append(g.pending, photo)
	g.pendingMu.Unlock()
}

// PendingPhotos returns the number of photos waiting for the next frame.
func (g *Game) PendingPhotos() int {
	g.pendingMu.Lock()
	defer g.pendingMu.Unlock()
	return len(g.pending)
}

// applyIngestion registers queued photos and focuses the last one.
// Reports whether anything was ingested.
func (g *Game) applyIngestion() bool {
	g.pendingMu.Lock()
	batch := g.pending
	g.pending = nil
	g.pendingMu.Unlock()

	if len(batch) == 0 {
		return false
	}

	for _, photo := range batch {
		id := g.registry.AddPhoto(photo)
		g.collector.RecordIngest()
		slog.Info("photo ingested",
			"id", id,
			"source", photo.Source,
			"photos", g.registry.Count(components.KindPhoto),
		)
		if tr, ok := g.machine.Ingest(id); ok {
			g.emit(tr)
		}
	}
	return true
}
