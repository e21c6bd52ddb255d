package systems

import "github.com/pthm-cable/memorytree/telemetry"

// StageInfo describes one frame pipeline stage for the HUD.
type StageInfo struct {
	Phase       telemetry.Phase
	ID          string // Phase name, key into PerfStats maps
	Name        string
	Description string
	Category    string // "input", "control", "layout" or "internal"
}

// SystemRegistry lists the pipeline stages in execution order.
type SystemRegistry struct {
	stages []StageInfo
	byID   map[string]StageInfo
}

// stageTable is the frame pipeline as run by game.Step.
var stageTable = []struct {
	phase       telemetry.Phase
	name        string
	description string
	category    string
}{
	{telemetry.PhaseIngest, "Ingest", "Applies queued photo ingestion", "input"},
	{telemetry.PhaseTracking, "Tracking", "Pulls the hand landmark frame", "input"},
	{telemetry.PhaseClassify, "Classify", "Maps landmarks to a gesture", "input"},
	{telemetry.PhaseMode, "Mode", "Updates the mode state machine", "control"},
	{telemetry.PhaseCamera, "Camera", "Follows the palm or drifts idle", "control"},
	{telemetry.PhaseSolve, "Solve", "Computes per-particle targets", "layout"},
	{telemetry.PhaseIntegrate, "Integrate", "Moves particles toward targets", "layout"},
	{telemetry.PhaseTelemetry, "Telemetry", "Records frame statistics", "internal"},
}

// NewSystemRegistry creates a registry holding every pipeline stage.
func NewSystemRegistry() *SystemRegistry {
	r := &SystemRegistry{byID: make(map[string]StageInfo, len(stageTable))}
	for _, s := range stageTable {
		r.Register(StageInfo{
			Phase:       s.phase,
			ID:          s.phase.String(),
			Name:        s.name,
			Description: s.description,
			Category:    s.category,
		})
	}
	return r
}

// Register appends a stage.
func (r *SystemRegistry) Register(info StageInfo) {
	r.stages = append(r.stages, info)
	r.byID[info.ID] = info
}

// Get returns a stage by ID.
func (r *SystemRegistry) Get(id string) (StageInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a stage ID, or the ID itself if unknown.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns the stages in order.
func (r *SystemRegistry) All() []StageInfo {
	return r.stages
}

// IDs returns the stage IDs in order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.stages))
	for i, info := range r.stages {
		ids[i] = info.ID
	}
	return ids
}
