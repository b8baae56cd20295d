package module

// Stage identifies a pipeline phase. A stage may host any number of
// interchangeable modules.
type Stage string

// Canonical pipeline stages, in execution order. Stages not listed here
// (including StageAI) are auxiliary: they run where their dependencies put
// them rather than at a fixed position.
const (
	StageDataCollection      Stage = "data_collection"
	StageLevelIdentification Stage = "level_identification"
	StageSignalGeneration    Stage = "signal_generation"
	StageRiskManagement      Stage = "risk_management"
	StageExecution           Stage = "execution"
	StageMonitoring          Stage = "monitoring"
	StageReporting           Stage = "reporting"
	StageAlerts              Stage = "alerts"
	StageAI                  Stage = "ai"
)

// canonicalRank maps each canonical stage to its position in the pipeline.
var canonicalRank = map[Stage]int{
	StageDataCollection:      0,
	StageLevelIdentification: 1,
	StageSignalGeneration:    2,
	StageRiskManagement:      3,
	StageExecution:           4,
	StageMonitoring:          5,
	StageReporting:           6,
	StageAlerts:              7,
}

// Rank returns the stage's position in the canonical pipeline order.
// Auxiliary stages rank after every canonical one; among themselves they are
// ordered by name so scheduling stays deterministic.
func (s Stage) Rank() int {
	if r, ok := canonicalRank[s]; ok {
		return r
	}
	return len(canonicalRank)
}

// Auxiliary reports whether the stage has no fixed position in the canonical
// pipeline order.
func (s Stage) Auxiliary() bool {
	_, ok := canonicalRank[s]
	return !ok
}

// Less orders two stage/id pairs by canonical rank, then stage name, then id.
// The assembler and executor use it whenever a deterministic ordering of
// otherwise-independent modules is needed.
func Less(aStage Stage, aID string, bStage Stage, bID string) bool {
	if ar, br := aStage.Rank(), bStage.Rank(); ar != br {
		return ar < br
	}
	if aStage != bStage {
		return aStage < bStage
	}
	return aID < bID
}
