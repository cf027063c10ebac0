package protocols

import (
	"github.com/vybium/vybium-starks-vm/internal/utils"
)

// Boundary names a row-set on which boundary constraints are enforced.
type Boundary struct {
	Name string // "everyRow", "firstRow", "lastRow", or "everyFrame"
	Min  int    // only used when Name == "everyFrame"
	Max  int
}

var (
	BoundaryEveryRow = Boundary{Name: "everyRow"}
	BoundaryFirstRow = Boundary{Name: "firstRow"}
	BoundaryLastRow  = Boundary{Name: "lastRow"}
)

// PolMapEntry describes one committed or constant polynomial: which stage
// it lives in, its dimension (1 = base, 3 = extension), its column position
// inside the stage's trace, and whether it is an intermediate polynomial
// (imPol) computed from an expression rather than supplied as witness.
type PolMapEntry struct {
	Name     string
	Stage    int
	Dim      int
	Pos      int
	ImPol    bool
	ExprID   int // only meaningful when ImPol is true
}

// Opening is one entry of challengesMap/publicsMap/airgroupValuesMap/
// airValuesMap/proofValuesMap/evMap: (polynomial id, opening position).
type Opening struct {
	PolID int
	Pos   int
}

// StarkInfo is the immutable per-air descriptor that every other component
// consumes (spec §3). It is created once and shared read-only across every
// concurrent prove/verify task for that air.
type StarkInfo struct {
	NStages int
	QDeg    int
	QDim    int

	// OpeningPoints lists the integer row-offsets at which committed
	// polynomials are opened relative to a single challenge ξ.
	OpeningPoints []int

	Boundaries []Boundary

	PolMap []PolMapEntry

	ChallengesMap     []Opening
	PublicsMap        []Opening
	AirgroupValuesMap []Opening
	AirValuesMap      []Opening
	ProofValuesMap    []Opening
	EvMap             []Opening

	// MapSectionsN[stage] is the width, in base columns, of that stage.
	MapSectionsN map[int]int

	// MapOffsets[(name, extended)] is the element offset into the shared
	// arena for a given named section.
	MapOffsets map[SectionKey]int

	Struct *utils.StarkStruct

	// QuotientExprID names the compiled expression combining every
	// constraint into the quotient polynomial (spec §4.6.3).
	QuotientExprID int
	// FriExprID names the compiled expression that folds the openings
	// and the xDivXSub table into the polynomial FRI is run on (spec
	// §4.6.4).
	FriExprID int
}

// SectionKey names an arena section: a logical name plus whether it refers
// to the base-domain or extended-domain copy.
type SectionKey struct {
	Name     string
	Extended bool
}

// MapTotalN returns the total element count the working arena must be
// sized to, the sum of every stage's base-domain width times N plus its
// extended-domain width times N' (NBitsExt-sized), computed from
// MapSectionsN and Struct.
func (si *StarkInfo) MapTotalN() int {
	n := 1 << si.Struct.NBits
	nExt := 1 << si.Struct.NBitsExt
	total := 0
	for stage := 1; stage <= si.NStages+1; stage++ {
		width := si.MapSectionsN[stage]
		total += width * n
		total += width * nExt
	}
	return total
}

// ImPols returns every PolMap entry flagged imPol belonging to the given
// stage, in PolMap order (spec §4.6.2).
func (si *StarkInfo) ImPols(stage int) []PolMapEntry {
	var out []PolMapEntry
	for _, p := range si.PolMap {
		if p.Stage == stage && p.ImPol {
			out = append(out, p)
		}
	}
	return out
}

// StageWidth returns the base-column width committed in the given stage.
func (si *StarkInfo) StageWidth(stage int) int {
	width := 0
	for _, p := range si.PolMap {
		if p.Stage == stage {
			width += p.Dim
		}
	}
	return width
}

// TotalStageWidth returns the combined leaf width of every witness stage
// (everything committed before the quotient in a revealed query row).
func (si *StarkInfo) TotalStageWidth() int {
	total := 0
	for stage := 1; stage <= si.NStages; stage++ {
		total += si.StageWidth(stage)
	}
	return total
}

// ColumnOffset locates colID (a pmKey: a non-imPol entry's Pos, or an imPol
// entry's ExprID) within a revealed query row's leaf slice: which stage it
// belongs to, its element offset within that stage's leaf sub-slice, and
// its dimension. ok is false if no PolMap entry matches.
func (si *StarkInfo) ColumnOffset(colID int) (stage, offset, dim int, ok bool) {
	for s := 1; s <= si.NStages; s++ {
		off := 0
		for _, e := range si.PolMap {
			if e.Stage != s {
				continue
			}
			key := e.Pos
			if e.ImPol {
				key = e.ExprID
			}
			if key == colID {
				return s, off, e.Dim, true
			}
			off += e.Dim
		}
	}
	return 0, 0, 0, false
}
