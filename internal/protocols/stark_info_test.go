package protocols

import (
	"testing"

	"github.com/vybium/vybium-starks-vm/internal/core"
	"github.com/vybium/vybium-starks-vm/internal/utils"
)

func defaultTestStruct() *utils.StarkStruct {
	return &utils.StarkStruct{
		NBits: 3, NBitsExt: 4, NQueries: 4,
		Backend:        core.BackendGoldilocks,
		FoldingFactors: []int{2, 2},
	}
}

func TestStageWidthAndTotalStageWidth(t *testing.T) {
	info := &StarkInfo{
		NStages: 2,
		PolMap: []PolMapEntry{
			{Name: "a", Stage: 1, Dim: 1, Pos: 0},
			{Name: "b", Stage: 1, Dim: 3, Pos: 1},
			{Name: "im1", Stage: 1, Dim: 1, ImPol: true, ExprID: 50},
			{Name: "c", Stage: 2, Dim: 1, Pos: 2},
		},
	}
	if w := info.StageWidth(1); w != 5 {
		t.Errorf("StageWidth(1) = %d, want 5 (1+3+1)", w)
	}
	if w := info.StageWidth(2); w != 1 {
		t.Errorf("StageWidth(2) = %d, want 1", w)
	}
	if w := info.TotalStageWidth(); w != 6 {
		t.Errorf("TotalStageWidth() = %d, want 6", w)
	}
}

func TestImPols(t *testing.T) {
	info := &StarkInfo{
		PolMap: []PolMapEntry{
			{Name: "a", Stage: 1, Dim: 1, Pos: 0},
			{Name: "im1", Stage: 1, Dim: 1, ImPol: true, ExprID: 50},
			{Name: "im2", Stage: 2, Dim: 1, ImPol: true, ExprID: 51},
		},
	}
	got := info.ImPols(1)
	if len(got) != 1 || got[0].ExprID != 50 {
		t.Errorf("ImPols(1) = %+v, want one entry with ExprID 50", got)
	}
}

func TestColumnOffset(t *testing.T) {
	info := &StarkInfo{
		NStages: 2,
		PolMap: []PolMapEntry{
			{Name: "a", Stage: 1, Dim: 1, Pos: 0},
			{Name: "b", Stage: 1, Dim: 3, Pos: 1},
			{Name: "im1", Stage: 1, Dim: 1, ImPol: true, ExprID: 50},
			{Name: "c", Stage: 2, Dim: 1, Pos: 2},
		},
	}
	stage, offset, dim, ok := info.ColumnOffset(1) // "b", Pos 1
	if !ok || stage != 1 || offset != 1 || dim != 3 {
		t.Errorf("ColumnOffset(1) = (%d,%d,%d,%v), want (1,1,3,true)", stage, offset, dim, ok)
	}
	stage, offset, dim, ok = info.ColumnOffset(50) // "im1", keyed by ExprID
	if !ok || stage != 1 || offset != 4 || dim != 1 {
		t.Errorf("ColumnOffset(50) = (%d,%d,%d,%v), want (1,4,1,true)", stage, offset, dim, ok)
	}
	stage, offset, dim, ok = info.ColumnOffset(2) // "c", stage 2
	if !ok || stage != 2 || offset != 0 || dim != 1 {
		t.Errorf("ColumnOffset(2) = (%d,%d,%d,%v), want (2,0,1,true)", stage, offset, dim, ok)
	}
	if _, _, _, ok = info.ColumnOffset(999); ok {
		t.Error("ColumnOffset(999): want not-found")
	}
}

func TestMapTotalN(t *testing.T) {
	info := &StarkInfo{
		NStages:      1,
		MapSectionsN: map[int]int{1: 2, 2: 1},
		Struct:       defaultTestStruct(),
	}
	n := 1 << info.Struct.NBits
	nExt := 1 << info.Struct.NBitsExt
	want := 2*n + 2*nExt + 1*n + 1*nExt
	if got := info.MapTotalN(); got != want {
		t.Errorf("MapTotalN() = %d, want %d", got, want)
	}
}
