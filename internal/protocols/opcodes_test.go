package protocols

import "testing"

func TestLookupDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		op               Op
		src0, src1, dst  Pool
		hasSrc1          bool
	}{
		{OpAdd, PoolCommittedBase, PoolConstCol, PoolBaseTemp, true},
		{OpSub, PoolCommittedExt, PoolChallenge, PoolExtTemp, true},
		{OpMul, PoolNumber, PoolPublic, PoolBaseTemp, true},
		{OpCopy, PoolEval, 0, PoolExtTemp, false},
	}
	for i, c := range cases {
		id, ok := Lookup(c.op, c.src0, c.src1, c.dst, c.hasSrc1)
		if !ok {
			t.Fatalf("case %d: Lookup not found", i)
		}
		opc, ok := Decode(id)
		if !ok {
			t.Fatalf("case %d: Decode(%d) not found", i, id)
		}
		if opc.Op != c.op || opc.Src0Pool != c.src0 || opc.DstPool != c.dst || opc.HasSrc1 != c.hasSrc1 {
			t.Errorf("case %d: decoded %+v, want op=%v src0=%v dst=%v hasSrc1=%v", i, opc, c.op, c.src0, c.dst, c.hasSrc1)
		}
		if c.hasSrc1 && opc.Src1Pool != c.src1 {
			t.Errorf("case %d: decoded src1=%v, want %v", i, opc.Src1Pool, c.src1)
		}
	}
}

func TestDecodeRejectsOutOfRangeByte(t *testing.T) {
	if _, ok := Decode(byte(len(Table))); ok {
		t.Error("Decode(len(Table)): want not-found, got found")
	}
	if _, ok := Decode(255); len(Table) < 256 && ok {
		t.Error("Decode(255): want not-found for a table shorter than 256, got found")
	}
}

func TestTableHasNoDuplicateEntries(t *testing.T) {
	seen := make(map[Opcode]bool, len(Table))
	for i, oc := range Table {
		if seen[oc] {
			t.Fatalf("Table[%d] = %+v duplicates an earlier entry", i, oc)
		}
		seen[oc] = true
	}
}
