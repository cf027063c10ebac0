package protocols

// Op is the arithmetic tag every opcode carries: dst = src0 ⊕ src1, or a
// bare copy of src0 into dst.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpCopy
)

// Pool names where an opcode's operand lives. Every (src0Pool × src1Pool ×
// op) combination that the bytecode producer can emit gets one opcode
// entry; dst pool is always one of {BaseTemp, ExtTemp} except for the
// store-destination modes the VM handles separately (§4.5).
type Pool uint8

const (
	PoolCommittedBase Pool = iota
	PoolCommittedExt
	PoolConstCol
	PoolPublic
	PoolNumber
	PoolAirValue
	PoolChallenge
	PoolAirgroupValue
	PoolProofValue
	PoolEval
	PoolBaseTemp
	PoolExtTemp
	poolCount
)

// srcPools lists every pool a src operand may be drawn from (§4.5); dst
// pools for an arithmetic opcode are always a temporary.
var srcPools = []Pool{
	PoolCommittedBase, PoolCommittedExt, PoolConstCol, PoolPublic, PoolNumber,
	PoolAirValue, PoolChallenge, PoolAirgroupValue, PoolProofValue, PoolEval,
	PoolBaseTemp, PoolExtTemp,
}

var dstPools = []Pool{PoolBaseTemp, PoolExtTemp}

// Opcode is one fully-resolved table entry: an operation over a pair of
// source pools writing into a destination pool. The numeric opcode id
// (its index in the Table slice) is a versioned contract with the
// bytecode producer — never reorder or reuse an id (spec §9).
type Opcode struct {
	Op        Op
	Src0Pool  Pool
	Src1Pool  Pool
	DstPool   Pool
	HasSrc1   bool // false for copy opcodes
}

// Table is the full, frozen opcode table: every (src0Pool × src1Pool ×
// {add,sub,mul}) combination into every dstPool, followed by every
// (src0Pool × dstPool) copy combination. Built once at package init
// instead of hand-enumerating roughly eighty near-duplicate cases, the
// same way the table is described in spec §4.5.
var Table []Opcode

// ID returns the opcode's byte id if present in Table, and a boolean
// reporting whether it was found. Unknown opcodes are a bytecode-producer
// bug (spec §4.5) and callers must abort rather than mask them.
var tableIndex map[Opcode]uint8

func init() {
	for _, dst := range dstPools {
		for _, op := range []Op{OpAdd, OpSub, OpMul} {
			for _, s0 := range srcPools {
				for _, s1 := range srcPools {
					Table = append(Table, Opcode{Op: op, Src0Pool: s0, Src1Pool: s1, DstPool: dst, HasSrc1: true})
				}
			}
		}
	}
	for _, dst := range dstPools {
		for _, s0 := range srcPools {
			Table = append(Table, Opcode{Op: OpCopy, Src0Pool: s0, DstPool: dst, HasSrc1: false})
		}
	}

	tableIndex = make(map[Opcode]uint8, len(Table))
	for i, oc := range Table {
		tableIndex[oc] = uint8(i)
	}
}

// Lookup returns the opcode byte for the given shape, and whether it was
// registered in Table.
func Lookup(op Op, src0, src1, dst Pool, hasSrc1 bool) (uint8, bool) {
	key := Opcode{Op: op, Src0Pool: src0, DstPool: dst, HasSrc1: hasSrc1}
	if hasSrc1 {
		key.Src1Pool = src1
	}
	id, ok := tableIndex[key]
	return id, ok
}

// Decode returns the Opcode for a raw byte, and whether it is valid. Any
// byte value beyond len(Table) is an unknown opcode (spec §4.5: "any
// unknown opcode is a bug in the bytecode producer and must abort").
func Decode(b byte) (Opcode, bool) {
	if int(b) >= len(Table) {
		return Opcode{}, false
	}
	return Table[b], true
}
