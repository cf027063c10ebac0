package precompiles

import "sync/atomic"

// Metrics counts how many times each free-call function fired, one
// counter per function with no asymmetry between them — spec §9 notes the
// zisk original kept a counter for every precompile except arith384_mod;
// that asymmetry isn't reproduced here. Pure debug globals like the
// original's printed_chars_counter are dropped: §9 calls them "not part
// of the core specification".
type Metrics struct {
	inverseFpEc             atomic.Int64
	inverseFnEc             atomic.Int64
	sqrtFpEcParity          atomic.Int64
	msbPos256               atomic.Int64
	bn254FpInv              atomic.Int64
	bn254Fp2Inv             atomic.Int64
	bn254TwistAddLineCoeffs atomic.Int64
	bn254TwistDblLineCoeffs atomic.Int64
	arith256                atomic.Int64
	arith256Mod             atomic.Int64
	arith384Mod             atomic.Int64
	add256                  atomic.Int64
	keccakF1600             atomic.Int64
	sha256Compress          atomic.Int64
}

// Snapshot is a point-in-time copy of every counter, safe to log or export.
type Snapshot struct {
	InverseFpEc             int64
	InverseFnEc             int64
	SqrtFpEcParity          int64
	MsbPos256               int64
	BN254FpInv              int64
	BN254Fp2Inv             int64
	BN254TwistAddLineCoeffs int64
	BN254TwistDblLineCoeffs int64
	Arith256                int64
	Arith256Mod             int64
	Arith384Mod             int64
	Add256                  int64
	KeccakF1600             int64
	SHA256Compress          int64
}

func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		InverseFpEc:             m.inverseFpEc.Load(),
		InverseFnEc:             m.inverseFnEc.Load(),
		SqrtFpEcParity:          m.sqrtFpEcParity.Load(),
		MsbPos256:               m.msbPos256.Load(),
		BN254FpInv:              m.bn254FpInv.Load(),
		BN254Fp2Inv:             m.bn254Fp2Inv.Load(),
		BN254TwistAddLineCoeffs: m.bn254TwistAddLineCoeffs.Load(),
		BN254TwistDblLineCoeffs: m.bn254TwistDblLineCoeffs.Load(),
		Arith256:                m.arith256.Load(),
		Arith256Mod:             m.arith256Mod.Load(),
		Arith384Mod:             m.arith384Mod.Load(),
		Add256:                  m.add256.Load(),
		KeccakF1600:             m.keccakF1600.Load(),
		SHA256Compress:          m.sha256Compress.Load(),
	}
}
