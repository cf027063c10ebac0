package precompiles

import "testing"

func TestMetricsSnapshotIndependentOfLiveCounters(t *testing.T) {
	m := &Metrics{}
	m.keccakF1600.Add(2)
	m.sha256Compress.Add(1)

	snap := m.Snapshot()
	if snap.KeccakF1600 != 2 || snap.SHA256Compress != 1 {
		t.Fatalf("snapshot = %+v, want KeccakF1600=2 SHA256Compress=1", snap)
	}

	m.keccakF1600.Add(1)
	if snap.KeccakF1600 != 2 {
		t.Error("prior snapshot mutated by a later counter increment")
	}
	if m.Snapshot().KeccakF1600 != 3 {
		t.Error("new snapshot did not observe the increment")
	}
}

func TestMetricsSnapshotZeroValue(t *testing.T) {
	var m Metrics
	snap := m.Snapshot()
	if snap != (Snapshot{}) {
		t.Errorf("zero-value Metrics snapshot = %+v, want zero Snapshot", snap)
	}
}
