package twolcg

import "testing"

func BenchmarkUint64(b *testing.B) {
	r := New(Seed{1, 2, 3, 4})
	for i := 0; i < b.N; i++ {
		_ = r.Uint64()
	}
}

func BenchmarkBranchCall(b *testing.B) {
	br := New(Seed{1, 2, 3, 4}).Branch()
	for i := 0; i < b.N; i++ {
		_ = br.Call(uint64(i))
	}
}
