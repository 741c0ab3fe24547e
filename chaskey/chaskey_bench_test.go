package chaskey

import "testing"

func BenchmarkUint32(b *testing.B) {
	r := New(Seed{1, 2, 3, 4})
	for i := 0; i < b.N; i++ {
		_ = r.Uint32()
	}
}

func BenchmarkFill(b *testing.B) {
	r := New(Seed{1, 2, 3, 4})
	buf := make([]byte, 4096)
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		r.Fill(buf)
	}
}

func BenchmarkSplit(b *testing.B) {
	r := New(Seed{1, 2, 3, 4})
	for i := 0; i < b.N; i++ {
		_ = r.Split()
	}
}
