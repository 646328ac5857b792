package engine_test

import (
	"testing"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"

	"chess-minimax/engine"
	"chess-minimax/rules/goose"
)

func benchSearch(b *testing.B, fen string, depth int, opts engine.Options) {
	pos := mustPos(b, fen)
	e := engine.New[gm.Move](opts)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.ChooseMove(pos, depth, 0); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportMetric(float64(e.Stats().Nodes), "nodes/op")
}

func BenchmarkSearch_Initial(b *testing.B) {
	benchSearch(b, goose.Startpos, 4, quietOptions())
}

func BenchmarkSearch_Kiwipete(b *testing.B) {
	benchSearch(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, quietOptions())
}

func BenchmarkSearch_KiwipeteNoPruning(b *testing.B) {
	opts := quietOptions()
	opts.DisablePruning = true
	benchSearch(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, opts)
}
