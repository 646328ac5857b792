package rules_test

import (
	"testing"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"

	"chess-minimax/rules"
	"chess-minimax/rules/dragontooth"
	"chess-minimax/rules/goose"
	"chess-minimax/rules/notnilchess"
	"chess-minimax/rules/rulestest"
)

func benchPerft[M comparable](b *testing.B, pos rules.Position[M], depth int) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rules.Perft[M](pos, depth); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPerft_Goose_Initial_D4(b *testing.B) {
	pos, err := goose.New(rulestest.Startpos)
	if err != nil {
		b.Fatal(err)
	}
	benchPerft(b, rules.Position[gm.Move](pos), 4)
}

func BenchmarkPerft_Goose_Kiwipete_D3(b *testing.B) {
	pos, err := goose.New(rulestest.Kiwipete)
	if err != nil {
		b.Fatal(err)
	}
	benchPerft(b, rules.Position[gm.Move](pos), 3)
}

func BenchmarkPerft_Dragontooth_Kiwipete_D3(b *testing.B) {
	pos, err := dragontooth.New(rulestest.Kiwipete)
	if err != nil {
		b.Fatal(err)
	}
	benchPerft(b, rules.Position[dragontoothmg.Move](pos), 3)
}

func BenchmarkPerft_Notnil_Kiwipete_D2(b *testing.B) {
	pos, err := notnilchess.New(rulestest.Kiwipete)
	if err != nil {
		b.Fatal(err)
	}
	benchPerft(b, rules.Position[notnilchess.Move](pos), 2)
}
