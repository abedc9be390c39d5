package viz

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/san-kum/pulsejet/internal/params"
)

func TestSnapshotDrawsEngine(t *testing.T) {
	c, err := Snapshot(params.Default(), SnapshotOptions{Cols: 80, Rows: 24, At: 1, Seed: 3}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	counts := map[Ink]int{}
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if c.Grid[row][col] != blank {
				counts[c.InkAt(col, row)]++
			}
		}
	}
	if counts[InkBody] == 0 || counts[InkFlame] == 0 {
		t.Errorf("expected body and flame cells, got %v", counts)
	}
}

func TestSnapshotRejectsEmptySize(t *testing.T) {
	if _, err := Snapshot(params.Default(), SnapshotOptions{}, zerolog.Nop()); err == nil {
		t.Error("expected size error")
	}
}
