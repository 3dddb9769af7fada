package cave

import (
	"errors"
	"slices"
	"testing"
)

func TestEncodeMoves(t *testing.T) {
	tests := []struct {
		name  string
		moves []Move
		want  string
	}{
		{"empty", nil, ""},
		{"single", []Move{{Dir: Up}}, "u"},
		{"run with fire", slices.Repeat([]Move{{Dir: Right, Fire: true}}, 5), "R5"},
		{"still fire", []Move{{Fire: true}, {Fire: true}}, "F2"},
		{"mixed", []Move{
			{Dir: Still}, {Dir: Right}, {Dir: Right}, {Dir: Right},
			{Dir: UpLeft, Fire: true}, {Dir: Left, Suicide: true},
		}, ". r3 UL kl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeMoves(tt.moves); got != tt.want {
				t.Errorf("EncodeMoves() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMovesRoundTrip(t *testing.T) {
	var moves []Move
	for i := 0; i < 40; i++ {
		moves = append(moves, Move{
			Dir:     Direction(i / 3 % 9),
			Fire:    i%5 == 0,
			Suicide: i == 39,
		})
	}
	got, err := DecodeMoves(EncodeMoves(moves))
	if err != nil {
		t.Fatalf("DecodeMoves() failed: %v", err)
	}
	if !slices.Equal(got, moves) {
		t.Errorf("round trip differs:\n got %v\nwant %v", got, moves)
	}

	five, err := DecodeMoves("R5")
	if err != nil {
		t.Fatalf("DecodeMoves(R5) failed: %v", err)
	}
	if len(five) != 5 || five[4] != (Move{Dir: Right, Fire: true}) {
		t.Errorf("DecodeMoves(R5) = %v", five)
	}
}

func TestDecodeMovesErrors(t *testing.T) {
	for _, s := range []string{"x", "r0", "k", "uu", "7"} {
		if _, err := DecodeMoves(s); !errors.Is(err, ErrBadReplay) {
			t.Errorf("DecodeMoves(%q) error = %v, want ErrBadReplay", s, err)
		}
	}
}

func TestChecksum(t *testing.T) {
	d := NewDefinition(2, 1)
	d.Map = [][]Element{{Steel, Steel}}
	c := mustRender(t, d)
	// 'W' is 87: a = 1+87+87, b = 88+175
	if got, want := Checksum(c), uint32(263<<16|175); got != want {
		t.Fatalf("Checksum() = %#x, want %#x", got, want)
	}
	c.Set(1, 0, Diamond)
	if Checksum(c) == uint32(263<<16|175) {
		t.Error("checksum did not change with the grid")
	}
}

func TestVerifyReplay(t *testing.T) {
	d := mapDefinition(t,
		"WWWWWWW",
		"W..d..W",
		"W.P.r.W",
		"W.....W",
		"WWWWWWW",
	)
	moves, err := DecodeMoves(". . r u l2 d3 R")
	if err != nil {
		t.Fatalf("DecodeMoves() failed: %v", err)
	}
	played, err := Play(d, 0, 99, moves)
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	r := &Replay{Seed: 99, Level: 0, Moves: moves, Checksum: Checksum(played)}

	res, err := Verify(d, r)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if !res.Match {
		t.Errorf("replay did not verify: %#x != %#x", res.Checksum, r.Checksum)
	}
	if res.Frames != len(moves) {
		t.Errorf("frames = %d, want %d", res.Frames, len(moves))
	}

	r.Checksum ^= 1
	res, err = Verify(d, r)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if res.Match {
		t.Error("corrupted checksum verified")
	}
}
