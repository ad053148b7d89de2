package protocol

import "testing"

func TestTables_BoundsAndValues(t *testing.T) {
	cases := []struct {
		name string
		tab  Table
		max  Index
		want []Command
	}{
		{"intensity", Intensity, 5, []Command{"@I00#TL", "@I02#TL", "@I04#TL", "@I06#TL", "@I08#TL", "@I0:#TL"}},
		{"color", Color, 2, []Command{"@C05#TL", "@C+5#TL", "@C-5#TL"}},
		{"depth", Depth, 1, []Command{"@D_0#TL", "@D_1#TL"}},
	}
	for _, c := range cases {
		if c.tab.Max() != c.max {
			t.Fatalf("%s: Max=%d want %d", c.name, c.tab.Max(), c.max)
		}
		for i, w := range c.want {
			if got := c.tab.At(Index(i)); got != w {
				t.Fatalf("%s[%d]=%q want %q", c.name, i, got, w)
			}
			if len(w) != CommandLen {
				t.Fatalf("%s[%d] has length %d", c.name, i, len(w))
			}
		}
		if got := c.tab.At(c.max + 3); got != c.want[len(c.want)-1] {
			t.Fatalf("%s: out of range lookup=%q", c.name, got)
		}
	}
}

func TestStartupSequence(t *testing.T) {
	seq := StartupSequence()
	if len(seq) != 18 {
		t.Fatalf("len=%d want 18", len(seq))
	}
	want := []Command{"@I02#TL", "@I02#TR", "@I02#TM", "@C05#TL"}
	for i, w := range want {
		if seq[i] != w {
			t.Fatalf("seq[%d]=%q want %q", i, seq[i], w)
		}
	}
	if seq[17] != "@E00#TM" {
		t.Fatalf("last=%q", seq[17])
	}
	for _, c := range seq {
		if _, err := Parse([]byte(c)); err != nil {
			t.Fatalf("%q does not parse: %v", c, err)
		}
	}
}

func TestStartupMatchesSliderDefaults(t *testing.T) {
	seq := StartupSequence()
	if seq[0] != Intensity.At(DefaultIntensity) ||
		seq[3] != Color.At(DefaultColor) ||
		seq[6] != Depth.At(DefaultDepth) {
		t.Fatalf("startup defaults diverge from slider defaults: %v", seq[:9])
	}
}

func TestSenderSequence(t *testing.T) {
	want := []Command{
		"@I02#TL", "@I04#TL", "@I06#TL", "@I08#TL", "@I0:#TL",
		"@C05#TL", "@C+5#TL", "@C-5#TL",
		"@D_1#TL", "@D_0#TL",
	}
	got := SenderSequence()
	if len(got) != len(want) {
		t.Fatalf("len=%d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("[%d]=%q want %q", i, got[i], want[i])
		}
	}
}
