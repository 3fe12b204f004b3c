package theme

import "testing"

func TestSetActive(t *testing.T) {
	t.Cleanup(func() { Active = FlexokiDark })

	if !SetActive(" Flexoki-Light ") || Active.Name != "flexoki-light" {
		t.Fatalf("Active = %s", Active.Name)
	}
	if SetActive("solarized") {
		t.Fatal("unknown theme reported as found")
	}
	if Active.Name != FlexokiDark.Name {
		t.Fatalf("unknown theme should fall back to %s, got %s", FlexokiDark.Name, Active.Name)
	}
}

func TestNamesMatchAll(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("len = %d", len(names))
	}
	for _, n := range names {
		if _, ok := Lookup(n); !ok {
			t.Errorf("Lookup(%q) failed", n)
		}
	}
}

func TestCostColorsDistinct(t *testing.T) {
	for _, th := range All {
		if th.Name == Terminal.Name {
			continue // ANSI 16 reuses indices
		}
		seen := map[string]string{}
		for _, cat := range []string{"development", "marketing", "infrastructure", "tokens"} {
			c := string(th.CostColor(cat))
			if prev, dup := seen[c]; dup {
				t.Errorf("%s: %s and %s share %s", th.Name, prev, cat, c)
			}
			seen[c] = cat
		}
	}
}

func TestSigned(t *testing.T) {
	th := FlexokiDark
	if th.Signed(-1) != th.Red || th.Signed(0) != th.Green || th.Signed(5) != th.Green {
		t.Fatal("Signed picks the wrong color")
	}
}
