package sensors

import (
	"fmt"
	"testing"
)

func checkRegisterMap(t *testing.T, name string, regs []RegisterInfo) {
	t.Helper()

	if len(regs) == 0 {
		t.Fatalf("%s: empty register map", name)
	}

	seen := make(map[string]bool)
	for _, r := range regs {
		var addr byte
		if _, err := fmt.Sscanf(r.Address, "0x%X", &addr); err != nil {
			t.Errorf("%s: register %s has unparseable address %q", name, r.Name, r.Address)
		}
		if seen[r.Address] {
			t.Errorf("%s: duplicate address %s", name, r.Address)
		}
		seen[r.Address] = true

		if r.Name == "" {
			t.Errorf("%s: register at %s has no name", name, r.Address)
		}
		switch r.Access {
		case "R", "W", "RW":
		default:
			t.Errorf("%s: register %s has invalid access %q", name, r.Name, r.Access)
		}
	}
}

func TestRegisterMaps(t *testing.T) {
	checkRegisterMap(t, "acc", getAccRegisterMap())
	checkRegisterMap(t, "mag", getMagRegisterMap())
	checkRegisterMap(t, "d", getDRegisterMap())
}

func TestDRegisterMapHasWhoAmI(t *testing.T) {
	for _, r := range getDRegisterMap() {
		if r.Address == "0x0F" {
			if r.Name != "WHO_AM_I" || r.Default != "0x49" {
				t.Errorf("WHO_AM_I entry wrong: %+v", r)
			}
			return
		}
	}
	t.Fatal("D register map missing WHO_AM_I")
}
