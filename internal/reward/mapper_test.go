package reward

import (
	"reflect"
	"testing"

	"github.com/pranaflow/prana-server/internal/insight"
)

func TestMap_Monotonic(t *testing.T) {
	lo := Map(insight.Analysis{EmotionalDepth: 0.2, SelfAwareness: 0.2})
	hi := Map(insight.Analysis{EmotionalDepth: 0.8, SelfAwareness: 0.9})
	if hi.Points < lo.Points {
		t.Fatalf("higher scores earned fewer points: %d < %d", hi.Points, lo.Points)
	}
}

func TestMap_FloorAndCap(t *testing.T) {
	floor := Map(insight.Analysis{})
	if floor.Points != MinPoints {
		t.Fatalf("zero analysis should earn the floor, got %d", floor.Points)
	}
	top := Map(insight.Analysis{EmotionalDepth: 1, SelfAwareness: 1})
	if top.Points != MaxPoints {
		t.Fatalf("maxed analysis should hit the cap, got %d", top.Points)
	}
}

func TestMap_ChakrasDedupedInFirstActivationOrder(t *testing.T) {
	// connect and gratitude both map to the heart chakra; energy spans two.
	r := Map(insight.Analysis{Themes: []string{"connect", "energy", "gratitude", "calm"}})
	want := []int{3, 1, 2, 0}
	if !reflect.DeepEqual(r.Chakras, want) {
		t.Fatalf("chakras = %v, want %v", r.Chakras, want)
	}
}

func TestMap_UnknownThemeIgnored(t *testing.T) {
	r := Map(insight.Analysis{Themes: []string{"weather"}})
	if len(r.Chakras) != 0 {
		t.Fatalf("unknown theme should not activate chakras: %v", r.Chakras)
	}
}

func TestActivationPoints(t *testing.T) {
	for idx, want := range []int{10, 15, 20, 25, 30, 35, 40} {
		if got := ActivationPoints(idx); got != want {
			t.Fatalf("ActivationPoints(%d) = %d, want %d", idx, got, want)
		}
	}
}
