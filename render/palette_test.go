package render

import (
	"testing"

	"golang.org/x/image/colornames"

	"github.com/milk9111/hellshooter/ecs/component"
)

func TestNamedColor(t *testing.T) {
	tests := []struct {
		name string
		want any
	}{
		{"red", colornames.Red},
		{"Gold", colornames.Gold},
		{"", colText},
		{"not-a-colour", colText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NamedColor(tt.name); got != tt.want {
				t.Fatalf("NamedColor(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestEveryKindHasAColour(t *testing.T) {
	for k := component.PowerUpKind(0); k < component.PowerUpCount; k++ {
		if powerUpColor(k) == colornames.White {
			t.Errorf("power-up %s uses the fallback colour", k)
		}
	}
	for _, k := range []component.EnemyKind{component.EnemyNormal, component.EnemyExtra, component.EnemyMeteor} {
		if enemyColor(k) == colornames.White {
			t.Errorf("enemy %s uses the fallback colour", k)
		}
	}
}
