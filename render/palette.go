package render

import (
	"image/color"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/milk9111/hellshooter/ecs/component"
)

var (
	colBackground = color.RGBA{R: 0x0b, G: 0x0b, B: 0x16, A: 0xff}
	colPlayer     = colornames.Deepskyblue
	colShield     = colornames.Aqua
	colBullet     = colornames.Yellow
	colExplosive  = colornames.Orangered
	colBossBullet = colornames.Magenta
	colBoss       = colornames.Darkred
	colBossImmune = colornames.Slategray
	colMine       = colornames.Orange
	colRedLine    = colornames.Red
	colTelegraph  = color.RGBA{R: 0xff, A: 0x50}
	colHeart      = colornames.Hotpink
	colText       = colornames.White
	colDim        = colornames.Gray
	colSummoned   = colornames.Crimson
)

func enemyColor(k component.EnemyKind) color.RGBA {
	switch k {
	case component.EnemyNormal:
		return colornames.Limegreen
	case component.EnemyExtra:
		return colornames.Gold
	case component.EnemyMeteor:
		return colornames.Sienna
	default:
		return colornames.White
	}
}

func powerUpColor(k component.PowerUpKind) color.RGBA {
	switch k {
	case component.PowerUpShield:
		return colornames.Aqua
	case component.PowerUpWideShot:
		return colornames.Violet
	case component.PowerUpExplosive:
		return colornames.Orangered
	case component.PowerUpRapidFire:
		return colornames.Yellow
	default:
		return colornames.White
	}
}

func effectColor(k component.EffectKind) color.RGBA {
	switch k {
	case component.EffectExplosion, component.EffectMineBlast:
		return colornames.Orange
	case component.EffectHit:
		return colornames.White
	case component.EffectTeleport:
		return colornames.Mediumpurple
	case component.EffectSpecial:
		return colornames.Lightcyan
	default:
		return colornames.White
	}
}

// NamedColor resolves an x/image color name, falling back to white.
func NamedColor(name string) color.RGBA {
	if c, ok := colornames.Map[strings.ToLower(name)]; ok {
		return c
	}
	return colText
}
