package match3

import "github.com/tilelab/cascade/internal/cascade"

// Level describes one quarry board: dimensions, color count and the
// obstacle layout. Layout rows use one rune per cell:
//
//	. empty      d dirt        s stone
//	i ice        c chain       b bubble
type Level struct {
	ID     int
	Name   string
	Width  int
	Height int
	Colors int
	Layout []string
}

var levels = []Level{
	{
		ID: 1, Name: "Topsoil", Width: 8, Height: 8, Colors: 4,
		Layout: []string{
			"........",
			"........",
			"........",
			"........",
			"........",
			"........",
			"dddddddd",
			"dddddddd",
		},
	},
	{
		ID: 2, Name: "Frost Line", Width: 8, Height: 8, Colors: 5,
		Layout: []string{
			"........",
			"........",
			"..ii....",
			"..ii....",
			"........",
			"dddddddd",
			"dddddddd",
			"ssssssss",
		},
	},
	{
		ID: 3, Name: "Chain Gang", Width: 8, Height: 8, Colors: 5,
		Layout: []string{
			"........",
			"c......c",
			"........",
			"...bb...",
			"........",
			"ddddddd.",
			".ddddddd",
			"ssssssss",
		},
	},
	{
		ID: 4, Name: "Deep Vein", Width: 9, Height: 9, Colors: 6,
		Layout: []string{
			".........",
			"....i....",
			"...iii...",
			"....i....",
			".........",
			"ddddddddd",
			"sssssssss",
			"ddddddddd",
			"sssssssss",
		},
	},
	{
		ID: 5, Name: "Bedrock", Width: 9, Height: 9, Colors: 6,
		Layout: []string{
			"c.......c",
			".........",
			"..b...b..",
			".........",
			"...iii...",
			"ddddddddd",
			"sssssssss",
			"sssssssss",
			"sssssssss",
		},
	},
}

// LevelCount returns the number of quarry levels.
func LevelCount() int {
	return len(levels)
}

// GetLevel returns the level at the given index, clamped to a valid one.
func GetLevel(i int) *Level {
	return &levels[clampLevel(i)]
}

func clampLevel(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(levels) {
		return len(levels) - 1
	}
	return i
}

// apply stamps the level's obstacle layout onto a freshly filled board.
func (lv *Level) apply(b *cascade.Board) {
	for y, row := range lv.Layout {
		if y >= b.H {
			break
		}
		for x, r := range row {
			if x >= b.W {
				break
			}
			switch r {
			case 'd':
				b.SetGround(x, y, cascade.Ground{Kind: cascade.GroundDirt, Health: 1})
			case 's':
				b.SetGround(x, y, cascade.Ground{Kind: cascade.GroundStone, Health: 2})
			case 'i':
				b.SetCover(x, y, cascade.Cover{Kind: cascade.CoverIce, Health: 1})
			case 'c':
				b.SetCover(x, y, cascade.Cover{Kind: cascade.CoverChain, Health: 1})
			case 'b':
				b.SetCover(x, y, cascade.Cover{Kind: cascade.CoverBubble, Health: 1})
			}
		}
	}
}
