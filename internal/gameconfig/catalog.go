package gameconfig

import (
	"fmt"
	"sort"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/utils"
)

// PlantDef is a row of the plant table
type PlantDef struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	SeedID        int64         `json:"seed_id"`
	FruitID       int64         `json:"fruit_id"`
	GrowTime      utils.FlexInt `json:"grow_time"`
	Exp           utils.FlexInt `json:"exp"`
	LandLevelNeed int           `json:"land_level_need"`
}

// SeedDef is a row of the seed shop table
type SeedDef struct {
	SeedID        int64 `json:"seed_id"`
	GoodsID       int64 `json:"goods_id"`
	RequiredLevel int   `json:"required_level"`
	Price         int64 `json:"price"`
	Unlocked      *bool `json:"unlocked,omitempty"`
}

// IsUnlocked treats a missing flag as unlocked
func (s SeedDef) IsUnlocked() bool {
	return s.Unlocked == nil || *s.Unlocked
}

// LevelDef is a row of the level table; Exp is cumulative
type LevelDef struct {
	Level int   `json:"level"`
	Exp   int64 `json:"exp"`
}

// Catalog is the read-only lookup view over the static game tables
type Catalog struct {
	plants  map[int64]PlantDef
	bySeed  map[int64]int64
	byFruit map[int64]int64
	seeds   []SeedDef
	levels  []LevelDef
}

// NewCatalog indexes the given tables
func NewCatalog(plants []PlantDef, seeds []SeedDef, levels []LevelDef) (*Catalog, error) {
	c := &Catalog{
		plants:  make(map[int64]PlantDef, len(plants)),
		bySeed:  make(map[int64]int64, len(plants)),
		byFruit: make(map[int64]int64, len(plants)),
		seeds:   append([]SeedDef(nil), seeds...),
	}

	for _, p := range plants {
		if _, dup := c.plants[p.ID]; dup {
			return nil, fmt.Errorf(ErrFmtDuplicatePlant, domain.ErrInvalidConfig, p.ID)
		}
		c.plants[p.ID] = p
		if p.SeedID != 0 {
			if other, dup := c.bySeed[p.SeedID]; dup {
				return nil, fmt.Errorf(ErrFmtDuplicateSeed, domain.ErrInvalidConfig, p.SeedID, other, p.ID)
			}
			c.bySeed[p.SeedID] = p.ID
		}
		if p.FruitID != 0 {
			c.byFruit[p.FruitID] = p.ID
		}
	}

	sorted := append([]LevelDef(nil), levels...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })
	for i, l := range sorted {
		if l.Level != i+1 || (i > 0 && l.Exp < sorted[i-1].Exp) {
			return nil, fmt.Errorf(ErrFmtLevelsNotSorted, domain.ErrInvalidConfig, l.Level)
		}
	}
	c.levels = sorted

	return c, nil
}

// Plant looks up a plant by plant id
func (c *Catalog) Plant(id int64) (PlantDef, bool) {
	p, ok := c.plants[id]
	return p, ok
}

// PlantBySeed looks up the plant grown from a seed item
func (c *Catalog) PlantBySeed(seedID int64) (PlantDef, bool) {
	id, ok := c.bySeed[seedID]
	if !ok {
		return PlantDef{}, false
	}
	return c.Plant(id)
}

// PlantByFruit looks up the plant that yields a fruit item
func (c *Catalog) PlantByFruit(fruitID int64) (PlantDef, bool) {
	id, ok := c.byFruit[fruitID]
	if !ok {
		return PlantDef{}, false
	}
	return c.Plant(id)
}

// PlantName resolves a plant id, falling back to serverName and then a generic label
func (c *Catalog) PlantName(id int64, serverName string) string {
	if p, ok := c.Plant(id); ok && p.Name != "" {
		return p.Name
	}
	if serverName != "" {
		return serverName
	}
	return fmt.Sprintf(domain.PlantNameFallbackFmt, id)
}

// GrowTime returns the configured grow seconds for a plant id, 0 when unknown
func (c *Catalog) GrowTime(id int64) int64 {
	if p, ok := c.Plant(id); ok {
		return p.GrowTime.Int64()
	}
	return 0
}

// SeedShop returns the seed shop rows in table order
func (c *Catalog) SeedShop() []SeedDef {
	return c.seeds
}

// IsSeed reports whether an item id is a known seed
func (c *Catalog) IsSeed(itemID int64) bool {
	_, ok := c.bySeed[itemID]
	return ok
}

// MaxLevel returns the highest level in the table
func (c *Catalog) MaxLevel() int {
	return len(c.levels)
}

// ExpForLevel returns the cumulative exp at which level is reached
func (c *Catalog) ExpForLevel(level int) (int64, bool) {
	if level < 1 || level > len(c.levels) {
		return 0, false
	}
	return c.levels[level-1].Exp, true
}

// LevelProgress returns the level reached with totalExp, the exp earned into
// that level, and the exp still needed for the next one (0 at max level)
func (c *Catalog) LevelProgress(totalExp int64) (level int, into, toNext int64) {
	if len(c.levels) == 0 {
		return 0, 0, 0
	}
	idx := sort.Search(len(c.levels), func(i int) bool { return c.levels[i].Exp > totalExp })
	if idx == 0 {
		return 1, 0, c.levels[0].Exp - totalExp
	}
	cur := c.levels[idx-1]
	into = totalExp - cur.Exp
	if idx < len(c.levels) {
		toNext = c.levels[idx].Exp - totalExp
	}
	return cur.Level, into, toNext
}
