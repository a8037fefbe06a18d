package gameconfig

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/blz111/qq-farm-bot/internal/logger"
	"github.com/blz111/qq-farm-bot/internal/validation"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

type plantsFile struct {
	Version string     `json:"version"`
	Plants  []PlantDef `json:"plants"`
}

type seedShopFile struct {
	Version string    `json:"version"`
	Seeds   []SeedDef `json:"seeds"`
}

type levelsFile struct {
	Version string     `json:"version"`
	Levels  []LevelDef `json:"levels"`
}

// Loader reads and validates the static game tables
type Loader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a Loader using the embedded table schemas
func NewLoader() *Loader {
	schemas, err := fs.Sub(schemaFiles, "schemas")
	if err != nil {
		panic(err)
	}
	return &Loader{schemaValidator: validation.NewSchemaValidator(schemas)}
}

// Load reads plants.json, seed_shop.json and levels.json from dir
func (l *Loader) Load(ctx context.Context, dir string) (*Catalog, error) {
	var plants plantsFile
	if err := l.readTable(filepath.Join(dir, FilePlants), SchemaPlants, &plants); err != nil {
		return nil, err
	}
	var seeds seedShopFile
	if err := l.readTable(filepath.Join(dir, FileSeedShop), SchemaSeedShop, &seeds); err != nil {
		return nil, err
	}
	var levels levelsFile
	if err := l.readTable(filepath.Join(dir, FileLevels), SchemaLevels, &levels); err != nil {
		return nil, err
	}

	catalog, err := NewCatalog(plants.Plants, seeds.Seeds, levels.Levels)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	for _, s := range catalog.SeedShop() {
		if _, ok := catalog.PlantBySeed(s.SeedID); !ok {
			log.Warn(LogMsgSeedWithoutPlant, "seed_id", s.SeedID)
		}
	}
	log.Info(LogMsgCatalogLoaded,
		"dir", dir,
		"plants", len(plants.Plants),
		"seeds", len(seeds.Seeds),
		"levels", len(levels.Levels))

	return catalog, nil
}

func (l *Loader) readTable(path, schema string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf(ErrMsgReadTableFailed, path, err)
	}
	if err := l.schemaValidator.ValidateBytes(data, schema); err != nil {
		return fmt.Errorf(ErrFmtSchemaFailed, path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf(ErrMsgParseTableFailed, path, err)
	}
	return nil
}
