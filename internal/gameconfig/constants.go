package gameconfig

// Table file names
const (
	FilePlants   = "plants.json"
	FileSeedShop = "seed_shop.json"
	FileLevels   = "levels.json"
)

// Embedded schema names
const (
	SchemaPlants   = "plants.schema.json"
	SchemaSeedShop = "seed_shop.schema.json"
	SchemaLevels   = "levels.schema.json"
)

// Error messages
const (
	ErrMsgReadTableFailed  = "failed to read %s: %w"
	ErrMsgParseTableFailed = "failed to parse %s: %w"
	ErrFmtSchemaFailed     = "schema validation failed for %s: %w"
	ErrFmtDuplicatePlant   = "%w: duplicate plant id %d"
	ErrFmtDuplicateSeed    = "%w: seed %d mapped to plants %d and %d"
	ErrFmtLevelsNotSorted  = "%w: levels must be contiguous from 1 with non-decreasing exp (at level %d)"
)

// Log messages
const (
	LogMsgCatalogLoaded    = "Game configuration loaded"
	LogMsgSeedWithoutPlant = "Seed shop entry has no plant, skipping"
)
