package gameconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTables(t *testing.T, plants, seeds, levels string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FilePlants), []byte(plants), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileSeedShop), []byte(seeds), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileLevels), []byte(levels), 0600))
	return dir
}

const (
	validPlants = `{"plants": [{"id": 1020002, "name": "白萝卜", "seed_id": 20002, "fruit_id": 40002, "grow_time": "60", "exp": 1}]}`
	validSeeds  = `{"seeds": [{"seed_id": 20002, "goods_id": 1, "required_level": 1, "price": 0}]}`
	validLevels = `{"levels": [{"level": 1, "exp": 0}, {"level": 2, "exp": 50}]}`
)

func TestLoader_Load(t *testing.T) {
	dir := writeTables(t, validPlants, validSeeds, validLevels)

	c, err := NewLoader().Load(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, int64(60), c.GrowTime(1020002))
	assert.Equal(t, 2, c.MaxLevel())
	assert.Len(t, c.SeedShop(), 1)
}

func TestLoader_SchemaViolation(t *testing.T) {
	dir := writeTables(t, `{"plants": [{"id": 1}]}`, validSeeds, validLevels)

	_, err := NewLoader().Load(context.Background(), dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
	assert.Contains(t, err.Error(), FilePlants)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestLoader_ShippedTables(t *testing.T) {
	dir := filepath.Join("..", "..", "configs", "gameconfig")
	if _, err := os.Stat(dir); err != nil {
		t.Skip("shipped game tables not present")
	}

	c, err := NewLoader().Load(context.Background(), dir)

	require.NoError(t, err)
	for _, s := range c.SeedShop() {
		_, ok := c.PlantBySeed(s.SeedID)
		assert.True(t, ok, "seed %d has a plant", s.SeedID)
	}
}
