package system

import (
	"fmt"
	"image/color"

	"github.com/milk9111/coinwalk/assets"
	"github.com/milk9111/coinwalk/component"
	"github.com/milk9111/coinwalk/prefabs"
)

// AssetSheets loads sheets through the assets package. onGenerated, if set,
// is told about every sheet that had to be generated.
func AssetSheets(onGenerated func(path string)) SheetLoader {
	return func(spec prefabs.SpriteSpec, frames int, tint color.Color) (component.Image, error) {
		img, generated, err := assets.LoadSheet(assets.Sheet{
			Path:    spec.Image,
			Columns: spec.Columns,
			Frames:  frames,
			CellW:   int(spec.Source.Width),
			CellH:   int(spec.Source.Height),
			Tint:    tint,
		})
		if err != nil {
			return nil, err
		}
		if generated && onGenerated != nil {
			onGenerated(spec.Image)
		}
		return img, nil
	}
}

// SpawnerFor returns the tengo spawner named by the world spec, or a seeded
// RandomSpawner when it names none.
func SpawnerFor(ws prefabs.WorldSpec) (Spawner, error) {
	if ws.SpawnScript == "" {
		return RandomSpawner{Seed: uint64(ws.Seed)}, nil
	}
	return LoadScriptSpawner(ws.SpawnScript, ws.Seed)
}

// FromPrefabs loads the player and coin prefabs and builds a world for ws.
func FromPrefabs(ws prefabs.WorldSpec, spawner Spawner, sheets SheetLoader) (*World, error) {
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	coin, err := prefabs.LoadCoinSpec()
	if err != nil {
		return nil, err
	}
	w, err := Build(BuildConfig{
		World:   ws,
		Player:  *player,
		Coin:    *coin,
		Spawner: spawner,
		Sheets:  sheets,
	})
	if err != nil {
		return nil, fmt.Errorf("system: build %s: %w", ws.Name, err)
	}
	return w, nil
}
