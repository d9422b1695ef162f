package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

const (
	obstacleGroup = "Obstacles"
	spawnGroup    = "ShipSpawn"
)

// LoadSector parses a TMX file into sector data. It takes an fs.FS so callers
// can pass embed.FS or os.DirFS.
func LoadSector(fsys fs.FS, tmxPath string) (*SectorData, error) {
	sectorMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	data := &SectorData{
		Name:  strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width: sectorMap.Width * sectorMap.TileWidth,
		Depth: sectorMap.Height * sectorMap.TileHeight,
	}

	for _, og := range sectorMap.ObjectGroups {
		switch og.Name {
		case obstacleGroup:
			for _, o := range og.Objects {
				data.Obstacles = append(data.Obstacles, Obstacle{
					X:    o.X,
					Z:    o.Y,
					W:    o.Width,
					D:    o.Height,
					Kind: o.Properties.GetString("kind"),
				})
			}
		case spawnGroup:
			for _, o := range og.Objects {
				data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
					X:        o.X,
					Z:        o.Y,
					Altitude: float64(o.Properties.GetInt("altitude")),
					Heading:  o.Properties.GetInt("heading"),
					Index:    o.Properties.GetInt("spawnIndex"),
				})
			}
		}
	}

	// Assign spawns in index order, then left to right
	sort.SliceStable(data.SpawnPoints, func(i, j int) bool {
		a, b := data.SpawnPoints[i], data.SpawnPoints[j]
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.X < b.X
	})

	return data, nil
}

// LoadAllSectors discovers all .tmx files in dir within fsys and returns them
// keyed by stem name plus a sorted list of names.
func LoadAllSectors(fsys fs.FS, dir string) (map[string]*SectorData, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	sectors := make(map[string]*SectorData, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := LoadSector(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		sectors[data.Name] = data
		names = append(names, data.Name)
	}

	sort.Strings(names)
	return sectors, names, nil
}
