package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"indoor-editor/internal/editor/interaction"
	"indoor-editor/internal/editor/models"
	"indoor-editor/internal/editor/snap"
	"indoor-editor/internal/editor/store"
	"indoor-editor/internal/editor/undo"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	CORSOrigins  []string

	DBPath            string
	SnapGridInterval  float64
	DoorSnapThreshold float64
	HitTolerance      float64
	UndoCapacity      int

	Floors          []models.FloorLevel
	DefaultFloorIdx int
}

// FloorsFile: формат YAML-файла с уровнями этажей.
type FloorsFile struct {
	Default string              `yaml:"default"`
	Levels  []models.FloorLevel `yaml:"levels"`
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		Environment:       getEnv("ENV", "development"),
		ReadTimeout:       getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:      getEnvAsInt("WRITE_TIMEOUT", 10),
		CORSOrigins:       getEnvAsList("CORS_ORIGINS"),
		DBPath:            getEnv("EDITOR_DB_PATH", "data/db/editor.db"),
		SnapGridInterval:  getEnvAsFloat("SNAP_GRID_INTERVAL", snap.DefaultInterval),
		DoorSnapThreshold: getEnvAsFloat("DOOR_SNAP_THRESHOLD", interaction.DefaultDoorThreshold),
		HitTolerance:      getEnvAsFloat("HIT_TOLERANCE", interaction.DefaultHitTolerance),
		UndoCapacity:      getEnvAsInt("UNDO_CAPACITY", undo.DefaultCapacity),
		Floors:            models.DefaultFloorLevels(),
		DefaultFloorIdx:   models.DefaultFloorIdx,
	}

	if path := os.Getenv("FLOORS_FILE"); path != "" {
		if err := cfg.LoadFloors(path); err != nil {
			log.Printf("[CONFIG] Using default floors: %v", err)
		}
	}

	return cfg
}

// LoadFloors заменяет уровни этажей содержимым YAML-файла.
func (c *Config) LoadFloors(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read floors file: %w", err)
	}

	levels, defaultIdx, err := ParseFloors(data)
	if err != nil {
		return err
	}

	c.Floors = levels
	c.DefaultFloorIdx = defaultIdx
	return nil
}

// ParseFloors decodes a floors file. Without a "default" key the level at
// elevation 0 is chosen, or the first level when there is none.
func ParseFloors(data []byte) ([]models.FloorLevel, int, error) {
	var file FloorsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, 0, fmt.Errorf("parse floors file: %w", err)
	}
	if len(file.Levels) == 0 {
		return nil, 0, fmt.Errorf("floors file has no levels")
	}

	seen := make(map[string]bool, len(file.Levels))
	for i, l := range file.Levels {
		if l.Index == "" {
			return nil, 0, fmt.Errorf("level %d has no index", i)
		}
		if seen[l.Index] {
			return nil, 0, fmt.Errorf("duplicate level %q", l.Index)
		}
		seen[l.Index] = true
		if l.Label == "" {
			file.Levels[i].Label = l.Index
		}
	}

	defaultIdx := -1
	for i, l := range file.Levels {
		if file.Default != "" && l.Index == file.Default {
			defaultIdx = i
		}
		if file.Default == "" && l.Elevation == 0 && defaultIdx < 0 {
			defaultIdx = i
		}
	}
	if defaultIdx < 0 {
		if file.Default != "" {
			return nil, 0, fmt.Errorf("default level %q not found", file.Default)
		}
		defaultIdx = 0
	}

	return file.Levels, defaultIdx, nil
}

// Editor projects the engine options used for every new editing session.
func (c *Config) Editor() (store.Options, interaction.Options) {
	storeOpts := store.Options{
		Levels:          c.Floors,
		DefaultFloorIdx: c.DefaultFloorIdx,
		UndoCapacity:    c.UndoCapacity,
	}

	ctrlOpts := interaction.DefaultOptions()
	ctrlOpts.Grid = snap.NewGrid(c.SnapGridInterval)
	if c.DoorSnapThreshold > 0 {
		ctrlOpts.DoorThreshold = c.DoorSnapThreshold
	}
	if c.HitTolerance > 0 {
		ctrlOpts.HitTester = interaction.GeometryHitTester{Tolerance: c.HitTolerance}
	}

	return storeOpts, ctrlOpts
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

// getEnvAsList разбирает список через запятую, пустые элементы отбрасываются.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
