// Package catalog loads named activity catalogs from YAML files.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/itinerary-planner-api/internal/scheduler"
)

// ErrNotFound is returned by Get for unknown catalog ids.
var ErrNotFound = errors.New("catalog not found")

// Catalog is a named, ordered list of activities.
type Catalog struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Activities  []scheduler.Activity `json:"activities"`
	Source      string               `json:"-"`
}

// Summary is the listing view of a catalog.
type Summary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	ActivityCount int    `json:"activityCount"`
}

type catalogFile struct {
	ID          string               `yaml:"id"`
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	Activities  []scheduler.Activity `yaml:"activities"`
}

// Loader keeps the catalogs of one directory in memory.
type Loader struct {
	mu       sync.RWMutex
	dir      string
	catalogs map[string]*Catalog
	logger   *zap.Logger
}

// NewLoader creates an empty loader for dir.
func NewLoader(dir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		dir:      dir,
		catalogs: make(map[string]*Catalog),
		logger:   logger,
	}
}

// Dir returns the directory the loader reads from.
func (l *Loader) Dir() string {
	return l.dir
}

// LoadFromDir loads every *.yaml / *.yml file in the loader directory. Files that fail to
// parse are skipped with a warning; a missing directory leaves the loader empty.
func (l *Loader) LoadFromDir() (int, error) {
	if l.dir == "" {
		return 0, nil
	}
	info, err := os.Stat(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("catalog directory not found", zap.String("dir", l.dir))
			return 0, nil
		}
		return 0, fmt.Errorf("stat catalog dir: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("catalog path %s is not a directory", l.dir)
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(l.dir, pattern))
		if err != nil {
			return 0, fmt.Errorf("glob catalogs: %w", err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	loaded := make(map[string]*Catalog, len(files))
	for _, file := range files {
		cat, err := LoadFile(file)
		if err != nil {
			l.logger.Warn("failed to load catalog", zap.String("file", file), zap.Error(err))
			continue
		}
		if _, exists := loaded[cat.ID]; exists {
			l.logger.Warn("duplicate catalog id", zap.String("id", cat.ID), zap.String("file", file))
			continue
		}
		loaded[cat.ID] = cat
	}

	l.mu.Lock()
	l.catalogs = loaded
	l.mu.Unlock()

	l.logger.Info("catalogs loaded", zap.Int("count", len(loaded)), zap.Int("files", len(files)))
	return len(loaded), nil
}

// Reload is LoadFromDir under a name that reads better at call sites.
func (l *Loader) Reload() (int, error) {
	return l.LoadFromDir()
}

// Put registers a catalog directly, replacing any catalog with the same id.
func (l *Loader) Put(cat *Catalog) error {
	if err := cat.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	l.catalogs[cat.ID] = cat
	l.mu.Unlock()
	return nil
}

// Get returns the catalog with the given id.
func (l *Loader) Get(id string) (*Catalog, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cat, ok := l.catalogs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return cat, nil
}

// List returns catalog summaries ordered by id.
func (l *Loader) List() []Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	summaries := make([]Summary, 0, len(l.catalogs))
	for _, cat := range l.catalogs {
		summaries = append(summaries, cat.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ID < summaries[j].ID
	})
	return summaries
}

// LoadFile parses one catalog file. The id defaults to the file name without extension.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}

	id := strings.TrimSpace(file.ID)
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	name := strings.TrimSpace(file.Name)
	if name == "" {
		name = id
	}
	cat := &Catalog{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(file.Description),
		Activities:  file.Activities,
		Source:      path,
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Validate requires an id and a string category on every activity.
func (c *Catalog) Validate() error {
	if c == nil || c.ID == "" {
		return errors.New("catalog id is required")
	}
	if err := ValidateActivities(c.Activities); err != nil {
		return fmt.Errorf("catalog %s: %w", c.ID, err)
	}
	return nil
}

// Summary returns the listing view.
func (c *Catalog) Summary() Summary {
	return Summary{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		ActivityCount: len(c.Activities),
	}
}

// ValidateActivities checks that each activity carries a non-empty string category.
func ValidateActivities(activities []scheduler.Activity) error {
	for i, activity := range activities {
		raw, ok := activity["category"]
		if !ok {
			return fmt.Errorf("activity %d has no category", i)
		}
		category, ok := raw.(string)
		if !ok || strings.TrimSpace(category) == "" {
			return fmt.Errorf("activity %d category must be a non-empty string", i)
		}
	}
	return nil
}
