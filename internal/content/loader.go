package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/towerclimb-backend/internal/catalog"
)

const (
	packagesFile = "packages.yaml"
	scrollsFile  = "scrolls.yaml"
	catalogFile  = "catalog.yaml"
	overridesDir = "overrides"
)

// Paths helper for base/override content files.
type Paths struct {
	BaseDir string // e.g. /opt/app/configs/content
}

func (p Paths) PackagesPath() string { return filepath.Join(p.BaseDir, packagesFile) }
func (p Paths) ScrollsPath() string  { return filepath.Join(p.BaseDir, scrollsFile) }
func (p Paths) CatalogPath() string  { return filepath.Join(p.BaseDir, catalogFile) }

// OverridePath returns the override file shadowing one of the base files.
func (p Paths) OverridePath(name string) string {
	return filepath.Join(p.BaseDir, overridesDir, name)
}

// Files lists every path a reload depends on, for the watcher.
func (p Paths) Files() []string {
	var out []string
	for _, name := range []string{packagesFile, scrollsFile, catalogFile} {
		out = append(out, filepath.Join(p.BaseDir, name), p.OverridePath(name))
	}
	return out
}

// Loader reads YAML content and merges base → overrides.
type Loader struct {
	paths Paths
}

// NewLoader creates a content loader rooted at baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{paths: Paths{BaseDir: baseDir}}
}

func (l *Loader) Paths() Paths { return l.paths }

// Load reads, merges and validates all content files into a fresh snapshot.
// packages.yaml is required; everything else is optional.
func (l *Loader) Load() (*Tables, error) {
	var pkgs PackagesFile
	found, err := readYAML(l.paths.PackagesPath(), &pkgs)
	if err != nil {
		return nil, fmt.Errorf("read packages: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("read packages: %s: %w", l.paths.PackagesPath(), os.ErrNotExist)
	}
	var pkgOver PackagesFile
	if _, err := readYAML(l.paths.OverridePath(packagesFile), &pkgOver); err != nil {
		return nil, fmt.Errorf("read packages override: %w", err)
	}

	var scrolls, scrollOver ScrollsFile
	if _, err := readYAML(l.paths.ScrollsPath(), &scrolls); err != nil {
		return nil, fmt.Errorf("read scrolls: %w", err)
	}
	if _, err := readYAML(l.paths.OverridePath(scrollsFile), &scrollOver); err != nil {
		return nil, fmt.Errorf("read scrolls override: %w", err)
	}

	var cat, catOver CatalogFile
	if _, err := readYAML(l.paths.CatalogPath(), &cat); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if _, err := readYAML(l.paths.OverridePath(catalogFile), &catOver); err != nil {
		return nil, fmt.Errorf("read catalog override: %w", err)
	}

	version := pkgs.Version
	if pkgOver.Version != "" {
		version = pkgOver.Version
	}

	t := Build(
		version,
		mergeMap(pkgs.Packages, pkgOver.Packages),
		mergeMap(scrolls.Scrolls, scrollOver.Scrolls),
		mergeCatalog(cat, catOver),
	)
	if err := Validate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Build assembles a snapshot from already-decoded definitions.
func Build(version string, pkgs map[string]Package, scrolls map[string]Scroll, cat CatalogFile) *Tables {
	entries := make(map[catalog.Ref]catalog.Entry)
	add := func(kind catalog.Kind, m map[string]CatalogEntry) {
		for id, e := range m {
			entries[catalog.Ref{Kind: kind, ID: id}] = catalog.Entry{Name: e.Name, Icon: e.Icon, Rarity: e.Rarity}
		}
	}
	add(catalog.KindItem, cat.Items)
	add(catalog.KindMaterial, cat.Materials)
	add(catalog.KindSkill, cat.Skills)

	if pkgs == nil {
		pkgs = map[string]Package{}
	}
	if scrolls == nil {
		scrolls = map[string]Scroll{}
	}
	return &Tables{
		Version:  version,
		Packages: pkgs,
		Scrolls:  scrolls,
		Catalog:  catalog.New(entries),
	}
}

// readYAML decodes path into out. Missing files report found=false, no error.
func readYAML(path string, out any) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return true, fmt.Errorf("%s: %w", path, err)
	}
	return true, nil
}

// mergeMap returns a copy of a with every key of b replacing a's entry.
func mergeMap[V any](a, b map[string]V) map[string]V {
	out := make(map[string]V, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func mergeCatalog(a, b CatalogFile) CatalogFile {
	out := CatalogFile{
		Version:   a.Version,
		Items:     mergeMap(a.Items, b.Items),
		Materials: mergeMap(a.Materials, b.Materials),
		Skills:    mergeMap(a.Skills, b.Skills),
	}
	if b.Version != "" {
		out.Version = b.Version
	}
	return out
}
