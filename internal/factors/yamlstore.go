package factors

import (
	"context"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// datasetSchemaConstraint is the schema_version range this build of the
// engine can read. Datasets written for a future major version are
// rejected rather than misread.
const datasetSchemaConstraint = "^1"

// dataset is the on-disk YAML shape of a factor dataset file.
type dataset struct {
	SchemaVersion string           `yaml:"schema_version"`
	Name          string           `yaml:"name"`
	Factors       []EmissionFactor `yaml:"factors"`
}

// FileStore is a Store backed by a YAML factor dataset loaded from
// disk. It supports running assessments against curated factor files
// without a database.
type FileStore struct {
	byKey map[Key][]EmissionFactor
}

// LoadFile reads and validates a YAML factor dataset.
//
// Every row must carry a positive factor, a scope in 1..3, and a
// non-empty category/subcategory/unit. Rows without an explicit
// provenance tier are classified from their source string once, here,
// at ingestion time.
func LoadFile(path string) (*FileStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading factor dataset: %w", err)
	}

	var ds dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDataset, path, err)
	}

	if err := checkSchemaVersion(ds.SchemaVersion); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDataset, path, err)
	}

	fs := &FileStore{byKey: make(map[Key][]EmissionFactor, len(ds.Factors))}
	for i := range ds.Factors {
		f := ds.Factors[i]
		if f.Category == "" || f.Subcategory == "" || f.Unit == "" {
			return nil, fmt.Errorf("%w: %s: factor %d missing category, subcategory, or unit", ErrInvalidDataset, path, i)
		}
		if f.Scope < 1 || f.Scope > 3 {
			return nil, fmt.Errorf("%w: %s: factor %d has scope %d, want 1..3", ErrInvalidDataset, path, i, f.Scope)
		}
		if f.Factor <= 0 {
			return nil, fmt.Errorf("%w: %s: factor %d has non-positive emission factor", ErrInvalidDataset, path, i)
		}
		if f.Region == "" {
			f.Region = GlobalRegion
		}
		if !f.Provenance.Valid() {
			f.Provenance = ClassifyProvenance(f.Source)
		}

		k := Key{f.Category, f.Subcategory, f.Scope, f.Region}
		fs.byKey[k] = append(fs.byKey[k], f)
	}

	return fs, nil
}

// checkSchemaVersion validates the dataset schema_version against the
// supported constraint.
func checkSchemaVersion(version string) error {
	if version == "" {
		return fmt.Errorf("missing schema_version")
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("bad schema_version %q: %w", version, err)
	}

	c, err := semver.NewConstraint(datasetSchemaConstraint)
	if err != nil {
		return fmt.Errorf("bad schema constraint: %w", err)
	}

	if !c.Check(v) {
		return fmt.Errorf("schema_version %s outside supported range %s", version, datasetSchemaConstraint)
	}

	return nil
}

// QueryFactors implements Store over the loaded dataset.
func (fs *FileStore) QueryFactors(_ context.Context, category, subcategory string, scope int, regions []string) ([]EmissionFactor, error) {
	var out []EmissionFactor
	for _, region := range regions {
		out = append(out, fs.byKey[Key{category, subcategory, scope, region}]...)
	}
	return out, nil
}

// Len returns the number of loaded factors.
func (fs *FileStore) Len() int {
	n := 0
	for _, v := range fs.byKey {
		n += len(v)
	}
	return n
}
