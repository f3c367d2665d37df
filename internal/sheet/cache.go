package sheet

import (
	"fmt"

	"github.com/klytics/formkit/internal/cellref"
)

// Reader turns a (workbook file, sheet name) pair into a grid of raw
// cell values. Implementations must preserve the numeric vs text
// distinction and fail when the file or sheet cannot be opened. They
// may return fewer rows or columns than the nominal sheet extent when
// trailing cells are blank.
type Reader interface {
	ReadSheet(path, sheetName string) (Grid, error)
}

// Cache memoizes sheet grids for a single workbook file over the
// lifetime of one extraction call. Each sheet is read at most once.
type Cache struct {
	file  string
	grids map[string]Grid
}

// NewCache creates an empty cache for the given workbook file.
func NewCache(file string) *Cache {
	return &Cache{
		file:  file,
		grids: make(map[string]Grid),
	}
}

// File returns the workbook path this cache reads from.
func (c *Cache) File() string {
	return c.file
}

// Load reads every named sheet through r, caching each grid. Sheets
// that cannot be read are collected and returned together after all
// names have been attempted, so the caller can report every missing
// sheet in one pass.
func (c *Cache) Load(r Reader, sheetNames []string) (missing []string) {
	for _, name := range sheetNames {
		if err := c.LoadOne(r, name); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// LoadOne reads a single sheet through r and caches it. Loading a
// sheet that is already cached is a no-op.
func (c *Cache) LoadOne(r Reader, sheetName string) error {
	if _, ok := c.grids[sheetName]; ok {
		return nil
	}
	grid, err := r.ReadSheet(c.file, sheetName)
	if err != nil {
		return err
	}
	c.grids[sheetName] = grid
	return nil
}

// Grid returns the cached grid for a sheet.
func (c *Cache) Grid(sheetName string) (Grid, bool) {
	g, ok := c.grids[sheetName]
	return g, ok
}

// ReadRange returns exactly the rectangle named by rng from a cached
// sheet. Short reads are padded with the missing-value marker so the
// result always matches the declared rectangle, and the corners may be
// given in either order.
func (c *Cache) ReadRange(sheetName, rng string) (Grid, error) {
	grid, ok := c.grids[sheetName]
	if !ok {
		return nil, fmt.Errorf("sheet %q is not loaded from %s", sheetName, c.file)
	}

	a, b, err := cellref.RangeToPoints(rng)
	if err != nil {
		return nil, err
	}

	padded := grid.PadTo(max(a.Row, b.Row), max(a.Col, b.Col))
	return padded.Section(a, b), nil
}
