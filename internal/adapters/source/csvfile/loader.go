package csvfile

import (
	"bufio"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"bikeshare/internal/core/filter"
	"bikeshare/internal/core/trip"
	perr "bikeshare/internal/platform/errors"
	"bikeshare/internal/platform/logger"
)

// checkEvery is how many rows are read between context checks
const checkEvery = 4096

// openFile is swapped in tests
var openFile = func(name string) (io.ReadCloser, error) { return os.Open(name) }

// Loader loads whole city files from a data directory
type Loader struct {
	dir string
}

// New returns a loader reading <dir>/<city file>
func New(dir string) *Loader {
	if dir == "" {
		dir = "."
	}
	return &Loader{dir: dir}
}

// Path is the data file location for city
func (l *Loader) Path(city filter.City) string { return filepath.Join(l.dir, city.File()) }

// Load reads every row of the city's file into a store
func (l *Loader) Load(ctx context.Context, city filter.City) (*trip.Store, error) {
	if !city.Valid() {
		return nil, perr.WithField(perr.InvalidCriteriaf("unknown city %d", city), "city")
	}
	path := l.Path(city)
	start := time.Now()

	f, err := openFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, perr.WithField(perr.Wrapf(err, perr.ErrorCodeNotFound, "no data file for %s", city), path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeSource, "open %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.C(ctx).Warn().Err(cerr).Str("path", path).Msg("csvfile: close failed")
		}
	}()

	st, err := Read(ctx, bufio.NewReaderSize(f, 256*1024), city.Key())
	if err != nil {
		return nil, perr.WithOp(err, "csvfile.load")
	}
	logger.C(ctx).Info().
		Str("path", path).
		Int("rows", st.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("csvfile: loaded")
	return st, nil
}

// Read builds a store for city from CSV text
func Read(ctx context.Context, r io.Reader, city string) (*trip.Store, error) {
	rd, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	b := trip.NewBuilder(city, 0)
	for {
		if b.Len()%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		a, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		b.Add(a)
	}
	return b.Store(), nil
}
