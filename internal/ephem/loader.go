package ephem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-astroclock/internal/logging"
)

// File extensions of the two table layouts. A body may have several
// tables, numbered after its name: moon1.lng, moon2.lng.
const (
	LongitudeExt = ".lng"
	ElementExt   = ".elem"
)

// loadConcurrency bounds the number of tables decoded at once.
const loadConcurrency = 4

// BodyFromFilename returns the body name and table kind for a table file
// name, or false when the name is not a table.
func BodyFromFilename(name string) (string, Kind, bool) {
	base := path.Base(name)
	var kind Kind
	switch strings.ToLower(path.Ext(base)) {
	case LongitudeExt:
		kind = KindLongitude
	case ElementExt:
		kind = KindElements
	default:
		return "", 0, false
	}
	stem := strings.TrimRight(strings.TrimSuffix(base, path.Ext(base)), "0123456789")
	if stem == "" {
		return "", 0, false
	}
	return normalizeName(stem), kind, true
}

// LoadDir loads every table in dir. A missing directory yields an empty
// store.
func LoadDir(ctx context.Context, dir string, log *logging.Logger) (*Store, error) {
	if dir == "" {
		return Empty(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("ephemeris directory not found", "dir", dir)
			return Empty(), nil
		}
		return nil, fmt.Errorf("ephemeris directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("ephemeris directory: %s is not a directory", dir)
	}
	return LoadFS(ctx, os.DirFS(dir), log)
}

// LoadFS loads every table at the root of fsys. Unreadable or corrupt
// tables are logged and skipped; the error return is reserved for
// cancellation and directory listing failures.
func LoadFS(ctx context.Context, fsys fs.FS, log *logging.Logger) (*Store, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing ephemeris tables: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, _, ok := BodyFromFilename(e.Name()); ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	segs := make([]*Segment, len(names))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)

	for i, name := range names {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			seg, err := loadTable(fsys, name)
			if err != nil {
				log.Warn("skipping ephemeris table", "file", name, "err", err)
				return nil
			}
			segs[i] = &seg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := NewBuilder()
	loaded := 0
	for _, seg := range segs {
		if seg == nil {
			continue
		}
		b.Add(*seg)
		loaded++
	}
	log.Debug("ephemeris tables loaded", "tables", loaded, "skipped", len(names)-loaded)
	return b.Build(), nil
}

func loadTable(fsys fs.FS, name string) (Segment, error) {
	body, kind, _ := BodyFromFilename(name)

	f, err := fsys.Open(name)
	if err != nil {
		return Segment{}, err
	}
	defer f.Close()

	var seg Segment
	if kind == KindElements {
		seg, err = DecodeElementTable(body, f)
	} else {
		seg, err = DecodeLongitudeTable(f)
	}
	if err != nil {
		return Segment{}, err
	}
	if seg.Len() == 0 {
		return Segment{}, ErrEmptyTable
	}
	seg.Name = body
	return seg, nil
}
