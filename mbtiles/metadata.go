package mbtiles

import (
	"database/sql"
	"errors"
	"os"
	"strconv"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// ErrNoZoomMetadata marks an archive whose metadata table is readable but
// carries no minzoom/maxzoom rows. Callers are expected to fall back to
// default bounds in that case; every other error means the archive is
// unreadable and must be skipped.
var ErrNoZoomMetadata = errors.New("no zoom levels in metadata")

// ZoomLevels reads the minzoom/maxzoom rows from the metadata table of an
// mbtiles archive.
func ZoomLevels(path string) (minZoom, maxZoom int, err error) {
	// sql.Open is lazy, stat first so file-access errors surface as such
	if _, err = os.Stat(path); err != nil {
		return
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return
	}
	defer db.Close()

	minRaw, minErr := metadataValue(db, "minzoom")
	if minErr != nil && !errors.Is(minErr, sql.ErrNoRows) {
		err = minErr
		return
	}
	maxRaw, maxErr := metadataValue(db, "maxzoom")
	if maxErr != nil && !errors.Is(maxErr, sql.ErrNoRows) {
		err = maxErr
		return
	}
	if minErr != nil || maxErr != nil {
		err = ErrNoZoomMetadata
		return
	}

	if minZoom, err = strconv.Atoi(minRaw); err != nil {
		return
	}
	maxZoom, err = strconv.Atoi(maxRaw)
	return
}

func metadataValue(db *sql.DB, name string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM metadata WHERE name = ?", name).Scan(&value)
	return value, err
}

// ErrorKind 元数据读取错误分类
type ErrorKind int

const (
	KindOperational ErrorKind = iota
	KindDatabase
	KindSQLite
	KindValue
	KindOS
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindOperational:
		return "sqlite operational error"
	case KindDatabase:
		return "sqlite database error"
	case KindSQLite:
		return "general sqlite error"
	case KindValue:
		return "value error"
	case KindOS:
		return "os error"
	default:
		return "unexpected error"
	}
}

// ClassifyError sorts a zoom-lookup failure into the kinds an operator can
// act on: contention/IO against the archive, a corrupt or non-sqlite file,
// any other driver error, a non-numeric zoom value, plain file-access
// trouble, and a catch-all.
func ClassifyError(err error) ErrorKind {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr, sqlite3.ErrReadonly:
			return KindOperational
		case sqlite3.ErrNotADB, sqlite3.ErrCorrupt:
			return KindDatabase
		default:
			return KindSQLite
		}
	}
	var nerr *strconv.NumError
	if errors.As(err, &nerr) {
		return KindValue
	}
	var perr *os.PathError
	if errors.As(err, &perr) || errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
		return KindOS
	}
	return KindUnexpected
}
