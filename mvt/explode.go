package mvt

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/teris-io/shortid"

	"glaciertiler/log"
	"glaciertiler/mbtiles"
)

// Status 单文件处理结果
type Status int

const (
	Done Status = iota
	SkippedExists
	SkippedZoom
	Failed
)

// Result is the per-archive outcome of a batch run.
type Result struct {
	File   string
	Status Status
	Err    error
}

// Task 切片目录导出任务
type Task struct {
	ID              string
	Dir             string
	Command         string
	FallbackMinZoom int
	FallbackMaxZoom int
	RemoveSource    bool

	run func(name string, args ...string) error
}

// NewTask 创建切片目录导出任务
func NewTask(dir, command string, fallbackMinZoom, fallbackMaxZoom int, removeSource bool) *Task {
	id, _ := shortid.Generate()
	return &Task{
		ID:              id,
		Dir:             dir,
		Command:         command,
		FallbackMinZoom: fallbackMinZoom,
		FallbackMaxZoom: fallbackMaxZoom,
		RemoveSource:    removeSource,
		run:             runCommand,
	}
}

// Run explodes every mbtiles archive in the task directory into a directory
// of tiles named after the archive stem. Per-archive failures are logged and
// never abort the batch.
func (t *Task) Run() []Result {
	files, err := listMbtiles(t.Dir)
	if err != nil {
		log.Errorf("unable to read directory %s: %s", t.Dir, err)
		return nil
	}
	log.Printf("%d mbtiles file(s) found", len(files))

	results := make([]Result, 0, len(files))
	for _, file := range files {
		results = append(results, t.explode(file))
	}
	return results
}

func (t *Task) explode(file string) Result {
	// archive stem before the first dot names the output directory
	target := filepath.Join(t.Dir, strings.SplitN(file, ".", 2)[0])
	if _, err := os.Stat(target); err == nil {
		log.Errorf("directory '%s' already exists, skipping %s", target, file)
		return Result{File: file, Status: SkippedExists}
	}

	path := filepath.Join(t.Dir, file)
	minZoom, maxZoom, ok := t.zoomLevels(path)
	if !ok {
		log.Infof("skipping %s due to missing zoom levels", file)
		return Result{File: file, Status: SkippedZoom}
	}

	args := Args(target, path, minZoom, maxZoom)
	log.Infof("[%s] running %s %s", t.ID, t.Command, strings.Join(args, " "))
	if err := t.run(t.Command, args...); err != nil {
		log.Errorf("error converting %s: %s", file, err)
		return Result{File: file, Status: Failed, Err: err}
	}

	if t.RemoveSource {
		if err := os.Remove(path); err != nil {
			log.Warnf("unable to remove %s: %s", file, err)
		} else {
			log.Infof("removed source archive %s", file)
		}
	}
	return Result{File: file, Status: Done}
}

// zoomLevels resolves the bounds for one archive. Absent metadata rows fall
// back to the configured defaults; an unreadable archive never does.
func (t *Task) zoomLevels(path string) (int, int, bool) {
	minZoom, maxZoom, err := mbtiles.ZoomLevels(path)
	if err == nil {
		return minZoom, maxZoom, true
	}
	if errors.Is(err, mbtiles.ErrNoZoomMetadata) {
		log.Warnf("no zoom levels found in metadata for %s, using defaults %d-%d",
			path, t.FallbackMinZoom, t.FallbackMaxZoom)
		return t.FallbackMinZoom, t.FallbackMaxZoom, true
	}
	log.Errorf("%s reading zoom levels from %s: %s", mbtiles.ClassifyError(err), path, err)
	return 0, 0, false
}

// Args builds the ogr2ogr argument list for one archive: MVT output into a
// plain tile directory, uncompressed.
func Args(outDir, input string, minZoom, maxZoom int) []string {
	return []string{
		"-f", "MVT",
		outDir,
		input,
		"-dsco", fmt.Sprintf("MINZOOM=%d", minZoom),
		"-dsco", fmt.Sprintf("MAXZOOM=%d", maxZoom),
		"-dsco", "COMPRESS=NO",
		"-dsco", "FORMAT=DIRECTORY",
	}
}

func listMbtiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".mbtiles") {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
