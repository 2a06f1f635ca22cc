package tippe

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/teris-io/shortid"
	pb "gopkg.in/cheggaaa/pb.v1"

	"glaciertiler/log"
)

// Task 切片构建任务
type Task struct {
	ID      string
	Dir     string
	Command string
	MinZoom int
	MaxZoom int

	run func(name string, args ...string) error
}

// Result is the per-file outcome of a batch run.
type Result struct {
	File   string
	Output string
	Err    error
}

// NewTask 创建切片构建任务
func NewTask(dir, command string, minZoom, maxZoom int) *Task {
	id, _ := shortid.Generate()
	return &Task{
		ID:      id,
		Dir:     dir,
		Command: command,
		MinZoom: minZoom,
		MaxZoom: maxZoom,
		run:     runCommand,
	}
}

// Run builds one mbtiles archive per .geojson file in the task directory.
// A failed invocation is logged and never aborts the batch.
func (t *Task) Run() []Result {
	files, err := listGeojson(t.Dir)
	if err != nil {
		log.Errorf("unable to read directory %s: %s", t.Dir, err)
		return nil
	}

	bar := pb.New(len(files)).Prefix("tiling: ")
	bar.Start()

	results := make([]Result, 0, len(files))
	for _, file := range files {
		output := strings.TrimSuffix(file, ".geojson") + ".mbtiles"
		log.Infof("[%s] converting %s to %s ...", t.ID, file, output)

		args := Args(filepath.Join(t.Dir, file), filepath.Join(t.Dir, output), t.MinZoom, t.MaxZoom)
		err := t.run(t.Command, args...)
		if err != nil {
			log.Errorf("error converting %s: %s", file, err)
		} else {
			log.Infof("successfully created %s", output)
		}
		results = append(results, Result{File: file, Output: output, Err: err})
		bar.Increment()
	}
	bar.Finish()
	return results
}

// Args builds the tippecanoe argument list for one input file. Synthetic
// feature ids are always requested, existing archives are overwritten.
func Args(input, output string, minZoom, maxZoom int) []string {
	return []string{
		"-o", output,
		"-z", strconv.Itoa(maxZoom),
		"-Z", strconv.Itoa(minZoom),
		"--generate-ids",
		"-f",
		input,
	}
}

func listGeojson(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".geojson") {
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
