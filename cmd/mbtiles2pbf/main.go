package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"glaciertiler/conf"
	"glaciertiler/log"
	"glaciertiler/mvt"
)

var (
	hf         bool
	configPath string
	logLevel   string
)

func initFlag() {
	flag.BoolVar(&hf, "h", false, "this help")
	flag.StringVar(&configPath, "c", "./conf/conf.toml", "set config `file`")
	flag.StringVar(&logLevel, "l", "info", "set log level (default: info)")
	flag.Usage = usage
	flag.Parse()

	if hf {
		flag.Usage()
		os.Exit(0)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `mbtiles2pbf version: glaciertiler/v0.1.0
Usage: mbtiles2pbf [-h] [-c filename] [-l logLevel]
`)
	flag.PrintDefaults()
}

func main() {
	// 初始化控制台
	initFlag()
	// 初始化配置
	conf.Init(configPath)
	// 初始化日志
	log.Init(logLevel)

	// 开始任务
	start := time.Now()
	task := mvt.NewTask(conf.C.Explode.Dir, conf.C.Explode.Command,
		conf.C.Explode.FallbackMinZoom, conf.C.Explode.FallbackMaxZoom,
		conf.C.Explode.RemoveSource)

	results := task.Run()
	var done, skipped, failed int
	for _, r := range results {
		switch r.Status {
		case mvt.Done:
			done++
		case mvt.Failed:
			failed++
		default:
			skipped++
		}
	}
	secs := time.Since(start).Seconds()
	log.Printf("%d converted, %d skipped, %d failed, %.3fs finished...", done, skipped, failed, secs)
}
