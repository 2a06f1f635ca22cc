package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"glaciertiler/conf"
	"glaciertiler/log"
	"glaciertiler/tippe"
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
	fmt.Fprintf(os.Stderr, `geojson2mbtiles version: glaciertiler/v0.1.0
Usage: geojson2mbtiles [-h] [-c filename] [-l logLevel]
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
	task := tippe.NewTask(conf.C.Tiling.Dir, conf.C.Tiling.Command,
		conf.C.Tiling.MinZoom, conf.C.Tiling.MaxZoom)

	results := task.Run()
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	secs := time.Since(start).Seconds()
	log.Printf("%d file(s) processed, %d failed, %.3fs finished...", len(results), failed, secs)
}
