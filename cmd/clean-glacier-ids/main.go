package main

import (
	"flag"
	"fmt"
	"os"

	"glaciertiler/conf"
	"glaciertiler/log"
	"glaciertiler/props"
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
	fmt.Fprintf(os.Stderr, `clean-glacier-ids version: glaciertiler/v0.1.0
Usage: clean-glacier-ids [-h] [-c filename] [-l logLevel]
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
	err := props.CopyAll(props.Options{
		DataDir:   conf.C.Copier.DataDir,
		Prefix:    conf.C.Copier.Prefix,
		SourceKey: conf.C.Copier.SourceKey,
		TargetKey: conf.C.Copier.TargetKey,
	})
	if err != nil {
		log.Fatalf("unable to process geojson files: %s", err)
	}
}
