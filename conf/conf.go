package conf

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var C *Conf

type Conf struct {
	App struct {
		Version string `toml:"version"`
		Title   string `toml:"title"`
	} `toml:"app"`
	Output struct {
		LogDir         string `toml:"logDir"`
		OutputTerminal bool   `toml:"outputTerminal"`
	} `toml:"output"`
	Copier struct {
		DataDir   string `toml:"dataDir"`
		Prefix    string `toml:"prefix"`
		SourceKey string `toml:"sourceKey"`
		TargetKey string `toml:"targetKey"`
	} `toml:"copier"`
	Tiling struct {
		Dir     string `toml:"dir"`
		Command string `toml:"command"`
		MinZoom int    `toml:"minZoom"`
		MaxZoom int    `toml:"maxZoom"`
	} `toml:"tiling"`
	Explode struct {
		Dir             string `toml:"dir"`
		Command         string `toml:"command"`
		FallbackMinZoom int    `toml:"fallbackMinZoom"`
		FallbackMaxZoom int    `toml:"fallbackMaxZoom"`
		RemoveSource    bool   `toml:"removeSource"`
	} `toml:"explode"`
}

// Init 初始化配置
func Init(cfgFile string) {
	if cfgFile == "" {
		cfgFile = "conf.toml"
	}
	viper.SetConfigType("toml")
	viper.SetConfigFile(cfgFile)
	viper.AutomaticEnv() // read in environment variables that match
	if _, err := os.Stat(cfgFile); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			fmt.Printf("read config file(%s) error, details: %s\n", viper.ConfigFileUsed(), err)
		}
	}

	// 设置默认值
	viper.SetDefault("app.version", "v 0.1.0")
	viper.SetDefault("app.title", "Glacier Tiler")
	viper.SetDefault("output.outputTerminal", true)
	viper.SetDefault("copier.dataDir", "../data")
	viper.SetDefault("copier.prefix", "updated_")
	viper.SetDefault("copier.sourceKey", "SGI")
	viper.SetDefault("copier.targetKey", "sgi-id")
	viper.SetDefault("tiling.dir", ".")
	viper.SetDefault("tiling.command", "tippecanoe")
	viper.SetDefault("tiling.minZoom", 6)
	viper.SetDefault("tiling.maxZoom", 14)
	viper.SetDefault("explode.dir", ".")
	viper.SetDefault("explode.command", "ogr2ogr")
	viper.SetDefault("explode.fallbackMinZoom", 1)
	viper.SetDefault("explode.fallbackMaxZoom", 12)
	viper.SetDefault("explode.removeSource", false)

	if err := viper.Unmarshal(&C); err != nil {
		panic("unable to unmarshal config")
	}
}
