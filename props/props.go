package props

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/paulmach/orb/geojson"

	"glaciertiler/log"
)

// Options 属性复制参数
type Options struct {
	DataDir   string
	Prefix    string
	SourceKey string
	TargetKey string
}

// CopyAll processes every .geojson file in the data directory and writes a
// prefixed copy with the target property filled in. Files already carrying
// the prefix are left alone so reruns stay idempotent. A parse failure
// aborts the whole run.
func CopyAll(opt Options) error {
	entries, err := os.ReadDir(opt.DataDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".geojson") {
			continue
		}
		if strings.HasPrefix(entry.Name(), opt.Prefix) {
			log.Debugf("skipping already processed file: %s", entry.Name())
			continue
		}
		src := filepath.Join(opt.DataDir, entry.Name())
		dst := filepath.Join(opt.DataDir, opt.Prefix+entry.Name())
		if err := copyFile(src, dst, opt.SourceKey, opt.TargetKey); err != nil {
			return err
		}
		log.Infof("processed and saved: %s", dst)
	}
	return nil
}

func copyFile(src, dst, sourceKey, targetKey string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return err
	}

	CopyKey(fc, sourceKey, targetKey)

	out, err := marshalIndent(fc)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, out, 0644)
}

// CopyKey sets targetKey to sourceKey's value on every feature carrying
// sourceKey. Existing keys are never removed or altered. Returns the number
// of features touched.
func CopyKey(fc *geojson.FeatureCollection, sourceKey, targetKey string) int {
	touched := 0
	for _, f := range fc.Features {
		v, ok := f.Properties[sourceKey]
		if !ok {
			continue
		}
		if cur, ok := f.Properties[targetKey]; ok && reflect.DeepEqual(cur, v) {
			continue
		}
		f.Properties[targetKey] = v
		touched++
	}
	return touched
}

// 2-space indent, no HTML escaping, keeps non-ASCII characters as-is
func marshalIndent(fc *geojson.FeatureCollection) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
