package props

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const glacierA = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [8.1, 46.5]},
      "properties": {"SGI": "B36-26", "name": "Grosser Aletschgletscher"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [7.9, 46.4]},
      "properties": {"name": "unnamed snowfield"}
    }
  ]
}`

func defaultOptions(dir string) Options {
	return Options{
		DataDir:   dir,
		Prefix:    "updated_",
		SourceKey: "SGI",
		TargetKey: "sgi-id",
	}
}

func TestCopyKey(t *testing.T) {
	fc, err := geojson.UnmarshalFeatureCollection([]byte(glacierA))
	require.NoError(t, err)

	touched := CopyKey(fc, "SGI", "sgi-id")
	assert.Equal(t, 1, touched)

	assert.Equal(t, "B36-26", fc.Features[0].Properties["sgi-id"])
	assert.Equal(t, "B36-26", fc.Features[0].Properties["SGI"])

	// feature without the source key stays untouched
	_, ok := fc.Features[1].Properties["sgi-id"]
	assert.False(t, ok)
	assert.Equal(t, "unnamed snowfield", fc.Features[1].Properties["name"])

	// second pass finds nothing left to copy
	assert.Equal(t, 0, CopyKey(fc, "SGI", "sgi-id"))
}

func TestCopyKeyOverwritesStaleValue(t *testing.T) {
	fc, err := geojson.UnmarshalFeatureCollection([]byte(glacierA))
	require.NoError(t, err)

	fc.Features[0].Properties["sgi-id"] = "stale"
	touched := CopyKey(fc, "SGI", "sgi-id")
	assert.Equal(t, 1, touched)
	assert.Equal(t, "B36-26", fc.Features[0].Properties["sgi-id"])
}

func TestCopyAll(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "glacier_A.geojson")
	require.NoError(t, os.WriteFile(src, []byte(glacierA), 0644))

	require.NoError(t, CopyAll(defaultOptions(dir)))

	out, err := os.ReadFile(filepath.Join(dir, "updated_glacier_A.geojson"))
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(out)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "B36-26", fc.Features[0].Properties["sgi-id"])
	assert.Equal(t, "B36-26", fc.Features[0].Properties["SGI"])

	// original file is untouched
	orig, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, glacierA, string(orig))
}

func TestCopyAllIdempotent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "glacier_A.geojson")
	require.NoError(t, os.WriteFile(src, []byte(glacierA), 0644))

	require.NoError(t, CopyAll(defaultOptions(dir)))
	first, err := os.ReadFile(filepath.Join(dir, "updated_glacier_A.geojson"))
	require.NoError(t, err)

	require.NoError(t, CopyAll(defaultOptions(dir)))
	second, err := os.ReadFile(filepath.Join(dir, "updated_glacier_A.geojson"))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// no updated_updated_ artifact on rerun
	_, err = os.Stat(filepath.Join(dir, "updated_updated_glacier_A.geojson"))
	assert.True(t, os.IsNotExist(err))
}

func TestCopyAllPreservesNonASCII(t *testing.T) {
	dir := t.TempDir()
	input := `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [7.6, 46.0]},
      "properties": {"SGI": "A50f-11", "name": "Glacier du Giétro"}
    }
  ]
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vs.geojson"), []byte(input), 0644))
	require.NoError(t, CopyAll(defaultOptions(dir)))

	out, err := os.ReadFile(filepath.Join(dir, "updated_vs.geojson"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Glacier du Giétro")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
}

func TestCopyAllMalformedInputAborts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.geojson"), []byte("{not json"), 0644))

	err := CopyAll(defaultOptions(dir))
	assert.Error(t, err)
}
