package testdata

import (
	"os"
	"path/filepath"
)

// Chart is a trimmed chart bundle with the legacy global key and an
// expert-only key embedded.
const Chart = `{
  "unityObjectValuesContainer": {
    "values": [
      {"key": "SO_TrackInfo_TrackInfo", "jsonKey": "SO_TrackInfo_TrackInfo", "fullType": "TrackInfo"},
      {"key": "SO_TrackData_TrackData_0", "jsonKey": "SO_TrackData_TrackData_0", "fullType": "TrackData"}
    ]
  },
  "largeStringValuesContainer": {
    "values": [
      {"key": "SO_TrackInfo_TrackInfo", "val": "{\"title\":\"Wysi\",\"artistName\":\"Someone\"}"},
      {"key": "SpeedHelper_SpeedTriggers", "val": "{\"Triggers\":[{\"Time\":0.0,\"SpeedMultiplier\":1.0,\"InterpolateToNextTrigger\":false},{\"Time\":12.5,\"SpeedMultiplier\":1.5,\"InterpolateToNextTrigger\":true},{\"Time\":20.0,\"SpeedMultiplier\":0.75,\"InterpolateToNextTrigger\":false}]}"},
      {"key": "SpeedHelper_SpeedTriggers_EXPERT", "val": "{\"Triggers\":[{\"Time\":1.0,\"SpeedMultiplier\":2.0,\"InterpolateToNextTrigger\":false}]}"}
    ]
  },
  "clipInfoCount": 1
}`

// Speeds exercises every construct of the speeds format.
const Speeds = `# intro
0 1
4.5 1.25 true
repeat 4 times 2
  8 2 true
  9 1 false
endrepeat
# outro
16.5 0.5
`

// SpeedsCount is the number of triggers Speeds expands to
const SpeedsCount = 11

// WriteChart writes Chart into dir under name and returns its path.
func WriteChart(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(Chart), 0644); nil != err {
		return "", err
	}
	return path, nil
}
