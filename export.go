package fieldode

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Snapshot stores one completed step of the field.
type Snapshot struct {
	Step   int
	T      float64
	Values []float64
}

// ExportConfig configures the exporting of the coupling run.
type ExportConfig struct {
	Filename     string
	AsCSV        bool
	Timestamp    bool
	OutputDir    string                // overrides the configured output directory when set
	CSVAppend    func(Snapshot) string // Custom export (do not include leading comma)
	CSVAppendHdr func() string         // Header for the custom export
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV
}

// createCSVFile returns a file which requires a defer close statement!
func createCSVFile(conf ExportConfig, numNodes int) *os.File {
	outputDir := conf.OutputDir
	if outputDir == "" {
		outputDir = ReadConfig().OutputDir
	}
	var filename string
	if conf.Timestamp {
		t := time.Now()
		filename = fmt.Sprintf("%s/field-%s-%d-%02d-%02dT%02d.%02d.%02d.csv", outputDir, conf.Filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	} else {
		filename = fmt.Sprintf("%s/field-%s.csv", outputDir, conf.Filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	// Header
	f.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Records are <step> <t> <s_0> ... <s_%d>
`, time.Now().UTC(), numNodes-1))
	f.WriteString("step,t")
	for i := 0; i < numNodes; i++ {
		f.WriteString(",s" + strconv.Itoa(i))
	}
	if conf.CSVAppendHdr != nil {
		f.WriteString("," + conf.CSVAppendHdr())
	}
	return f
}

// StreamStates streams the snapshots of the channel to the configured file.
// It returns once the channel is closed and the file fully written, and is
// meant to run in its own goroutine for the duration of a coupling run.
func StreamStates(conf ExportConfig, stateChan <-chan Snapshot) {
	if conf.IsUseless() {
		for range stateChan {
		}
		return
	}
	var f *os.File
	for state := range stateChan {
		if f == nil {
			f = createCSVFile(conf, len(state.Values))
			defer f.Close()
		}
		asTxt := fmt.Sprintf("\n%d,%s", state.Step, strconv.FormatFloat(state.T, 'g', -1, 64))
		for _, val := range state.Values {
			asTxt += "," + strconv.FormatFloat(val, 'g', -1, 64)
		}
		if conf.CSVAppend != nil {
			asTxt += "," + conf.CSVAppend(state)
		}
		if _, err := f.WriteString(asTxt); err != nil {
			panic(err)
		}
	}
}
