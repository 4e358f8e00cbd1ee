// Package json implements an output writing step records to a JSONL file,
// one JSON object per record, optionally gzipped.
package json

import (
	"compress/gzip"
	stdlibjson "encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mstoykov/envconfig"
	"github.com/sirupsen/logrus"

	"github.com/stepwatch/stepwatch/output"
)

const defaultFlushPeriod = 200 * time.Millisecond

// Config holds the environment-tunable knobs of the JSON output.
type Config struct {
	FlushPeriod time.Duration `envconfig:"STEPWATCH_JSON_FLUSH_PERIOD"`
}

// Output funnels all step records to an (optionally gzipped) JSONL file.
// The raw return objects and error values never reach the file: the record's
// JSON form carries only text.
type Output struct {
	output.RecordBuffer

	params          output.Params
	periodicFlusher *output.PeriodicFlusher

	logger      logrus.FieldLogger
	filename    string
	flushPeriod time.Duration
	encoder     *stdlibjson.Encoder
	closeFn     func() error
}

// New returns a new JSON output.
func New(params output.Params) (*Output, error) {
	conf := Config{FlushPeriod: defaultFlushPeriod}
	err := envconfig.Process("", &conf, func(key string) (string, bool) {
		if params.Environment != nil {
			v, ok := params.Environment[key]
			return v, ok
		}
		return os.LookupEnv(key)
	})
	if err != nil {
		return nil, err
	}
	if conf.FlushPeriod <= 0 {
		conf.FlushPeriod = defaultFlushPeriod
	}

	return &Output{
		params:   params,
		filename: params.ConfigArgument,
		logger: params.Logger.WithFields(logrus.Fields{
			"output":   "json",
			"filename": params.ConfigArgument,
		}),
		flushPeriod: conf.FlushPeriod,
	}, nil
}

// Description returns a human-readable description of the output.
func (o *Output) Description() string {
	if o.filename == "" || o.filename == "-" {
		return "json(stdout)"
	}
	return fmt.Sprintf("json (%s)", o.filename)
}

// Start opens the specified JSON file and starts the goroutine that flushes
// buffered records. If the filename ends in .gz, the file is gzipped.
func (o *Output) Start() error {
	o.logger.Debug("Starting...")

	if o.filename == "" || o.filename == "-" {
		o.encoder = stdlibjson.NewEncoder(o.params.StdOut)
		o.closeFn = func() error {
			return nil
		}
	} else {
		logfile, err := os.Create(o.filename)
		if err != nil {
			return err
		}

		if strings.HasSuffix(o.filename, ".gz") {
			outfile := gzip.NewWriter(logfile)

			o.closeFn = func() error {
				_ = outfile.Close()
				return logfile.Close()
			}
			o.encoder = stdlibjson.NewEncoder(outfile)
		} else {
			o.closeFn = logfile.Close
			o.encoder = stdlibjson.NewEncoder(logfile)
		}
	}

	o.encoder.SetEscapeHTML(false)

	pf, err := output.NewPeriodicFlusher(o.flushPeriod, o.flushRecords)
	if err != nil {
		return err
	}
	o.logger.Debug("Started!")
	o.periodicFlusher = pf

	return nil
}

// Stop flushes any remaining records and stops the goroutine.
func (o *Output) Stop() error {
	o.logger.Debug("Stopping...")
	defer o.logger.Debug("Stopped!")
	o.periodicFlusher.Stop()
	return o.closeFn()
}

func (o *Output) flushRecords() {
	records := o.GetBufferedRecords()
	if len(records) == 0 {
		return
	}
	start := time.Now()
	for _, r := range records {
		if err := o.encoder.Encode(r); err != nil {
			// Skip the record rather than losing the whole flush.
			o.logger.WithError(err).Error("Record couldn't be marshalled to JSON")
		}
	}
	o.logger.WithField("t", time.Since(start)).WithField("count", len(records)).Debug("Wrote step records to JSON")
}
