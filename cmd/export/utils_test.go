package export

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/meetup-data/internal/anonymize"
	dataexport "github.com/scan-io-git/meetup-data/internal/export"
	"github.com/scan-io-git/meetup-data/pkg/shared/config"
)

func TestDetermineVerbosity(t *testing.T) {
	assert.Equal(t, 1, determineVerbosity(&RunOptionsExport{}))
	assert.Equal(t, 0, determineVerbosity(&RunOptionsExport{Quiet: true}))
	assert.Equal(t, 2, determineVerbosity(&RunOptionsExport{Verbose: true}))
	assert.Equal(t, 0, determineVerbosity(&RunOptionsExport{Quiet: true, Verbose: true}))
}

func TestDetermineLevel(t *testing.T) {
	configured := func(level string) *config.Config {
		cfg := config.Default()
		cfg.Anonymize.Level = level
		return cfg
	}

	tests := []struct {
		name    string
		cfg     *config.Config
		options *RunOptionsExport
		want    anonymize.Level
	}{
		{name: "no flags no config", options: &RunOptionsExport{}, want: anonymize.Redacted},
		{name: "firstname flag", options: &RunOptionsExport{FirstName: true}, want: anonymize.FirstName},
		{name: "identifiable flag", options: &RunOptionsExport{Identifiable: true}, want: anonymize.Identifiable},
		{name: "config level", cfg: configured("firstname"), options: &RunOptionsExport{}, want: anonymize.FirstName},
		{name: "flag beats config", cfg: configured("firstname"), options: &RunOptionsExport{Identifiable: true}, want: anonymize.Identifiable},
		{name: "unknown config level", cfg: configured("surname"), options: &RunOptionsExport{}, want: anonymize.Redacted},
		{name: "empty config level", cfg: configured(""), options: &RunOptionsExport{}, want: anonymize.Redacted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLevel(tt.cfg, tt.options))
		})
	}
}

func TestDetermineFormat(t *testing.T) {
	assert.Equal(t, dataexport.FormatCSV, determineFormat(&RunOptionsExport{}))
	assert.Equal(t, dataexport.FormatCSV, determineFormat(&RunOptionsExport{CSV: true}))
	assert.Equal(t, dataexport.FormatRaw, determineFormat(&RunOptionsExport{JSON: true}))
	assert.Equal(t, dataexport.FormatFlatJSON, determineFormat(&RunOptionsExport{FlatJSON: true}))
}

func TestDetermineEncoding(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Encoding = dataexport.EncodingWindows1252

	assert.Equal(t, dataexport.EncodingWindows1252, determineEncoding(nil, cfg, &RunOptionsExport{}, dataexport.FormatCSV))
	assert.Equal(t, dataexport.EncodingUTF8, determineEncoding(nil, cfg, &RunOptionsExport{}, dataexport.FormatRaw))
	assert.Equal(t, dataexport.EncodingUTF8, determineEncoding(nil, nil, &RunOptionsExport{}, dataexport.FormatCSV))
}

func TestPaginatorConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Meetup.BaseURL = "http://localhost:8080"
	cfg.Meetup.PageSize = 20
	cfg.Meetup.MaxPages = 5

	pc := paginatorConfig(cfg, &RunOptionsExport{StopAfterOne: true, FirstName: true}, 2)
	assert.Equal(t, "http://localhost:8080", pc.BaseURL)
	assert.Equal(t, 20, pc.PageSize)
	assert.Equal(t, 5, pc.MaxPages)
	assert.Equal(t, 2, pc.Verbosity)
	assert.True(t, pc.StopAfterOne)
	assert.Equal(t, anonymize.FirstName, pc.Level)

	defaults := paginatorConfig(nil, &RunOptionsExport{}, 1)
	assert.Equal(t, config.DefaultBaseURL, defaults.BaseURL)
	assert.Equal(t, config.DefaultPageSize, defaults.PageSize)
	assert.Equal(t, anonymize.Redacted, defaults.Level)
}

func TestDefaultFileName(t *testing.T) {
	assert.Equal(t, "members.csv", defaultFileName("members", dataexport.FormatCSV))
	assert.Equal(t, "activity.json", defaultFileName("activity", dataexport.FormatRaw))
	assert.Equal(t, "past-events.json", defaultFileName("past-events", dataexport.FormatFlatJSON))
}

func TestNormalizeFlagName(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	assert.Equal(t, pflag.NormalizedName("stop-after-one"), normalizeFlagName(fs, "stop_after_one"))
	assert.Equal(t, pflag.NormalizedName("flat-json"), normalizeFlagName(fs, "flat-json"))
}
