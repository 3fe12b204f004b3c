package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/pipeline"

	"gopkg.in/yaml.v2"
)

func currentProjection(t *testing.T) model.Projection {
	t.Helper()
	p, _ := config.LookupPreset(config.PresetCurrent)
	return pipeline.Project(engine.New(), p.Params, p.Name)
}

func TestWriteExport_JSON(t *testing.T) {
	proj := currentProjection(t)
	var buf bytes.Buffer
	if err := writeExport(&buf, "json", proj); err != nil {
		t.Fatalf("writeExport: %v", err)
	}

	var got model.Projection
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Months) != 12 || got.Preset != config.PresetCurrent {
		t.Fatalf("got %d months, preset %q", len(got.Months), got.Preset)
	}
	if math.Abs(got.Totals.Revenue-265630.14) > 0.005 {
		t.Fatalf("revenue = %.2f", got.Totals.Revenue)
	}
}

func TestWriteExport_YAML(t *testing.T) {
	proj := currentProjection(t)
	var buf bytes.Buffer
	if err := writeExport(&buf, "YAML", proj); err != nil {
		t.Fatalf("writeExport: %v", err)
	}

	var got struct {
		Schedule string `yaml:"schedule"`
		Totals   struct {
			RegisteredUsers int64 `yaml:"registered_users"`
		} `yaml:"totals"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Schedule != config.ScheduleOverview || got.Totals.RegisteredUsers != 542853 {
		t.Fatalf("got %+v", got)
	}
}

func TestWriteExport_CSV(t *testing.T) {
	proj := currentProjection(t)
	var buf bytes.Buffer
	if err := writeExport(&buf, "csv", proj); err != nil {
		t.Fatalf("writeExport: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	// header + 12 months + total
	if len(records) != 14 {
		t.Fatalf("rows = %d, want 14", len(records))
	}
	for i, r := range records {
		if len(r) != len(csvHeader) {
			t.Fatalf("row %d has %d columns, want %d", i, len(r), len(csvHeader))
		}
	}
	if records[1][0] != "1" || records[13][0] != "total" {
		t.Fatalf("first/last labels = %q, %q", records[1][0], records[13][0])
	}
	if records[13][9] != "265630.14" {
		t.Fatalf("total revenue cell = %q", records[13][9])
	}
}

func TestWriteExport_UnknownFormat(t *testing.T) {
	err := writeExport(&bytes.Buffer{}, "xml", currentProjection(t))
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Fatalf("err = %v", err)
	}
}
