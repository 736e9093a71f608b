package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/schema"
)

func sampleReportOutput() *schema.ReportOutput {
	return &schema.ReportOutput{
		Metrics: sampleMetrics(),
		Analysis: schema.AnalysisResult{
			Trends: []string{
				"The TPS is 5.2% higher than last week for TSYS Mainframe; The TPS is 1.4% lower than last week for HPNS.",
			},
			TrafficStatus:  schema.GoodStatus,
			CapacityStatus: schema.WarningStatus,
		},
		Context: schema.ReportContext{
			UserName:      "team",
			EventName:     "Weekend Event",
			TrafficStatus: "🟢",
		},
		Report: "*TPS Traffic Report: Weekend Event*\nAll systems nominal.",
	}
}

func TestWriteReportOutputText(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "report.txt")
	cfg := &contract.Config{
		Output:     schema.TextOut,
		OutputFile: outputFile,
	}

	require.NoError(t, WriteReportOutput(sampleReportOutput(), cfg))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "*TPS Traffic Report: Weekend Event*")
	assert.Contains(t, text, "Traffic: Good | Capacity: Warning | Trends: 1")
}

func TestWriteReportOutputCSV(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "report.csv")
	cfg := &contract.Config{
		Output:     schema.CSVOut,
		OutputFile: outputFile,
	}

	require.NoError(t, WriteReportOutput(sampleReportOutput(), cfg))

	file, err := os.Open(outputFile)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(reportFieldOrder)+1)

	assert.Equal(t, []string{"field", "value"}, records[0])
	assert.Equal(t, []string{"user_name", "team"}, records[1])
	assert.Equal(t, []string{"event_name", "Weekend Event"}, records[3])
}

func TestWriteReportOutputJSON(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "report.json")
	cfg := &contract.Config{
		Output:     schema.JSONOut,
		OutputFile: outputFile,
	}

	require.NoError(t, WriteReportOutput(sampleReportOutput(), cfg))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var decoded schema.ReportOutput
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, *sampleReportOutput(), decoded)
}
