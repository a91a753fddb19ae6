package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymurata/kaiyaku-form/model"
)

func TestRowWidthIsSumOfCellWidths(t *testing.T) {
	cells := []cell{
		{"物　件　名", 25},
		{"コーポ山田", 75},
		{"部屋番号", 20},
		{"201", 60},
	}
	assert.Equal(t, 180.0, rowWidth(cells))
	assert.Equal(t, contentWidth, rowWidth(cells))
}

func TestSeparatorOffsetsAreCumulative(t *testing.T) {
	tests := []struct {
		name   string
		widths []float64
		want   []float64
	}{
		{"four cells", []float64{25, 75, 20, 60}, []float64{25, 100, 120}},
		{"two cells", []float64{25, 155}, []float64{25}},
		{"three cells", []float64{25, 55, 100}, []float64{25, 80}},
		{"single cell", []float64{180}, []float64{}},
		{"zero-width tail cell", []float64{25, 0}, []float64{25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := make([]cell, len(tt.widths))
			for i, w := range tt.widths {
				cells[i] = cell{width: w}
			}
			assert.Equal(t, tt.want, separatorOffsets(cells))
		})
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "解約申込書_山田太郎_20260829.pdf", FileName("山田太郎", now))
	assert.Equal(t, "解約申込書_名前未入力_20260829.pdf", FileName("", now))
}

func TestRenderProducesDocumentWithBuiltinFont(t *testing.T) {
	s := model.Submission{
		TenantName:       "山田太郎",
		PropertyName:     "コーポ山田",
		ContractorName:   "山田太郎",
		ApplicationDate:  "2026-08-01",
		CancellationDate: "2026-08-31",
	}
	s.Resolve(time.Now())

	document, err := Render(s, Font{Name: builtinFamily})
	require.NoError(t, err)
	require.NotEmpty(t, document)
	assert.Equal(t, "%PDF", string(document[:4]))
}

func TestRenderEmptyRecordDoesNotFail(t *testing.T) {
	document, err := Render(model.Submission{}, Font{Name: builtinFamily})
	require.NoError(t, err)
	assert.NotEmpty(t, document)
}

func TestLooksLikeTTF(t *testing.T) {
	assert.True(t, looksLikeTTF([]byte("\x00\x01\x00\x00rest")))
	assert.True(t, looksLikeTTF([]byte("OTTO....")))
	assert.False(t, looksLikeTTF([]byte("<html><body>404</body></html>")))
	assert.False(t, looksLikeTTF([]byte("")))
}
