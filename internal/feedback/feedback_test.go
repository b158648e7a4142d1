package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "0", want: 0},
		{input: "7", want: 7},
		{input: " 10 ", want: 10},
		{input: "7/10", want: 7},
		{input: "7 / 10", want: 7},

		{input: "", wantErr: true},
		{input: "11", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "3.5", wantErr: true},
		{input: "high", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScore(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "4 / 10", FormatScore(4))
}

func TestSummarize(t *testing.T) {
	list := []Feedback{
		{PainLevel: 7, FatigueLevel: 4},
		{PainLevel: 5, FatigueLevel: 5},
		{PainLevel: 4, FatigueLevel: 3},
	}

	s := Summarize(list)
	assert.Equal(t, 3, s.Sessions)
	assert.InDelta(t, 5.3, s.AvgPain, 1e-9)
	assert.InDelta(t, 4.0, s.AvgFatigue, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}
