package output_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rpgo/succession-calculator/internal/output"
)

func TestAnalyzeHeirs_RanksByNetShareDescending(t *testing.T) {
	result := buildTestOutput()
	result.HeirsBreakdown[0].NetShareValue = result.HeirsBreakdown[0].NetShareValue.Add(result.HeirsBreakdown[0].NetShareValue)

	rankings := output.AnalyzeHeirs(result)
	assert.Len(t, rankings, 2)
	assert.Equal(t, "child-1", rankings[0].HeirID)
}
