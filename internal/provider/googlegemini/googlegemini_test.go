package googlegemini_test

import (
	"strings"
	"testing"

	_ "github.com/chayuto/ai-truffle-hog/internal/provider/googlegemini"

	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleGeminiPattern(t *testing.T) {
	p, ok := provider.Default.Get("google_gemini")
	require.True(t, ok)

	exact := "AIza" + strings.Repeat("A", 35)
	matches := p.Patterns()[0].Regexp.FindStringSubmatch(exact)
	require.NotNil(t, matches)
	assert.Equal(t, exact, matches[1])
}

func TestGoogleGeminiBuildProbeRequestUsesQueryParam(t *testing.T) {
	p, _ := provider.Default.Get("google_gemini")
	req := p.BuildProbeRequest("AIzaTEST")
	assert.Contains(t, req.URL, "key=AIzaTEST")
	assert.Empty(t, req.Headers)
}

func TestGoogleGeminiClassifyResponse(t *testing.T) {
	p, _ := provider.Default.Get("google_gemini")
	assert.Equal(t, model.Valid, p.ClassifyResponse(200, nil).Classification)
	assert.Equal(t, model.Invalid, p.ClassifyResponse(400, nil).Classification)
	assert.Equal(t, model.Invalid, p.ClassifyResponse(403, nil).Classification)
}
