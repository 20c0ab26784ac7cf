package huggingface_test

import (
	"strings"
	"testing"

	_ "github.com/chayuto/ai-truffle-hog/internal/provider/huggingface"

	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuggingFacePatternRequiresExactLength(t *testing.T) {
	p, ok := provider.Default.Get("huggingface")
	require.True(t, ok)

	tooShort := `HF = "hf_` + strings.Repeat("z", 33) + `"`
	assert.Nil(t, p.Patterns()[0].Regexp.FindStringSubmatch(tooShort))

	exact := `HF = "hf_` + strings.Repeat("z", 34) + `"`
	matches := p.Patterns()[0].Regexp.FindStringSubmatch(exact)
	require.NotNil(t, matches)
	assert.Equal(t, "hf_"+strings.Repeat("z", 34), matches[1])
}

func TestHuggingFaceClassify200ExtractsMetadata(t *testing.T) {
	p, _ := provider.Default.Get("huggingface")
	body := []byte(`{"name":"alice","auth":["read"]}`)

	result := p.ClassifyResponse(200, body)
	assert.Equal(t, model.Valid, result.Classification)
	assert.Equal(t, "alice", result.Metadata["username"])
	assert.Equal(t, "read", result.Metadata["scopes"])
}

func TestHuggingFaceClassify401(t *testing.T) {
	p, _ := provider.Default.Get("huggingface")
	assert.Equal(t, model.Invalid, p.ClassifyResponse(401, nil).Classification)
}
