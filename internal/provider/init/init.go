// Package init wires the full mandatory provider catalog into
// provider.Default by blank-importing every provider subpackage for its
// registration side effect. Callers that need the complete catalog import
// this package solely for that effect:
//
//	import _ "github.com/chayuto/ai-truffle-hog/internal/provider/init"
package init

import (
	_ "github.com/chayuto/ai-truffle-hog/internal/provider/anthropic"
	_ "github.com/chayuto/ai-truffle-hog/internal/provider/cohere"
	_ "github.com/chayuto/ai-truffle-hog/internal/provider/googlegemini"
	_ "github.com/chayuto/ai-truffle-hog/internal/provider/groq"
	_ "github.com/chayuto/ai-truffle-hog/internal/provider/huggingface"
	_ "github.com/chayuto/ai-truffle-hog/internal/provider/langsmith"
	_ "github.com/chayuto/ai-truffle-hog/internal/provider/openai"
	_ "github.com/chayuto/ai-truffle-hog/internal/provider/replicate"
)
