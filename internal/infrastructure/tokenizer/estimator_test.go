package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimator_CountTokens(t *testing.T) {
	e := NewEstimator()

	assert.Equal(t, 0, e.CountTokens(""))
	assert.Greater(t, e.CountTokens("Ciao, come stai oggi?"), 0)
	assert.Equal(t, "tiktoken", e.Method(), "离线加载器应能提供 cl100k_base")
}

func TestEstimator_Singleton(t *testing.T) {
	assert.Same(t, NewEstimator(), NewEstimator())
}

func TestEstimator_CountMessages(t *testing.T) {
	e := NewEstimator()

	one := e.CountTokens("ciao")
	assert.Equal(t, replyPriming+perMessageOverhead+one, e.CountMessages([]string{"ciao"}))
	assert.Equal(t, replyPriming, e.CountMessages(nil))
}

func TestEstimator_FallbackWithoutEncoding(t *testing.T) {
	e := &Estimator{}
	assert.Equal(t, 2, e.CountTokens("abcdefgh"))
	assert.Equal(t, "rune_estimate", e.Method())
}
