package analysis

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdLogger(t *testing.T) {
	var stdout, stderr bytes.Buffer
	l := NewStdLogger(&stdout, &stderr)

	l.Info("Reading tree", "main")
	l.Error("could not open file")

	assert.Regexp(t, regexp.MustCompile(`^\[\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}\] \[main\] Reading tree\n$`), stdout.String())
	assert.True(t, strings.HasPrefix(stderr.String(), "{"))
	assert.Contains(t, stderr.String(), `"msg":"could not open file"`)
}

func TestSetLogger(t *testing.T) {
	l := &recordingLogger{}
	SetLogger(l)
	defer SetLogger(nil)

	logger.Info("hello", "test")
	assert.Equal(t, []string{"test: hello"}, l.infos)

	SetLogger(nil)
	assert.NotPanics(t, func() { logger.Info("dropped", "test") })
}
