package report

import (
	"errors"
	"testing"

	"github.com/shelfmon/shelfmon/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestLogReporter(t *testing.T) {
	buf := logger.NewBufferLogger()
	r := NewLogReporter(buf)

	r.Report(errors.New("dashboard call failed"))
	r.Report(nil)

	assert.Len(t, buf.Messages, 1)
	assert.True(t, buf.HasLevel("error"))
	assert.Contains(t, buf.Messages[0].Message, "dashboard call failed")
}

func TestCapture(t *testing.T) {
	c := NewCapture()
	assert.Equal(t, 0, c.Len())

	err1 := errors.New("first")
	err2 := errors.New("second")
	c.Report(err1)
	c.Report(nil)
	c.Report(err2)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []error{err1, err2}, c.Errors())
}

func TestReporterFunc(t *testing.T) {
	var got error
	r := ReporterFunc(func(err error) { got = err })

	want := errors.New("boom")
	r.Report(want)
	assert.Equal(t, want, got)
}
