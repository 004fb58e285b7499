package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	l := logrus.New()
	l.SetOutput(buf)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	ctx := SetLogger(context.Background(), l.WithField("trans-id", "tx1"))
	Debugf(ctx, "PUT %s", "a.txt")
	Errorf(ctx, "failed")

	out := buf.String()
	assert.Contains(t, out, `msg="PUT a.txt"`)
	assert.Contains(t, out, "trans-id=tx1")
	assert.Contains(t, out, "level=error")
}

func TestDefaultLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	std := logrus.StandardLogger()
	out := std.Out
	std.SetOutput(buf)
	defer std.SetOutput(out)

	Infof(context.Background(), "hello %d", 1)
	assert.Contains(t, buf.String(), "hello 1")
}
