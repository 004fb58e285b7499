package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

type logKey string

const key logKey = "swiftclient-logger"

type logger interface {
	Infof(msg string, args ...interface{})
	Warnf(msg string, args ...interface{})
	Errorf(msg string, args ...interface{})
	Debugf(msg string, args ...interface{})
}

// SetLogger returns a context whose log calls go to logger, so fields such
// as a transaction id follow an operation through every package.
func SetLogger(ctx context.Context, logger logger) context.Context {
	return context.WithValue(ctx, key, logger)
}

func getLogger(ctx context.Context) logger {
	if ctx != nil {
		if l, ok := ctx.Value(key).(logger); ok {
			return l
		}
	}
	return logrus.StandardLogger()
}

func Infof(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Infof(msg, args...)
}

func Warnf(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Warnf(msg, args...)
}

func Errorf(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Errorf(msg, args...)
}

func Debugf(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Debugf(msg, args...)
}
