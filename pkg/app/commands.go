package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/k3s-io/swiftclient/pkg/container"
	"github.com/k3s-io/swiftclient/pkg/log"
	"github.com/k3s-io/swiftclient/pkg/metrics"
	"github.com/k3s-io/swiftclient/pkg/signals"
	"github.com/k3s-io/swiftclient/pkg/util"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	stdio          = "-"
	transIDHeader  = "X-Trans-Id-Extra"
	encodingHeader = "Content-Encoding"
)

func usageError(c *cli.Context) error {
	return errors.Errorf("usage: %s %s %s", c.App.Name, c.Command.Name, c.Command.ArgsUsage)
}

func queryFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "query",
		Usage: "Query parameter to append to the object URL, as key=value. May be repeated.",
	}
}

func putCommand() *cli.Command {
	return &cli.Command{
		Name:      "put",
		Usage:     "Upload a file, or stdin, as an object",
		ArgsUsage: "NAME [FILE|-]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "meta",
				Usage: "Object metadata as key=value, stored as X-Object-Meta-key. May be repeated.",
			},
			&cli.StringSliceFlag{
				Name:  "header",
				Usage: "Extra request header as key=value. May be repeated.",
			},
			queryFlag(),
			&cli.StringFlag{
				Name:  "content-type",
				Usage: "Content type of the object",
			},
			&cli.BoolFlag{
				Name:  "gzip",
				Usage: "Compress the upload and store it with Content-Encoding: gzip",
			},
		},
		Action: put,
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Download an object into a file, or stdout",
		ArgsUsage: "NAME [FILE|-]",
		Flags:     []cli.Flag{queryFlag()},
		Action:    get,
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete objects now, or schedule their deletion",
		ArgsUsage: "NAME...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "when",
				Usage: "Schedule the deletion instead: an RFC3339 timestamp, a number of seconds or a duration such as 24h",
			},
			queryFlag(),
		},
		Action: remove,
	}
}

// invocation is what one command run shares. Every log line of the run
// carries its transaction id.
type invocation struct {
	container *container.Container
	transID   string
	log       *logrus.Entry
}

// run wires up the signal context and the metrics server around fn.
func run(c *cli.Context, fn func(ctx context.Context, inv invocation) error) error {
	ctx, cancel := context.WithCancel(signals.SetupSignalContext())
	defer cancel()

	cc, err := newContainer(ctx)
	if err != nil {
		return err
	}

	metricsDone := make(chan error, 1)
	go func() {
		metricsDone <- metrics.Serve(ctx, metricsConfig)
	}()

	inv := invocation{container: cc, transID: uuid.NewString()}
	inv.log = logrus.WithFields(logrus.Fields{
		"container": cc.Name(),
		"trans-id":  inv.transID,
		"command":   c.Command.Name,
	})

	err = fn(log.SetLogger(ctx, inv.log), inv)

	cancel()
	if merr := <-metricsDone; merr != nil {
		inv.log.Warnf("metrics server: %v", merr)
	}
	return err
}

func put(c *cli.Context) error {
	name, file := c.Args().Get(0), c.Args().Get(1)
	if name == "" || c.NArg() > 2 {
		return usageError(c)
	}

	meta, err := util.ParseKeyValues(c.StringSlice("meta"))
	if err != nil {
		return err
	}
	extra, err := util.ParseKeyValues(c.StringSlice("header"))
	if err != nil {
		return err
	}
	query, err := util.ParseKeyValues(c.StringSlice("query"))
	if err != nil {
		return err
	}

	return run(c, func(ctx context.Context, inv invocation) error {
		opts := container.CreateOptions{
			Name:        name,
			Meta:        meta,
			Extra:       extra,
			Query:       query,
			ContentType: c.String("content-type"),
		}
		if opts.Extra == nil {
			opts.Extra = map[string]string{}
		}
		opts.Extra[transIDHeader] = inv.transID

		var src io.Reader = c.App.Reader
		if file != "" && file != stdio {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			src = f
			if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
				size := fi.Size()
				opts.ContentLength = &size
			}
		}

		if c.Bool("gzip") {
			zr := compress(src)
			defer zr.Close()
			src = zr
			opts.ContentLength = nil
			opts.Extra[encodingHeader] = "gzip"
		}
		opts.Stream = src

		res, err := inv.container.Create(ctx, opts)
		if err != nil {
			return err
		}
		inv.log.Infof("uploaded %s, etag %s", name, res.ETag)
		_, err = fmt.Fprintln(c.App.Writer, res.ETag)
		return err
	})
}

// compress gzips src through a pipe so the upload stays streamed. Closing
// the returned reader stops the compressor.
func compress(src io.Reader) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		zw := gzip.NewWriter(pw)
		_, err := io.Copy(zw, src)
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
		_ = pw.CloseWithError(err)
	}()
	return pr
}

func get(c *cli.Context) error {
	name, file := c.Args().Get(0), c.Args().Get(1)
	if name == "" || c.NArg() > 2 {
		return usageError(c)
	}

	query, err := util.ParseKeyValues(c.StringSlice("query"))
	if err != nil {
		return err
	}

	return run(c, func(ctx context.Context, inv invocation) error {
		if file == "" || file == stdio {
			return inv.container.Get(ctx, container.GetOptions{Name: name, Sink: c.App.Writer, Query: query})
		}

		// download next to the target and rename, so a failed transfer
		// never leaves a truncated file behind
		tmp, err := os.CreateTemp(filepath.Dir(file), "."+filepath.Base(file)+".*")
		if err != nil {
			return err
		}
		defer os.Remove(tmp.Name())

		if err := inv.container.Get(ctx, container.GetOptions{Name: name, Sink: tmp, Query: query}); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		if err := os.Rename(tmp.Name(), file); err != nil {
			return err
		}
		inv.log.Infof("downloaded %s to %s", name, file)
		return nil
	})
}

func remove(c *cli.Context) error {
	if c.NArg() == 0 {
		return usageError(c)
	}

	var when container.DeleteDirective
	if s := c.String("when"); s != "" {
		d, err := container.ParseDirective(s)
		if err != nil {
			return err
		}
		when = d
	}

	query, err := util.ParseKeyValues(c.StringSlice("query"))
	if err != nil {
		return err
	}

	return run(c, func(ctx context.Context, inv invocation) error {
		for _, name := range c.Args().Slice() {
			if err := inv.container.Delete(ctx, container.DeleteOptions{Name: name, When: when, Query: query}); err != nil {
				return errors.Wrapf(err, "deleting %s", name)
			}
			if when != nil {
				inv.log.Infof("scheduled deletion of %s %v", name, when)
			} else {
				inv.log.Infof("deleted %s", name)
			}
		}
		return nil
	})
}
