package assetconv

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"log"
	"os"
	"sync"

	"github.com/bodgit/assetconv/catalog"
)

// cell is one output file waiting to be encoded and written
type cell struct {
	file   string
	kind   catalog.Kind
	encode func(io.Writer) error
}

// walkFunc enumerates cells in order, handing each to emit
type walkFunc func(emit func(cell) error) error

type pipeline struct {
	logger  *log.Logger
	catalog Catalog
	jobs    int
}

func (p *pipeline) addSource(sha string, m image.Image) (int64, error) {
	if p.catalog == nil {
		return 0, nil
	}
	return p.catalog.AddSource(sha, m.Bounds().Dx(), m.Bounds().Dy())
}

func (p *pipeline) findCells(ctx context.Context, walk walkFunc) (<-chan cell, <-chan error, error) {
	out := make(chan cell)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- walk(func(c cell) error {
			select {
			case out <- c:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}
			return nil
		})
	}()
	return out, errc, nil
}

func (p *pipeline) writeCell(source int64, c cell) error {
	b := new(bytes.Buffer)
	if err := c.encode(b); err != nil {
		return err
	}

	f, err := os.Create(c.file)
	if err != nil {
		return err
	}

	if _, err = f.Write(b.Bytes()); err != nil {
		f.Close()
		return err
	}

	if err = f.Close(); err != nil {
		return err
	}

	if p.catalog != nil {
		if err := p.catalog.AddAsset(source, c.kind, c.file, b.Bytes()); err != nil {
			return err
		}
	}

	p.logger.Printf("Wrote \"%s\"\n", c.file)

	return nil
}

func (p *pipeline) cellWorker(ctx context.Context, source int64, in <-chan cell) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for c := range in {
			if ctx.Err() != nil {
				return
			}
			if err := p.writeCell(source, c); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

// waitForPipeline returns the first error from any stage. On the first error
// it cancels the remaining stages and waits for them to stop so that nothing
// is still writing once it returns.
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// run writes every cell produced by walk using the configured number of
// workers, recording each against source.
func (p *pipeline) run(source int64, walk walkFunc) error {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	cells, errc, err := p.findCells(ctx, walk)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < p.jobs; i++ {
		errc, err := p.cellWorker(ctx, source, cells)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
