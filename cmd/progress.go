package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	consts "github.com/khanhnv2901/seca-pin/internal/shared/constants"
)

type progressPrinter struct {
	out      io.Writer
	total    int
	name     string
	mu       sync.Mutex
	pass     int
	fail     int
	duration float64
	updates  chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newProgressPrinter(out io.Writer, total int, name string) *progressPrinter {
	if total <= 0 {
		total = 1
	}
	return &progressPrinter{
		out:     out,
		total:   total,
		name:    name,
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (p *progressPrinter) Start() {
	go p.loop()
}

func (p *progressPrinter) Increment(passed bool, duration float64) {
	p.mu.Lock()
	if passed {
		p.pass++
	} else {
		p.fail++
	}
	p.duration += duration
	p.mu.Unlock()

	select {
	case p.updates <- struct{}{}:
	default:
	}
}

func (p *progressPrinter) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		p.mu.Lock()
		fmt.Fprintf(p.out, "\r%s\r", strings.Repeat(" ", 80))
		p.mu.Unlock()
		p.print()
		fmt.Fprintln(p.out)
	})
}

func (p *progressPrinter) loop() {
	ticker := time.NewTicker(consts.ProgressRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.updates:
			p.print()
		case <-ticker.C:
			p.print()
		case <-p.done:
			return
		}
	}
}

func (p *progressPrinter) print() {
	p.mu.Lock()
	defer p.mu.Unlock()

	completed := p.pass + p.fail
	if completed > p.total {
		p.total = completed
	}

	percent := (float64(completed) / float64(p.total)) * 100
	avg := 0.0
	if completed > 0 {
		avg = p.duration / float64(completed)
	}

	fmt.Fprintf(p.out, "\r[%s] Progress: %d/%d (%.1f%%) Pass:%d Fail:%d Avg:%.2fs",
		p.name, completed, p.total, percent, p.pass, p.fail, avg)
}
