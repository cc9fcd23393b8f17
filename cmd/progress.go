package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

type progressPrinter struct {
	total         int
	name          string
	mu            sync.Mutex
	hosts         int
	secure        int
	insecure      int
	indeterminate int
	duration      float64
	updates       chan struct{}
	done          chan struct{}
	stopOnce      sync.Once
}

func newProgressPrinter(total int, name string) *progressPrinter {
	if total <= 0 {
		total = 1
	}
	return &progressPrinter{
		total:   total,
		name:    name,
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (p *progressPrinter) Start() {
	go p.loop()
}

// Increment records one finished host with its per-status check counts.
func (p *progressPrinter) Increment(secure, insecure, indeterminate int, duration float64) {
	p.mu.Lock()
	p.hosts++
	p.secure += secure
	p.insecure += insecure
	p.indeterminate += indeterminate
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
	})
	fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", 80))
}

func (p *progressPrinter) loop() {
	ticker := time.NewTicker(300 * time.Millisecond)
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
	hosts := p.hosts
	secure := p.secure
	insecure := p.insecure
	indeterminate := p.indeterminate
	dur := p.duration
	p.mu.Unlock()

	avg := 0.0
	if hosts > 0 {
		avg = dur / float64(hosts)
	}

	line := fmt.Sprintf("\r[%s] hosts:%d/%d secure:%d insecure:%d indeterminate:%d avg:%.2fs",
		p.name, hosts, p.total, secure, insecure, indeterminate, avg)
	fmt.Fprintf(os.Stdout, "%s", line)
}
