package downloader

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// Progress receives transfer updates.
// A total of zero or less means the size is unknown.
type Progress interface {
	Start(total int64)
	Update(done, total int64)
	Finish(done, total int64)
	Fail(err error)
}

type NoProgress struct{}

func (NoProgress) Start(int64)         {}
func (NoProgress) Update(int64, int64) {}
func (NoProgress) Finish(int64, int64) {}
func (NoProgress) Fail(error)          {}

const barWidth = 30

// Bar draws a one-line progress bar:
//
//	|██████████--------------------| 33% (1.0 MiB/3.0 MiB)
type Bar struct {
	w    io.Writer
	name string
}

func NewBar(w io.Writer, name string) *Bar { return &Bar{w: w, name: name} }

func (b *Bar) Start(total int64) {
	size := "unknown size"
	if total > 0 {
		size = humanize.IBytes(uint64(total))
	}
	_, _ = fmt.Fprintf(b.w, "Downloading %s (%s)...\n", b.name, size)
}

func (b *Bar) Update(done, total int64) {
	if done < 0 {
		done = 0
	}
	if total <= 0 {
		_, _ = fmt.Fprintf(b.w, "\r%s downloaded", humanize.IBytes(uint64(done)))
		return
	}
	percent := int(100 * done / total)
	if percent > 100 {
		percent = 100
	}
	filled := barWidth * percent / 100
	_, _ = fmt.Fprintf(b.w, "\r|%s%s| %d%% (%s/%s)",
		strings.Repeat("█", filled), strings.Repeat("-", barWidth-filled), percent,
		humanize.IBytes(uint64(done)), humanize.IBytes(uint64(total)))
}

func (b *Bar) Finish(done, total int64) {
	b.Update(done, total)
	_, _ = fmt.Fprintln(b.w)
}

func (b *Bar) Fail(err error) { _, _ = fmt.Fprintln(b.w) }
