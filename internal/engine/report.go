package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Print выводит отчет о производительности.
func (r *Report) Print(w io.Writer, build string) {
	fmt.Fprintf(w,
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Frames: %d | Polygons: %d | Failed: %d\n"+
			"Total Time: %.3fs\n"+
			"Loading (CPU): %.3fs\n"+
			"Tracing (CPU): %.3fs\n"+
			"Host: %s\n"+
			"----------------------------\n",
		build, len(r.Frames), r.Polygons, r.Failed,
		r.Total.Seconds(), r.Load.Seconds(), r.Trace.Seconds(), r.Host,
	)
}

// AppendBenchmark дописывает однострочную сводку в лог path.
func (r *Report) AppendBenchmark(path, build, input string) error {
	entry := fmt.Sprintf("[%s] Build: %s | Input: %s | Frames: %d | Polygons: %d | Total: %.3fs | Load: %.3fs | Trace: %.3fs | CPUs: %d\n",
		time.Now().Format("2006-01-02 15:04:05"),
		build,
		filepath.Base(input),
		len(r.Frames),
		r.Polygons,
		r.Total.Seconds(),
		r.Load.Seconds(),
		r.Trace.Seconds(),
		r.Host.LogicalCPUs,
	)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(entry); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
