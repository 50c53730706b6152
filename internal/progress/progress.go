package progress

// Status is the state carried by a progress event.
type Status string

const (
	StatusDownloading Status = "downloading"
	StatusFinished    Status = "finished"
	StatusError       Status = "error"
)

// Event is one progress report from the engine.
// TotalBytes is the exact size when known, otherwise the estimate, otherwise 0.
type Event struct {
	Status          Status
	Filename        string
	DownloadedBytes int64
	TotalBytes      int64
	ItemID          string

	// Postprocessor is set when the event comes from a post-processing
	// stage rather than from the transfer itself.
	Postprocessor string

	Detail string // error text
}

// Percent returns 0..100, or -1 when the total size is unknown.
func (e Event) Percent() float64 {
	if e.TotalBytes <= 0 {
		return -1
	}
	return float64(e.DownloadedBytes) / float64(e.TotalBytes) * 100
}

// Hook observes progress events. It has no control over the transfer.
type Hook func(Event)

// Stats tallies one downloader run.
type Stats struct {
	TotalFiles int
	Completed  int
	Errors     int
	Bytes      int64
}

// SuccessRate returns Completed/TotalFiles*100 and false when TotalFiles is 0.
func (s Stats) SuccessRate() (float64, bool) {
	if s.TotalFiles <= 0 {
		return 0, false
	}
	return float64(s.Completed) / float64(s.TotalFiles) * 100, true
}
