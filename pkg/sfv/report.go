package sfv

// Reporter receives the final status of every entry, once per entry and in
// list order, while Verify or Update runs.
type Reporter interface {
	Report(name string, status Status)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(name string, status Status)

func (f ReporterFunc) Report(name string, status Status) {
	f(name, status)
}

type discard struct{}

func (discard) Report(string, Status) {}
