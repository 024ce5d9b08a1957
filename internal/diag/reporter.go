package diag

// Reporter принимает диагностики от лексера, парсера и чекера.
type Reporter interface {
	Report(d Diagnostic)
}

// Report forwards d to r when r is set.
func Report(r Reporter, d Diagnostic) {
	if r != nil {
		r.Report(d)
	}
}

// BagReporter складывает диагностики в Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }
