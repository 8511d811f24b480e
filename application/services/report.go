package services

import (
	"fmt"
	"io"

	"clutchdemo/domain/clutch"
)

// exampleLookups is how many per-clutch lookup paths the summary lists
const exampleLookups = 3

// Summary is the outcome of a populate run
type Summary struct {
	Clutches  int
	Eggs      int
	ClutchIDs []string
}

// Summarize counts records by kind and collects clutch IDs in sequence order
func Summarize(records []clutch.Record) Summary {
	counts := clutch.CountByKind(records)
	s := Summary{
		Clutches: counts[clutch.KindMetadata],
		Eggs:     counts[clutch.KindEgg],
	}
	for _, c := range clutch.Clutches(records) {
		s.ClutchIDs = append(s.ClutchIDs, c.ID)
	}
	return s
}

// ExamplePaths returns the API paths worth trying against the seeded data
func (s Summary) ExamplePaths() []string {
	paths := []string{"GET /clutches"}
	for i, id := range s.ClutchIDs {
		if i == exampleLookups {
			break
		}
		paths = append(paths, "GET /clutches/"+id)
	}
	return paths
}

// WriteTo prints the summary block
func (s Summary) WriteTo(w io.Writer) (int64, error) {
	pw := &progressWriter{w: w}
	pw.printf("\n📊 Summary:\n")
	pw.printf("   • %d clutches created\n", s.Clutches)
	pw.printf("   • %d eggs analyzed\n", s.Eggs)

	pw.printf("\n🔗 Test URLs:\n")
	for i, p := range s.ExamplePaths() {
		if i == 0 {
			pw.printf("   • List clutches: %s\n", p)
			continue
		}
		pw.printf("   • Get clutch: %s\n", p)
	}
	return pw.n, pw.err
}

// progressWriter remembers the first write error so callers check once
type progressWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (p *progressWriter) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	n, err := fmt.Fprintf(p.w, format, args...)
	p.n += int64(n)
	p.err = err
}
