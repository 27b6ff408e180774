package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/cwbudde/algo-periodicity/dsp/conv"
	"github.com/cwbudde/algo-periodicity/dsp/core"
	"github.com/cwbudde/algo-periodicity/dsp/periodicity"
	"github.com/cwbudde/algo-periodicity/dsp/segment"
)

type report struct {
	Samples    int               `json:"samples"`
	Domain     [2]float64        `json:"domain"`
	Maxima     int               `json:"maxima"`
	Minima     int               `json:"minima"`
	ACFLag     int               `json:"acf_lag,omitempty"`
	Tolerances []toleranceReport `json:"tolerances"`
}

type toleranceReport struct {
	Tolerance float64         `json:"tolerance"`
	Clusters  int             `json:"clusters"`
	Segments  []segmentReport `json:"segments"`
	Period    *periodReport   `json:"period,omitempty"`
	Error     string          `json:"error,omitempty"`

	periodSegs []segment.Segment
}

type segmentReport struct {
	Begin   float64 `json:"begin"`
	End     float64 `json:"end"`
	Cluster int     `json:"cluster"`
}

type periodReport struct {
	Separator  int       `json:"separator"`
	StateMass  []float64 `json:"state_mass"`
	Boundaries []float64 `json:"boundaries"`
}

// analyze runs one sequence and principal period extraction per tolerance
// against the same indexer.
func analyze(ix *periodicity.Indexer, y []float64, tols []float64, logger *slog.Logger, opts ...core.AnalysisOption) (*report, error) {
	lo, hi := ix.Domain()
	rep := &report{
		Samples: len(y),
		Domain:  [2]float64{lo, hi},
		Maxima:  len(ix.Maxima()),
		Minima:  len(ix.Minima()),
	}

	if acf, err := conv.AutoCorrelate(y); err == nil {
		if lag, err := conv.DominantLag(acf); err == nil {
			rep.ACFLag = lag
		} else {
			logger.Debug("no autocorrelation period", slog.Any("error", err))
		}
	}

	for _, tol := range tols {
		seq, err := ix.Sequence(tol)
		if err != nil {
			return nil, err
		}

		tr := toleranceReport{Tolerance: tol, Clusters: seq.Clusters()}
		for _, a := range seq {
			tr.Segments = append(tr.Segments, segmentReport{Begin: a.Begin, End: a.End, Cluster: a.Cluster})
		}

		p, err := periodicity.AnalyzeSequence(seq, opts...)
		switch {
		case errors.Is(err, periodicity.ErrInsufficientClusters):
			tr.Error = err.Error()
		case err != nil:
			return nil, err
		default:
			tr.Period = &periodReport{
				Separator:  p.Separator,
				StateMass:  p.StateMass,
				Boundaries: p.Boundaries(),
			}
			tr.periodSegs = p.Segments
		}

		logger.Info("tolerance analysed",
			slog.Float64("tolerance", tol),
			slog.Int("clusters", tr.Clusters),
			slog.Bool("period", tr.Period != nil))

		rep.Tolerances = append(rep.Tolerances, tr)
	}

	return rep, nil
}

func writeJSON(w io.Writer, rep *report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func writeTable(w io.Writer, rep *report) error {
	fmt.Fprintf(w, "samples: %d  domain: [%g, %g]  maxima: %d  minima: %d\n",
		rep.Samples, rep.Domain[0], rep.Domain[1], rep.Maxima, rep.Minima)
	if rep.ACFLag > 0 {
		fmt.Fprintf(w, "autocorrelation lag: %d samples\n", rep.ACFLag)
	}

	for _, tr := range rep.Tolerances {
		fmt.Fprintf(w, "\ntolerance %g: %d clusters\n", tr.Tolerance, tr.Clusters)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "#\tBegin\tEnd\tLength\tCluster\t")
		fmt.Fprintln(tw, "-\t-----\t---\t------\t-------\t")
		for i, s := range tr.Segments {
			fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%.3f\t%d\t\n", i, s.Begin, s.End, s.End-s.Begin, s.Cluster)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		if tr.Period == nil {
			fmt.Fprintf(w, "principal period: %s\n", tr.Error)
			continue
		}
		fmt.Fprintf(w, "principal period: separator state %d, boundaries %s\n",
			tr.Period.Separator, formatPoints(tr.Period.Boundaries))
	}

	return nil
}

func formatPoints(ps []float64) string {
	if len(ps) == 0 {
		return "none"
	}
	s := ""
	for i, p := range ps {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%.3f", p)
	}
	return s
}
