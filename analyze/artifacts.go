package analyze

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Holodome/csbench/stats"
)

// WriteArtifacts writes the numeric artifacts of an analysis into dir so
// that external plotting backends can consume them: the sampled density
// curves, the group means with their complexity fits, and the plain-text
// report. An I/O failure here leaves the in-memory bundle intact.
func WriteArtifacts(dir string, a *Analysis) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "cannot create analyze directory %q", dir)
	}

	for bi, ba := range a.Benches {
		for mi := range a.Results.Meas {
			if err := writeKDE(filepath.Join(dir, fmt.Sprintf("kde_%d_%d.txt", bi, mi)), ba.KDE[mi]); err != nil {
				return err
			}
			if err := writeKDE(filepath.Join(dir, fmt.Sprintf("kde_ext_%d_%d.txt", bi, mi)), ba.KDEExt[mi]); err != nil {
				return err
			}
		}
	}

	for _, ma := range a.PerMeas {
		for gi, ga := range ma.Groups {
			path := filepath.Join(dir, fmt.Sprintf("group_%d_%d.txt", gi, ma.MeasIdx))
			if err := writeGroupData(path, ga); err != nil {
				return err
			}
		}
	}

	report, err := os.Create(filepath.Join(dir, "report.txt"))
	if err != nil {
		return errors.Wrap(err, "cannot create report file")
	}
	defer report.Close()
	return WriteReport(report, a)
}

// writeKDE writes the sampled curve as "x y" lines, followed by the mean
// annotation point
func writeKDE(path string, k *stats.KDE) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create artifact %q", path)
	}
	defer f.Close()

	for i := range k.X {
		if _, err := fmt.Fprintf(f, "%g %g\n", k.X[i], k.Y[i]); err != nil {
			return errors.Wrapf(err, "cannot write artifact %q", path)
		}
	}
	if _, err := fmt.Fprintf(f, "# mean %g %g\n", k.MeanX, k.MeanY); err != nil {
		return errors.Wrapf(err, "cannot write artifact %q", path)
	}
	return nil
}

// writeGroupData writes per-value means and the complexity fit of a group
func writeGroupData(path string, ga *GroupAnalysis) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create artifact %q", path)
	}
	defer f.Close()

	for i, v := range ga.Group.Values {
		if _, err := fmt.Fprintf(f, "%s %g\n", v.Value, ga.Means[i]); err != nil {
			return errors.Wrapf(err, "cannot write artifact %q", path)
		}
	}
	if ga.Numeric && ga.Fit != nil {
		if _, err := fmt.Fprintf(f, "# fit %s %g %g\n", ga.Fit.Complexity, ga.Fit.Coef, ga.Fit.RMS); err != nil {
			return errors.Wrapf(err, "cannot write artifact %q", path)
		}
	}
	return nil
}
