// Package presenter renders impact reports for people: a plain-text results
// block, a recovery chart, and a CSV export of the recovery series.
package presenter

import (
	"fmt"
	"io"

	"github.com/couchcryptid/impact-sim/internal/domain"
)

// WriteSummary prints the results block for a report.
func WriteSummary(w io.Writer, r domain.ImpactReport) error {
	_, err := fmt.Fprintf(w,
		"\nImpact Simulation Results:\n"+
			"Crater Diameter: %.2f m\n"+
			"Ejecta Mass: %.2e kg\n"+
			"Initial Global Temperature Drop: %.2f°C\n",
		r.CraterDiameter, r.EjectaMass, r.TemperatureDrop,
	)
	return err
}

// WriteError prints the single-line error shown when a run is rejected.
func WriteError(w io.Writer, err error) error {
	_, werr := fmt.Fprintf(w, "Error: %s\n", err)
	return werr
}
