// Package input acquires impactor parameters from an interactive terminal,
// command-line flags, or an HTTP query string. Every source returns either a
// validated domain.ImpactParameters or a *domain.ValidationError.
package input

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/couchcryptid/impact-sim/internal/domain"
)

// field pairs a parameter with its interactive prompt.
type field struct {
	name   string
	prompt string
}

// fields lists the parameters in acquisition order.
var fields = []field{
	{domain.FieldDiameter, "Enter asteroid diameter (m): "},
	{domain.FieldVelocity, "Enter impact velocity (m/s): "},
	{domain.FieldDensity, "Enter asteroid density (kg/m^3): "},
	{domain.FieldAngle, "Enter impact angle (degrees from horizontal, e.g. 90 = vertical): "},
}

// Prompter reads parameters one line at a time, writing a prompt before each.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter creates a Prompter reading answers from r and writing prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(r), out: w}
}

// Acquire prompts for diameter, velocity, density, and angle in that order.
// It stops at the first answer that is missing or not a number. Positivity
// is checked only after all four values have been read.
func (p *Prompter) Acquire() (domain.ImpactParameters, error) {
	values := make([]float64, len(fields))
	for i, f := range fields {
		if _, err := io.WriteString(p.out, f.prompt); err != nil {
			return domain.ImpactParameters{}, fmt.Errorf("write prompt: %w", err)
		}
		answer, err := p.readLine()
		if err != nil {
			return domain.ImpactParameters{}, err
		}
		v, err := parseValue(f.name, answer)
		if err != nil {
			return domain.ImpactParameters{}, err
		}
		values[i] = v
	}
	return domain.NewImpactParameters(values[0], values[1], values[2], values[3])
}

func (p *Prompter) readLine() (string, error) {
	if p.scanner.Scan() {
		return p.scanner.Text(), nil
	}
	if err := p.scanner.Err(); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	// EOF: treat as an empty answer so the caller reports the missing field.
	return "", nil
}

// FromFlags validates values supplied on the command line.
func FromFlags(diameter, velocity, density, angle float64) (domain.ImpactParameters, error) {
	return domain.NewImpactParameters(diameter, velocity, density, angle)
}

// FromQuery parses and validates parameters from URL query values,
// e.g. ?diameter=100&velocity=20000&density=3000&angle=45.
func FromQuery(q url.Values) (domain.ImpactParameters, error) {
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseValue(f.name, q.Get(f.name))
		if err != nil {
			return domain.ImpactParameters{}, err
		}
		values[i] = v
	}
	return domain.NewImpactParameters(values[0], values[1], values[2], values[3])
}

func parseValue(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, domain.NewParseError(name, raw)
	}
	return v, nil
}
