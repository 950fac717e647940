package analysis

import (
	"fmt"
	"strings"
)

// Provenance tells whether a sample holds generated (truth) events or
// reconstructed/experimental ones. It picks the CSV schema for a whole run.
type Provenance int

const (
	Generated Provenance = iota
	Reconstructed
)

func (p Provenance) String() string {
	switch p {
	case Generated:
		return "gen"
	case Reconstructed:
		return "rec"
	default:
		return "unknown"
	}
}

// ResolveProvenance classifies a file name. "gen" is checked first, then
// "rec" and "exp"; a name with none of them is treated as generated.
func ResolveProvenance(name string) Provenance {
	switch {
	case strings.Contains(name, "gen"):
		return Generated
	case strings.Contains(name, "rec"), strings.Contains(name, "exp"):
		return Reconstructed
	default:
		return Generated
	}
}

// ParseProvenance reads an explicit provenance from configuration.
func ParseProvenance(s string) (Provenance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gen", "generated":
		return Generated, nil
	case "rec", "reconstructed", "exp", "experimental":
		return Reconstructed, nil
	}
	return Generated, fmt.Errorf("invalid provenance %q", s)
}

// SampleKind is the finer classification used for plot styling, where
// reconstructed and experimental samples are told apart.
type SampleKind int

const (
	SampleUnknown SampleKind = iota
	SampleReconstructed
	SampleExperimental
)

func (k SampleKind) String() string {
	switch k {
	case SampleReconstructed:
		return "reconstructed"
	case SampleExperimental:
		return "experimental"
	default:
		return "unknown"
	}
}

func ClassifySample(name string) SampleKind {
	switch {
	case strings.Contains(name, "rec"):
		return SampleReconstructed
	case strings.Contains(name, "exp"):
		return SampleExperimental
	default:
		return SampleUnknown
	}
}
