package analysis

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type fieldSetter func(e *EventRecord, v float64)

// recordFields maps the tree branch names written by the event producer to
// the EventRecord fields they fill.
var recordFields = map[string]fieldSetter{
	"event":           func(e *EventRecord, v float64) { e.Event = int(v) },
	"electron_sector": func(e *EventRecord, v float64) { e.Electron.Sector = int16(v) },
	"sf":              func(e *EventRecord, v float64) { e.Electron.SF = float32(v) },
	"elec_prime_m2":   func(e *EventRecord, v float64) { e.Electron.PrimeM2 = v },
	"elec_m2":         func(e *EventRecord, v float64) { e.Electron.M2 = v },
	"elec_energy_rec": func(e *EventRecord, v float64) { e.Electron.EnergyRec = v },
	"elec_mom_rec":    func(e *EventRecord, v float64) { e.Electron.MomRec = float32(v) },
	"elec_theta_rec":  func(e *EventRecord, v float64) { e.Electron.ThetaRec = float32(v) },
	"elec_phi_rec":    func(e *EventRecord, v float64) { e.Electron.PhiRec = float32(v) },

	"w":           func(e *EventRecord, v float64) { e.W = float32(v) },
	"q2":          func(e *EventRecord, v float64) { e.Q2 = float32(v) },
	"weight_rec":  func(e *EventRecord, v float64) { e.WeightRec = float32(v) },
	"w_mc":        func(e *EventRecord, v float64) { e.WMC = float32(v) },
	"q2_mc":       func(e *EventRecord, v float64) { e.Q2MC = float32(v) },
	"weight_gen":  func(e *EventRecord, v float64) { e.WeightGen = float32(v) },
	"w_had":       func(e *EventRecord, v float64) { e.WHad = float32(v) },
	"w_diff":      func(e *EventRecord, v float64) { e.WDiff = float32(v) },
	"energy_x_mu": func(e *EventRecord, v float64) { e.EnergyXMu = float32(v) },
	"mom_x_mu":    func(e *EventRecord, v float64) { e.MomXMu = float32(v) },

	"mm2_mPim":      func(e *EventRecord, v float64) { e.MM2MissPim = float32(v) },
	"mm2_mPip":      func(e *EventRecord, v float64) { e.MM2MissPip = float32(v) },
	"mm2_mProt":     func(e *EventRecord, v float64) { e.MM2MissProt = float32(v) },
	"mm2_exclusive": func(e *EventRecord, v float64) { e.MM2Exclusive = float32(v) },

	"pim_mom_miss":  func(e *EventRecord, v float64) { e.PimMomMiss = float32(v) },
	"pim_mom_meas":  func(e *EventRecord, v float64) { e.PimMomMeas = float32(v) },
	"pip_mom_miss":  func(e *EventRecord, v float64) { e.PipMomMiss = float32(v) },
	"pip_mom_meas":  func(e *EventRecord, v float64) { e.PipMomMeas = float32(v) },
	"prot_mom_miss": func(e *EventRecord, v float64) { e.ProtMomMiss = float32(v) },
	"prot_mom_meas": func(e *EventRecord, v float64) { e.ProtMomMeas = float32(v) },
	"excl_mom":      func(e *EventRecord, v float64) { e.ExclMom = float32(v) },

	"pim_theta_miss":  func(e *EventRecord, v float64) { e.PimThetaMiss = float32(v) },
	"pim_theta_meas":  func(e *EventRecord, v float64) { e.PimThetaMeas = float32(v) },
	"pip_theta_miss":  func(e *EventRecord, v float64) { e.PipThetaMiss = float32(v) },
	"pip_theta_meas":  func(e *EventRecord, v float64) { e.PipThetaMeas = float32(v) },
	"prot_theta_miss": func(e *EventRecord, v float64) { e.ProtThetaMiss = float32(v) },
	"prot_theta_meas": func(e *EventRecord, v float64) { e.ProtThetaMeas = float32(v) },

	"pim_theta_angle_btwn_P":  func(e *EventRecord, v float64) { e.PimAngleBtwnP = float32(v) },
	"pip_theta_angle_btwn_P":  func(e *EventRecord, v float64) { e.PipAngleBtwnP = float32(v) },
	"prot_theta_angle_btwn_P": func(e *EventRecord, v float64) { e.ProtAngleBtwnP = float32(v) },

	"gen_elec_E":     func(e *EventRecord, v float64) { e.Gen.ElecE = float32(v) },
	"gen_elec_mom":   func(e *EventRecord, v float64) { e.Gen.Elec.Mom = float32(v) },
	"gen_elec_theta": func(e *EventRecord, v float64) { e.Gen.Elec.Theta = float32(v) },
	"gen_elec_phi":   func(e *EventRecord, v float64) { e.Gen.Elec.Phi = float32(v) },
	"gen_pim_mom":    func(e *EventRecord, v float64) { e.Gen.Pim.Mom = float32(v) },
	"gen_pim_theta":  func(e *EventRecord, v float64) { e.Gen.Pim.Theta = float32(v) },
	"gen_pim_phi":    func(e *EventRecord, v float64) { e.Gen.Pim.Phi = float32(v) },
	"gen_pip_mom":    func(e *EventRecord, v float64) { e.Gen.Pip.Mom = float32(v) },
	"gen_pip_theta":  func(e *EventRecord, v float64) { e.Gen.Pip.Theta = float32(v) },
	"gen_pip_phi":    func(e *EventRecord, v float64) { e.Gen.Pip.Phi = float32(v) },
	"gen_prot_mom":   func(e *EventRecord, v float64) { e.Gen.Prot.Mom = float32(v) },
	"gen_prot_theta": func(e *EventRecord, v float64) { e.Gen.Prot.Theta = float32(v) },
	"gen_prot_phi":   func(e *EventRecord, v float64) { e.Gen.Prot.Phi = float32(v) },

	"vertex_x": func(e *EventRecord, v float64) { e.Vertex.X = float32(v) },
	"vertex_y": func(e *EventRecord, v float64) { e.Vertex.Y = float32(v) },
	"vertex_z": func(e *EventRecord, v float64) { e.Vertex.Z = float32(v) },

	"status_Elec": func(e *EventRecord, v float64) { e.Status.Elec = int32(v) },
	"status_Pim":  func(e *EventRecord, v float64) { e.Status.Pim = int32(v) },
	"status_Pip":  func(e *EventRecord, v float64) { e.Status.Pip = int32(v) },
	"status_Prot": func(e *EventRecord, v float64) { e.Status.Prot = int32(v) },
}

// schemaBranches lists the branches feeding each CSV column. The header
// uses "weight" and "mm2_excl" where the producer uses the long names.
var schemaBranches = map[Provenance][]string{
	Generated: {"event", "w_mc", "q2_mc", "weight_gen"},
	Reconstructed: {
		"event", "w", "q2", "weight_rec",
		"mm2_mPim", "mm2_mPip", "mm2_mProt", "mm2_exclusive",
		"pim_mom_miss", "pim_mom_meas", "pip_mom_miss", "pip_mom_meas", "prot_mom_miss", "prot_mom_meas", "excl_mom",
		"pim_theta_miss", "pim_theta_meas", "pip_theta_miss", "pip_theta_meas", "prot_theta_miss", "prot_theta_meas",
		"pim_theta_angle_btwn_P", "pip_theta_angle_btwn_P", "prot_theta_angle_btwn_P",
	},
}

// SetField sets the field filled by the named branch. It reports false for
// unknown names.
func (e *EventRecord) SetField(name string, v float64) bool {
	set, ok := recordFields[name]
	if !ok {
		return false
	}
	set(e, v)
	return true
}

// KnownBranches returns every branch name an EventRecord can be filled from, sorted.
func KnownBranches() []string {
	names := maps.Keys(recordFields)
	slices.Sort(names)
	return names
}

// MissingBranches returns, sorted, the branches p needs that are not in available.
func MissingBranches(p Provenance, available []string) []string {
	have := make(map[string]bool, len(available))
	for _, name := range available {
		have[name] = true
	}
	missing := make(map[string]bool)
	for _, name := range schemaBranches[p] {
		if !have[name] {
			missing[name] = true
		}
	}
	names := maps.Keys(missing)
	slices.Sort(names)
	return names
}
