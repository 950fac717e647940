package analysis

import (
	"math"
	"strconv"
	"strings"
)

// Significant digits used for every floating point column.
const PRECISION = 7

const generatedHeader = "event,w_mc,q2_mc,weight"

const reconstructedHeader = "event,w,q2,weight," +
	"mm2_mPim,mm2_mPip,mm2_mProt,mm2_excl," +
	"pim_mom_miss,pim_mom_meas,pip_mom_miss,pip_mom_meas,prot_mom_miss,prot_mom_meas,excl_mom," +
	"pim_theta_miss,pim_theta_meas,pip_theta_miss,pip_theta_meas,prot_theta_miss,prot_theta_meas," +
	"pim_theta_angle_btwn_P,pip_theta_angle_btwn_P,prot_theta_angle_btwn_P"

// EventRecord holds the derived quantities of one event. Only part of it is
// serialized: which part depends on the run provenance.
type EventRecord struct {
	Event int

	// Reconstructed / experimental kinematics
	W         float32
	Q2        float32
	WeightRec float32

	MM2MissPim   float32
	MM2MissPip   float32
	MM2MissProt  float32
	MM2Exclusive float32

	PimMomMiss  float32
	PimMomMeas  float32
	PipMomMiss  float32
	PipMomMeas  float32
	ProtMomMiss float32
	ProtMomMeas float32
	ExclMom     float32

	PimThetaMiss  float32
	PimThetaMeas  float32
	PipThetaMiss  float32
	PipThetaMeas  float32
	ProtThetaMiss float32
	ProtThetaMeas float32

	PimAngleBtwnP  float32
	PipAngleBtwnP  float32
	ProtAngleBtwnP float32

	// Generated (truth) kinematics
	WMC       float32
	Q2MC      float32
	WeightGen float32

	// Not serialized
	Electron  ElectronInfo
	WHad      float32
	WDiff     float32
	EnergyXMu float32
	MomXMu    float32
	Vertex    Vertex
	Gen       GenKinematics
	Status    StatusCodes
}

type ElectronInfo struct {
	Sector    int16
	SF        float32
	PrimeM2   float64
	M2        float64
	EnergyRec float64
	MomRec    float32
	ThetaRec  float32
	PhiRec    float32
}

type Vertex struct {
	X, Y, Z float32
	// Hadrons holds the (x, y, z) vertex of pi-, pi+ and proton
	Hadrons [3][3]float32
}

type Track struct {
	Mom, Theta, Phi float32
}

type GenKinematics struct {
	ElecE float32
	Elec  Track
	Pim   Track
	Pip   Track
	Prot  Track
}

type StatusCodes struct {
	Elec, Pim, Pip, Prot int32
}

// Record is one CSV row of a given schema.
type Record interface {
	Provenance() Provenance
	AppendRow(dst []byte) []byte
}

type GeneratedRecord struct {
	Event  int
	WMC    float32
	Q2MC   float32
	Weight float32
}

func (GeneratedRecord) Provenance() Provenance { return Generated }

func (r GeneratedRecord) AppendRow(dst []byte) []byte {
	dst = strconv.AppendInt(dst, int64(r.Event), 10)
	return appendValues(dst, r.WMC, r.Q2MC, r.Weight)
}

type ReconstructedRecord struct {
	Event  int
	W      float32
	Q2     float32
	Weight float32

	MM2MissPim   float32
	MM2MissPip   float32
	MM2MissProt  float32
	MM2Exclusive float32

	PimMomMiss  float32
	PimMomMeas  float32
	PipMomMiss  float32
	PipMomMeas  float32
	ProtMomMiss float32
	ProtMomMeas float32
	ExclMom     float32

	PimThetaMiss  float32
	PimThetaMeas  float32
	PipThetaMiss  float32
	PipThetaMeas  float32
	ProtThetaMiss float32
	ProtThetaMeas float32

	PimAngleBtwnP  float32
	PipAngleBtwnP  float32
	ProtAngleBtwnP float32
}

func (ReconstructedRecord) Provenance() Provenance { return Reconstructed }

func (r ReconstructedRecord) AppendRow(dst []byte) []byte {
	dst = strconv.AppendInt(dst, int64(r.Event), 10)
	return appendValues(dst,
		r.W, r.Q2, r.Weight,
		r.MM2MissPim, r.MM2MissPip, r.MM2MissProt, r.MM2Exclusive,
		r.PimMomMiss, r.PimMomMeas, r.PipMomMiss, r.PipMomMeas, r.ProtMomMiss, r.ProtMomMeas, r.ExclMom,
		r.PimThetaMiss, r.PimThetaMeas, r.PipThetaMiss, r.PipThetaMeas, r.ProtThetaMiss, r.ProtThetaMeas,
		r.PimAngleBtwnP, r.PipAngleBtwnP, r.ProtAngleBtwnP,
	)
}

func (e *EventRecord) Generated() GeneratedRecord {
	return GeneratedRecord{
		Event:  e.Event,
		WMC:    e.WMC,
		Q2MC:   e.Q2MC,
		Weight: e.WeightGen,
	}
}

func (e *EventRecord) Reconstructed() ReconstructedRecord {
	return ReconstructedRecord{
		Event:          e.Event,
		W:              e.W,
		Q2:             e.Q2,
		Weight:         e.WeightRec,
		MM2MissPim:     e.MM2MissPim,
		MM2MissPip:     e.MM2MissPip,
		MM2MissProt:    e.MM2MissProt,
		MM2Exclusive:   e.MM2Exclusive,
		PimMomMiss:     e.PimMomMiss,
		PimMomMeas:     e.PimMomMeas,
		PipMomMiss:     e.PipMomMiss,
		PipMomMeas:     e.PipMomMeas,
		ProtMomMiss:    e.ProtMomMiss,
		ProtMomMeas:    e.ProtMomMeas,
		ExclMom:        e.ExclMom,
		PimThetaMiss:   e.PimThetaMiss,
		PimThetaMeas:   e.PimThetaMeas,
		PipThetaMiss:   e.PipThetaMiss,
		PipThetaMeas:   e.PipThetaMeas,
		ProtThetaMiss:  e.ProtThetaMiss,
		ProtThetaMeas:  e.ProtThetaMeas,
		PimAngleBtwnP:  e.PimAngleBtwnP,
		PipAngleBtwnP:  e.PipAngleBtwnP,
		ProtAngleBtwnP: e.ProtAngleBtwnP,
	}
}

// Select returns the schema variant of e that p serializes.
func (p Provenance) Select(e *EventRecord) Record {
	if p == Reconstructed {
		return e.Reconstructed()
	}
	return e.Generated()
}

func (p Provenance) Header() string {
	if p == Reconstructed {
		return reconstructedHeader
	}
	return generatedHeader
}

func (p Provenance) Columns() []string {
	return strings.Split(p.Header(), ",")
}

func FormatValue(v float32) string {
	return string(appendValue(nil, v))
}

func appendValue(dst []byte, v float32) []byte {
	switch f := float64(v); {
	case math.IsNaN(f):
		return append(dst, "nan"...)
	case math.IsInf(f, 1):
		return append(dst, "inf"...)
	case math.IsInf(f, -1):
		return append(dst, "-inf"...)
	}
	return strconv.AppendFloat(dst, float64(v), 'g', PRECISION, 32)
}

func appendValues(dst []byte, values ...float32) []byte {
	for _, v := range values {
		dst = append(dst, ',')
		dst = appendValue(dst, v)
	}
	return dst
}
