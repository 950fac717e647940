package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaders(t *testing.T) {
	assert.Equal(t, "event,w_mc,q2_mc,weight", Generated.Header())
	assert.Len(t, Generated.Columns(), 4)

	cols := Reconstructed.Columns()
	assert.Len(t, cols, 24)
	assert.Equal(t, []string{"event", "w", "q2", "weight"}, cols[:4])
	assert.Equal(t, "prot_theta_angle_btwn_P", cols[len(cols)-1])
	assert.False(t, strings.HasSuffix(Reconstructed.Header(), ","))
}

func TestGeneratedRow(t *testing.T) {
	e := &EventRecord{Event: 42, WMC: 1.8821, Q2MC: 1.2345, WeightGen: 0.97531}
	row := string(Generated.Select(e).AppendRow(nil))
	assert.Equal(t, "42,1.8821,1.2345,0.97531", row)
}

func TestReconstructedRow_AllZero(t *testing.T) {
	e := &EventRecord{Event: 7}
	row := string(Reconstructed.Select(e).AppendRow(nil))
	want := "7" + strings.Repeat(",0", 23)
	assert.Equal(t, want, row)
}

func TestRowMatchesHeader(t *testing.T) {
	e := &EventRecord{Event: 1, W: 2.1, Q2: 3.3, WeightRec: 1, ProtAngleBtwnP: 0.25}
	for _, p := range []Provenance{Generated, Reconstructed} {
		row := string(p.Select(e).AppendRow(nil))
		assert.Equal(t, len(p.Columns()), len(strings.Split(row, ",")), p.String())
	}
}

func TestReconstructedRow_Order(t *testing.T) {
	e := &EventRecord{
		Event:          3,
		W:              1.5,
		Q2:             2.5,
		WeightRec:      0.5,
		MM2MissPim:     0.01,
		MM2Exclusive:   -0.002,
		ExclMom:        0.125,
		PimAngleBtwnP:  10,
		ProtAngleBtwnP: 30,
		WMC:            9, // ignored by the reconstructed schema
	}
	fields := strings.Split(string(Reconstructed.Select(e).AppendRow(nil)), ",")
	cols := Reconstructed.Columns()
	got := make(map[string]string, len(cols))
	for i, c := range cols {
		got[c] = fields[i]
	}
	assert.Equal(t, "3", got["event"])
	assert.Equal(t, "1.5", got["w"])
	assert.Equal(t, "2.5", got["q2"])
	assert.Equal(t, "0.5", got["weight"])
	assert.Equal(t, "0.01", got["mm2_mPim"])
	assert.Equal(t, "-0.002", got["mm2_excl"])
	assert.Equal(t, "0.125", got["excl_mom"])
	assert.Equal(t, "10", got["pim_theta_angle_btwn_P"])
	assert.Equal(t, "30", got["prot_theta_angle_btwn_P"])
	assert.NotContains(t, fields, "9")
}

func TestSelectIsIdempotent(t *testing.T) {
	e := &EventRecord{Event: 5, W: 1.23456789, WMC: 2.5}
	for _, p := range []Provenance{Generated, Reconstructed} {
		first := string(p.Select(e).AppendRow(nil))
		second := string(p.Select(e).AppendRow(nil))
		assert.Equal(t, first, second)
	}
	assert.Equal(t, float32(1.23456789), e.W)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1.234568", FormatValue(1.23456789))
	assert.Equal(t, "123456.8", FormatValue(123456.78))
	assert.Equal(t, "1.234568e+07", FormatValue(12345678))
	assert.Equal(t, "0", FormatValue(0))
	assert.Equal(t, "-0.5", FormatValue(-0.5))
	assert.Equal(t, "1e-05", FormatValue(0.00001))
	assert.Equal(t, "nan", FormatValue(float32(math.NaN())))
	assert.Equal(t, "inf", FormatValue(float32(math.Inf(1))))
	assert.Equal(t, "-inf", FormatValue(float32(math.Inf(-1))))
}
