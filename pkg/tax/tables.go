package tax

import (
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed slabs.yaml
var slabsYAML []byte

// Slab is one income bracket taxed at Rate percent between Min and Max.
// An Unbounded slab taxes everything above Min and ignores Max.
type Slab struct {
	Min       decimal.Decimal
	Max       decimal.Decimal
	Rate      decimal.Decimal
	Unbounded bool
}

type regimeTable struct {
	standardDeduction decimal.Decimal
	slabs             []Slab
}

type limits struct {
	section80C           decimal.Decimal
	section24b           decimal.Decimal
	section80EEA         decimal.Decimal
	section80EEAProperty decimal.Decimal
}

type tables struct {
	cess    decimal.Decimal
	regimes map[Regime]regimeTable
	limits  limits
}

var tbl = mustLoad(slabsYAML)

func mustLoad(data []byte) tables {
	var raw struct {
		CessPercent string `yaml:"cessPercent"`
		Regimes     map[string]struct {
			StandardDeduction string `yaml:"standardDeduction"`
			Slabs             []struct {
				Min  string `yaml:"min"`
				Max  string `yaml:"max"`
				Rate string `yaml:"rate"`
			} `yaml:"slabs"`
		} `yaml:"regimes"`
		Limits struct {
			Section80C                string `yaml:"section80C"`
			Section24b                string `yaml:"section24b"`
			Section80EEA              string `yaml:"section80EEA"`
			Section80EEAPropertyValue string `yaml:"section80EEAPropertyValue"`
		} `yaml:"limits"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		panic(fmt.Sprintf("tax: decoding embedded slabs: %v", err))
	}

	t := tables{
		cess:    decimal.RequireFromString(raw.CessPercent),
		regimes: make(map[Regime]regimeTable, len(raw.Regimes)),
		limits: limits{
			section80C:           decimal.RequireFromString(raw.Limits.Section80C),
			section24b:           decimal.RequireFromString(raw.Limits.Section24b),
			section80EEA:         decimal.RequireFromString(raw.Limits.Section80EEA),
			section80EEAProperty: decimal.RequireFromString(raw.Limits.Section80EEAPropertyValue),
		},
	}
	for name, r := range raw.Regimes {
		rt := regimeTable{standardDeduction: decimal.RequireFromString(r.StandardDeduction)}
		for _, s := range r.Slabs {
			slab := Slab{
				Min:       decimal.RequireFromString(s.Min),
				Rate:      decimal.RequireFromString(s.Rate),
				Unbounded: s.Max == "",
			}
			if !slab.Unbounded {
				slab.Max = decimal.RequireFromString(s.Max)
			}
			rt.slabs = append(rt.slabs, slab)
		}
		t.regimes[Regime(name)] = rt
	}
	return t
}

// Slabs returns a copy of the slab table for a regime.
func Slabs(regime Regime) ([]Slab, bool) {
	rt, ok := tbl.regimes[regime]
	if !ok {
		return nil, false
	}
	return append([]Slab(nil), rt.slabs...), true
}
