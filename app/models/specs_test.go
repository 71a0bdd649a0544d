package models

import "testing"

func TestParseLeadingNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"850", 850, true},
		{"850W", 850, true},
		{" 36.5 cm", 36.5, true},
		{"125 W TDP", 125, true},
		{"0", 0, true},
		{"Gold 850", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{".5", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseLeadingNumber(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseLeadingNumber(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCPUSpecsFromStringTDP(t *testing.T) {
	c := Component{Specifications: map[string]interface{}{
		"socket": "AM5",
		"tdp":    "120W",
	}}
	specs := c.CPUSpecs()
	if specs.Socket != "AM5" {
		t.Errorf("socket = %q", specs.Socket)
	}
	if !specs.HasTDP || specs.TDP != 120 {
		t.Errorf("tdp = %v, has %v", specs.TDP, specs.HasTDP)
	}
}

func TestSpecsReportAbsenceWhenMissing(t *testing.T) {
	c := Component{}
	if specs := c.CPUSpecs(); specs.HasTDP || specs.Socket != "" {
		t.Errorf("empty component yielded %+v", specs)
	}
	if specs := c.PSUSpecs(); specs.HasWattage {
		t.Errorf("empty component yielded %+v", specs)
	}
	if specs := c.CaseSpecs(); specs.HasMaxGPULength || specs.MotherboardSupport != nil {
		t.Errorf("empty component yielded %+v", specs)
	}
}

func TestCaseSpecsMotherboardSupportShapes(t *testing.T) {
	// After a JSON round-trip through the database the list arrives as
	// []interface{}; seed data may hand in []string or a single string.
	shapes := []interface{}{
		[]string{"ATX", "E-ATX"},
		[]interface{}{"ATX", "E-ATX"},
	}
	for _, shape := range shapes {
		c := Component{Specifications: map[string]interface{}{"motherboardSupport": shape}}
		got := c.CaseSpecs().MotherboardSupport
		if len(got) != 2 || got[0] != "ATX" || got[1] != "E-ATX" {
			t.Errorf("motherboardSupport from %T = %v", shape, got)
		}
	}

	single := Component{Specifications: map[string]interface{}{"motherboardSupport": "Mini-ITX"}}
	if got := single.CaseSpecs().MotherboardSupport; len(got) != 1 || got[0] != "Mini-ITX" {
		t.Errorf("single string promoted to %v", got)
	}
}

func TestGPUSpecsNumericShapes(t *testing.T) {
	c := Component{Specifications: map[string]interface{}{
		"tdp":    float64(450), // JSON numbers decode as float64
		"length": "336 mm",
	}}
	specs := c.GPUSpecs()
	if !specs.HasTDP || specs.TDP != 450 {
		t.Errorf("tdp = %v, has %v", specs.TDP, specs.HasTDP)
	}
	if !specs.HasLength || specs.Length != 336 {
		t.Errorf("length = %v, has %v", specs.Length, specs.HasLength)
	}
}
