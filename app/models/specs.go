package models

// Typed projections over Component.Specifications.
//
// Specification documents come from merchants and are loosely typed:
// numbers may arrive as JSON numbers ("tdp": 125) or as annotated strings
// ("tdp": "125W", "length": "336 mm"). The accessors here parse the
// leading numeric portion and otherwise report absence; the compatibility
// wizard treats a missing value as incompatible rather than guessing.

// CPUSpecs is the view the builder needs from a processor.
type CPUSpecs struct {
	Socket string
	TDP    float64
	HasTDP bool
}

// GPUSpecs is the view the builder needs from a graphics card.
type GPUSpecs struct {
	TDP       float64
	HasTDP    bool
	Length    float64
	HasLength bool
}

// MotherboardSpecs is the view the builder needs from a motherboard.
type MotherboardSpecs struct {
	Socket     string
	MemoryType string
	FormFactor string
}

// RAMSpecs is the view the builder needs from a memory kit.
type RAMSpecs struct {
	Type string
}

// PSUSpecs is the view the builder needs from a power supply.
type PSUSpecs struct {
	Wattage    float64
	HasWattage bool
}

// CaseSpecs is the view the builder needs from a case.
type CaseSpecs struct {
	MotherboardSupport []string
	MaxGPULength       float64
	HasMaxGPULength    bool
}

func (c *Component) CPUSpecs() CPUSpecs {
	tdp, ok := specNumber(c.Specifications, "tdp")
	return CPUSpecs{
		Socket: specString(c.Specifications, "socket"),
		TDP:    tdp,
		HasTDP: ok,
	}
}

func (c *Component) GPUSpecs() GPUSpecs {
	tdp, hasTDP := specNumber(c.Specifications, "tdp")
	length, hasLength := specNumber(c.Specifications, "length")
	return GPUSpecs{TDP: tdp, HasTDP: hasTDP, Length: length, HasLength: hasLength}
}

func (c *Component) MotherboardSpecs() MotherboardSpecs {
	return MotherboardSpecs{
		Socket:     specString(c.Specifications, "socket"),
		MemoryType: specString(c.Specifications, "memoryType"),
		FormFactor: specString(c.Specifications, "formFactor"),
	}
}

func (c *Component) RAMSpecs() RAMSpecs {
	return RAMSpecs{Type: specString(c.Specifications, "type")}
}

func (c *Component) PSUSpecs() PSUSpecs {
	w, ok := specNumber(c.Specifications, "wattage")
	return PSUSpecs{Wattage: w, HasWattage: ok}
}

func (c *Component) CaseSpecs() CaseSpecs {
	max, ok := specNumber(c.Specifications, "maxGPULength")
	return CaseSpecs{
		MotherboardSupport: specStrings(c.Specifications, "motherboardSupport"),
		MaxGPULength:       max,
		HasMaxGPULength:    ok,
	}
}

// specString returns the string value under key, or "".
func specString(specs map[string]interface{}, key string) string {
	if specs == nil {
		return ""
	}
	if s, ok := specs[key].(string); ok {
		return s
	}
	return ""
}

// specStrings returns a string list under key. A single string value is
// promoted to a one-element list.
func specStrings(specs map[string]interface{}, key string) []string {
	if specs == nil {
		return nil
	}
	switch v := specs[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	}
	return nil
}

// specNumber extracts a numeric value under key. JSON numbers are used
// directly; strings are parsed leniently so "320W" and "155 mm" yield 320
// and 155. Returns false when no numeric value can be extracted.
func specNumber(specs map[string]interface{}, key string) (float64, bool) {
	if specs == nil {
		return 0, false
	}
	switch v := specs[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		return ParseLeadingNumber(v)
	}
	return 0, false
}

// ParseLeadingNumber reads the first decimal number in s, skipping leading
// whitespace. "850", "850W" and " 36.5 cm" all parse; "Gold 850" does not.
func ParseLeadingNumber(s string) (float64, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	seenDot := false
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' {
			i++
			continue
		}
		if c == '.' && !seenDot && i > start {
			seenDot = true
			i++
			continue
		}
		break
	}
	if i == start {
		return 0, false
	}
	var n float64
	frac := 0.0
	scale := 0.1
	inFrac := false
	for _, c := range s[start:i] {
		if c == '.' {
			inFrac = true
			continue
		}
		d := float64(c - '0')
		if inFrac {
			frac += d * scale
			scale /= 10
		} else {
			n = n*10 + d
		}
	}
	return n + frac, true
}
